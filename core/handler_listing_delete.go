package core

import (
	"errors"
	"net/http"

	"github.com/nidohq/nido/db"
)

// DeleteListingHandler deletes a listing owned by the authenticated user.
// Endpoint: DELETE /api/listings/:id
// Authenticated: Yes
func (a *App) DeleteListingHandler(w http.ResponseWriter, r *http.Request) {
	user, resp, err := a.Auth().Authenticate(r)
	if err != nil {
		writeJsonError(w, resp)
		return
	}

	id := a.Params().Get(r.Context()).ByName("id")
	if id == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	existing, err := a.DbListing().GetListingById(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorListingDatabaseError)
		return
	}

	if existing.UserID != user.ID {
		writeJsonError(w, errorForbidden)
		return
	}

	if err := a.DbListing().DeleteListing(id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorListingDatabaseError)
		return
	}

	writeJsonOk(w, okListingDeleted)
}
