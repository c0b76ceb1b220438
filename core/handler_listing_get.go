package core

import (
	"errors"
	"net/http"

	"github.com/nidohq/nido/db"
)

// GetListingHandler fetches a single listing by id.
// Endpoint: GET /api/listings/:id
// Authenticated: No
func (a *App) GetListingHandler(w http.ResponseWriter, r *http.Request) {
	id := a.Params().Get(r.Context()).ByName("id")
	if id == "" {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	listing, err := a.DbListing().GetListingById(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJsonError(w, errorNotFound)
			return
		}
		writeJsonError(w, errorListingDatabaseError)
		return
	}

	writeListingResponse(w, http.StatusOK, listing)
}
