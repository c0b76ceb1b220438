package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nidohq/nido/db"
)

// UpdateListingHandler replaces a listing owned by the authenticated user.
// Endpoint: PUT /api/listings/:id
// Authenticated: Yes
// Allowed Mimetype: application/json
//
// The ownership check runs against the stored record, not the payload, so a
// listing can never be reassigned to another user.
func (a *App) UpdateListingHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

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

	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	if !validListing(&req) {
		writeJsonError(w, errorInvalidRequest)
		return
	}

	updated := listingFromRequest(&req, existing.UserID)
	updated.ID = existing.ID

	listing, err := a.DbListing().UpdateListing(updated)
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
