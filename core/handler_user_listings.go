package core

import (
	"net/http"
)

// UserListingsHandler returns the listings owned by a user. Only the owner
// may list them.
// Endpoint: GET /api/users/:id/listings
// Authenticated: Yes
func (a *App) UserListingsHandler(w http.ResponseWriter, r *http.Request) {
	user, resp, err := a.Auth().Authenticate(r)
	if err != nil {
		writeJsonError(w, resp)
		return
	}

	id := a.Params().Get(r.Context()).ByName("id")
	if id != user.ID {
		writeJsonError(w, errorForbidden)
		return
	}

	listings, err := a.DbListing().GetListingsByUser(user.ID)
	if err != nil {
		a.Logger().Error("failed to load user listings", "error", err, "user", user.ID)
		writeJsonError(w, errorListingDatabaseError)
		return
	}

	writeListingListResponse(w, listings)
}
