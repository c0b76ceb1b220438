package core

import (
	"net/http"
	"strconv"

	"github.com/nidohq/nido/db"
)

const (
	defaultSearchLimit = 9
	maxSearchLimit     = 100
)

// parseBoolFilter maps a query value onto a tri-state filter: absent or
// "all" means no filtering, anything else is parsed as a bool.
func parseBoolFilter(value string) *bool {
	if value == "" || value == "all" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &parsed
}

// SearchListingsHandler searches listings with filters and pagination.
// Endpoint: GET /api/listings
// Authenticated: No
//
// Query parameters: search_term, type (sale|rent|all), offer, parking,
// furnished (true|false|all), sort (created|regular_price), order
// (asc|desc), limit, start_index.
func (a *App) SearchListingsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := db.ListingFilter{
		SearchTerm: q.Get("search_term"),
		Offer:      parseBoolFilter(q.Get("offer")),
		Parking:    parseBoolFilter(q.Get("parking")),
		Furnished:  parseBoolFilter(q.Get("furnished")),
		SortField:  q.Get("sort"),
		SortAsc:    q.Get("order") == "asc",
		Limit:      defaultSearchLimit,
	}

	if t := q.Get("type"); t == "sale" || t == "rent" {
		filter.Type = t
	}

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = min(limit, maxSearchLimit)
	}
	if offset, err := strconv.Atoi(q.Get("start_index")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	listings, err := a.DbListing().SearchListings(filter)
	if err != nil {
		a.Logger().Error("listing search failed", "error", err)
		writeJsonError(w, errorListingDatabaseError)
		return
	}

	writeListingListResponse(w, listings)
}
