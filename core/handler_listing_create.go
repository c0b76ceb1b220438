package core

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nidohq/nido/db"
)

// listingRequest is the payload for creating and updating listings.
type listingRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	Type          string   `json:"type"`
	Offer         bool     `json:"offer"`
	Parking       bool     `json:"parking"`
	Furnished     bool     `json:"furnished"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	RegularPrice  int64    `json:"regular_price"`
	DiscountPrice int64    `json:"discount_price"`
	ImageURLs     []string `json:"image_urls"`
}

// validListing checks the listing payload invariants: a name, a known type,
// non-negative numbers and, when an offer is active, a discount below the
// regular price.
func validListing(req *listingRequest) bool {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return false
	}
	if req.Type != "sale" && req.Type != "rent" {
		return false
	}
	if req.Bedrooms < 0 || req.Bathrooms < 0 || req.RegularPrice < 0 || req.DiscountPrice < 0 {
		return false
	}
	if req.Offer && req.DiscountPrice >= req.RegularPrice {
		return false
	}
	return true
}

func listingFromRequest(req *listingRequest, userID string) db.Listing {
	imageURLs := req.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	return db.Listing{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		Type:          req.Type,
		Offer:         req.Offer,
		Parking:       req.Parking,
		Furnished:     req.Furnished,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		RegularPrice:  req.RegularPrice,
		DiscountPrice: req.DiscountPrice,
		ImageURLs:     imageURLs,
		UserID:        userID,
	}
}

// CreateListingHandler creates a listing owned by the authenticated user.
// Endpoint: POST /api/listings
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) CreateListingHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		writeJsonError(w, resp)
		return
	}

	user, resp, err := a.Auth().Authenticate(r)
	if err != nil {
		writeJsonError(w, resp)
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

	listing, err := a.DbListing().CreateListing(listingFromRequest(&req, user.ID))
	if err != nil {
		a.Logger().Error("failed to create listing", "error", err, "user", user.ID)
		writeJsonError(w, errorListingDatabaseError)
		return
	}

	writeListingResponse(w, http.StatusCreated, listing)
}
