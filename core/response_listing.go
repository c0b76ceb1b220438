package core

import (
	"net/http"

	"github.com/nidohq/nido/db"
)

const (
	// oks for non precomputed, dynamic listing responses
	CodeOkListing     = "ok_listing"
	CodeOkListingList = "ok_listing_list"
)

// ListingRecord is the JSON shape of a listing in API responses.
type ListingRecord struct {
	ID            string   `json:"id"`
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
	UserID        string   `json:"user_id"`
	Created       string   `json:"created"`
	Updated       string   `json:"updated"`
}

func newListingRecord(l *db.Listing) ListingRecord {
	return ListingRecord{
		ID:            l.ID,
		Name:          l.Name,
		Description:   l.Description,
		Address:       l.Address,
		Type:          l.Type,
		Offer:         l.Offer,
		Parking:       l.Parking,
		Furnished:     l.Furnished,
		Bedrooms:      l.Bedrooms,
		Bathrooms:     l.Bathrooms,
		RegularPrice:  l.RegularPrice,
		DiscountPrice: l.DiscountPrice,
		ImageURLs:     l.ImageURLs,
		UserID:        l.UserID,
		Created:       db.TimeFormat(l.Created),
		Updated:       db.TimeFormat(l.Updated),
	}
}

func writeListingResponse(w http.ResponseWriter, status int, listing *db.Listing) {
	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{
			Status:  status,
			Code:    CodeOkListing,
			Message: "Listing",
		},
		Data: newListingRecord(listing),
	})
}

func writeListingListResponse(w http.ResponseWriter, listings []*db.Listing) {
	records := make([]ListingRecord, 0, len(listings))
	for _, l := range listings {
		records = append(records, newListingRecord(l))
	}
	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkListingList,
			Message: "Listings",
		},
		Data: records,
	})
}
