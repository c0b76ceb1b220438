package db

import "time"

// User represents a user from the database.
// Timestamps (Created and Updated) use RFC3339 format in UTC timezone.
// Example: "2024-03-07T15:04:05Z"
type User struct {
	ID       string
	Email    string
	Username string
	// Non empty password means password authentication is active.
	// Password is empty for accounts created through an identity provider.
	Password string
	Avatar   string
	// Oauth2 marks accounts that originate from a federated identity
	// provider. Such accounts cannot sign in with a password until one
	// is set.
	Oauth2  bool
	Created time.Time
	Updated time.Time
}

// Listing represents a property listing.
type Listing struct {
	ID          string
	Name        string
	Description string
	Address     string
	// Type is either "sale" or "rent"
	Type          string
	Offer         bool
	Parking       bool
	Furnished     bool
	Bedrooms      int
	Bathrooms     int
	RegularPrice  int64
	DiscountPrice int64
	ImageURLs     []string
	// UserID references the owning user
	UserID  string
	Created time.Time
	Updated time.Time
}

// Listing sort fields accepted by SearchListings. Anything else falls back
// to SortFieldCreated.
const (
	SortFieldCreated = "created"
	SortFieldPrice   = "regular_price"
)

// ListingFilter describes a listing search. Nil boolean filters mean
// "both true and false", matching the query semantics of the web client.
type ListingFilter struct {
	SearchTerm string
	Type       string // "sale", "rent" or "" for both
	Offer      *bool
	Parking    *bool
	Furnished  *bool
	SortField  string
	SortAsc    bool
	Limit      int
	Offset     int
}
