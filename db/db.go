package db

import "errors"

var (
	// ErrConstraintUnique is returned when an insert or update violates a
	// UNIQUE constraint (duplicate email or username).
	ErrConstraintUnique = errors.New("unique constraint violation")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

// DbAuth provides the user operations needed by authentication.
// A nil user with nil error indicates no matching record was found.
type DbAuth interface {
	GetUserByEmail(email string) (*User, error)
	GetUserByUsername(username string) (*User, error)
	GetUserById(id string) (*User, error)
	CreateUserWithPassword(user User) (*User, error)
	CreateUserWithOauth2(user User) (*User, error)
	UpdateUser(user User) (*User, error)
	DeleteUser(id string) error
}

// DbListing provides property listing persistence.
type DbListing interface {
	CreateListing(listing Listing) (*Listing, error)
	GetListingById(id string) (*Listing, error)
	UpdateListing(listing Listing) (*Listing, error)
	DeleteListing(id string) error
	GetListingsByUser(userID string) ([]*Listing, error)
	SearchListings(filter ListingFilter) ([]*Listing, error)
}

// DbApp is an interface combining the required DB roles for the application.
// The concrete DB implementation (e.g., *zombiezen.Db) must satisfy this interface.
type DbApp interface {
	DbAuth
	DbListing
}
