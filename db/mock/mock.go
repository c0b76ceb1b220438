package mock

import (
	"github.com/nidohq/nido/db"
)

// Compile-time check to ensure Db implements the DbApp interface
var _ db.DbApp = (*Db)(nil)

// Db implements db.DbApp for testing purposes.
// Use function fields to allow overriding behavior in specific tests.
type Db struct {
	// --- Mock DbAuth Methods ---
	GetUserByEmailFunc         func(email string) (*db.User, error)
	GetUserByUsernameFunc      func(username string) (*db.User, error)
	GetUserByIdFunc            func(id string) (*db.User, error)
	CreateUserWithPasswordFunc func(user db.User) (*db.User, error)
	CreateUserWithOauth2Func   func(user db.User) (*db.User, error)
	UpdateUserFunc             func(user db.User) (*db.User, error)
	DeleteUserFunc             func(id string) error

	// --- Mock DbListing Methods ---
	CreateListingFunc     func(listing db.Listing) (*db.Listing, error)
	GetListingByIdFunc    func(id string) (*db.Listing, error)
	UpdateListingFunc     func(listing db.Listing) (*db.Listing, error)
	DeleteListingFunc     func(id string) error
	GetListingsByUserFunc func(userID string) ([]*db.Listing, error)
	SearchListingsFunc    func(filter db.ListingFilter) ([]*db.Listing, error)
}

// --- Implement DbAuth ---
func (m *Db) GetUserByEmail(email string) (*db.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(email)
	}
	return nil, nil // Default: Not found
}

func (m *Db) GetUserByUsername(username string) (*db.User, error) {
	if m.GetUserByUsernameFunc != nil {
		return m.GetUserByUsernameFunc(username)
	}
	return nil, nil // Default: Not found
}

func (m *Db) GetUserById(id string) (*db.User, error) {
	if m.GetUserByIdFunc != nil {
		return m.GetUserByIdFunc(id)
	}
	return nil, nil // Default: Not found
}

func (m *Db) CreateUserWithPassword(user db.User) (*db.User, error) {
	if m.CreateUserWithPasswordFunc != nil {
		return m.CreateUserWithPasswordFunc(user)
	}
	// Default: Return the user passed in, assuming success
	user.ID = "mock-pw-user-id"
	return &user, nil
}

func (m *Db) CreateUserWithOauth2(user db.User) (*db.User, error) {
	if m.CreateUserWithOauth2Func != nil {
		return m.CreateUserWithOauth2Func(user)
	}
	user.ID = "mock-oauth-user-id"
	return &user, nil
}

func (m *Db) UpdateUser(user db.User) (*db.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(user)
	}
	return &user, nil
}

func (m *Db) DeleteUser(id string) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(id)
	}
	return nil
}

// --- Implement DbListing ---
func (m *Db) CreateListing(listing db.Listing) (*db.Listing, error) {
	if m.CreateListingFunc != nil {
		return m.CreateListingFunc(listing)
	}
	listing.ID = "mock-listing-id"
	return &listing, nil
}

func (m *Db) GetListingById(id string) (*db.Listing, error) {
	if m.GetListingByIdFunc != nil {
		return m.GetListingByIdFunc(id)
	}
	return nil, db.ErrNotFound
}

func (m *Db) UpdateListing(listing db.Listing) (*db.Listing, error) {
	if m.UpdateListingFunc != nil {
		return m.UpdateListingFunc(listing)
	}
	return &listing, nil
}

func (m *Db) DeleteListing(id string) error {
	if m.DeleteListingFunc != nil {
		return m.DeleteListingFunc(id)
	}
	return nil
}

func (m *Db) GetListingsByUser(userID string) ([]*db.Listing, error) {
	if m.GetListingsByUserFunc != nil {
		return m.GetListingsByUserFunc(userID)
	}
	return []*db.Listing{}, nil
}

func (m *Db) SearchListings(filter db.ListingFilter) ([]*db.Listing, error) {
	if m.SearchListingsFunc != nil {
		return m.SearchListingsFunc(filter)
	}
	return []*db.Listing{}, nil
}
