package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nidohq/nido/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const listingColumns = `id, name, description, address, type, offer, parking,
	furnished, bedrooms, bathrooms, regular_price, discount_price, image_urls,
	user_id, created, updated`

// newListingFromStmt creates a Listing struct from a SQLite statement.
// image_urls is stored as a JSON array of strings.
func newListingFromStmt(stmt *sqlite.Stmt) (*db.Listing, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}

	updated, err := db.TimeParse(stmt.GetText("updated"))
	if err != nil {
		return nil, fmt.Errorf("error parsing updated time: %w", err)
	}

	var imageURLs []string
	if raw := stmt.GetText("image_urls"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &imageURLs); err != nil {
			return nil, fmt.Errorf("error parsing image urls: %w", err)
		}
	}

	return &db.Listing{
		ID:            stmt.GetText("id"),
		Name:          stmt.GetText("name"),
		Description:   stmt.GetText("description"),
		Address:       stmt.GetText("address"),
		Type:          stmt.GetText("type"),
		Offer:         stmt.GetInt64("offer") != 0,
		Parking:       stmt.GetInt64("parking") != 0,
		Furnished:     stmt.GetInt64("furnished") != 0,
		Bedrooms:      int(stmt.GetInt64("bedrooms")),
		Bathrooms:     int(stmt.GetInt64("bathrooms")),
		RegularPrice:  stmt.GetInt64("regular_price"),
		DiscountPrice: stmt.GetInt64("discount_price"),
		ImageURLs:     imageURLs,
		UserID:        stmt.GetText("user_id"),
		Created:       created,
		Updated:       updated,
	}, nil
}

func (d *Db) CreateListing(listing db.Listing) (*db.Listing, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	imageURLs, err := json.Marshal(listing.ImageURLs)
	if err != nil {
		return nil, fmt.Errorf("error encoding image urls: %w", err)
	}

	var created *db.Listing
	err = sqlitex.Execute(conn,
		`INSERT INTO listings (name, description, address, type, offer, parking,
			furnished, bedrooms, bathrooms, regular_price, discount_price,
			image_urls, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+listingColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				created, err = newListingFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				listing.Name,
				listing.Description,
				listing.Address,
				listing.Type,
				listing.Offer,
				listing.Parking,
				listing.Furnished,
				listing.Bedrooms,
				listing.Bathrooms,
				listing.RegularPrice,
				listing.DiscountPrice,
				string(imageURLs),
				listing.UserID,
			},
		})

	if err != nil {
		return nil, fmt.Errorf("listing insert failed: %w", err)
	}

	return created, nil
}

func (d *Db) GetListingById(id string) (*db.Listing, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var listing *db.Listing
	err = sqlitex.Execute(conn,
		`SELECT `+listingColumns+` FROM listings WHERE id = ? LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				listing, err = newListingFromStmt(stmt)
				return err
			},
			Args: []interface{}{id},
		})

	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, db.ErrNotFound
	}

	return listing, nil
}

func (d *Db) UpdateListing(listing db.Listing) (*db.Listing, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	imageURLs, err := json.Marshal(listing.ImageURLs)
	if err != nil {
		return nil, fmt.Errorf("error encoding image urls: %w", err)
	}

	var updated *db.Listing
	err = sqlitex.Execute(conn,
		`UPDATE listings SET
			name = ?, description = ?, address = ?, type = ?, offer = ?,
			parking = ?, furnished = ?, bedrooms = ?, bathrooms = ?,
			regular_price = ?, discount_price = ?, image_urls = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?
		RETURNING `+listingColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				updated, err = newListingFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				listing.Name,
				listing.Description,
				listing.Address,
				listing.Type,
				listing.Offer,
				listing.Parking,
				listing.Furnished,
				listing.Bedrooms,
				listing.Bathrooms,
				listing.RegularPrice,
				listing.DiscountPrice,
				string(imageURLs),
				listing.ID,
			},
		})

	if err != nil {
		return nil, fmt.Errorf("listing update failed: %w", err)
	}
	if updated == nil {
		return nil, db.ErrNotFound
	}

	return updated, nil
}

func (d *Db) DeleteListing(id string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`DELETE FROM listings WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []interface{}{id},
		})
	if err != nil {
		return fmt.Errorf("listing delete failed: %w", err)
	}
	if conn.Changes() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (d *Db) GetListingsByUser(userID string) ([]*db.Listing, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var listings []*db.Listing
	err = sqlitex.Execute(conn,
		`SELECT `+listingColumns+` FROM listings WHERE user_id = ? ORDER BY created DESC`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				listing, err := newListingFromStmt(stmt)
				if err != nil {
					return err
				}
				listings = append(listings, listing)
				return nil
			},
			Args: []interface{}{userID},
		})

	if err != nil {
		return nil, err
	}

	return listings, nil
}

// SearchListings returns at most filter.Limit listings matching the filter,
// ordered by the requested field. The WHERE clause is assembled from fixed
// fragments; user input only ever lands in the args slice.
func (d *Db) SearchListings(filter db.ListingFilter) ([]*db.Listing, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var where []string
	var args []interface{}

	if filter.SearchTerm != "" {
		where = append(where, "address LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(filter.SearchTerm)+"%")
	}
	if filter.Type == "sale" || filter.Type == "rent" {
		where = append(where, "type = ?")
		args = append(args, filter.Type)
	}
	for _, f := range []struct {
		column string
		value  *bool
	}{
		{"offer", filter.Offer},
		{"parking", filter.Parking},
		{"furnished", filter.Furnished},
	} {
		if f.value != nil {
			where = append(where, f.column+" = ?")
			args = append(args, *f.value)
		}
	}

	query := `SELECT ` + listingColumns + ` FROM listings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	sortField := SortColumn(filter.SortField)
	order := "DESC"
	if filter.SortAsc {
		order = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT ? OFFSET ?", sortField, order)
	args = append(args, filter.Limit, filter.Offset)

	var listings []*db.Listing
	err = sqlitex.Execute(conn, query,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				listing, err := newListingFromStmt(stmt)
				if err != nil {
					return err
				}
				listings = append(listings, listing)
				return nil
			},
			Args: args,
		})

	if err != nil {
		return nil, err
	}

	return listings, nil
}

// SortColumn maps a requested sort field to a column name, falling back to
// the creation timestamp for anything unknown.
func SortColumn(field string) string {
	switch field {
	case db.SortFieldPrice:
		return "regular_price"
	default:
		return "created"
	}
}

// escapeLike escapes LIKE wildcards in a user-supplied search term.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
