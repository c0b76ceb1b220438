package zombiezen

import (
	"fmt"

	"github.com/nidohq/nido/db"
	"zombiezen.com/go/sqlite/sqlitex"
)

type Db struct {
	pool *sqlitex.Pool
}

// Verify interface implementations
var _ db.DbAuth = (*Db)(nil)
var _ db.DbListing = (*Db)(nil)
var _ db.DbApp = (*Db)(nil)

// New creates a new Db instance using an existing pool provided by the user.
// The lifecycle of the provided pool (*sqlitex.Pool) is managed externally;
// this Db type does not close the pool.
func New(pool *sqlitex.Pool) (*Db, error) {
	if pool == nil {
		return nil, fmt.Errorf("provided pool cannot be nil")
	}
	return &Db{pool: pool}, nil
}

// NewPool opens a sqlite connection pool for the given database file.
func NewPool(path string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool(fmt.Sprintf("file:%s", path), sqlitex.PoolOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite pool: %w", err)
	}
	return pool, nil
}
