package zombiezen

import (
	"context"
	"fmt"

	"github.com/nidohq/nido/db"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// newUserFromStmt creates a User struct from a SQLite statement
func newUserFromStmt(stmt *sqlite.Stmt) (*db.User, error) {
	created, err := db.TimeParse(stmt.GetText("created"))
	if err != nil {
		return nil, fmt.Errorf("error parsing created time: %w", err)
	}

	updated, err := db.TimeParse(stmt.GetText("updated"))
	if err != nil {
		return nil, fmt.Errorf("error parsing updated time: %w", err)
	}

	return &db.User{
		ID:       stmt.GetText("id"),
		Email:    stmt.GetText("email"),
		Username: stmt.GetText("username"),
		Password: stmt.GetText("password"),
		Avatar:   stmt.GetText("avatar"),
		Oauth2:   stmt.GetInt64("oauth2") != 0,
		Created:  created,
		Updated:  updated,
	}, nil
}

const userColumns = `id, email, username, password, avatar, oauth2, created, updated`

func (d *Db) getUserWhere(where string, arg interface{}) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var user *db.User // Will remain nil if no rows found
	err = sqlitex.Execute(conn,
		`SELECT `+userColumns+` FROM users WHERE `+where+` LIMIT 1`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				user, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{arg},
		})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email address.
// Returns:
// - *db.User: User record if found, nil if no matching record exists
// - error: Only returned for database errors, nil on successful query (even if no results)
// Note: A nil user with nil error indicates no matching record was found
func (d *Db) GetUserByEmail(email string) (*db.User, error) {
	return d.getUserWhere("email = ?", email)
}

// GetUserByUsername retrieves a user by username. Same nil-user semantics
// as GetUserByEmail.
func (d *Db) GetUserByUsername(username string) (*db.User, error) {
	return d.getUserWhere("username = ?", username)
}

func (d *Db) GetUserById(id string) (*db.User, error) {
	return d.getUserWhere("id = ?", id)
}

// CreateUserWithPassword inserts a new password-authenticated user.
// Email and username carry UNIQUE constraints; a duplicate of either is
// reported as db.ErrConstraintUnique. The uniqueness pre-checks in the
// signup handler and this insert are not atomic, so a concurrent signup
// for the same email or username can still land here and lose.
func (d *Db) CreateUserWithPassword(user db.User) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var createdUser *db.User
	err = sqlitex.Execute(conn,
		`INSERT INTO users (email, username, password, avatar, oauth2)
		VALUES (?, ?, ?, ?, false)
		RETURNING `+userColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				createdUser, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				user.Email,
				user.Username,
				user.Password,
				user.Avatar,
			},
		})

	if err != nil {
		if sqlite.ErrCode(err) == sqlite.ResultConstraintUnique {
			return nil, db.ErrConstraintUnique
		}
		return nil, fmt.Errorf("user insert failed: %w", err)
	}

	return createdUser, nil
}

// CreateUserWithOauth2 inserts a user coming from an identity provider.
// On email conflict the existing record is marked oauth2 and returned,
// so two concurrent federated logins for the same email both succeed.
func (d *Db) CreateUserWithOauth2(user db.User) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var createdUser *db.User
	err = sqlitex.Execute(conn,
		`INSERT INTO users (email, username, password, avatar, oauth2)
		VALUES (?, ?, '', ?, true)
		ON CONFLICT(email) DO UPDATE SET
			oauth2 = true,
			avatar = IIF(avatar = '', excluded.avatar, avatar),
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		RETURNING `+userColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				createdUser, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				user.Email,
				user.Username,
				user.Avatar,
			},
		})

	if err != nil {
		if sqlite.ErrCode(err) == sqlite.ResultConstraintUnique {
			// username collision: the generated username raced another insert
			return nil, db.ErrConstraintUnique
		}
		return nil, fmt.Errorf("oauth2 user insert failed: %w", err)
	}

	return createdUser, nil
}

// UpdateUser rewrites the profile fields of an existing user. A duplicate
// email or username is reported as db.ErrConstraintUnique; an unknown id
// as db.ErrNotFound.
func (d *Db) UpdateUser(user db.User) (*db.User, error) {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer d.pool.Put(conn)

	var updatedUser *db.User
	err = sqlitex.Execute(conn,
		`UPDATE users SET
			email = ?,
			username = ?,
			avatar = ?,
			updated = (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		WHERE id = ?
		RETURNING `+userColumns,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				updatedUser, err = newUserFromStmt(stmt)
				return err
			},
			Args: []interface{}{
				user.Email,
				user.Username,
				user.Avatar,
				user.ID,
			},
		})

	if err != nil {
		if sqlite.ErrCode(err) == sqlite.ResultConstraintUnique {
			return nil, db.ErrConstraintUnique
		}
		return nil, fmt.Errorf("user update failed: %w", err)
	}
	if updatedUser == nil {
		return nil, db.ErrNotFound
	}

	return updatedUser, nil
}

// DeleteUser removes a user and their listings. The listings go first:
// listings.user_id references users(id) and the connection enforces
// foreign keys. Returns db.ErrNotFound for an unknown id.
func (d *Db) DeleteUser(id string) error {
	conn, err := d.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer d.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`DELETE FROM listings WHERE user_id = ?`,
		&sqlitex.ExecOptions{Args: []interface{}{id}})
	if err != nil {
		return fmt.Errorf("user listings delete failed: %w", err)
	}

	err = sqlitex.Execute(conn,
		`DELETE FROM users WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []interface{}{id}})
	if err != nil {
		return fmt.Errorf("user delete failed: %w", err)
	}
	if conn.Changes() == 0 {
		return db.ErrNotFound
	}

	return nil
}
