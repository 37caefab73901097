package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/hmtran/storefront/internal/model"
	"github.com/hmtran/storefront/internal/password"
)

// ListUsers returns all users ordered by id.
// Returns an empty slice (not nil) if the table is empty.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, password, role
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	if users == nil {
		users = []model.User{}
	}

	return users, nil
}

// GetUser retrieves a user by id.
// Returns model.KindNotFound if no row matches.
func (s *Store) GetUser(ctx context.Context, id int64) (model.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password, role
		FROM users
		WHERE id = ?
	`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, model.NewNotFound("user", fmt.Sprint(id))
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetUserByUsername retrieves a user by its unique username.
// Returns model.KindNotFound if no row matches.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password, role
		FROM users
		WHERE username = ?
	`, username)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, model.NewNotFound("user", username)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// Register creates a new account with role "user" and returns it.
//
// The password is hashed before storage; the clear text is never written.
// A taken username fails with model.KindDuplicateUsername and never
// overwrites the existing row.
func (s *Store) Register(ctx context.Context, username, plainPassword string) (model.User, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return model.User{}, fmt.Errorf("register: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password, role)
		VALUES (?, ?, ?)
	`, username, hash, string(model.RoleUser))
	if isUniqueViolation(err) {
		return model.User{}, model.NewDuplicateUsername(username)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("register: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("register: last insert id: %w", err)
	}

	return model.User{ID: id, Username: username, Password: hash, Role: model.RoleUser}, nil
}

// FindByCredentials authenticates a username/password pair.
//
// The stored hash is verified against the supplied password; the returned
// user's role is normalized (trimmed, lower-cased) so callers can compare
// it to model.RoleAdmin directly. A miss on either field reports
// model.KindInvalidCredentials without revealing which field missed.
func (s *Store) FindByCredentials(ctx context.Context, username, plainPassword string) (model.User, error) {
	u, err := s.GetUserByUsername(ctx, username)
	if model.IsNotFound(err) {
		return model.User{}, model.NewInvalidCredentials()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find by credentials: %w", err)
	}

	if !password.Verify(plainPassword, u.Password) {
		return model.User{}, model.NewInvalidCredentials()
	}

	return u, nil
}

// SetRole changes a user's role. This is the single authority for the
// one-admin invariant: promoting to admin is refused with
// model.KindRoleConflict while a different user already holds the role,
// and the error names that user.
func (s *Store) SetRole(ctx context.Context, id int64, role model.Role) (model.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("set role: %w", err)
	}

	role = model.NormalizeRole(string(role))
	if role == model.RoleAdmin {
		existing, err := s.findAdmin(ctx)
		if err != nil {
			return model.User{}, fmt.Errorf("set role: %w", err)
		}
		if existing != nil && existing.ID != id {
			return model.User{}, model.NewRoleConflict(existing.Username)
		}
	}

	if _, err := s.db.ExecContext(ctx, `
		UPDATE users SET role = ? WHERE id = ?
	`, string(role), id); err != nil {
		return model.User{}, fmt.Errorf("set role: %w", err)
	}

	u.Role = role
	return u, nil
}

// ChangePassword replaces a user's password hash.
// Returns model.KindNotFound if the username has no row.
func (s *Store) ChangePassword(ctx context.Context, username, newPassword string) error {
	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET password = ? WHERE username = ?
	`, hash, username)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("change password: rows affected: %w", err)
	}
	if affected == 0 {
		return model.NewNotFound("user", username)
	}

	return nil
}

// DeleteUser removes an account. Deleting a missing id is a no-op.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// findAdmin returns the current admin, or nil if none exists.
// Role comparison happens on the normalized value because legacy rows may
// store mixed case.
func (s *Store) findAdmin(ctx context.Context) (*model.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, password, role
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query admins: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if u.Role == model.RoleAdmin {
			return &u, nil
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return nil, nil
}

// scanUser maps one row to a validated User. The role is normalized at
// this boundary so untrimmed or mixed-case values never propagate upward.
func scanUser(sc scanner) (model.User, error) {
	var u model.User
	var rawRole string
	if err := sc.Scan(&u.ID, &u.Username, &u.Password, &rawRole); err != nil {
		return model.User{}, err
	}
	u.Role = model.NormalizeRole(rawRole)
	return u, nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint hit.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
