package store

import (
	"context"
	"fmt"

	"github.com/hmtran/storefront/internal/model"
	"github.com/hmtran/storefront/internal/password"
	"github.com/hmtran/storefront/internal/seed"
)

// Seed applies a validated catalog with insert-if-absent semantics.
//
// Categories and products insert with ON CONFLICT(id) DO NOTHING, so rows
// already present (including rows the admin has since renamed) are left
// untouched. The default admin account is created only if no user with
// that username exists; its password is stored as an argon2id hash.
//
// Safe to call on every process start.
func (s *Store) Seed(ctx context.Context, cat seed.Catalog) error {
	if err := seed.Validate(cat); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	for _, c := range cat.ModelCategories() {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO categories (id, name) VALUES (?, ?)
			ON CONFLICT(id) DO NOTHING
		`, c.ID, c.Name); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}

	for _, p := range cat.ModelProducts() {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO products (id, name, price, img, categoryId)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`, p.ID, p.Name, p.Price, p.Image, p.CategoryID); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}

	if err := s.seedAdmin(ctx, cat.Admin); err != nil {
		return err
	}

	return nil
}

// seedAdmin creates the default admin if absent. Keyed on username, not
// role: a database whose admin was renamed or demoted still gets no second
// account with the seed username taken.
func (s *Store) seedAdmin(ctx context.Context, admin seed.Admin) error {
	_, err := s.GetUserByUsername(ctx, admin.Username)
	if err == nil {
		return nil
	}
	if !model.IsNotFound(err) {
		return fmt.Errorf("seed admin: %w", err)
	}

	hash, err := password.Hash(admin.Password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password, role)
		VALUES (?, ?, ?)
	`, admin.Username, hash, string(model.RoleAdmin)); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	return nil
}
