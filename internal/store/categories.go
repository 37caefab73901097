package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hmtran/storefront/internal/model"
)

// ListCategories returns all categories ordered by id.
// The ordering is stable across calls as long as no mutation occurred.
//
// Returns an empty slice (not nil) if the table is empty.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM categories
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	if categories == nil {
		categories = []model.Category{}
	}

	return categories, nil
}

// GetCategory retrieves a single category by id.
// Returns model.KindNotFound if no row matches.
func (s *Store) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name
		FROM categories
		WHERE id = ?
	`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, model.NewNotFound("category", fmt.Sprint(id))
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// AddCategory inserts a category and returns it with its assigned id.
func (s *Store) AddCategory(ctx context.Context, name string) (model.Category, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name) VALUES (?)
	`, name)
	if err != nil {
		return model.Category{}, fmt.Errorf("add category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Category{}, fmt.Errorf("add category: last insert id: %w", err)
	}

	return model.Category{ID: id, Name: name}, nil
}

// RenameCategory updates a category's name.
//
// A missing id is a silent no-op, not an error - callers render the list
// afterwards either way and must not assume a failure is raised.
func (s *Store) RenameCategory(ctx context.Context, id int64, name string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE categories SET name = ? WHERE id = ?
	`, name, id)
	if err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category.
//
// Deletion is refused with model.KindCategoryInUse while any product still
// references the category; the caller must reassign or delete those
// products first. Deleting an id with no row is a no-op.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	var name string
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT c.name, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.categoryId = c.id
		WHERE c.id = ?
		GROUP BY c.id
	`, id).Scan(&name, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete category: count products: %w", err)
	}

	if count > 0 {
		return model.NewCategoryInUse(name, count)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
