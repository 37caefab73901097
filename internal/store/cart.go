package store

import (
	"context"
	"fmt"

	"github.com/hmtran/storefront/internal/model"
)

// SaveCart replaces the persisted cart stash with the given lines.
//
// The in-memory cart remains the source of truth while a session is live;
// the stash only carries lines across process runs. Replace-all semantics
// keep the table consistent with the aggregator without diffing.
func (s *Store) SaveCart(ctx context.Context, lines []model.CartLine) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save cart: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart`); err != nil {
		return fmt.Errorf("save cart: clear: %w", err)
	}

	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cart (productId, quantity) VALUES (?, ?)
		`, line.Product.ID, line.Quantity); err != nil {
			return fmt.Errorf("save cart: insert line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save cart: commit: %w", err)
	}

	return nil
}

// LoadCart returns the persisted cart stash with product snapshots joined
// in. Lines whose product has been deleted since the stash was written do
// not satisfy the join and are dropped.
//
// Returns an empty slice (not nil) if the stash is empty.
func (s *Store) LoadCart(ctx context.Context) ([]model.CartLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT products.id, products.name, products.price, products.img,
		       products.categoryId, categories.name, cart.quantity
		FROM cart
		JOIN products ON cart.productId = products.id
		JOIN categories ON products.categoryId = categories.id
		ORDER BY cart.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var line model.CartLine
		if err := rows.Scan(&line.Product.ID, &line.Product.Name, &line.Product.Price,
			&line.Product.Image, &line.Product.CategoryID, &line.Product.CategoryName,
			&line.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart lines: %w", err)
	}

	if lines == nil {
		lines = []model.CartLine{}
	}

	return lines, nil
}

// ClearCartRows empties the persisted cart stash.
func (s *Store) ClearCartRows(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cart`); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
