package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hmtran/storefront/internal/model"
)

// productColumns is the join used by every product read. categoryName is
// the display name carried alongside each product row.
const productColumns = `
	SELECT products.id, products.name, products.price, products.img,
	       products.categoryId, categories.name AS categoryName
	FROM products
	JOIN categories ON products.categoryId = categories.id
`

// SearchFilter narrows a product search beyond the keyword.
// Zero bounds are ignored; MaxPrice of 0 means unbounded.
type SearchFilter struct {
	MinPrice int64
	MaxPrice int64
}

// ListProducts returns all products with their category display name,
// ordered by id.
//
// Returns an empty slice (not nil) if the table is empty. Products whose
// category was removed out-of-band do not satisfy the inner join and are
// absent from the result.
func (s *Store) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.queryProducts(ctx, productColumns+`ORDER BY products.id ASC`)
}

// ProductsByCategory returns the products of one category, ordered by id.
func (s *Store) ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return s.queryProducts(ctx,
		productColumns+`WHERE products.categoryId = ? ORDER BY products.id ASC`,
		categoryID)
}

// GetProduct retrieves a single product by id.
// Returns model.KindNotFound if no row matches.
func (s *Store) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	row := s.db.QueryRowContext(ctx, productColumns+`WHERE products.id = ?`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, model.NewNotFound("product", fmt.Sprint(id))
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// AddProduct inserts a product and returns the stored entity with its
// assigned id and category display name. The category must exist; image is
// stored as an opaque asset key.
func (s *Store) AddProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if _, err := s.GetCategory(ctx, p.CategoryID); err != nil {
		return model.Product{}, fmt.Errorf("add product: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO products (name, price, img, categoryId)
		VALUES (?, ?, ?, ?)
	`, p.Name, p.Price, p.Image, p.CategoryID)
	if err != nil {
		return model.Product{}, fmt.Errorf("add product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Product{}, fmt.Errorf("add product: last insert id: %w", err)
	}

	return s.GetProduct(ctx, id)
}

// UpdateProduct overwrites all fields of an existing product and returns
// the updated entity. Returns model.KindNotFound if the id has no row.
func (s *Store) UpdateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if _, err := s.GetCategory(ctx, p.CategoryID); err != nil {
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, price = ?, img = ?, categoryId = ?
		WHERE id = ?
	`, p.Name, p.Price, p.Image, p.CategoryID, p.ID)
	if err != nil {
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return model.Product{}, fmt.Errorf("update product: rows affected: %w", err)
	}
	if affected == 0 {
		return model.Product{}, model.NewNotFound("product", fmt.Sprint(p.ID))
	}

	return s.GetProduct(ctx, p.ID)
}

// DeleteProduct removes a product. Deleting a missing id is a no-op.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// SearchProducts returns products whose name or category name contains the
// keyword, compared case-, diacritic- and whitespace-insensitively
// ("ao" matches "Áo sơ mi"). Results are newest-first (descending id).
//
// An empty keyword matches every product. The filter's price bounds apply
// to the parsed price (model.PriceValue); a malformed price parses as 0
// and is subject to the bounds like any other value.
func (s *Store) SearchProducts(ctx context.Context, keyword string, filter SearchFilter) ([]model.Product, error) {
	// Folding can't be expressed in SQLite, so fetch newest-first and
	// filter in Go.
	all, err := s.queryProducts(ctx, productColumns+`ORDER BY products.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	matched := []model.Product{}
	for _, p := range all {
		if !model.FoldContains(p.Name, keyword) && !model.FoldContains(p.CategoryName, keyword) {
			continue
		}
		price := model.PriceValue(p.Price)
		if price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && price > filter.MaxPrice {
			continue
		}
		matched = append(matched, p)
	}

	return matched, nil
}

// queryProducts runs a product join query and scans the rows.
func (s *Store) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanProduct maps one joined row to a validated Product.
func scanProduct(sc scanner) (model.Product, error) {
	var p model.Product
	err := sc.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.CategoryID, &p.CategoryName)
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}
