package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hmtran/storefront/internal/model"
)

// CreateOrder persists a checkout snapshot: one order row plus its items,
// linked via the order's assigned id.
//
// The whole sequence runs in a single transaction, so a crash mid-checkout
// leaves no order without items. Returns the stored order with its id and
// items populated.
func (s *Store) CreateOrder(ctx context.Context, date string, total int64, items []model.OrderItem) (model.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Order{}, fmt.Errorf("create order: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (date, total) VALUES (?, ?)
	`, date, total)
	if err != nil {
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return model.Order{}, fmt.Errorf("create order: last insert id: %w", err)
	}

	stored := model.Order{ID: orderID, Date: date, Total: total}
	for _, item := range items {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (orderId, productId, quantity)
			VALUES (?, ?, ?)
		`, orderID, item.ProductID, item.Quantity)
		if err != nil {
			return model.Order{}, fmt.Errorf("create order: insert item: %w", err)
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return model.Order{}, fmt.Errorf("create order: item id: %w", err)
		}
		item.ID = itemID
		item.OrderID = orderID
		stored.Items = append(stored.Items, item)
	}

	if err := tx.Commit(); err != nil {
		return model.Order{}, fmt.Errorf("create order: commit: %w", err)
	}

	return stored, nil
}

// ListOrders returns the order history, newest-first, with items populated.
// Item rows carry the product's current name and price from the join; the
// quantity is the checkout-time snapshot.
//
// Returns an empty slice (not nil) if no orders exist.
func (s *Store) ListOrders(ctx context.Context) ([]model.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, total
		FROM orders
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var total float64
		if err := rows.Scan(&o.ID, &o.Date, &total); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Total = int64(total)
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	for i := range orders {
		items, err := s.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	if orders == nil {
		orders = []model.Order{}
	}

	return orders, nil
}

// GetOrder retrieves a single order with items.
// Returns model.KindNotFound if no row matches.
func (s *Store) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	var o model.Order
	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, date, total
		FROM orders
		WHERE id = ?
	`, id).Scan(&o.ID, &o.Date, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, model.NewNotFound("order", fmt.Sprint(id))
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("get order: %w", err)
	}
	o.Total = int64(total)

	o.Items, err = s.orderItems(ctx, o.ID)
	if err != nil {
		return model.Order{}, err
	}

	return o, nil
}

// orderItems returns one order's items with product name and price joined.
func (s *Store) orderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT order_items.id, order_items.orderId, order_items.productId,
		       order_items.quantity, products.name, products.price
		FROM order_items
		JOIN products ON order_items.productId = products.id
		WHERE order_items.orderId = ?
		ORDER BY order_items.id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity,
			&it.ProductName, &it.ProductPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	if items == nil {
		items = []model.OrderItem{}
	}

	return items, nil
}
