// Package cart implements the in-memory cart aggregator.
//
// A Cart holds transient lines (product snapshot + quantity) owned by one
// session. Lines never touch the database until checkout, which snapshots
// them into an order inside a single transaction and then clears the cart.
package cart

import (
	"context"
	"fmt"

	"github.com/hmtran/storefront/internal/model"
	"github.com/hmtran/storefront/internal/store"
)

// Cart is the state machine: empty, any number of add/remove/quantity
// mutations, then Checkout empties it again. Not safe for concurrent use;
// one cart belongs to one session and the core assumes one operation at a
// time.
type Cart struct {
	lines []model.CartLine
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []model.CartLine {
	out := make([]model.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Add puts a product in the cart. If a line with the same product id
// already exists its quantity goes up by one, otherwise a new line with
// quantity 1 is appended.
func (c *Cart) Add(p model.Product) {
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, model.CartLine{Product: p, Quantity: 1})
}

// Remove deletes the line for a product id. Missing id is a no-op.
func (c *Cart) Remove(productID int64) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// ChangeQuantity adjusts a line's quantity by delta, flooring at 1.
// Decrementing a quantity-1 line is a no-op; a line only ever disappears
// via Remove. Missing id is a no-op.
func (c *Cart) ChangeQuantity(productID int64, delta int) {
	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		q := c.lines[i].Quantity + delta
		if q < 1 {
			q = 1
		}
		c.lines[i].Quantity = q
		return
	}
}

// Total computes the cart total: sum of parsed price times quantity per
// line. Malformed prices contribute 0 (model.PriceValue).
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += model.LineTotal(line)
	}
	return total
}

// Clear drops all lines.
func (c *Cart) Clear() {
	c.lines = nil
}

// Replace swaps in a restored set of lines (cart stash). Quantities below
// 1 are clamped so the floor invariant holds regardless of what was
// persisted.
func (c *Cart) Replace(lines []model.CartLine) {
	c.lines = make([]model.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		c.lines = append(c.lines, line)
	}
}

// Checkout converts the cart into a persisted order.
//
// Fails with model.KindEmptyCart when no lines exist. Otherwise the total
// and wall-clock date are computed, the order and its items are written in
// one transaction, and the cart is cleared. The cart stays intact if the
// write fails; there is no observable state between total computation and
// clearing.
func (c *Cart) Checkout(ctx context.Context, st *store.Store, clk Clock) (model.Order, error) {
	if len(c.lines) == 0 {
		return model.Order{}, model.NewEmptyCart()
	}

	items := make([]model.OrderItem, len(c.lines))
	for i, line := range c.lines {
		items[i] = model.OrderItem{
			ProductID:    line.Product.ID,
			Quantity:     line.Quantity,
			ProductName:  line.Product.Name,
			ProductPrice: line.Product.Price,
		}
	}

	order, err := st.CreateOrder(ctx, clk.Now().Format(DateFormat), c.Total(), items)
	if err != nil {
		return model.Order{}, fmt.Errorf("checkout: %w", err)
	}

	c.Clear()
	return order, nil
}
