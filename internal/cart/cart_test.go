package cart

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmtran/storefront/internal/model"
	"github.com/hmtran/storefront/internal/seed"
	"github.com/hmtran/storefront/internal/store"
	"github.com/hmtran/storefront/internal/testutil"
)

func product(id int64, price string) model.Product {
	return model.Product{ID: id, Name: "p", Price: price, CategoryID: 1}
}

func newSeededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Seed(context.Background(), seed.Default()))
	return st
}

func TestAdd_NewLineStartsAtOne(t *testing.T) {
	c := New()
	c.Add(product(1, "100"))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAdd_ExistingLineIncrements(t *testing.T) {
	c := New()
	c.Add(product(1, "100"))
	c.Add(product(1, "100"))
	c.Add(product(2, "50"))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestChangeQuantity_FloorsAtOne(t *testing.T) {
	c := New()
	c.Add(product(1, "100"))

	c.ChangeQuantity(1, -1)
	require.Len(t, c.Lines(), 1, "decrement must never remove the line")
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	c.ChangeQuantity(1, 5)
	assert.Equal(t, 6, c.Lines()[0].Quantity)

	c.ChangeQuantity(1, -100)
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestChangeQuantity_MissingIDIsNoop(t *testing.T) {
	c := New()
	c.Add(product(1, "100"))
	c.ChangeQuantity(42, 3)
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(product(1, "100"))
	c.Add(product(2, "200"))

	c.Remove(1)
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].Product.ID)

	c.Remove(42) // no-op
	assert.Len(t, c.Lines(), 1)
}

func TestTotal_MalformedPriceCountsAsZero(t *testing.T) {
	c := New()
	c.Add(product(1, "100000"))
	c.ChangeQuantity(1, 1) // qty 2
	c.Add(product(2, "not a price"))

	assert.Equal(t, int64(200000), c.Total())
}

func TestLines_ReturnsCopy(t *testing.T) {
	c := New()
	c.Add(product(1, "100"))

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestReplace_ClampsQuantity(t *testing.T) {
	c := New()
	c.Replace([]model.CartLine{
		{Product: product(1, "100"), Quantity: 0},
		{Product: product(2, "200"), Quantity: 3},
	})

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 3, lines[1].Quantity)
}

func TestCheckout_EmptyCart(t *testing.T) {
	st := newSeededStore(t)
	c := New()

	_, err := c.Checkout(context.Background(), st, WallClock{})
	assert.Equal(t, model.KindEmptyCart, model.KindOf(err))
}

func TestCheckout_TotalAndClear(t *testing.T) {
	st := newSeededStore(t)
	ctx := context.Background()
	clk := testutil.NewFixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	p1, err := st.AddProduct(ctx, model.Product{Name: "Túi xách", Price: "100000", CategoryID: 5})
	require.NoError(t, err)
	p2, err := st.AddProduct(ctx, model.Product{Name: "Mũ len", Price: "50000", CategoryID: 4})
	require.NoError(t, err)

	c := New()
	c.Add(p1)
	c.ChangeQuantity(p1.ID, 1) // qty 2
	c.Add(p2)

	order, err := c.Checkout(ctx, st, clk)
	require.NoError(t, err)

	assert.Equal(t, int64(250000), order.Total)
	assert.Equal(t, "2025-06-01 12:00:00", order.Date)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 0, c.Len(), "cart must be empty after checkout")

	// Immediate second checkout fails
	_, err = c.Checkout(ctx, st, clk)
	assert.Equal(t, model.KindEmptyCart, model.KindOf(err))

	// The order was persisted
	stored, err := st.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(250000), stored.Total)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "Túi xách", stored.Items[0].ProductName)
}

func TestCheckout_FailureKeepsCart(t *testing.T) {
	st := newSeededStore(t)
	ctx := context.Background()

	// A product id that violates the order_items foreign key
	c := New()
	c.Add(product(9999, "100"))

	_, err := c.Checkout(ctx, st, WallClock{})
	require.Error(t, err)
	assert.Equal(t, 1, c.Len(), "cart must survive a failed checkout")

	// No partial order row either
	orders, err := st.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
