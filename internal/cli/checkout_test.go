package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmtran/storefront/internal/seed"
	"github.com/hmtran/storefront/internal/session"
	"github.com/hmtran/storefront/internal/store"
	"github.com/hmtran/storefront/internal/testutil"
)

func TestCheckout_PlacesOrder(t *testing.T) {
	opts := newTestOptions(t)

	out, err := execute(t, NewCheckoutCommand(opts),
		"--user", "admin", "--password", "123456", "1:2", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Order #1")
	assert.Contains(t, out, "Total: 1600000")

	// The order is visible in the history afterwards
	out, err = execute(t, newOrdersListCommand(opts))
	require.NoError(t, err)
	assert.Contains(t, out, "2 item(s)")
}

func TestCheckout_EmptyCart(t *testing.T) {
	opts := newTestOptions(t)

	out, err := execute(t, NewCheckoutCommand(opts),
		"--user", "admin", "--password", "123456")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "EMPTY_CART")
}

func TestCheckout_BadCredentials(t *testing.T) {
	opts := newTestOptions(t)

	out, err := execute(t, NewCheckoutCommand(opts),
		"--user", "admin", "--password", "wrong", "1")
	require.Error(t, err)
	assert.Contains(t, out, "INVALID_CREDENTIALS")
}

func TestCheckout_InvalidQuantityArg(t *testing.T) {
	opts := newTestOptions(t)

	_, err := execute(t, NewCheckoutCommand(opts),
		"--user", "admin", "--password", "123456", "1:zero")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRenderReceipt_Golden(t *testing.T) {
	ctx := context.Background()
	opts := newTestOptions(t)

	st, err := store.Open(opts.Database)
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.Seed(ctx, seed.Default()))

	sess := session.New(nil)
	_, err = sess.Login(ctx, st, "admin", "123456")
	require.NoError(t, err)

	shirt, err := st.GetProduct(ctx, 1)
	require.NoError(t, err)
	sneaker, err := st.GetProduct(ctx, 2)
	require.NoError(t, err)

	require.NoError(t, sess.AddToCart(shirt))
	sess.Cart().ChangeQuantity(shirt.ID, 1)
	require.NoError(t, sess.AddToCart(sneaker))

	clk := testutil.NewFixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	order, err := sess.Checkout(ctx, st, clk)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	RenderReceipt(buf, order)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "receipt", buf.Bytes())
}
