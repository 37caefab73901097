package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hmtran/storefront/internal/cart"
	"github.com/hmtran/storefront/internal/session"
)

// CheckoutOptions holds flags for the checkout command.
type CheckoutOptions struct {
	*RootOptions
	Username string
	Password string
	Restore  bool

	// Clock allows overriding the order timestamp source (for testing).
	// If nil, defaults to the wall clock.
	Clock cart.Clock
}

// NewCheckoutCommand creates the checkout command.
func NewCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckoutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "checkout <product-id[:qty]>...",
		Short: "Place an order for the given products",
		Long: `Log in, fill a cart and check it out as one order.

Each argument is a product id with an optional quantity, e.g. "1:2 5".
Adding to the cart requires valid credentials; an empty argument list with
no restored stash fails with EMPTY_CART.

Example:
  storefront checkout --db ./shop.db --user admin --password 123456 1:2 2`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckout(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Username, "user", "", "account username (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "account password (required)")
	cmd.Flags().BoolVar(&opts.Restore, "restore-stash", false, "restore the persisted cart stash before adding items")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runCheckout(opts *CheckoutOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	f := opts.formatter(cmd)

	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	sess := session.New(nil)
	slog.Debug("session created", "token", sess.Token)

	if _, err := sess.Login(ctx, st, opts.Username, opts.Password); err != nil {
		return f.Fail(err)
	}

	if opts.Restore {
		if err := sess.RestoreCart(ctx, st); err != nil {
			return f.Fail(err)
		}
		if err := st.ClearCartRows(ctx); err != nil {
			return f.Fail(err)
		}
	}

	for _, arg := range args {
		id, qty, err := parseLineArg(arg)
		if err != nil {
			return err
		}
		p, err := st.GetProduct(ctx, id)
		if err != nil {
			return f.Fail(err)
		}
		if err := sess.AddToCart(p); err != nil {
			return f.Fail(err)
		}
		if qty > 1 {
			sess.Cart().ChangeQuantity(p.ID, qty-1)
		}
	}

	clk := opts.Clock
	if clk == nil {
		clk = cart.WallClock{}
	}

	order, err := sess.Checkout(ctx, st, clk)
	if err != nil {
		return f.Fail(err)
	}
	slog.Debug("order placed", "order", order.ID, "total", order.Total)

	return f.Success(order, func(w io.Writer) {
		RenderReceipt(w, order)
	})
}

// parseLineArg parses "id" or "id:qty".
func parseLineArg(arg string) (id int64, qty int, err error) {
	idPart, qtyPart, hasQty := strings.Cut(arg, ":")

	id, err = parseID(idPart)
	if err != nil {
		return 0, 0, err
	}

	qty = 1
	if hasQty {
		qty, err = strconv.Atoi(qtyPart)
		if err != nil || qty < 1 {
			return 0, 0, WrapExitError(ExitCommandError,
				fmt.Sprintf("invalid quantity %q", qtyPart), err)
		}
	}

	return id, qty, nil
}
