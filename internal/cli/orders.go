package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hmtran/storefront/internal/model"
)

// NewOrdersCommand creates the orders command group.
func NewOrdersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Browse the order history",
	}

	cmd.AddCommand(newOrdersListCommand(opts))
	cmd.AddCommand(newOrdersShowCommand(opts))

	return cmd
}

func newOrdersListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			f := opts.formatter(cmd)
			orders, err := st.ListOrders(cmd.Context())
			if err != nil {
				return f.Fail(err)
			}

			return f.Success(orders, func(w io.Writer) {
				if len(orders) == 0 {
					fmt.Fprintln(w, "No orders.")
					return
				}
				for _, o := range orders {
					fmt.Fprintf(w, "%4d  %s  %d item(s)  total %d\n",
						o.ID, o.Date, len(o.Items), o.Total)
				}
			})
		},
	}
}

func newOrdersShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one order with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			f := opts.formatter(cmd)
			order, err := st.GetOrder(cmd.Context(), id)
			if err != nil {
				return f.Fail(err)
			}

			return f.Success(order, func(w io.Writer) {
				RenderReceipt(w, order)
			})
		},
	}
}

// RenderReceipt writes the human-readable form of an order.
// The layout is covered by a golden-file test; change the golden file
// together with this function.
func RenderReceipt(w io.Writer, order model.Order) {
	fmt.Fprintf(w, "Order #%d  %s\n", order.ID, order.Date)
	for _, item := range order.Items {
		fmt.Fprintf(w, "  %d x %-20s @ %s\n", item.Quantity, item.ProductName, item.ProductPrice)
	}
	fmt.Fprintf(w, "Total: %d\n", order.Total)
}
