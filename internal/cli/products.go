package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hmtran/storefront/internal/model"
	"github.com/hmtran/storefront/internal/store"
)

// productFlags holds the shared add/update flag set.
type productFlags struct {
	Name     string
	Price    string
	Image    string
	Category int64
}

func (pf *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pf.Name, "name", "", "product name")
	cmd.Flags().StringVar(&pf.Price, "price", "", "price as decimal text, e.g. 250000")
	cmd.Flags().StringVar(&pf.Image, "image", "", "image asset key")
	cmd.Flags().Int64Var(&pf.Category, "category", 0, "category id")
}

// NewProductsCommand creates the products command group.
func NewProductsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage and search the product catalog",
	}

	cmd.AddCommand(newProductsListCommand(opts))
	cmd.AddCommand(newProductsAddCommand(opts))
	cmd.AddCommand(newProductsUpdateCommand(opts))
	cmd.AddCommand(newProductsDeleteCommand(opts))
	cmd.AddCommand(newProductsSearchCommand(opts))

	return cmd
}

func newProductsListCommand(opts *RootOptions) *cobra.Command {
	var categoryID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			f := opts.formatter(cmd)
			var products []model.Product
			if categoryID > 0 {
				products, err = st.ProductsByCategory(cmd.Context(), categoryID)
			} else {
				products, err = st.ListProducts(cmd.Context())
			}
			if err != nil {
				return f.Fail(err)
			}

			return f.Success(products, func(w io.Writer) {
				renderProducts(w, products)
			})
		},
	}

	cmd.Flags().Int64Var(&categoryID, "category", 0, "only products of this category id")

	return cmd
}

func newProductsAddCommand(opts *RootOptions) *cobra.Command {
	pf := &productFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Long: `Add a product to the catalog.

The category must exist. The price is stored as decimal text and the image
is an opaque asset key.

Example:
  storefront products add --name "Áo khoác" --price 500000 --image jacket --category 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			f := opts.formatter(cmd)
			p, err := st.AddProduct(cmd.Context(), model.Product{
				Name:       pf.Name,
				Price:      pf.Price,
				Image:      pf.Image,
				CategoryID: pf.Category,
			})
			if err != nil {
				return f.Fail(err)
			}

			return f.Success(p, func(w io.Writer) {
				fmt.Fprintf(w, "Added product %d: %s (%s) in %s\n", p.ID, p.Name, p.Price, p.CategoryName)
			})
		},
	}

	pf.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newProductsUpdateCommand(opts *RootOptions) *cobra.Command {
	pf := &productFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
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

			// Start from the stored entity so omitted flags keep their value
			current, err := st.GetProduct(cmd.Context(), id)
			if err != nil {
				return f.Fail(err)
			}
			if cmd.Flags().Changed("name") {
				current.Name = pf.Name
			}
			if cmd.Flags().Changed("price") {
				current.Price = pf.Price
			}
			if cmd.Flags().Changed("image") {
				current.Image = pf.Image
			}
			if cmd.Flags().Changed("category") {
				current.CategoryID = pf.Category
			}

			p, err := st.UpdateProduct(cmd.Context(), current)
			if err != nil {
				return f.Fail(err)
			}

			return f.Success(p, func(w io.Writer) {
				fmt.Fprintf(w, "Updated product %d: %s (%s) in %s\n", p.ID, p.Name, p.Price, p.CategoryName)
			})
		},
	}

	pf.register(cmd)

	return cmd
}

func newProductsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
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
			if err := st.DeleteProduct(cmd.Context(), id); err != nil {
				return f.Fail(err)
			}

			return f.Success(map[string]any{"id": id}, func(w io.Writer) {
				fmt.Fprintf(w, "Deleted product %d\n", id)
			})
		},
	}
}

func newProductsSearchCommand(opts *RootOptions) *cobra.Command {
	var filter store.SearchFilter

	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search products by name or category",
		Long: `Search products by keyword against product and category names.

Matching ignores case, diacritics and whitespace: "ao" matches "Áo sơ mi".
Results are newest-first. An empty keyword matches everything; --min-price
and --max-price bound the parsed price.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := ""
			if len(args) == 1 {
				keyword = args[0]
			}

			st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			f := opts.formatter(cmd)
			products, err := st.SearchProducts(cmd.Context(), keyword, filter)
			if err != nil {
				return f.Fail(err)
			}

			return f.Success(products, func(w io.Writer) {
				renderProducts(w, products)
			})
		},
	}

	cmd.Flags().Int64Var(&filter.MinPrice, "min-price", 0, "minimum parsed price")
	cmd.Flags().Int64Var(&filter.MaxPrice, "max-price", 0, "maximum parsed price (0 = unbounded)")

	return cmd
}

func renderProducts(w io.Writer, products []model.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products.")
		return
	}
	for _, p := range products {
		fmt.Fprintf(w, "%4d  %-20s %12s  %s\n", p.ID, p.Name, p.Price, p.CategoryName)
	}
}
