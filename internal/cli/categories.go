package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hmtran/storefront/internal/model"
)

// NewCategoriesCommand creates the categories command group.
func NewCategoriesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage product categories",
	}

	cmd.AddCommand(newCategoriesListCommand(opts))
	cmd.AddCommand(newCategoriesAddCommand(opts))
	cmd.AddCommand(newCategoriesRenameCommand(opts))
	cmd.AddCommand(newCategoriesDeleteCommand(opts))

	return cmd
}

func newCategoriesListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			f := opts.formatter(cmd)
			categories, err := st.ListCategories(cmd.Context())
			if err != nil {
				return f.Fail(err)
			}

			return f.Success(categories, func(w io.Writer) {
				renderCategories(w, categories)
			})
		},
	}
}

func newCategoriesAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			f := opts.formatter(cmd)
			c, err := st.AddCategory(cmd.Context(), args[0])
			if err != nil {
				return f.Fail(err)
			}

			return f.Success(c, func(w io.Writer) {
				fmt.Fprintf(w, "Added category %d: %s\n", c.ID, c.Name)
			})
		},
	}
}

func newCategoriesRenameCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Long: `Rename a category by id.

Renaming an id with no row is a silent no-op; the command still succeeds.`,
		Args: cobra.ExactArgs(2),
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
			if err := st.RenameCategory(cmd.Context(), id, args[1]); err != nil {
				return f.Fail(err)
			}

			return f.Success(map[string]any{"id": id, "name": args[1]},
				func(w io.Writer) {
					fmt.Fprintf(w, "Renamed category %d to %s\n", id, args[1])
				})
		},
	}
}

func newCategoriesDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category by id.

Deletion is refused while products still reference the category; reassign
or delete those products first.`,
		Args: cobra.ExactArgs(1),
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
			if err := st.DeleteCategory(cmd.Context(), id); err != nil {
				return f.Fail(err)
			}

			return f.Success(map[string]any{"id": id}, func(w io.Writer) {
				fmt.Fprintf(w, "Deleted category %d\n", id)
			})
		},
	}
}

func renderCategories(w io.Writer, categories []model.Category) {
	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories.")
		return
	}
	for _, c := range categories {
		fmt.Fprintf(w, "%4d  %s\n", c.ID, c.Name)
	}
}

// parseID parses a positional id argument.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid id %q", raw), err)
	}
	return id, nil
}
