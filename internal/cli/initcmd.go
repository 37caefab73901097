package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database and apply the seed catalog",
		Long: `Create the storefront database, apply the schema and seed it.

Seeding is insert-if-absent: running init against an existing database
never duplicates or overwrites rows. An alternative seed catalog can be
supplied with --seed-file.

Example:
  storefront init --db ./shop.db
  storefront init --db ./shop.db --seed-file ./catalog.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			slog.Debug("database initialized", "path", opts.Database)

			f := opts.formatter(cmd)
			return f.Success(map[string]string{"database": opts.Database},
				func(w io.Writer) {
					fmt.Fprintf(w, "Initialized %s\n", opts.Database)
				})
		},
	}

	cmd.Flags().StringVar(&opts.SeedFile, "seed-file", "", "path to a YAML seed catalog override")

	return cmd
}
