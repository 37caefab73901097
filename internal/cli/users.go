package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hmtran/storefront/internal/model"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts and roles",
	}

	cmd.AddCommand(newUsersListCommand(opts))
	cmd.AddCommand(newUsersRegisterCommand(opts))
	cmd.AddCommand(newUsersSetRoleCommand(opts))
	cmd.AddCommand(newUsersPasswdCommand(opts))
	cmd.AddCommand(newUsersDeleteCommand(opts))

	return cmd
}

func newUsersListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			f := opts.formatter(cmd)
			users, err := st.ListUsers(cmd.Context())
			if err != nil {
				return f.Fail(err)
			}

			return f.Success(users, func(w io.Writer) {
				if len(users) == 0 {
					fmt.Fprintln(w, "No users.")
					return
				}
				for _, u := range users {
					fmt.Fprintf(w, "%4d  %-16s %s\n", u.ID, u.Username, u.Role)
				}
			})
		},
	}
}

func newUsersRegisterCommand(opts *RootOptions) *cobra.Command {
	var passwordFlag string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Register a new account",
		Long: `Register a new account with role "user".

Fails if the username is taken; the existing account is never overwritten.
The password is hashed with argon2id before storage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			f := opts.formatter(cmd)
			u, err := st.Register(cmd.Context(), args[0], passwordFlag)
			if err != nil {
				return f.Fail(err)
			}

			return f.Success(u, func(w io.Writer) {
				fmt.Fprintf(w, "Registered %s (id %d)\n", u.Username, u.ID)
			})
		},
	}

	cmd.Flags().StringVar(&passwordFlag, "password", "", "account password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUsersSetRoleCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <id> <role>",
		Short: "Change an account's role",
		Long: `Change an account's role to "user" or "admin".

Promoting to admin is refused while another account holds the role; the
error names the current admin, who must be demoted first.`,
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
			u, err := st.SetRole(cmd.Context(), id, model.Role(args[1]))
			if err != nil {
				return f.Fail(err)
			}

			return f.Success(u, func(w io.Writer) {
				fmt.Fprintf(w, "%s is now %s\n", u.Username, u.Role)
			})
		},
	}
}

func newUsersPasswdCommand(opts *RootOptions) *cobra.Command {
	var passwordFlag string

	cmd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Change an account's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			f := opts.formatter(cmd)
			if err := st.ChangePassword(cmd.Context(), args[0], passwordFlag); err != nil {
				return f.Fail(err)
			}

			return f.Success(map[string]string{"username": args[0]},
				func(w io.Writer) {
					fmt.Fprintf(w, "Password changed for %s\n", args[0])
				})
		},
	}

	cmd.Flags().StringVar(&passwordFlag, "password", "", "new password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUsersDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
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
			if err := st.DeleteUser(cmd.Context(), id); err != nil {
				return f.Fail(err)
			}

			return f.Success(map[string]any{"id": id}, func(w io.Writer) {
				fmt.Fprintf(w, "Deleted user %d\n", id)
			})
		},
	}
}
