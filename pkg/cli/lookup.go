package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opskit/adminctl/pkg/domain/user"
	operrors "github.com/opskit/adminctl/pkg/errors"
)

// NewLookupCommand creates the lookup command
func NewLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <object-id>",
		Short: "Look up a user record by object ID",
		Long: `Look up a single user record in the local database.

The object ID is validated (24 hexadecimal characters) before the
database is queried; a malformed ID aborts the command without touching
storage.

Examples:
  adminctl lookup 507f1f77bcf86cd799439011`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, err := newChecker()
			if err != nil {
				return err
			}

			id, err := checker.ValidateObjectID(args[0])
			if err != nil {
				return operrors.NewOperationalError("validating object ID", "lookup", "object-id", err)
			}

			repo, err := openRepository()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = repo.Close() }()

			u, err := repo.Get(id)
			if err != nil {
				return fmt.Errorf("user not found: %s", id)
			}

			printUsers(cmd, []user.User{u})
			return nil
		},
	}

	return cmd
}

// printUsers writes user records as an aligned table.
func printUsers(cmd *cobra.Command, users []user.User) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Role, u.CreatedAt)
	}
	_ = w.Flush()
}
