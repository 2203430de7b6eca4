package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opskit/adminctl/pkg/domain/user"
	"github.com/opskit/adminctl/pkg/filter"
	"github.com/opskit/adminctl/pkg/validation"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	var (
		filterExpr string
		limit      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user records",
		Long: `List user records from the local database.

An optional filter expression narrows the output. Filters are boolean
expressions over the record fields (id, email, name, role, created_at).
--limit caps the number of rows; a value that does not parse as a
non-negative integer falls back to unlimited.

Examples:
  adminctl list
  adminctl list --filter 'role == "admin"'
  adminctl list --filter 'email endsWith "@example.com"' --limit 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var recordFilter *filter.Filter
			if filterExpr != "" {
				var err error
				recordFilter, err = filter.Compile(filterExpr)
				if err != nil {
					return err
				}
			}

			repo, err := openRepository()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = repo.Close() }()

			users, err := repo.List()
			if err != nil {
				return err
			}

			matched, err := filterUsers(users, recordFilter)
			if err != nil {
				return err
			}

			// Zero means unlimited; bad input silently falls back.
			if n := validation.ParsePositiveInt(limit, 0); n > 0 && n < len(matched) {
				matched = matched[:n]
			}

			if len(matched) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found")
				return nil
			}

			printUsers(cmd, matched)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "Filter expression over record fields")
	cmd.Flags().StringVar(&limit, "limit", "", "Maximum number of rows to print")

	return cmd
}

// filterUsers applies an optional compiled filter to a user slice.
func filterUsers(users []user.User, f *filter.Filter) ([]user.User, error) {
	if f == nil {
		return users, nil
	}
	var matched []user.User
	for _, u := range users {
		ok, err := f.Matches(u.Record())
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, u)
		}
	}
	return matched, nil
}
