package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opskit/adminctl/pkg/api"
	"github.com/opskit/adminctl/pkg/domain/user"
	operrors "github.com/opskit/adminctl/pkg/errors"
	"github.com/opskit/adminctl/pkg/storage"
)

// apiTokenKey is the keyring entry holding the admin API bearer token.
const apiTokenKey = "api-token"

// NewFetchCommand creates the fetch command
func NewFetchCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "fetch <object-id>",
		Short: "Fetch a user record from the admin API",
		Long: `Fetch a user record from the admin API.

The object ID is validated before any request is made, and the response
body is shape-validated against the configured required fields before
any value is read from it. A response missing a required field aborts
the command, naming the missing field path.

The API token is read from the system keyring (set it with
"adminctl credential set api-token").

Examples:
  adminctl fetch 507f1f77bcf86cd799439011
  adminctl fetch 507f1f77bcf86cd799439011 --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, err := newChecker()
			if err != nil {
				return err
			}

			id, err := checker.ValidateObjectID(args[0])
			if err != nil {
				return operrors.NewOperationalError("validating object ID", "fetch", "object-id", err)
			}

			cfg, err := getAppConfig()
			if err != nil {
				return err
			}

			// Token is optional; unauthenticated endpoints still work.
			token, _ := storage.NewKeyringCredentialStore().Get(apiTokenKey)

			client, err := api.NewClient(cfg.APIBaseURL, token, checker, cfg.APISchemaPath)
			if err != nil {
				return err
			}

			u, err := client.FetchUser(cmd.Context(), id)
			if err != nil {
				return operrors.NewOperationalError("fetching user", "fetch", "object-id", err)
			}

			printUsers(cmd, []user.User{u})

			if save {
				repo, err := openRepository()
				if err != nil {
					return fmt.Errorf("failed to open database: %w", err)
				}
				defer func() { _ = repo.Close() }()

				if err := repo.Save(u); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved to local database")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the fetched record to the local database")

	return cmd
}
