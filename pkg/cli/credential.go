package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opskit/adminctl/pkg/storage"
	"github.com/opskit/adminctl/pkg/validation"
)

const maxCredentialSize = 1 << 20 // 1MB limit for all credential inputs

// NewCredentialCommand creates the credential management command
func NewCredentialCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage API credentials",
		Long: `Manage adminctl credentials securely in the system keyring.
Credentials are stored in your system's native credential store (Keychain on macOS,
Credential Manager on Windows, Secret Service on Linux) and never in plain text files.`,
	}

	cmd.AddCommand(newCredentialSetCommand())
	cmd.AddCommand(newCredentialGetCommand())
	cmd.AddCommand(newCredentialDeleteCommand())
	cmd.AddCommand(newCredentialListCommand())

	return cmd
}

// validateCredentialKey rejects keys that would be unsafe as keyring
// account names. Identifier characters only.
func validateCredentialKey(key string) error {
	if !validation.IsValidIdentifier(key) {
		return fmt.Errorf("invalid credential key %q: use letters, digits, hyphen, underscore", key)
	}
	return nil
}

// newCredentialSetCommand creates the credential set subcommand
func newCredentialSetCommand() *cobra.Command {
	var useStdin bool

	cmd := &cobra.Command{
		Use:   "set <key>",
		Short: "Store a credential",
		Long: `Store a credential in the system keyring.

Examples:
  # Interactive prompt (recommended for local use)
  adminctl credential set api-token

  # From stdin (recommended for automation/CI/CD)
  printf '%s' "$API_TOKEN" | adminctl credential set api-token --stdin

Security:
  - Credentials are stored in your system keyring, never in plain text
  - --stdin reads until EOF; use printf '%s' to avoid a trailing newline
  - All input methods have a 1MB maximum credential size limit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := validateCredentialKey(key); err != nil {
				return err
			}

			var value []byte
			var err error
			if useStdin {
				value, err = io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxCredentialSize+1))
				if err != nil {
					return fmt.Errorf("failed to read credential from stdin: %w", err)
				}
				if len(value) > maxCredentialSize {
					return fmt.Errorf("credential exceeds maximum size of %d bytes", maxCredentialSize)
				}
				value = bytes.TrimRight(value, "\r\n")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Enter value for %s: ", key)
				value, err = term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return fmt.Errorf("failed to read credential: %w", err)
				}
			}

			if len(bytes.TrimSpace(value)) == 0 {
				return fmt.Errorf("credential value cannot be empty")
			}

			store := storage.NewKeyringCredentialStore()
			if err := store.Set(key, string(value)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Credential stored: %s\n", key)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useStdin, "stdin", false, "Read the credential value from stdin")

	return cmd
}

// newCredentialGetCommand creates the credential get subcommand
func newCredentialGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Check that a credential exists",
		Long: `Check that a credential exists in the keyring.

The value itself is never printed; only presence is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := validateCredentialKey(key); err != nil {
				return err
			}

			store := storage.NewKeyringCredentialStore()
			if _, err := store.Get(key); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Credential exists: %s\n", key)
			return nil
		},
	}
}

// newCredentialDeleteCommand creates the credential delete subcommand
func newCredentialDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := validateCredentialKey(key); err != nil {
				return err
			}

			store := storage.NewKeyringCredentialStore()
			if err := store.Delete(key); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Credential deleted: %s\n", key)
			return nil
		},
	}
}

// newCredentialListCommand creates the credential list subcommand
func newCredentialListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored credential keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storage.NewKeyringCredentialStore()
			keys, err := store.List()
			if err != nil {
				return err
			}

			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No credentials stored")
				return nil
			}

			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}
