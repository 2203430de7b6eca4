package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opskit/adminctl/pkg/domain/user"
	operrors "github.com/opskit/adminctl/pkg/errors"
)

// NewImportCommand creates the import command
func NewImportCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Import user records from a CSV file",
		Long: `Import user records from a CSV file into the local database.

This command:
- Validates the header row against the required column set
- Validates each row's object ID, email, and creation date
- Inserts valid rows and reports rejected ones

A file missing required columns is rejected outright, naming the missing
columns. Individual bad rows are skipped and counted; they never reach
the database.

Examples:
  adminctl import users.csv
  adminctl import users.csv --verbose`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			csvFile := args[0]

			if _, err := os.Stat(csvFile); os.IsNotExist(err) {
				return fmt.Errorf("CSV file not found: %s", csvFile)
			}

			checker, err := newChecker()
			if err != nil {
				return err
			}

			f, err := os.Open(csvFile)
			if err != nil {
				return fmt.Errorf("failed to open CSV file: %w", err)
			}
			defer func() { _ = f.Close() }()

			reader := csv.NewReader(f)
			headers, err := reader.Read()
			if err != nil {
				return fmt.Errorf("failed to read CSV header row: %w", err)
			}

			if err := checker.ValidateCSVHeaders(headers, "import"); err != nil {
				return operrors.NewOperationalError("validating CSV headers", "import", "headers", err)
			}

			columns := columnIndex(headers)

			repo, err := openRepository()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = repo.Close() }()

			imported, rejected := 0, 0
			for line := 2; ; line++ {
				row, err := reader.Read()
				if err == io.EOF {
					break
				}
				if err != nil {
					// A row with the wrong number of fields is bad data,
					// not a reason to abort the whole file.
					if errors.Is(err, csv.ErrFieldCount) {
						rejected++
						log.Printf("import: rejected line %d: %v", line, err)
						if verbose {
							fmt.Fprintf(cmd.OutOrStderr(), "  ✗ line %d: %v\n", line, err)
						}
						continue
					}
					return fmt.Errorf("failed to read CSV row at line %d: %w", line, err)
				}

				u, err := rowToUser(checker, columns, row)
				if err != nil {
					rejected++
					log.Printf("import: rejected line %d: %v", line, err)
					if verbose {
						fmt.Fprintf(cmd.OutOrStderr(), "  ✗ line %d: %v\n", line, err)
					}
					continue
				}

				if err := repo.Save(u); err != nil {
					return operrors.NewOperationalErrorWithAttrs("saving user record", "import", "", err,
						map[string]interface{}{"line": line, "id": u.ID})
				}
				imported++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d users (%d rejected)\n", imported, rejected)
			if rejected > 0 && !verbose {
				fmt.Fprintln(cmd.OutOrStdout(), "  Use --verbose to see rejected rows")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show each rejected row")

	return cmd
}

// checkerInterface is the subset of the facade row validation needs.
type checkerInterface interface {
	ValidateObjectID(v any) (string, error)
	ValidateEmail(v any) (string, error)
	ValidateDate(v any) (string, error)
}

// columnIndex maps normalized header names to their positions. The
// normalization (trim, case-fold) matches the header validator, so a
// header set that passed validation always resolves here.
func columnIndex(headers []string) map[string]int {
	columns := make(map[string]int, len(headers))
	for i, h := range headers {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return columns
}

// rowToUser validates one CSV row into a user record.
func rowToUser(checker checkerInterface, columns map[string]int, row []string) (user.User, error) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	id, err := checker.ValidateObjectID(cell("id"))
	if err != nil {
		return user.User{}, fmt.Errorf("column id: %w", err)
	}
	email, err := checker.ValidateEmail(cell("email"))
	if err != nil {
		return user.User{}, fmt.Errorf("column email: %w", err)
	}
	created, err := checker.ValidateDate(cell("created_at"))
	if err != nil {
		return user.User{}, fmt.Errorf("column created_at: %w", err)
	}

	return user.User{
		ID:        id,
		Email:     email,
		Name:      cell("name"),
		Role:      cell("role"),
		CreatedAt: created,
	}, nil
}
