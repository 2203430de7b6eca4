package cli

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/opskit/adminctl/pkg/domain/user"
	operrors "github.com/opskit/adminctl/pkg/errors"
	"github.com/opskit/adminctl/pkg/filter"
)

// exportBatchSize is how many rows are written between delay pauses.
const exportBatchSize = 100

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var (
		filterExpr string
		delay      string
	)

	cmd := &cobra.Command{
		Use:   "export <output-path>",
		Short: "Export user records to a CSV file",
		Long: `Export user records from the local database to a CSV file.

The output path is sanitized before anything is written: traversal
segments are rejected, and absolute paths are accepted only inside the
configured export root. Relative paths are resolved under the export
root. The command never writes outside that directory.

Examples:
  adminctl export monthly/users.csv
  adminctl export users.csv --filter 'role == "admin"'
  adminctl export users.csv --delay 1000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getAppConfig()
			if err != nil {
				return err
			}

			checker, err := newChecker()
			if err != nil {
				return err
			}

			safePath, err := checker.SanitizeExportPath(args[0])
			if err != nil {
				return operrors.NewOperationalError("sanitizing export path", "export", "output-path", err)
			}

			delayMs := 0
			if delay != "" {
				delayMs, err = checker.ValidateDelay(delay)
				if err != nil {
					return operrors.NewOperationalError("validating delay", "export", "delay", err)
				}
			}

			var recordFilter *filter.Filter
			if filterExpr != "" {
				recordFilter, err = filter.Compile(filterExpr)
				if err != nil {
					return err
				}
			}

			// Relative results land under the configured export root,
			// the same root the sanitizer confines absolute paths to.
			target := safePath
			if !filepath.IsAbs(target) {
				target = filepath.Join(cfg.ExportRoot, target)
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

			if err := writeCSV(target, matched, delayMs); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d users to: %s\n", len(matched), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "Filter expression over record fields")
	cmd.Flags().StringVar(&delay, "delay", "", "Pause in milliseconds between row batches")

	return cmd
}

// writeCSV writes user rows with the canonical header, pausing between
// batches when a delay was requested.
func writeCSV(target string, users []user.User, delayMs int) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(user.Headers()); err != nil {
		return err
	}

	for i, u := range users {
		if err := w.Write(u.Fields()); err != nil {
			return err
		}
		if delayMs > 0 && (i+1)%exportBatchSize == 0 && i+1 < len(users) {
			w.Flush()
			log.Printf("export: wrote %d rows, pausing %dms", i+1, delayMs)
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}
	}

	w.Flush()
	return w.Error()
}
