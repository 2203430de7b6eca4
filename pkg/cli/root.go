package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opskit/adminctl/pkg/checks"
	"github.com/opskit/adminctl/pkg/config"
	"github.com/opskit/adminctl/pkg/storage"
)

const (
	// Version is the current version of adminctl
	Version = "1.0.0"
)

// GlobalFlags holds the global CLI configuration for adminctl
type GlobalFlags struct {
	ConfigDir string
	Debug     bool
}

// GlobalConfig is the shared flag instance
var GlobalConfig = &GlobalFlags{}

// appConfig is the loaded validation configuration, populated by initConfig.
var appConfig *config.Config

// NewRootCommand creates the root cobra command for adminctl
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adminctl",
		Short: "adminctl - Administrative CLI with validated inputs",
		Long: `adminctl is an administrative command-line tool for user record management.
Every privileged operation (database lookups, CSV import/export, API calls) runs
its inputs through a validation and sanitization layer first, so downstream code
never acts on malformed, out-of-range, or path-escaping data.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize configuration
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			// Setup logging
			if GlobalConfig.Debug {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			} else {
				log.SetOutput(io.Discard)
			}

			return nil
		},
	}

	// Persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&GlobalConfig.ConfigDir, "config-dir", "", "Configuration directory (default: ~/.adminctl)")

	// Add subcommands
	cmd.AddCommand(NewLookupCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewExportCommand())
	cmd.AddCommand(NewImportCommand())
	cmd.AddCommand(NewFetchCommand())
	cmd.AddCommand(NewCredentialCommand())

	return cmd
}

// initConfig initializes the adminctl configuration directory and files
func initConfig() error {
	// Determine config directory
	// Environment variable always takes priority (for testing)
	if envDir := os.Getenv("ADMINCTL_CONFIG_DIR"); envDir != "" {
		GlobalConfig.ConfigDir = envDir
	} else if GlobalConfig.ConfigDir == "" {
		// Use default ~/.adminctl
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		GlobalConfig.ConfigDir = filepath.Join(homeDir, ".adminctl")
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(GlobalConfig.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load or create config file
	configFile := filepath.Join(GlobalConfig.ConfigDir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		cfg := config.Default()
		cfg.ExportRoot = GetExportRoot()
		if err := cfg.Save(configFile); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
		appConfig = cfg
	} else {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cfg.ExportRoot == "" {
			cfg.ExportRoot = GetExportRoot()
		}
		appConfig = cfg
	}

	// Create the configured export root, which may differ from the
	// default <config-dir>/exports.
	if err := os.MkdirAll(appConfig.ExportRoot, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	return nil
}

// GetConfigDir returns the configuration directory path
// Priority order: 1) ADMINCTL_CONFIG_DIR env var (for testing), 2) GlobalConfig.ConfigDir, 3) ~/.adminctl
func GetConfigDir() string {
	// Check environment variable first (for testing)
	if envDir := os.Getenv("ADMINCTL_CONFIG_DIR"); envDir != "" {
		return envDir
	}
	if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory if home dir cannot be determined
			return ".adminctl"
		}
		return filepath.Join(homeDir, ".adminctl")
	}
	return GlobalConfig.ConfigDir
}

// GetExportRoot returns the directory export paths are confined to.
func GetExportRoot() string {
	root, err := filepath.Abs(filepath.Join(GetConfigDir(), "exports"))
	if err != nil {
		return filepath.Join(GetConfigDir(), "exports")
	}
	return root
}

// GetDatabasePath returns the path to the user database.
func GetDatabasePath() string {
	return filepath.Join(GetConfigDir(), "adminctl.db")
}

// getAppConfig returns the loaded configuration, loading it on demand so
// helpers work outside a cobra run (tests call commands directly).
func getAppConfig() (*config.Config, error) {
	if appConfig == nil {
		if err := initConfig(); err != nil {
			return nil, err
		}
	}
	return appConfig, nil
}

// newChecker builds the validation facade from the loaded configuration.
func newChecker() (*checks.Checker, error) {
	cfg, err := getAppConfig()
	if err != nil {
		return nil, err
	}
	return checks.New(cfg)
}

// openRepository opens the user database.
func openRepository() (*storage.SQLiteUserRepository, error) {
	return storage.NewSQLiteUserRepositoryWithPath(GetDatabasePath())
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
