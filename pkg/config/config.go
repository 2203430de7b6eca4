// Package config loads and persists the adminctl configuration file.
//
// The configuration binds the generic validators to concrete settings:
// the export root, per-operation CSV header requirements, per-call-site
// API field requirements, and the delay ceiling. It lives in
// ~/.adminctl/config.yaml and is created with defaults on first run.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the validation settings consumed by the checks facade.
type Config struct {
	Version    string `yaml:"version"`
	ExportRoot string `yaml:"export_root"`
	MaxDelayMs int    `yaml:"max_delay_ms"`
	APIBaseURL string `yaml:"api_base_url"`

	// APISchemaPath optionally points at a JSON Schema file; when set,
	// API responses are schema-validated in addition to shape-checked.
	APISchemaPath string `yaml:"api_schema,omitempty"`

	// RequiredCSVHeaders maps operation name (import, export) to the
	// header columns that operation requires.
	RequiredCSVHeaders map[string][]string `yaml:"required_csv_headers"`

	// RequiredAPIFields maps API call site to the dotted field paths a
	// response must carry before it is trusted.
	RequiredAPIFields map[string][]string `yaml:"required_api_fields"`
}

// Default returns the configuration written on first run. The export
// root is left empty here; the CLI fills it in with a directory under
// the config dir once that is known.
func Default() *Config {
	return &Config{
		Version:    "1.0",
		MaxDelayMs: 600000,
		APIBaseURL: "http://localhost:8080",
		RequiredCSVHeaders: map[string][]string{
			"import": {"id", "email", "name", "role", "created_at"},
			"export": {"id", "email", "name", "role", "created_at"},
		},
		RequiredAPIFields: map[string][]string{
			"fetch_user": {"data.user.id", "data.user.email"},
		},
	}
}

// Load reads a configuration file, filling any unset section from the
// defaults so older config files keep working after new settings appear.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	def := Default()
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.MaxDelayMs == 0 {
		cfg.MaxDelayMs = def.MaxDelayMs
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = def.APIBaseURL
	}
	if cfg.RequiredCSVHeaders == nil {
		cfg.RequiredCSVHeaders = def.RequiredCSVHeaders
	}
	if cfg.RequiredAPIFields == nil {
		cfg.RequiredAPIFields = def.RequiredAPIFields
	}

	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CSVHeaders returns the required header set for an operation, nil when
// none is configured.
func (c *Config) CSVHeaders(operation string) []string {
	return c.RequiredCSVHeaders[operation]
}

// APIFields returns the required field paths for a call site, nil when
// none is configured.
func (c *Config) APIFields(callSite string) []string {
	return c.RequiredAPIFields[callSite]
}
