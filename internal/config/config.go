// Package config loads CLI and server settings from a JSON or YAML file and
// authentication settings from the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats for the render command.
const (
	FormatTree = "tree"
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// DefaultAddr is the server listen address when none is configured.
const DefaultAddr = ":8080"

// Config is the optional configuration file. Every field may be omitted;
// CLI flags override whatever is set here.
type Config struct {
	// Rendering
	Template  string `json:"template,omitempty" yaml:"template,omitempty"`     // Template id; unknown ids fall back to the default
	Format    string `json:"format,omitempty" yaml:"format,omitempty"`         // tree, html or pdf
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"` // Where render writes files

	// Server
	Addr           string   `json:"addr,omitempty" yaml:"addr,omitempty"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
	DraftDir       string   `json:"draft_dir,omitempty" yaml:"draft_dir,omitempty"` // File-backed drafts when no database is configured

	// Collaborators
	APIKey         string `json:"api_key,omitempty" yaml:"api_key,omitempty"` // Gemini API key
	DatabaseURL    string `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	ChromePath     string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	CaptureTimeout int    `json:"capture_timeout_seconds,omitempty" yaml:"capture_timeout_seconds,omitempty"`

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// LoadConfig reads a configuration file. Files ending in .yaml or .yml are
// parsed as YAML, anything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks value ranges. Required values are checked by the commands
// after merging with flags.
func (c *Config) Validate() error {
	switch c.Format {
	case "", FormatTree, FormatHTML, FormatPDF:
	default:
		return fmt.Errorf("config error: 'format' must be one of tree, html, pdf; got %q", c.Format)
	}

	if c.CaptureTimeout < 0 {
		return fmt.Errorf("config error: 'capture_timeout_seconds' must be non-negative")
	}

	if c.OutputDir != "" {
		if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: output_dir is not a directory: %s", c.OutputDir)
		}
	}

	for _, origin := range c.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("config error: invalid allowed origin %q", origin)
		}
	}

	return nil
}

// MergeWithDefaults returns a copy of c with empty fields taken from defaults.
// Booleans are not merged because unset and false look the same.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = append([]string(nil), defaults.AllowedOrigins...)
	}
	if result.DraftDir == "" {
		result.DraftDir = defaults.DraftDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.CaptureTimeout == 0 {
		result.CaptureTimeout = defaults.CaptureTimeout
	}

	return result
}

// FromEnv returns the settings that have an environment variable.
func FromEnv() Config {
	cfg := Config{
		Addr:        os.Getenv("ADDR"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ChromePath:  os.Getenv("CHROME_PATH"),
		DraftDir:    os.Getenv("DRAFT_DIR"),
	}
	if port := os.Getenv("PORT"); cfg.Addr == "" && port != "" {
		cfg.Addr = ":" + port
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	return cfg
}
