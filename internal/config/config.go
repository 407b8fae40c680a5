package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".hashtrend.yaml"

// Config holds all hashtrend configuration.
type Config struct {
	Name string `yaml:"name"`

	// Snapshot discovery
	Input InputConfig `yaml:"input"`

	// Chart rendering
	Plot PlotConfig `yaml:"plot"`

	// What to do when a run produces nothing to plot: warn, error, silent
	EmptyPolicy string `yaml:"empty_policy"`

	// Terminal report of extracted data
	Report ReportConfig `yaml:"report"`

	// Folder watch mode
	Watch WatchConfig `yaml:"watch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig configures how snapshot files are found and dated.
type InputConfig struct {
	FolderSuffix string `yaml:"folder_suffix"`
	DatePattern  string `yaml:"date_pattern"` // generic, geotwitter; empty = implied by discovery
}

// PlotConfig configures the PNG line chart.
type PlotConfig struct {
	Title        string  `yaml:"title"`
	XLabel       string  `yaml:"x_label"`
	YLabel       string  `yaml:"y_label"`
	WidthInches  float64 `yaml:"width_inches"`
	HeightInches float64 `yaml:"height_inches"`
	DPI          int     `yaml:"dpi"`
	MaxLabels    int     `yaml:"max_labels"` // x-axis label budget
	FolderOutput string  `yaml:"folder_output"`
}

// ReportConfig configures the terminal tables.
type ReportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Locale  string `yaml:"locale"`
}

// WatchConfig configures folder watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// ValidEmptyPolicies lists the accepted empty_policy values.
var ValidEmptyPolicies = []string{"warn", "error", "silent"}

// ValidLogFormats lists the accepted logging.format values.
var ValidLogFormats = []string{"console", "json"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name: "hashtrend",

		Input: InputConfig{
			FolderSuffix: ".lang",
		},

		Plot: PlotConfig{
			Title:        "Hashtag Frequency Over Time",
			XLabel:       "Date",
			YLabel:       "Number of Tweets",
			WidthInches:  12,
			HeightInches: 6,
			DPI:          300,
			MaxLabels:    20,
			FolderOutput: "trend_plot.png",
		},

		EmptyPolicy: "warn",

		Report: ReportConfig{
			Enabled: true,
			Locale:  "en",
		},

		Watch: WatchConfig{
			Debounce: "500ms",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetDebounce returns the watch debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidEmptyPolicies, c.EmptyPolicy) {
		return fmt.Errorf("invalid empty_policy: %q (valid: %v)", c.EmptyPolicy, ValidEmptyPolicies)
	}
	if c.Plot.DPI <= 0 {
		return fmt.Errorf("plot.dpi must be positive, got %d", c.Plot.DPI)
	}
	if c.Plot.WidthInches <= 0 || c.Plot.HeightInches <= 0 {
		return fmt.Errorf("plot size must be positive, got %gx%g", c.Plot.WidthInches, c.Plot.HeightInches)
	}
	if c.Plot.MaxLabels <= 0 {
		return fmt.Errorf("plot.max_labels must be positive, got %d", c.Plot.MaxLabels)
	}
	if c.Input.FolderSuffix == "" {
		return fmt.Errorf("input.folder_suffix must not be empty")
	}
	switch c.Input.DatePattern {
	case "", "generic", "geotwitter":
	default:
		return fmt.Errorf("invalid input.date_pattern: %q (valid: generic, geotwitter)", c.Input.DatePattern)
	}
	if c.Logging.Format != "" && !slices.Contains(ValidLogFormats, c.Logging.Format) {
		return fmt.Errorf("invalid logging.format: %q (valid: %v)", c.Logging.Format, ValidLogFormats)
	}
	return nil
}
