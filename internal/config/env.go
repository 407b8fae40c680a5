package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides are the HASHTREND_* variables that take precedence over the file.
type envOverrides struct {
	LogLevel     string `env:"HASHTREND_LOG_LEVEL"`
	LogFormat    string `env:"HASHTREND_LOG_FORMAT"`
	LogFile      string `env:"HASHTREND_LOG_FILE"`
	FolderSuffix string `env:"HASHTREND_FOLDER_SUFFIX"`
	DatePattern  string `env:"HASHTREND_DATE_PATTERN"`
	DPI          int    `env:"HASHTREND_DPI"`
	MaxLabels    int    `env:"HASHTREND_MAX_LABELS"`
	EmptyPolicy  string `env:"HASHTREND_EMPTY_POLICY"`
	ReportLocale string `env:"HASHTREND_REPORT_LOCALE"`
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.LogFile != "" {
		c.Logging.File = o.LogFile
	}
	if o.FolderSuffix != "" {
		c.Input.FolderSuffix = o.FolderSuffix
	}
	if o.DatePattern != "" {
		c.Input.DatePattern = o.DatePattern
	}
	if o.DPI > 0 {
		c.Plot.DPI = o.DPI
	}
	if o.MaxLabels > 0 {
		c.Plot.MaxLabels = o.MaxLabels
	}
	if o.EmptyPolicy != "" {
		c.EmptyPolicy = o.EmptyPolicy
	}
	if o.ReportLocale != "" {
		c.Report.Locale = o.ReportLocale
	}
	return nil
}
