// Package logging provides config-driven categorized logging for hashtrend.
// A single zap logger is built at startup; each pipeline stage logs through a
// named child so output can be filtered per category in the config file.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"hashtrend/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup, config resolution
	CategoryDiscovery Category = "discovery" // Input path and folder resolution
	CategoryExtract   Category = "extract"   // Filename date extraction
	CategoryLoad      Category = "load"      // Snapshot file reads and parsing
	CategoryAggregate Category = "aggregate" // Table ingestion
	CategoryExport    Category = "export"    // Axis and series export
	CategoryRender    Category = "render"    // Chart rendering
	CategoryWatch     Category = "watch"     // Folder watch mode
)

var (
	mu         sync.RWMutex
	base       = zap.NewNop()
	categories map[string]bool
)

// New builds a zap logger from cfg. verbose forces debug level.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		lvl, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = lvl
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case "", "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zc.DisableStacktrace = true
		zc.Sampling = nil
	case "json":
		zc.Encoding = "json"
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	zc.OutputPaths = []string{"stderr"}
	if cfg.File != "" {
		zc.OutputPaths = append(zc.OutputPaths, cfg.File)
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Initialize builds the process logger and installs it for Get.
func Initialize(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	logger, err := New(cfg, verbose)
	if err != nil {
		return nil, err
	}
	Set(logger, cfg.Categories)
	return logger, nil
}

// Set installs logger as the base for every category. A nil logger
// installs a no-op logger.
func Set(logger *zap.Logger, enabled map[string]bool) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mu.Lock()
	defer mu.Unlock()
	base = logger
	categories = enabled
}

// IsCategoryEnabled returns whether a specific category is enabled.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	lc := config.LoggingConfig{Categories: categories}
	return lc.IsCategoryEnabled(string(category))
}

// Get returns the logger for category, or a no-op logger if it is disabled.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
	}
	mu.RLock()
	defer mu.RUnlock()
	return base.Named(string(category))
}

// Sync flushes the base logger.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}
