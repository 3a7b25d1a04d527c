// Package logging provides categorized zap loggers for linggen.
// Until Install is called every category logs to a no-op core, so library
// code can log unconditionally.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // CLI startup, config loading
	CategorySelector Category = "selector" // Test-run state machine
	CategoryRender   Category = "render"   // Scene building and SVG output
	CategoryCard     Category = "card"     // Card composition and files
	CategoryWatch    Category = "watch"    // Card file watcher
	CategoryUI       Category = "ui"       // Interactive test TUI
)

// Config mirrors the logging section of config.Config to avoid an import cycle.
type Config struct {
	Level      string
	Format     string
	DebugMode  bool
	Categories map[string]bool
}

var (
	mu         sync.RWMutex
	base       = zap.NewNop()
	categories map[string]bool
	loggers    = make(map[Category]*zap.Logger)
)

// Build constructs a production zap logger from cfg. verbose forces debug level.
func Build(cfg Config, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Format != "json" {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	if verbose || cfg.DebugMode {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Install makes logger the base for every category. A nil logger restores the
// no-op default. enabled toggles individual categories; categories not listed
// stay enabled.
func Install(logger *zap.Logger, enabled map[string]bool) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = zap.NewNop()
	}
	base = logger
	categories = enabled
	loggers = make(map[Category]*zap.Logger)
}

// Get returns the logger for a category.
func Get(cat Category) *zap.Logger {
	mu.RLock()
	l, ok := loggers[cat]
	mu.RUnlock()
	if ok {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[cat]; ok {
		return l
	}
	if on, listed := categories[string(cat)]; listed && !on {
		l = zap.NewNop()
	} else {
		l = base.With(zap.String("category", string(cat)))
	}
	loggers[cat] = l
	return l
}

// Sync flushes the base logger.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}

// Selector is shorthand for Get(CategorySelector).Sugar().Debugf.
func Selector(format string, args ...interface{}) {
	Get(CategorySelector).Sugar().Debugf(format, args...)
}

// Render is shorthand for Get(CategoryRender).Sugar().Debugf.
func Render(format string, args ...interface{}) {
	Get(CategoryRender).Sugar().Debugf(format, args...)
}
