package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all linggen configuration.
type Config struct {
	// Selector timing for the aptitude test
	Selector SelectorConfig `yaml:"selector"`

	// Scene output
	Render RenderConfig `yaml:"render"`

	// Defaults for newly created cards
	Card CardConfig `yaml:"card"`

	// Interactive UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SelectorConfig configures the test-run phase delays.
type SelectorConfig struct {
	CommitDelay string `yaml:"commit_delay"` // Testing -> Complete
	ResetDelay  string `yaml:"reset_delay"`  // Complete -> Idle
}

// RenderConfig configures SVG output.
type RenderConfig struct {
	OutputDir string `yaml:"output_dir"`
	Workers   int    `yaml:"workers"` // gallery concurrency
}

// CardConfig holds card defaults.
type CardConfig struct {
	Border string `yaml:"border"`
	Gender string `yaml:"gender"`
}

// UIConfig configures the TUI.
type UIConfig struct {
	Theme string `yaml:"theme"` // dark, light, auto
}

const (
	defaultCommitDelay = 1000 * time.Millisecond
	defaultResetDelay  = 800 * time.Millisecond
)

// ValidBorders lists the card border styles.
var ValidBorders = []string{"gold", "wood", "water", "fire", "earth"}

// ValidThemes lists the UI themes.
var ValidThemes = []string{"auto", "dark", "light"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Selector: SelectorConfig{
			CommitDelay: "1s",
			ResetDelay:  "800ms",
		},
		Render: RenderConfig{
			OutputDir: "emblems",
			Workers:   4,
		},
		Card: CardConfig{
			Border: "fire",
			Gender: "男",
		},
		UI: UIConfig{
			Theme: "auto",
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

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults if the config file doesn't exist
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

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

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LINGGEN_COMMIT_DELAY"); v != "" {
		c.Selector.CommitDelay = v
	}
	if v := os.Getenv("LINGGEN_RESET_DELAY"); v != "" {
		c.Selector.ResetDelay = v
	}
	if v := os.Getenv("LINGGEN_OUTPUT_DIR"); v != "" {
		c.Render.OutputDir = v
	}
	if v := os.Getenv("LINGGEN_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("LINGGEN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// GetCommitDelay returns the Testing -> Complete delay.
func (c *Config) GetCommitDelay() time.Duration {
	return parseDelay(c.Selector.CommitDelay, defaultCommitDelay)
}

// GetResetDelay returns the Complete -> Idle delay.
func (c *Config) GetResetDelay() time.Duration {
	return parseDelay(c.Selector.ResetDelay, defaultResetDelay)
}

// GetWorkers returns the gallery concurrency, at least 1.
func (c *Config) GetWorkers() int {
	if c.Render.Workers < 1 {
		return 1
	}
	return c.Render.Workers
}

func parseDelay(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	for _, s := range []string{c.Selector.CommitDelay, c.Selector.ResetDelay} {
		if s == "" {
			continue
		}
		if d, err := time.ParseDuration(s); err != nil || d < 0 {
			return fmt.Errorf("invalid selector delay: %q", s)
		}
	}
	if !contains(ValidBorders, c.Card.Border) {
		return fmt.Errorf("invalid card border: %s (valid: %v)", c.Card.Border, ValidBorders)
	}
	if !contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (valid: json, console)", c.Logging.Format)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
