package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Second, cfg.GetCommitDelay())
	assert.Equal(t, 800*time.Millisecond, cfg.GetResetDelay())
	assert.Equal(t, 4, cfg.GetWorkers())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linggen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("selector:\n  commit_delay: 2s\nui:\n  theme: dark\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.GetCommitDelay())
	assert.Equal(t, 800*time.Millisecond, cfg.GetResetDelay())
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "fire", cfg.Card.Border)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("selector: [unclosed"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "linggen.yaml")
	cfg := DefaultConfig()
	cfg.Render.Workers = 9
	cfg.Logging.Categories = map[string]bool{"render": false}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetters_FallBackOnGarbage(t *testing.T) {
	cfg := &Config{Selector: SelectorConfig{CommitDelay: "soon", ResetDelay: "-1s"}}
	assert.Equal(t, time.Second, cfg.GetCommitDelay())
	assert.Equal(t, 800*time.Millisecond, cfg.GetResetDelay())
	assert.Equal(t, 1, cfg.GetWorkers())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad delay", func(c *Config) { c.Selector.CommitDelay = "later" }, "invalid selector delay"},
		{"bad border", func(c *Config) { c.Card.Border = "silver" }, "invalid card border"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "invalid ui theme"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "invalid log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	c := LoggingConfig{}
	assert.True(t, c.IsCategoryEnabled("render"))

	c.Categories = map[string]bool{"render": false}
	assert.False(t, c.IsCategoryEnabled("render"))
	assert.True(t, c.IsCategoryEnabled("selector"))

	lc := c.ForLogging()
	assert.Equal(t, c.Categories, lc.Categories)
}
