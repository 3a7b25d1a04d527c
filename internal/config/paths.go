package config

import (
	"os"
	"path/filepath"
)

// FileName is the project-local config file looked up by DefaultPath.
const FileName = "linggen.yaml"

// DefaultPath resolves the config file to use: $LINGGEN_CONFIG if set, else
// the nearest linggen.yaml in the working directory or its parents, else
// linggen/config.yaml under the user config directory. The returned file
// need not exist; Load falls back to defaults.
func DefaultPath() string {
	if v := os.Getenv("LINGGEN_CONFIG"); v != "" {
		return v
	}
	if dir, err := os.Getwd(); err == nil {
		if p, ok := FindUp(dir, FileName); ok {
			return p
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "linggen", "config.yaml")
	}
	return FileName
}

// FindUp walks from dir toward the filesystem root looking for name.
func FindUp(dir, name string) (string, bool) {
	for {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
