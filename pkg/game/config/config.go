// Package config reads runtime configuration from the environment. Flags in
// main override whatever is set here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Renderers.
const (
	RendererTUI    = "tui"
	RendererEbiten = "ebiten"
)

// Config is the process configuration.
type Config struct {
	Variant  string `env:"WINTERCARD_VARIANT" envDefault:"terminal"`
	Store    string `env:"WINTERCARD_STORE" envDefault:"file"`
	DataDir  string `env:"WINTERCARD_DATA_DIR"`
	Lang     string `env:"WINTERCARD_LANG" envDefault:"en_GB"`
	Renderer string `env:"WINTERCARD_RENDERER" envDefault:"tui"`
	Mute     bool   `env:"WINTERCARD_MUTE"`
}

// Load parses the environment and fills in the data directory.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	return c, nil
}

// DefaultDataDir is the per-user directory progress is kept in.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "wintercard")
	}
	return filepath.Join(dir, "wintercard")
}

// Validate checks the enumerated settings.
func (c Config) Validate(variants []string) error {
	if !slices.Contains(variants, c.Variant) {
		return fmt.Errorf("unknown variant %q (have %v)", c.Variant, variants)
	}
	switch c.Store {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	switch c.Renderer {
	case RendererTUI, RendererEbiten:
	default:
		return fmt.Errorf("unknown renderer %q", c.Renderer)
	}
	return nil
}
