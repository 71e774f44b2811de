package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dir is the per-project directory holding config, data and logs.
const Dir = ".checklist"

// FileName is the config file inside Dir.
const FileName = "config.yaml"

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the on-disk configuration. Every field has a default.
type Config struct {
	Storage Storage `yaml:"storage"`
	UI      UI      `yaml:"ui"`
	Log     Log     `yaml:"log"`
}

// Storage selects the durable slot.
type Storage struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"` // empty: <Dir>/checklist.{json,db}
}

// UI tunes the CLI and TUI rendering.
type UI struct {
	Theme string `yaml:"theme"` // classic | neon | mono
	Color string `yaml:"color"` // auto | always | never
}

// Log configures the zap logger.
type Log struct {
	Level  string `yaml:"level"`  // debug | info | warn | error | off
	Output string `yaml:"output"` // stderr or a file path
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: Storage{Backend: BackendJSON},
		UI:      UI{Theme: "classic", Color: "auto"},
		Log:     Log{Level: "error", Output: "stderr"},
	}
}

// DefaultPath is the config file under baseDir.
func DefaultPath(baseDir string) string {
	return filepath.Join(baseDir, Dir, FileName)
}

// Load reads the YAML config at path over the defaults. A missing file
// is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// fill restores defaults for fields a partial file left empty.
func (c *Config) fill() {
	d := Default()
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.Color == "" {
		c.UI.Color = d.UI.Color
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Output == "" {
		c.Log.Output = d.Log.Output
	}
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
}

// Validate rejects unknown enum values.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.UI.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode %q", c.UI.Color)
	}
	return nil
}

// DataPath resolves the storage path for the configured backend.
func (c Config) DataPath(baseDir string) string {
	if c.Storage.Path != "" {
		if filepath.IsAbs(c.Storage.Path) {
			return c.Storage.Path
		}
		return filepath.Join(baseDir, c.Storage.Path)
	}
	name := "checklist.json"
	if c.Storage.Backend == BackendSQLite {
		name = "checklist.db"
	}
	return filepath.Join(baseDir, Dir, name)
}
