package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/instab/internal/colortag"
	"github.com/raphi011/instab/internal/prefix"
	"github.com/raphi011/instab/internal/storage"
)

// Environment variables that override config file settings.
const (
	EnvCacheDir = "INSTAB_CACHE_DIR"
	EnvDomain   = "INSTAB_DOMAIN"
)

// Config holds the instab configuration
type Config struct {
	CacheDir      string `toml:"cache_dir" json:"cache_dir"`                     // one <prefix>.json per instance
	HistoryFile   string `toml:"history_file" json:"history_file"`               // recently focused instances
	Domain        string `toml:"domain" json:"domain"`                           // home URL is https://{prefix}.{domain}
	DefaultColor  string `toml:"default_color" json:"default_color"`             // color of new instances
	ConfirmDelete *bool  `toml:"confirm_delete" json:"confirm_delete,omitempty"` // nil means true
	Theme         string `toml:"theme" json:"theme"`                             // "default" or "none"
}

// ShouldConfirmDelete reports whether delete asks before removing an instance.
func (c *Config) ShouldConfirmDelete() bool {
	return c.ConfirmDelete == nil || *c.ConfirmDelete
}

// Default returns the default configuration. Paths are left empty when the
// home directory cannot be determined.
func Default() Config {
	cfg := Config{
		Domain:       prefix.DefaultDomain,
		DefaultColor: colortag.Default,
		Theme:        "default",
	}
	if dir, err := storage.HomeDir(); err == nil {
		cfg.CacheDir = filepath.Join(dir, "cache")
		cfg.HistoryFile = filepath.Join(dir, "history.json")
	}
	return cfg
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Path returns ~/.config/instab/config.toml
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "instab", "config.toml"), nil
}

// Load reads the config from Path().
// Returns Default() if the file doesn't exist (no error).
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		return cfg, applyEnvOverrides(&cfg)
	}
	return LoadFile(path)
}

// LoadFile reads the config at path, fills in defaults, applies environment
// overrides and validates the result. If the file cannot be used, Default()
// with environment overrides is returned alongside the error so callers can
// warn and continue.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fallback(fmt.Errorf("failed to read config file: %w", err))
	}
	if err == nil {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return fallback(fmt.Errorf("failed to parse config file: %w", err))
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Default(), err
	}
	if err := cfg.normalize(); err != nil {
		return fallback(err)
	}
	return cfg, nil
}

// fallback returns the defaults with environment overrides applied, plus
// cause. Broken overrides are dropped and reported too.
func fallback(cause error) (Config, error) {
	cfg := Default()
	if err := applyEnvOverrides(&cfg); err != nil {
		return Default(), errors.Join(cause, err)
	}
	if err := cfg.normalize(); err != nil {
		return Default(), errors.Join(cause, err)
	}
	return cfg, cause
}

// applyEnvOverrides applies INSTAB_* environment variables on top of cfg.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvCacheDir); v != "" {
		if err := ValidatePath(v, EnvCacheDir); err != nil {
			return err
		}
		cfg.CacheDir = v
	}
	if v := os.Getenv(EnvDomain); v != "" {
		cfg.Domain = v
	}
	return nil
}

// normalize validates every field and expands ~ in paths.
func (c *Config) normalize() error {
	if err := ValidatePath(c.CacheDir, "cache_dir"); err != nil {
		return err
	}
	if err := ValidatePath(c.HistoryFile, "history_file"); err != nil {
		return err
	}

	var err error
	if c.CacheDir, err = expandPath(c.CacheDir); err != nil {
		return fmt.Errorf("expand cache_dir: %w", err)
	}
	if c.HistoryFile, err = expandPath(c.HistoryFile); err != nil {
		return fmt.Errorf("expand history_file: %w", err)
	}

	if err := validateDomain(c.Domain); err != nil {
		return err
	}
	if c.Domain == "" {
		c.Domain = prefix.DefaultDomain
	}

	color, err := colortag.OrDefault(c.DefaultColor, colortag.Default)
	if err != nil {
		return fmt.Errorf("default_color: %w", err)
	}
	c.DefaultColor = color

	if err := validateEnum(c.Theme, "theme", ValidThemes); err != nil {
		return err
	}
	if c.Theme == "" {
		c.Theme = "default"
	}
	return nil
}

// Encode renders cfg as TOML.
func (c Config) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const defaultConfig = `# instab configuration

# Directory holding one <prefix>.json record per instance
# Must be an absolute path or start with ~
# Overridden by INSTAB_CACHE_DIR
# cache_dir = "~/.instab/cache"

# File recording recently focused instances ("instab open" without a prefix)
# history_file = "~/.instab/history.json"

# Domain appended to the prefix for the home URL: https://{prefix}.{domain}
# Overridden by INSTAB_DOMAIN
domain = "service-now.com"

# Color of new instances ("#rrggbb" or "#rgb")
default_color = "#ffffff"

# Ask before "instab delete" removes an instance and its tabs
confirm_delete = true

# Output colors: "default" or "none"
theme = "default"
`

// Init creates a default config file at Path().
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, InitFile(path, force)
}

// InitFile writes the default config to path.
func InitFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}
	return storage.WriteAtomic(path, []byte(defaultConfig), 0o644)
}

type ctxKey struct{}

// WithConfig attaches cfg to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config attached to ctx, or nil.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	return nil
}
