// Package config loads and saves the pdfshelf TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Config is the complete configuration file.
type Config struct {
	Platform PlatformConfig `toml:"platform" yaml:"platform"`
	Paths    PathsConfig    `toml:"paths" yaml:"paths"`
	Store    StoreConfig    `toml:"store" yaml:"store"`
	Remote   RemoteConfig   `toml:"remote" yaml:"remote"`
	Display  DisplayConfig  `toml:"display" yaml:"display"`
	Share    ShareConfig    `toml:"share" yaml:"share"`
	Watch    WatchConfig    `toml:"watch" yaml:"watch"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

// PlatformConfig selects the discovery root policy.
type PlatformConfig struct {
	// Mode is "directory" (scan a chosen folder) or "sandbox" (scan the
	// app's own documents and cache areas).
	Mode string `toml:"mode" yaml:"mode"`
}

// PathsConfig locates application data.
type PathsConfig struct {
	DataDir string `toml:"data_dir" yaml:"data_dir"`
}

// StoreConfig selects the selection store backend.
type StoreConfig struct {
	Backend string `toml:"backend" yaml:"backend"`
}

// RemoteConfig configures the S3-compatible store behind s3:// roots.
type RemoteConfig struct {
	Endpoint  string `toml:"endpoint" yaml:"endpoint"`
	Region    string `toml:"region" yaml:"region"`
	AccessKey string `toml:"access_key" yaml:"access_key"`
	SecretKey string `toml:"secret_key" yaml:"secret_key"`
}

// DisplayConfig controls list presentation.
type DisplayConfig struct {
	Locale string `toml:"locale" yaml:"locale"`
	Sort   string `toml:"sort" yaml:"sort"`
}

// ShareConfig overrides the program used to open and share files.
type ShareConfig struct {
	Command string `toml:"command" yaml:"command"`
}

// WatchConfig controls automatic rescans.
type WatchConfig struct {
	Enabled     bool   `toml:"enabled" yaml:"enabled"`
	MinInterval string `toml:"min_interval" yaml:"min_interval"`
}

// LogConfig controls the optional log file.
type LogConfig struct {
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Platform: PlatformConfig{Mode: string(domain.PlatformDirectory)},
		Paths:    PathsConfig{DataDir: "~/.pdfshelf"},
		Store:    StoreConfig{Backend: BackendSQLite},
		Display:  DisplayConfig{Locale: "en", Sort: domain.DefaultSort.String()},
		Watch:    WatchConfig{MinInterval: "2s"},
	}
}

// DefaultPath returns ~/.pdfshelf/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".pdfshelf", "config.toml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
// If path is empty, DefaultPath is used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory with owner-only access.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks every enumerated and parsed field.
func (c Config) Validate() error {
	var errs []error

	if _, err := domain.ParsePlatformMode(c.Platform.Mode); err != nil {
		errs = append(errs, fmt.Errorf("platform.mode: %w", err))
	}
	switch c.Store.Backend {
	case BackendSQLite, BackendBolt, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("store.backend: %w: %q", domain.ErrInvalidInput, c.Store.Backend))
	}
	if _, err := domain.ParseSortSpec(c.Display.Sort); err != nil {
		errs = append(errs, fmt.Errorf("display.sort: %w", err))
	}
	if _, err := language.Parse(c.Display.Locale); err != nil {
		errs = append(errs, fmt.Errorf("display.locale: %w: %q", domain.ErrInvalidInput, c.Display.Locale))
	}
	if c.Watch.MinInterval != "" {
		if d, err := time.ParseDuration(c.Watch.MinInterval); err != nil || d < 0 {
			errs = append(errs, fmt.Errorf("watch.min_interval: %w: %q", domain.ErrInvalidInput, c.Watch.MinInterval))
		}
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		errs = append(errs, fmt.Errorf("paths.data_dir: %w: empty", domain.ErrInvalidInput))
	}

	return errors.Join(errs...)
}

// PlatformMode returns the parsed platform mode.
func (c Config) PlatformMode() domain.PlatformMode {
	mode, err := domain.ParsePlatformMode(c.Platform.Mode)
	if err != nil {
		return domain.PlatformDirectory
	}
	return mode
}

// SortSpec returns the parsed default sort.
func (c Config) SortSpec() domain.SortSpec {
	spec, err := domain.ParseSortSpec(c.Display.Sort)
	if err != nil {
		return domain.DefaultSort
	}
	return spec
}

// WatchInterval returns the parsed minimum interval between rescans.
func (c Config) WatchInterval() time.Duration {
	d, err := time.ParseDuration(c.Watch.MinInterval)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

// DataDir returns paths.data_dir with a leading ~ expanded.
func (c Config) DataDir() (string, error) {
	return ExpandHome(c.Paths.DataDir)
}

// LogFile returns log.file with a leading ~ expanded, or "".
func (c Config) LogFile() (string, error) {
	if c.Log.File == "" {
		return "", nil
	}
	return ExpandHome(c.Log.File)
}

// HasRemote reports whether an object store endpoint or credentials are set.
func (c Config) HasRemote() bool {
	return c.Remote.Endpoint != "" || c.Remote.AccessKey != ""
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Remote.SecretKey != "" {
		c.Remote.SecretKey = "********"
	}
	return c
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
