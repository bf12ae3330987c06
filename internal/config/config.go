// Package config provides reading and writing of globfs configuration.
// Supports both global (~/.globfs/config.yaml) and local (.globfs/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Environment variables that override configuration.
const (
	EnvDB   = "GLOBFS_DB"   // snapshot database path
	EnvRoot = "GLOBFS_ROOT" // working directory for relative patterns
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.globfs/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .globfs/config.yaml
	ScopeLocal
)

// Auto leaves a setting to the platform.
const Auto = "auto"

// Glob holds matching options.
type Glob struct {
	CaseSensitive  string   `yaml:"case_sensitive,omitempty"` // true, false or auto
	Platform       string   `yaml:"platform,omitempty"`       // unix, windows or auto
	Exclude        []string `yaml:"exclude,omitempty"`        // directory name patterns
	FailOnIOErrors *bool    `yaml:"fail_on_io_errors,omitempty"`
}

// Snapshot holds snapshot storage options.
type Snapshot struct {
	DB string `yaml:"db,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxPattern *int `yaml:"max_pattern,omitempty"`
}

// DefaultMaxPattern is the pattern length limit applied when not configured.
const DefaultMaxPattern = 4096

// Validation bounds for configuration values.
const (
	MinMaxPattern = 1
	MaxMaxPattern = 65536
)

// Config contains configuration for globfs.
type Config struct {
	Glob     Glob     `yaml:"glob,omitempty"`
	Snapshot Snapshot `yaml:"snapshot,omitempty"`
	Limits   Limits   `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	switch c.Glob.CaseSensitive {
	case "", "true", "false", Auto:
	default:
		return fmt.Errorf("%w: glob.case_sensitive must be true, false or auto, got %q",
			ErrInvalidValue, c.Glob.CaseSensitive)
	}
	switch c.Glob.Platform {
	case "", "unix", "windows", Auto:
	default:
		return fmt.Errorf("%w: glob.platform must be unix, windows or auto, got %q",
			ErrInvalidValue, c.Glob.Platform)
	}
	for _, e := range c.Glob.Exclude {
		if e == "" || strings.ContainsAny(e, `/\`) {
			return fmt.Errorf("%w: glob.exclude entries must be single names, got %q",
				ErrInvalidValue, e)
		}
	}
	if c.Limits.MaxPattern != nil {
		v := *c.Limits.MaxPattern
		if v < MinMaxPattern || v > MaxMaxPattern {
			return fmt.Errorf("%w: max_pattern must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxPattern, MaxMaxPattern, v)
		}
	}
	return nil
}

// CaseSensitive returns the configured case sensitivity, or nil when the
// platform decides.
func (c *Config) CaseSensitive() *bool {
	switch c.Glob.CaseSensitive {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

// Unix returns whether Unix pattern rules are configured, or nil when the
// platform decides.
func (c *Config) Unix() *bool {
	switch c.Glob.Platform {
	case "unix":
		v := true
		return &v
	case "windows":
		v := false
		return &v
	}
	return nil
}

// Exclude returns the directory name patterns pruned from every walk.
func (c *Config) Exclude() []string {
	return c.Glob.Exclude
}

// FailOnIOErrors returns whether unreadable directories abort a match
// (defaults to false).
func (c *Config) FailOnIOErrors() bool {
	if c.Glob.FailOnIOErrors == nil {
		return false
	}
	return *c.Glob.FailOnIOErrors
}

// MaxPattern returns the maximum pattern length in bytes.
func (c *Config) MaxPattern() int {
	if c.Limits.MaxPattern == nil {
		return DefaultMaxPattern
	}
	return *c.Limits.MaxPattern
}

// SnapshotDB returns the snapshot database path. GLOBFS_DB wins over the
// config file; the default lives next to the global config.
func (c *Config) SnapshotDB() string {
	if v := os.Getenv(EnvDB); v != "" {
		return v
	}
	if c.Snapshot.DB != "" {
		return c.Snapshot.DB
	}
	return DefaultSnapshotDB()
}

// DefaultSnapshotDB returns ~/.globfs/snapshots.db, or a file in the
// current directory when the home directory is unknown.
func DefaultSnapshotDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".globfs", "snapshots.db")
	}
	return filepath.Join(home, ".globfs", "snapshots.db")
}

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return filepath.Join(".globfs", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.globfs/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".globfs", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to path, creating parent directories.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
