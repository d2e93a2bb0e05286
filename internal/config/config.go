// Package config loads ~/.config/dayrail/config.yaml.
//
// The file holds process-level settings only (where the ledger lives, logging).
// Domain settings such as the day type are kept by the storage provider.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dayrail/internal/constants"
	"github.com/julianstephens/dayrail/internal/logger"
	"github.com/julianstephens/dayrail/internal/storage/postgres"
	"github.com/julianstephens/dayrail/internal/utils"
)

const defaultConfigYAML = `# dayrail configuration

# SQLite file path, a PostgreSQL URL without a password, or "keyring" to
# use the connection string stored with: dayrail config set-connection
database: ~/.config/dayrail/dayrail.db

# IANA timezone used to decide "today" and the current schedule slot.
timezone: Local

debug: false
log_dir: ~/.config/dayrail/logs
# text or json
log_format: text
`

// Config models config.yaml
type Config struct {
	Database  string `yaml:"database"`
	Timezone  string `yaml:"timezone"`
	Debug     bool   `yaml:"debug"`
	LogDir    string `yaml:"log_dir"`
	LogFormat string `yaml:"log_format"`

	path string
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Database:  constants.DefaultConfigPath,
		Timezone:  constants.DefaultTimezone,
		LogDir:    filepath.Join(constants.DefaultConfigDir, "logs"),
		LogFormat: logger.FormatText,
	}
}

// DefaultPath returns the expanded location of config.yaml
func DefaultPath() string {
	return ExpandPath(filepath.Join(constants.DefaultConfigDir, constants.ConfigFileName))
}

// Load reads the file at path, falling back to defaults when it is missing,
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = ExpandPath(path)

	data, err := os.ReadFile(cfg.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", cfg.path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", cfg.path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); v != "" {
		c.Database = v
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvTimezone)); v != "" {
		c.Timezone = v
	}
}

func (c *Config) applyDefaults() {
	def := Default()
	c.Database = strings.TrimSpace(c.Database)
	if c.Database == "" {
		c.Database = def.Database
	}
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if strings.TrimSpace(c.LogDir) == "" {
		c.LogDir = def.LogDir
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat == "" {
		c.LogFormat = def.LogFormat
	}
}

// Validate checks the timezone. Connection strings read from the file must
// not carry a password; the env override is exempt since it never touches disk.
func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if c.LogFormat != logger.FormatText && c.LogFormat != logger.FormatJSON {
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	if postgres.IsConnString(c.Database) && os.Getenv(constants.EnvDBConnection) == "" {
		if err := postgres.ValidateConnString(c.Database); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	return nil
}

// Path returns the file this config was loaded from
func (c *Config) Path() string {
	return c.path
}

// UsesKeyring reports whether the connection string lives in the OS keyring
func (c *Config) UsesKeyring() bool {
	return c.Database == constants.KeyringDatabase
}

// DatabasePath returns Database with ~ expanded for file-backed stores
func (c *Config) DatabasePath() string {
	if postgres.IsConnString(c.Database) || c.UsesKeyring() {
		return c.Database
	}
	return ExpandPath(c.Database)
}

// LogPath returns LogDir with ~ expanded
func (c *Config) LogPath() string {
	return ExpandPath(c.LogDir)
}

// Save writes the config back to its path
func (c *Config) Save() error {
	if c.path == "" {
		c.path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", c.path, err)
	}
	return nil
}

// EnsureFile writes the commented default file at path when none exists.
// It reports whether a file was created.
func EnsureFile(path string) (bool, error) {
	path = ExpandPath(path)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return false, fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0600); err != nil {
		return false, fmt.Errorf("config: write %s: %w", path, err)
	}
	return true, nil
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
