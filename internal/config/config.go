package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/alexanderramin/vitae/internal/domain"
	"github.com/alexanderramin/vitae/internal/fields"
	"github.com/alexanderramin/vitae/internal/logging"
)

// Environment overrides, applied after the config file.
const (
	EnvConfig        = "VITAE_CONFIG"
	EnvDB            = "VITAE_DB"
	EnvReorderPolicy = "VITAE_REORDER_POLICY"
	EnvLog           = "VITAE_LOG"
	EnvLogFile       = "VITAE_LOG_FILE"
)

// Config holds everything the CLI needs to wire the services.
type Config struct {
	DBPath        string                `toml:"db_path,omitempty"`
	ReorderPolicy fields.ReorderPolicy  `toml:"reorder_policy,omitempty"`
	LogLevel      string                `toml:"log_level,omitempty"`
	LogFile       string                `toml:"log_file,omitempty"`
	Defaults      domain.GlobalSettings `toml:"defaults"`

	// DefaultDocument is used by commands whose document argument is
	// omitted. Set by `vitae doc use`.
	DefaultDocument string `toml:"default_document,omitempty"`

	// Path is the file the config was read from, empty when none existed.
	Path string `toml:"-"`
}

// Dir returns ~/.vitae.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".vitae"), nil
}

// DefaultConfig returns the configuration used when no file is present:
// the database and log file under ~/.vitae, strict reordering and info
// logging.
func DefaultConfig() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		DBPath:        filepath.Join(dir, "vitae.db"),
		ReorderPolicy: fields.ReorderStrict,
		LogLevel:      "info",
		LogFile:       filepath.Join(dir, "vitae.log"),
	}, nil
}

// FilePath returns $VITAE_CONFIG or ~/.vitae/config.toml.
func FilePath() (string, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the TOML file at $VITAE_CONFIG or ~/.vitae/config.toml,
// then applies environment overrides. A missing file is not an error.
func LoadConfig() (Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	path, err := FilePath()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.readFile(path); err != nil {
		return Config{}, err
	}

	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvReorderPolicy); v != "" {
		cfg.ReorderPolicy = fields.ReorderPolicy(v)
	}
	if v := os.Getenv(EnvLog); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.Path = path
	return nil
}

// Validate normalises the reorder policy and checks the log level.
func (c *Config) Validate() error {
	policy, err := fields.ParseReorderPolicy(string(c.ReorderPolicy))
	if err != nil {
		return err
	}
	c.ReorderPolicy = policy
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// UpdateFile applies fn to the config file alone, without defaults or
// environment overrides, and writes it back.
func UpdateFile(fn func(*Config)) error {
	path, err := FilePath()
	if err != nil {
		return err
	}
	var c Config
	if err := c.readFile(path); err != nil {
		return err
	}
	fn(&c)
	return c.Save(path)
}

// Save writes c as TOML to path, creating the directory if needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
