// Package config loads breakeven configuration and builds session settings.
//
// Configuration comes from, in increasing precedence: built-in defaults, the
// user config file ($BREAKEVEN_HOME/config.yaml), a project-local
// .breakeven/config.yaml, environment variables, and finally CLI flags which
// the cli package applies.
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

// Output format names.
const (
	OutputTable  = "table"
	OutputJSON   = "json"
	OutputNDJSON = "ndjson"
)

const (
	outputTypeFile   = "file"
	defaultPrecision = 2
	configFileName   = "config.yaml"
	configDirName    = ".breakeven"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
	configFilePerm   = 0o600
	configDirPerm    = 0o700
)

// Config is the full breakeven configuration.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Regions  RegionTable    `yaml:"regions,omitempty"`

	// loadedFrom lists the files merged into this config, in order.
	loadedFrom []string
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// DefaultsConfig selects the session defaults.
type DefaultsConfig struct {
	Currency Currency `yaml:"currency"`
}

// Default returns a Config holding only built-in values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: OutputTable,
			Precision:     defaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Defaults: DefaultsConfig{Currency: DefaultCurrency},
	}
}

// New builds a Config from the user config file and the environment.
// A missing or unreadable config file leaves the built-in defaults in place.
func New() *Config {
	cfg := Default()
	if path, err := FilePath(); err == nil {
		_ = cfg.mergeFile(path)
	}
	cfg.applyEnv()
	return cfg
}

// Load builds a Config from an explicit file. Unlike New, a missing or
// malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	if err := ShallowMergeYAML(c, path); err != nil {
		return err
	}
	c.loadedFrom = append(c.loadedFrom, path)
	return nil
}

// applyEnv applies BREAKEVEN_* environment overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("BREAKEVEN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("BREAKEVEN_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("BREAKEVEN_OUTPUT"); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv("BREAKEVEN_CURRENCY"); v != "" {
		c.Defaults.Currency = Currency(strings.ToUpper(v))
	}
}

// Validate checks the config for values the CLI cannot act on.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case OutputTable, OutputJSON, OutputNDJSON:
	default:
		return fmt.Errorf("output.default_format must be one of table, json, ndjson, got %q", c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 {
		return fmt.Errorf("output.precision must be >= 0, got %d", c.Output.Precision)
	}
	if _, err := c.RegionTable().Lookup(c.Defaults.Currency); err != nil {
		return fmt.Errorf("defaults.currency: %w", err)
	}
	return nil
}

// RegionTable returns the built-in region defaults with config overrides applied.
func (c *Config) RegionTable() RegionTable {
	return MergeRegions(c.Regions)
}

// LoadedFrom returns the config files merged into c.
func (c *Config) LoadedFrom() []string {
	return append([]string(nil), c.loadedFrom...)
}

// Save writes c as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// FilePath returns the user config file path.
func FilePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Exists reports whether a regular file exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
