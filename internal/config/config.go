package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/catalogetl/catalogetl/internal/logging"
)

// FileName is the config file looked up in the working directory.
const FileName = "catalogetl.yaml"

// Environment variables that override file settings.
const (
	EnvInput     = "CATALOGETL_INPUT"
	EnvOutput    = "CATALOGETL_OUTPUT"
	EnvLogLevel  = "CATALOGETL_LOG_LEVEL"
	EnvLogFormat = "CATALOGETL_LOG_FORMAT"
	EnvRunLog    = "CATALOGETL_RUN_LOG"
)

// Config represents the top-level catalogetl.yaml configuration.
type Config struct {
	Input   string        `yaml:"input"`
	Output  string        `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	RunLog  RunLogConfig  `yaml:"run_log"`
}

// LoggingConfig controls the structured log written to stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// RunLogConfig controls the per-run CSV audit log.
type RunLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads a catalogetl.yaml file from disk. Fields missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the conventional data/ layout.
func Default() *Config {
	return &Config{
		Input:  filepath.Join("data", "products.csv"),
		Output: filepath.Join("data", "transformed_products.csv"),
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		RunLog: RunLogConfig{
			Enabled: false,
			Path:    filepath.Join("logs", "run-log.csv"),
		},
	}
}

// Resolve builds the effective config: defaults, then the YAML file, then a
// .env file, then the environment. An explicit path must exist; otherwise
// FileName is used when present in the working directory.
func Resolve(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if loaded, err := Load(FileName); err == nil {
		cfg = loaded
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file without overriding variables
// already set in the environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// ApplyEnv overrides fields from CATALOGETL_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvInput); v != "" {
		c.Input = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvRunLog); v != "" {
		c.RunLog.Enabled = true
		c.RunLog.Path = v
	}
}

// Validate checks the paths and logging settings.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input path is required")
	}
	if c.Output == "" {
		return errors.New("output path is required")
	}
	if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return fmt.Errorf("input and output are the same file: %s", c.Input)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	if c.RunLog.Enabled && c.RunLog.Path == "" {
		return errors.New("run log is enabled but has no path")
	}
	return nil
}
