// Package config loads snapdiff settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Algorithm names.
const (
	AlgorithmIndexed = "indexed"
	AlgorithmMyers   = "myers"
)

// Notebook handling modes.
const (
	NotebooksNormalize = "normalize"
	NotebooksIdentity  = "identity"
)

// Output formats.
const (
	FormatPatch = "patch"
	FormatColor = "color"
	FormatJSONL = "jsonl"
)

// DefaultMaxFileSize is the size above which files are not line diffed.
const DefaultMaxFileSize = 1 << 20

// Config holds all user-tunable settings.
type Config struct {
	Workspace   string   `yaml:"workspace"`
	SnapshotDir string   `yaml:"snapshot_dir"`
	Ignore      []string `yaml:"ignore"`
	MaxFileSize int64    `yaml:"max_file_size"`
	Concurrency int      `yaml:"concurrency"`
	Algorithm   string   `yaml:"algorithm"`
	Notebooks   string   `yaml:"notebooks"`
	Format      string   `yaml:"format"`
	LogLevel    string   `yaml:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Workspace:   ".",
		SnapshotDir: ".snapshots",
		Ignore: []string{
			".git/",
			"node_modules/",
			".venv/",
			"*.pyc",
			".DS_Store",
		},
		MaxFileSize: DefaultMaxFileSize,
		Concurrency: 1,
		Algorithm:   AlgorithmIndexed,
		Notebooks:   NotebooksNormalize,
		Format:      FormatPatch,
		LogLevel:    "warn",
	}
}

// Load reads the config at path. A missing file yields Default. Keys
// absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}
	if cfg.Ignore == nil {
		cfg.Ignore = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects unknown enum values and out-of-range numbers.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.MaxFileSize < 1 {
		return fmt.Errorf("max_file_size must be positive, got %d", c.MaxFileSize)
	}
	if err := oneOf("algorithm", c.Algorithm, AlgorithmIndexed, AlgorithmMyers); err != nil {
		return err
	}
	if err := oneOf("notebooks", c.Notebooks, NotebooksNormalize, NotebooksIdentity); err != nil {
		return err
	}
	if err := oneOf("format", c.Format, FormatPatch, FormatColor, FormatJSONL); err != nil {
		return err
	}
	return oneOf("log_level", c.LogLevel, "debug", "info", "warn", "error")
}

// Save writes the config as YAML, creating parent directories. An
// existing file is not overwritten.
func (c *Config) Save(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", key, value)
}
