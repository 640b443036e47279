package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration, read from a YAML file.
type Config struct {
	// Database is the path of the SQLite database file holding the
	// operator tables.
	Database string `yaml:"database"`
}

// loadConfig reads the config file at path. A missing file is not an
// error; defaults are used instead.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{
		Database: "ple.db",
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("config %s: database must not be empty", path)
	}
	return cfg, nil
}
