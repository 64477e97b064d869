// Package config holds the runtime settings shared by the CLI commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "turing.yaml"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds every setting of the turing CLI.
type Config struct {
	// Machines is the directory holding machine definitions.
	Machines string `yaml:"machines"`
	// MaxSteps is the default step bound of every run.
	MaxSteps int `yaml:"max_steps"`
	// Placeholder is the blank placeholder of definitions that declare none.
	Placeholder string    `yaml:"placeholder"`
	Log         LogConfig `yaml:"log"`
	Store       Store     `yaml:"store"`
	HTTP        HTTP      `yaml:"http"`
	// Concurrency bounds batch runs.
	Concurrency int `yaml:"concurrency"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Store selects and configures the run record backend.
type Store struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	Redis   struct {
		Addr   string `yaml:"addr"`
		Prefix string `yaml:"prefix"`
		TTL    string `yaml:"ttl"`
	} `yaml:"redis"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
}

type HTTP struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	c := Config{
		Machines:    "machines",
		MaxSteps:    500,
		Placeholder: "β",
		Log:         LogConfig{Level: "info"},
		HTTP:        HTTP{Addr: ":8080"},
		Concurrency: 4,
	}
	c.Store.Backend = StoreFile
	c.Store.Dir = ".turing/runs"
	c.Store.Redis.Addr = "localhost:6379"
	c.Store.Redis.Prefix = "turing:run:"
	c.Store.SQLite.Path = ".turing/runs.db"
	return c
}

// Load reads path on top of the defaults. A missing DefaultFile is not an error;
// any other missing path is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultFile {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	var errs []error
	if c.MaxSteps < 1 {
		errs = append(errs, fmt.Errorf("max_steps must be positive, got %d", c.MaxSteps))
	}
	if utf8.RuneCountInString(c.Placeholder) > 1 {
		errs = append(errs, fmt.Errorf("placeholder must be a single character, got %q", c.Placeholder))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	switch c.Store.Backend {
	case StoreMemory, StoreFile, StoreRedis, StoreSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}
	return errors.Join(errs...)
}
