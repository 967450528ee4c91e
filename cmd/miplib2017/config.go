package main

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/fwojciec/miplib"
	"gopkg.in/yaml.v3"
)

// AppName names the configuration directory under the XDG config home.
const AppName = "miplib2017"

// DefaultConfigFile is the configuration file looked up in the working directory.
const DefaultConfigFile = ".miplib2017.yaml"

// DefaultConcurrency is the request limit used when neither flags nor the
// configuration file set one.
const DefaultConcurrency = 16

// Config holds settings read from the YAML configuration file.
type Config struct {
	BaseURL     string        `yaml:"base_url"`
	Catalog     string        `yaml:"catalog"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
}

// XDGConfigFile returns the configuration file path under the XDG config home.
// On Linux: ~/.config/miplib2017/config.yaml
func XDGConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .miplib2017.yaml in the current directory
// 3. Look for config.yaml in the XDG config directory
//
// Returns an empty string if no file is found. An explicit configPath is
// returned even if it does not exist so that loading reports the error.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if cwd, err := os.Getwd(); err == nil {
		if cwdConfig := filepath.Join(cwd, DefaultConfigFile); fileExists(cwdConfig) {
			return cwdConfig
		}
	}

	if xdgConfig := XDGConfigFile(); fileExists(xdgConfig) {
		return xdgConfig
	}

	return ""
}

// LoadConfig reads the configuration file at path. An empty path yields an
// empty Config. A missing file returns ENOTFOUND and invalid YAML EINVALID.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if errors.Is(err, os.ErrNotExist) {
		return nil, miplib.Errorf(miplib.ENOTFOUND, "config file %q not found", path)
	} else if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, miplib.Errorf(miplib.EINVALID, "invalid config file %q: %v", path, err)
	}
	if cfg.Timeout < 0 {
		return nil, miplib.Errorf(miplib.EINVALID, "invalid config file %q: negative timeout", path)
	}
	return &cfg, nil
}

// Settings are the effective options after merging flags over the
// configuration file and defaults.
type Settings struct {
	BaseURL     string
	Catalog     string
	Concurrency int
	Timeout     time.Duration
	UserAgent   string
}

// Resolve merges explicitly set flag values over the configuration file.
// Zero flag values count as unset.
func Resolve(cli *CLI, cfg *Config) Settings {
	s := Settings{
		BaseURL:     cfg.BaseURL,
		Catalog:     cfg.Catalog,
		Concurrency: cfg.Concurrency,
		Timeout:     cfg.Timeout,
		UserAgent:   cfg.UserAgent,
	}
	if cli.Concurrency != 0 {
		s.Concurrency = cli.Concurrency
	}
	if cli.Timeout > 0 {
		s.Timeout = cli.Timeout
	}
	if s.Concurrency == 0 {
		s.Concurrency = DefaultConcurrency
	}
	return s
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
