// Package config loads user defaults from the XDG config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// RelPath is the config file location relative to the XDG config home.
const RelPath = "inputsource/config.yaml"

// Config holds user defaults. Command-line flags take precedence.
type Config struct {
	Format string      `yaml:"format,omitempty"`
	Debug  bool        `yaml:"debug,omitempty"`
	Watch  WatchConfig `yaml:"watch"`
	Serve  ServeConfig `yaml:"serve"`
}

// WatchConfig holds defaults for the watch command.
type WatchConfig struct {
	HID bool `yaml:"hid"`
}

// ServeConfig holds defaults for the serve command.
type ServeConfig struct {
	Transport string `yaml:"transport"`
	Port      int    `yaml:"port"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Watch: WatchConfig{HID: true},
		Serve: ServeConfig{Transport: "stdio", Port: 8080},
	}
}

// DefaultPath returns where the config file is expected under
// $XDG_CONFIG_HOME. The file does not have to exist.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, RelPath)
}

// Load reads the config at path over the defaults. An empty path searches
// the XDG config directories and falls back to the defaults when no file is
// found there. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		found, err := xdg.SearchConfigFile(RelPath)
		if err != nil {
			return cfg, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Format {
	case "", "yaml", "json":
	default:
		return fmt.Errorf("unsupported format: %s (use yaml or json)", c.Format)
	}
	switch c.Serve.Transport {
	case "stdio", "streamable-http":
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", c.Serve.Transport)
	}
	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Serve.Port)
	}
	return nil
}
