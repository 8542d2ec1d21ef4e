// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds ulconfig configuration
type Config struct {
	Format      string   `yaml:"format"`        // output format (cargo, cgo, gofile, json, yaml)
	TargetOS    string   `yaml:"target_os"`     // overrides the detected target OS
	Manifest    string   `yaml:"manifest"`      // TOML library set, empty for Ultralight
	ExtraDirs   []string `yaml:"extra_dirs"`    // searched after the built-in candidates
	NixStore    bool     `yaml:"nix_store"`     // also search the Nix store
	NixStoreDir string   `yaml:"nix_store_dir"` // store location, default /nix/store
	Debug       bool     `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Format: getDefaultFormat(),
	}
}

// DefaultPath returns where the config file is looked up when no path is given
func DefaultPath() (string, error) {
	if path := os.Getenv("ULCONFIG_CONFIG"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ulconfig", "config.yaml"), nil
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func getDefaultFormat() string {
	if format := os.Getenv("ULCONFIG_FORMAT"); format != "" {
		return format
	}
	return "cargo"
}
