package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	pkgconfig "github.com/goran-ethernal/BlockIndexor/pkg/config"
	"gopkg.in/yaml.v3"
)

// Supported configuration formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// LoadFromFile loads configuration from a file, auto-detecting the format by extension.
// Supported formats: .yaml, .yml, .json, .toml
func LoadFromFile(path string) (*pkgconfig.Config, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		return LoadFromYAML(path)
	case ".json":
		return LoadFromJSON(path)
	case ".toml":
		return LoadFromTOML(path)
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json, .toml)", ext)
	}
}

// LoadFromYAML loads configuration from a YAML file.
func LoadFromYAML(path string) (*pkgconfig.Config, error) {
	return loadFile(path, FormatYAML)
}

// LoadFromJSON loads configuration from a JSON file.
func LoadFromJSON(path string) (*pkgconfig.Config, error) {
	return loadFile(path, FormatJSON)
}

// LoadFromTOML loads configuration from a TOML file.
func LoadFromTOML(path string) (*pkgconfig.Config, error) {
	return loadFile(path, FormatTOML)
}

// LoadFromBytes decodes, defaults and validates a configuration document.
func LoadFromBytes(data []byte, format string) (*pkgconfig.Config, error) {
	var cfg pkgconfig.Config

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	return processConfig(&cfg)
}

func loadFile(path, format string) (*pkgconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromBytes(data, format)
}

// processConfig applies defaults and validates the configuration.
func processConfig(cfg *pkgconfig.Config) (*pkgconfig.Config, error) {
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
