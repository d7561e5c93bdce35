// Package config loads translator settings from TOML files.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings for a conversion run.
type Config struct {
	Technology  string `toml:"technology" validate:"required"`
	ProcessNode string `toml:"process_node" validate:"required"`
	RunOptions  bool   `toml:"run_options"`
	CatalogPath string `toml:"catalog_path"`
	LogLevel    string `toml:"log_level" validate:"oneof=debug info warn error"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Technology:  "Generic",
		ProcessNode: "180nm",
		RunOptions:  true,
		CatalogPath: "rulekit.db",
		LogLevel:    "info",
	}
}

// Load reads a TOML config file. Fields absent from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates TOML config bytes.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
