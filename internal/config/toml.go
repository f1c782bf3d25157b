// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Crack CrackConfig `toml:"crack"`
	Scan  ScanConfig  `toml:"scan"`
}

// CrackConfig maps crack-related settings.
type CrackConfig struct {
	Lang      *string `toml:"lang"`
	MinRepeat *int    `toml:"min-repeat"`
	MaxRepeat *int    `toml:"max-repeat"`
	NoHistory *bool   `toml:"no-history"`
}

// ScanConfig maps brute-force scan settings.
type ScanConfig struct {
	Top *int `toml:"top"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
