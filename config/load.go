package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Load reads a TOML config file, applies environment variable overrides and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.FillEnvVars()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}
