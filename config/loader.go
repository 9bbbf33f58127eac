package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a RunConfig from a YAML file, fills defaults and expands path
// placeholders.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
