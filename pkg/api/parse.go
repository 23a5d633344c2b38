package api

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a .checkrun.yaml file, sets Dir/FilePath, and validates it.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	c.FilePath = absPath
	c.Dir = filepath.Dir(absPath)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", filename, err)
	}

	return &c, nil
}
