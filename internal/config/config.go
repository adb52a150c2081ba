package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Config describes the application level configuration loaded from json.
type Config struct {
	Merge  MergeConfig  `json:"merge"`
	Fixdat FixdatConfig `json:"fixdat"`
	Mounts []string     `json:"mounts"`
	Cache  CacheConfig  `json:"cache"`
}

// MergeConfig controls the DAT Merger/Splitter stage.
type MergeConfig struct {
	// Mode is one of NONE, SPLIT, MERGED, FULLNONMERGED.
	Mode string `json:"mode"`
}

// FixdatConfig controls Fixdat Generator behavior.
type FixdatConfig struct {
	Enabled   bool   `json:"enabled"`
	OutputDir string `json:"output_dir"`
}

// CacheConfig points at the on-disk fingerprint memoisation cache.
type CacheConfig struct {
	Path string `json:"path"`
}

// LoadFirst tries to load configuration from the given paths, returning the
// first successfully decoded configuration. If none of the paths contain a
// readable config, an error is returned.
func LoadFirst(paths ...string) (*Config, error) {
	var lastErr error
	for _, path := range paths {
		if path == "" {
			continue
		}
		cfg, err := Load(path)
		if errors.Is(err, os.ErrNotExist) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("config not found in paths: %v", paths)
	}
	return nil, lastErr
}

// Load reads configuration from a single json file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate performs basic validation of the configuration.
func (c *Config) Validate() error {
	if c.Merge.Mode == "" {
		c.Merge.Mode = "NONE"
	}
	if c.Fixdat.Enabled && c.Fixdat.OutputDir == "" {
		return errors.New("config.fixdat.output_dir must be set when fixdat is enabled")
	}
	return nil
}
