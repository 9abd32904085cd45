// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/outrigdev/boolsearch/pkg/base"
	"github.com/outrigdev/boolsearch/pkg/utilfn"
	"github.com/pelletier/go-toml/v2"
)

// LoadConfig finds and loads the config file for the current working directory.
// It returns the defaults (and an empty path) when no file exists.
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}
	return LoadConfigFrom(dir)
}

// LoadConfigFrom searches for a config file starting at dir
func LoadConfigFrom(dir string) (*Config, string, error) {
	// 1. Check explicit config file env var first
	if configFile := os.Getenv(base.ConfigFileEnvName); configFile != "" {
		configFile = utilfn.ExpandHomeDir(configFile)
		cfg, err := LoadConfigFile(configFile)
		if err != nil {
			return nil, "", err
		}
		return cfg, configFile, nil
	}

	// 2. Walk up directories looking for project root (includes start dir)
	cfg, path, err := findConfigInParents(dir)
	if err != nil {
		return nil, "", err
	}
	if cfg != nil {
		return cfg, path, nil
	}

	// 3. User-level config
	homePath := filepath.Join(utilfn.ExpandHomeDir(base.BoolsearchHome), base.ConfigFileName)
	cfg, err = tryLoadConfig(homePath)
	if err != nil {
		return nil, "", err
	}
	if cfg != nil {
		return cfg, homePath, nil
	}

	// 4. No config found (not an error)
	return DefaultConfig(), "", nil
}

// LoadConfigFile loads an explicitly named config file; unlike the search
// in LoadConfigFrom, a missing file is an error (wrapping os.ErrNotExist).
func LoadConfigFile(path string) (*Config, error) {
	cfg, err := tryLoadConfig(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config file %s: %w", path, os.ErrNotExist)
	}
	return cfg, nil
}

func findConfigInParents(dir string) (*Config, string, error) {
	homeDir := utilfn.GetHomeDir()

	for {
		path := filepath.Join(dir, base.ConfigFileName)
		cfg, err := tryLoadConfig(path)
		if err != nil {
			return nil, "", err
		}
		if cfg != nil {
			return cfg, path, nil
		}

		// Stop at project root markers
		if hasProjectRoot(dir) {
			break
		}

		// Stop at home directory
		if homeDir != "" && dir == homeDir {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir || parent == "/" { // reached filesystem root or about to traverse to it
			break
		}

		dir = parent
	}

	return nil, "", nil
}

func hasProjectRoot(dir string) bool {
	markers := []string{".git", "go.mod"}
	for _, marker := range markers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// tryLoadConfig decodes path over the defaults; a missing file returns nil, nil
func tryLoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
