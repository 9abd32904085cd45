// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"runtime"

	"github.com/outrigdev/boolsearch/pkg/gensearch"
)

const (
	DefaultInclude           = "**/*"
	DefaultExclude           = "**/{node_modules,vendor,.git}/**"
	DefaultMaxFileSize       = 10 * 1024 * 1024
	DefaultMaxMatchesPerFile = 5
	DefaultListenAddr        = "127.0.0.1:5115"
)

const (
	FormatText    = "text"    // compact, truncated per file
	FormatFull    = "full"    // every match
	FormatJson    = "json"
	FormatHtml    = "html"
	FormatVimgrep = "vimgrep" // path:line:col:content
)

// Config holds every knob of a search run. Zero values in a config file
// leave the defaults in place.
type Config struct {
	CaseSensitive     bool   `toml:"casesensitive" json:"casesensitive"`
	Scope             string `toml:"scope" json:"scope"`
	Include           string `toml:"include" json:"include"`
	Exclude           string `toml:"exclude" json:"exclude"`
	Workers           int    `toml:"workers" json:"workers"`
	MaxFileSize       int64  `toml:"maxfilesize" json:"maxfilesize"`
	MaxMatchesPerFile int    `toml:"maxmatchesperfile" json:"maxmatchesperfile"`
	Format            string `toml:"format" json:"format"`
	LogLevel          string `toml:"loglevel" json:"loglevel"`
	ListenAddr        string `toml:"listenaddr" json:"listenaddr"`
}

// DefaultConfig returns the configuration used when no file or flag says otherwise
func DefaultConfig() *Config {
	return &Config{
		CaseSensitive:     false,
		Scope:             string(gensearch.FileScope),
		Include:           DefaultInclude,
		Exclude:           DefaultExclude,
		Workers:           runtime.NumCPU(),
		MaxFileSize:       DefaultMaxFileSize,
		MaxMatchesPerFile: DefaultMaxMatchesPerFile,
		Format:            FormatText,
		LogLevel:          "warn",
		ListenAddr:        DefaultListenAddr,
	}
}

func (c *Config) GetScope() (gensearch.Scope, error) {
	return gensearch.ParseScope(c.Scope)
}

// Validate checks that enumerated fields hold known values
func (c *Config) Validate() error {
	if _, err := c.GetScope(); err != nil {
		return err
	}
	switch c.Format {
	case FormatText, FormatFull, FormatJson, FormatHtml, FormatVimgrep:
	default:
		return fmt.Errorf("invalid format %q", c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("maxfilesize must not be negative, got %d", c.MaxFileSize)
	}
	if c.MaxMatchesPerFile < 0 {
		return fmt.Errorf("maxmatchesperfile must not be negative, got %d", c.MaxMatchesPerFile)
	}
	return nil
}
