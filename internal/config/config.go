// Package config loads the sessgrep JSON5 config file and applies defaults.
// Everything is optional; a missing file just means defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/titanous/json5"
)

// Search knob defaults. An explicit 0 for maxLength or maxTokens in the
// file means unlimited; omitted fields fall back to these.
const (
	DefaultRadius     = 200
	DefaultMaxLength  = 500
	DefaultMaxResults = 20
)

// Config is the on-disk configuration.
type Config struct {
	// ProjectsDir holds one subdirectory per project, each containing
	// <session-uuid>.jsonl transcripts.
	ProjectsDir string       `json:"projectsDir"`
	Search      SearchConfig `json:"search"`
	// Tokenizer names the BPE encoding used with --precise-tokens.
	Tokenizer string `json:"tokenizer"`
}

// SearchConfig carries the default search knobs; flags override these.
type SearchConfig struct {
	Radius     int `json:"radius"`     // context bytes around each match
	MaxLength  int `json:"maxLength"`  // hard cap per excerpt, 0 = unlimited
	MaxResults int `json:"maxResults"` // result cap per search
	MaxTokens  int `json:"maxTokens"`  // token budget, 0 = unlimited
}

// DefaultPath returns the standard config location.
func DefaultPath() string {
	return ExpandHome("~/.sessgrep/config.json5")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ProjectsDir: ExpandHome("~/.claude/projects"),
		Search: SearchConfig{
			Radius:     DefaultRadius,
			MaxLength:  DefaultMaxLength,
			MaxResults: DefaultMaxResults,
		},
	}
}

// Load reads a JSON5 config file and fills in defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.ProjectsDir = ExpandHome(cfg.ProjectsDir)
	if cfg.ProjectsDir == "" {
		cfg.ProjectsDir = Default().ProjectsDir
	}
	if cfg.Search.Radius <= 0 {
		cfg.Search.Radius = DefaultRadius
	}
	if cfg.Search.MaxResults <= 0 {
		cfg.Search.MaxResults = DefaultMaxResults
	}
	if cfg.Search.MaxLength < 0 {
		cfg.Search.MaxLength = 0
	}
	if cfg.Search.MaxTokens < 0 {
		cfg.Search.MaxTokens = 0
	}
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
