package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json5"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.Radius != DefaultRadius {
		t.Errorf("radius = %d, want %d", cfg.Search.Radius, DefaultRadius)
	}
	if cfg.Search.MaxLength != DefaultMaxLength {
		t.Errorf("maxLength = %d, want %d", cfg.Search.MaxLength, DefaultMaxLength)
	}
	if cfg.Search.MaxResults != DefaultMaxResults {
		t.Errorf("maxResults = %d, want %d", cfg.Search.MaxResults, DefaultMaxResults)
	}
	if cfg.ProjectsDir == "" {
		t.Error("projects dir should default to a non-empty path")
	}
}

func TestLoad_JSON5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	content := `{
	// comments and trailing commas are fine
	projectsDir: "/tmp/transcripts",
	search: {
		radius: 80,
		maxLength: 0, // unlimited
		maxResults: 5,
		maxTokens: 4000,
	},
	tokenizer: "cl100k_base",
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ProjectsDir != "/tmp/transcripts" {
		t.Errorf("projectsDir = %q", cfg.ProjectsDir)
	}
	if cfg.Search.Radius != 80 || cfg.Search.MaxResults != 5 || cfg.Search.MaxTokens != 4000 {
		t.Errorf("search config = %+v", cfg.Search)
	}
	if cfg.Search.MaxLength != 0 {
		t.Errorf("explicit maxLength 0 must stay unlimited, got %d", cfg.Search.MaxLength)
	}
	if cfg.Tokenizer != "cl100k_base" {
		t.Errorf("tokenizer = %q", cfg.Tokenizer)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	os.WriteFile(path, []byte("{projectsDir: "), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got := ExpandHome("~/x/y")
	if !strings.HasPrefix(got, home) || !strings.HasSuffix(got, filepath.Join("x", "y")) {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: %q", got)
	}
	if got := ExpandHome(""); got != "" {
		t.Errorf("empty path changed: %q", got)
	}
}
