package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Defaults.WorkspaceID != "default" {
		t.Errorf("expected default workspace 'default', got %q", cfg.Defaults.WorkspaceID)
	}

	if cfg.Defaults.MaxParallelAgents != 3 {
		t.Errorf("expected default parallel cap 3, got %d", cfg.Defaults.MaxParallelAgents)
	}

	if cfg.Board.RefreshRate != time.Second {
		t.Errorf("expected refresh rate 1s, got %v", cfg.Board.RefreshRate)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
anthropic:
  api_key: test-key
  model: claude-opus-4-1
database:
  path: /tmp/coscribe-test.db
defaults:
  workspace_id: docs-team
  max_parallel_agents: 5
board:
  refresh_rate: 250ms
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Anthropic.APIKey != "test-key" {
		t.Errorf("expected api_key 'test-key', got %q", cfg.Anthropic.APIKey)
	}

	if cfg.Anthropic.Model != "claude-opus-4-1" {
		t.Errorf("expected model override, got %q", cfg.Anthropic.Model)
	}

	if cfg.Database.Path != "/tmp/coscribe-test.db" {
		t.Errorf("expected database path override, got %q", cfg.Database.Path)
	}

	if cfg.Defaults.WorkspaceID != "docs-team" {
		t.Errorf("expected workspace 'docs-team', got %q", cfg.Defaults.WorkspaceID)
	}

	if cfg.Defaults.MaxParallelAgents != 5 {
		t.Errorf("expected parallel cap 5, got %d", cfg.Defaults.MaxParallelAgents)
	}

	if cfg.Board.RefreshRate != 250*time.Millisecond {
		t.Errorf("expected refresh rate 250ms, got %v", cfg.Board.RefreshRate)
	}
}

func TestLoadFromPathPartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Only override one value; everything else keeps its default.
	configContent := `
defaults:
  max_parallel_agents: 7
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Defaults.MaxParallelAgents != 7 {
		t.Errorf("expected parallel cap 7, got %d", cfg.Defaults.MaxParallelAgents)
	}

	if cfg.Defaults.WorkspaceID != "default" {
		t.Errorf("expected default workspace kept, got %q", cfg.Defaults.WorkspaceID)
	}

	if cfg.Board.RefreshRate != time.Second {
		t.Errorf("expected default refresh rate kept, got %v", cfg.Board.RefreshRate)
	}
}

func TestLoadFromPathExpandsEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("COSCRIBE_TEST_KEY", "expanded-key")

	configContent := `
anthropic:
  api_key: ${COSCRIBE_TEST_KEY}
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Anthropic.APIKey != "expanded-key" {
		t.Errorf("expected expanded api key, got %q", cfg.Anthropic.APIKey)
	}
}

func TestValidateRejectsOutOfRangeCap(t *testing.T) {
	cfg := Default()
	cfg.Defaults.MaxParallelAgents = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for cap below range")
	}

	cfg.Defaults.MaxParallelAgents = 11
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for cap above range")
	}
}
