package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FASTREP_DATA_DIR", "/tmp/fastrep-test-data")
	t.Setenv("FASTREP_PORT", "")
	t.Setenv("FASTREP_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("FASTREP_AI_PROVIDER", "")
	t.Setenv("FASTREP_AI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DataDir != "/tmp/fastrep-test-data" {
		t.Errorf("DataDir = %q, want env override", cfg.DataDir)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want default 5000", cfg.Port)
	}
	if cfg.AI.Provider != "" {
		t.Errorf("AI.Provider = %q, want empty", cfg.AI.Provider)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
default_template: modern
ai:
  provider: openai
  api_key: sk-from-file
  model: gpt-4o
  timeout_seconds: 10
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("FASTREP_DATA_DIR", dir)
	t.Setenv("FASTREP_CONFIG", path)
	t.Setenv("FASTREP_AI_PROVIDER", "")
	t.Setenv("FASTREP_AI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DefaultTemplate != "modern" {
		t.Errorf("DefaultTemplate = %q, want modern", cfg.DefaultTemplate)
	}
	if cfg.AI.Provider != "openai" {
		t.Errorf("AI.Provider = %q, want openai", cfg.AI.Provider)
	}
	if cfg.AI.APIKey != "sk-from-file" {
		t.Errorf("AI.APIKey = %q, want value from file", cfg.AI.APIKey)
	}
	if cfg.AI.TimeoutSeconds != 10 {
		t.Errorf("AI.TimeoutSeconds = %d, want 10", cfg.AI.TimeoutSeconds)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("ai:\n  provider: openai\n  api_key: sk-file\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("FASTREP_DATA_DIR", dir)
	t.Setenv("FASTREP_CONFIG", path)
	t.Setenv("FASTREP_AI_PROVIDER", "anthropic")
	t.Setenv("FASTREP_AI_API_KEY", "sk-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AI.Provider != "anthropic" {
		t.Errorf("AI.Provider = %q, want env override", cfg.AI.Provider)
	}
	if cfg.AI.APIKey != "sk-env" {
		t.Errorf("AI.APIKey = %q, want env override", cfg.AI.APIKey)
	}
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("ai: [not a mapping"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("FASTREP_DATA_DIR", dir)
	t.Setenv("FASTREP_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Error("expected error for broken config file, got nil")
	}
}
