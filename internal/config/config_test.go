package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Use a temp HOME to avoid reading the user's actual config file
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OutputDir != "." {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, ".")
	}
	if cfg.MaxMessages != 10000 {
		t.Errorf("MaxMessages = %d, want 10000", cfg.MaxMessages)
	}
	if cfg.MaxThreadMessages != 25000 {
		t.Errorf("MaxThreadMessages = %d, want 25000", cfg.MaxThreadMessages)
	}
	if cfg.PageLimit != 200 {
		t.Errorf("PageLimit = %d, want 200", cfg.PageLimit)
	}
	if cfg.Timezone != "" {
		t.Errorf("Timezone = %q, want empty (process timezone)", cfg.Timezone)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "test-config.yaml")

	content := `output_dir: "/custom/path"
timezone: "Europe/London"
locale: "de-DE"
max_messages: 500
page_limit: 50
bot_cache_path: "/var/cache/slackpipe/bots.json"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OutputDir != "/custom/path" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "/custom/path")
	}
	if cfg.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, "Europe/London")
	}
	if cfg.Locale != "de-DE" {
		t.Errorf("Locale = %q, want %q", cfg.Locale, "de-DE")
	}
	if cfg.MaxMessages != 500 {
		t.Errorf("MaxMessages = %d, want 500", cfg.MaxMessages)
	}
	if cfg.PageLimit != 50 {
		t.Errorf("PageLimit = %d, want 50", cfg.PageLimit)
	}
	if cfg.BotCachePath != "/var/cache/slackpipe/bots.json" {
		t.Errorf("BotCachePath = %q", cfg.BotCachePath)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SLACKPIPE_OUTPUT_DIR", "/env/override/path")
	t.Setenv("SLACKPIPE_TIMEZONE", "UTC")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OutputDir != "/env/override/path" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "/env/override/path")
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, "UTC")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "test-config.yaml")

	content := `output_dir: "/file/path"
timezone: "Europe/London"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("SLACKPIPE_OUTPUT_DIR", "/env/override/path")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OutputDir != "/env/override/path" {
		t.Errorf("OutputDir = %q, want %q (env should override file)", cfg.OutputDir, "/env/override/path")
	}
	if cfg.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q, want %q (file value should remain)", cfg.Timezone, "Europe/London")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "invalid.yaml")

	content := `output_dir: [invalid yaml`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_NonExistentExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected error for missing explicit config file")
	}
}
