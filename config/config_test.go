package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseEnvDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOURNAL_DATA_DIR", dir)

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.MinPages != 3 {
		t.Errorf("expected default of 3 pages, got %d", cfg.MinPages)
	}
	if cfg.LogPath() != filepath.Join(dir, "sse-journal.log") {
		t.Errorf("log path = %q", cfg.LogPath())
	}
	if cfg.SettingsPath() != filepath.Join(dir, "settings.json") {
		t.Errorf("settings path = %q", cfg.SettingsPath())
	}
	if cfg.VariablesPath() != filepath.Join(dir, "variables.json") {
		t.Errorf("variables path = %q", cfg.VariablesPath())
	}
}

func TestParseEnvClampsFloor(t *testing.T) {
	t.Setenv("JOURNAL_DATA_DIR", t.TempDir())
	t.Setenv("JOURNAL_MIN_PAGES", "0")

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.MinPages != 2 {
		t.Fatalf("expected floor of 2, got %d", cfg.MinPages)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("JOURNAL_MIN_PAGES", "many")

	_, err := ParseEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestOpenLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	t.Setenv("JOURNAL_DATA_DIR", dir)

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	logger, f, err := cfg.OpenLog()
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	logger.Printf("hello")
}
