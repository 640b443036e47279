package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}
	if cfg.Database != "ple.db" {
		t.Errorf("expected default database path, got %q", cfg.Database)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ple.yaml")
	if err := os.WriteFile(path, []byte("database: /tmp/rules.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database != "/tmp/rules.db" {
		t.Errorf("expected configured database path, got %q", cfg.Database)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ple.yaml")
	if err := os.WriteFile(path, []byte("database: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("expected error for malformed config")
	}

	if err := os.WriteFile(path, []byte("database: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("expected error for empty database path")
	}
}
