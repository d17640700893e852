package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.Dir != "." {
		t.Errorf("expected output dir '.', got %s", cfg.Output.Dir)
	}
	if cfg.Output.Extension != ".i3dm" {
		t.Errorf("expected extension .i3dm, got %s", cfg.Output.Extension)
	}
	if cfg.Output.Overwrite {
		t.Error("expected overwrite to be false by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilesmith.yaml")
	content := []byte("output:\n  dir: /srv/tiles\n  overwrite: true\nlogging:\n  level: debug\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Output.Dir != "/srv/tiles" {
		t.Errorf("output dir = %s, expected /srv/tiles", cfg.Output.Dir)
	}
	if !cfg.Output.Overwrite {
		t.Error("overwrite should be true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %s, expected debug", cfg.Logging.Level)
	}

	// Unspecified fields keep their defaults.
	if cfg.Output.Extension != ".i3dm" {
		t.Errorf("extension = %s, expected default .i3dm", cfg.Output.Extension)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("output: [unclosed"), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Output.Dir = "/data/out"
	cfg.Logging.Level = "warn"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Output.Dir != "/data/out" {
		t.Errorf("output dir = %s, expected /data/out", loaded.Output.Dir)
	}
	if loaded.Logging.Level != "warn" {
		t.Errorf("log level = %s, expected warn", loaded.Logging.Level)
	}
}
