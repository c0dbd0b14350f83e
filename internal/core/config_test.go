package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Snapshot.Path != "config.json" {
		t.Errorf("snapshot path = %q", cfg.Snapshot.Path)
	}
	if !cfg.Emit.Console {
		t.Error("console emitter should be on by default")
	}
	if cfg.Bus.Enabled {
		t.Error("bus delivery must be off by default")
	}
	if cfg.Automation.Interval != 5*time.Second {
		t.Errorf("automation interval = %v", cfg.Automation.Interval)
	}
	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("default config should validate cleanly: %v", issues)
	}
}

func TestLoadConfig_MissingFileFallsBack(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("missing file should yield defaults, level = %q", cfg.Logging.Level)
	}
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crcsim.yaml")

	cfg := DefaultConfig()
	cfg.Logging.Level = "debug"
	cfg.Automation.Interval = 2 * time.Second
	cfg.Automation.Sources = []string{"SIEM_Alert"}
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", loaded.Logging.Level)
	}
	if loaded.Automation.Interval != 2*time.Second {
		t.Errorf("interval = %v, want 2s", loaded.Automation.Interval)
	}
	if len(loaded.Automation.Sources) != 1 || loaded.Automation.Sources[0] != "SIEM_Alert" {
		t.Errorf("sources = %v", loaded.Automation.Sources)
	}
}

func TestLoadConfig_SnapshotEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crcsim.yaml")
	if err := SaveConfig(DefaultConfig(), path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	os.Setenv("CRCSIM_SNAPSHOT", "/tmp/override.json")
	defer os.Unsetenv("CRCSIM_SNAPSHOT")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Snapshot.Path != "/tmp/override.json" {
		t.Errorf("snapshot path = %q, want env override", cfg.Snapshot.Path)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed config should fail to load")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bus.Enabled = true
	cfg.Bus.Embedded = false
	cfg.Bus.URL = ""
	cfg.Bus.Port = 99999
	cfg.Automation.Interval = 0
	cfg.Logging.Level = "verbose"

	issues := cfg.Validate()
	if len(issues) != 4 {
		t.Errorf("issues = %v, want 4 entries", issues)
	}
}
