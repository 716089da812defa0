package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManagerLoadAndGet(t *testing.T) {
	root := t.TempDir()
	m := NewManager()

	if m.Get() != nil {
		t.Error("Get() before Load() should return nil")
	}

	cfg, err := m.Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if m.Get() != cfg {
		t.Error("Get() should return the loaded config")
	}
}

func TestManagerLoadValidates(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".ocrsetup")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "system:\n  profile: gigantic\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if _, err := m.Load(root); err == nil {
		t.Error("invalid profile should fail Load()")
	}
}

func TestManagerSaveBeforeLoad(t *testing.T) {
	m := NewManager()
	if err := m.Save(); err != ErrNotInitialized {
		t.Errorf("Save() before Load() = %v, want ErrNotInitialized", err)
	}
}

func TestManagerSaveRoundTrip(t *testing.T) {
	root := t.TempDir()
	m := NewManager()
	cfg, err := m.Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	cfg.System.LogLevel = "debug"
	cfg.Langdata.Languages = []string{"hin"}
	if err := m.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	m2 := NewManager()
	cfg2, err := m2.Load(root)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if cfg2.System.LogLevel != "debug" {
		t.Errorf("log level = %q after round trip, want debug", cfg2.System.LogLevel)
	}
	if len(cfg2.Langdata.Languages) != 1 || cfg2.Langdata.Languages[0] != "hin" {
		t.Errorf("languages = %v after round trip", cfg2.Langdata.Languages)
	}
}

func TestManagerConfigDirEnvOverride(t *testing.T) {
	override := t.TempDir()
	t.Setenv("OCRSETUP_CONFIG_DIR", override)

	content := "system:\n  log_level: warn\n"
	if err := os.WriteFile(filepath.Join(override, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	cfg, err := m.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.System.LogLevel != "warn" {
		t.Errorf("env override ignored, log level = %q", cfg.System.LogLevel)
	}
}
