package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "cloth" {
		t.Errorf("expected model cloth, got %s", cfg.Model)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Cloth.Width < 1 || cfg.Cloth.Height < 1 {
		t.Error("default cloth dimensions invalid")
	}
	if cfg.Cloth.Iterations < 1 {
		t.Error("default relaxation iterations invalid")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Model = "pendulum"
	cfg.Pendulum.AngleDeg = 75.0

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Model != "pendulum" {
		t.Errorf("model = %s, want pendulum", loaded.Model)
	}
	if loaded.Pendulum.AngleDeg != 75.0 {
		t.Errorf("angle = %f, want 75", loaded.Pendulum.AngleDeg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("model: spring\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Model != "spring" {
		t.Errorf("model = %s, want spring", cfg.Model)
	}
	// Untouched sections keep their defaults.
	if cfg.Cloth.Width != DefaultConfig().Cloth.Width {
		t.Errorf("cloth width = %d, want default", cfg.Cloth.Width)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("model: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("cloth", "small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Cloth.Width != 10 {
		t.Errorf("width = %d, want 10", cfg.Cloth.Width)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("cloth", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "small"); cfg != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	for _, model := range []string{"cloth", "pendulum", "projectile", "spring"} {
		if len(ListPresets(model)) == 0 {
			t.Errorf("expected presets for %s", model)
		}
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent model")
	}
}
