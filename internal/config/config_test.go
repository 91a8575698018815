package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Population != 1000 {
		t.Errorf("expected population 1000, got %g", cfg.Population)
	}
	if cfg.Beta != 0.5 || cfg.Gamma != 0.1 {
		t.Errorf("expected beta 0.5 gamma 0.1, got %g %g", cfg.Beta, cfg.Gamma)
	}
	if cfg.Days != 75 {
		t.Errorf("expected 75 days, got %d", cfg.Days)
	}
	if cfg.Integrator != "rk45" {
		t.Errorf("expected rk45, got %s", cfg.Integrator)
	}
	if cfg.Policy.Name != "none" {
		t.Errorf("expected no policy, got %s", cfg.Policy.Name)
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	cfg := DefaultConfig()
	cfg.Beta = 0.8
	cfg.Policy = PolicyConfig{Name: "lockdown", Threshold: 25, Reduction: 0.4}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Beta != 0.8 {
		t.Errorf("expected beta 0.8, got %g", loaded.Beta)
	}
	if loaded.Policy.Name != "lockdown" || loaded.Policy.Threshold != 25 {
		t.Errorf("policy did not roundtrip: %+v", loaded.Policy)
	}
	if loaded.Days != 75 {
		t.Errorf("expected default days, got %d", loaded.Days)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("beta: 0.9\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Beta != 0.9 {
		t.Errorf("expected beta 0.9, got %g", cfg.Beta)
	}
	if cfg.Gamma != DefaultGamma {
		t.Errorf("expected default gamma, got %g", cfg.Gamma)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("baseline")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Beta != 0.5 {
		t.Errorf("expected beta 0.5, got %g", cfg.Beta)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Fatal("expected presets")
	}

	found := false
	for _, name := range presets {
		if name == "lockdown" {
			found = true
		}
	}
	if !found {
		t.Error("expected lockdown preset in list")
	}
}
