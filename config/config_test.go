package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phanxgames/deepzoom"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	def := deepzoom.DefaultConfig()
	if cfg.InertiaDecay != def.InertiaDecay {
		t.Errorf("inertia_decay: got %v, want %v", cfg.InertiaDecay, def.InertiaDecay)
	}
	if !cfg.UseKinetics || !cfg.DoBanding || !cfg.RespectLimits {
		t.Errorf("boolean defaults lost: %+v", cfg)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deepzoom.yml")
	data := []byte(`
inertia_decay: 0.75
zoom_pan_preference: 1.2
use_kinetics: false
snap_back_duration: 400ms
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.InertiaDecay != 0.75 {
		t.Errorf("inertia_decay: got %v, want 0.75", cfg.InertiaDecay)
	}
	if cfg.ZoomPanPreference != 1.2 {
		t.Errorf("zoom_pan_preference: got %v, want 1.2", cfg.ZoomPanPreference)
	}
	if cfg.UseKinetics {
		t.Error("use_kinetics: got true, want false")
	}
	if cfg.SnapBackDuration != 400*time.Millisecond {
		t.Errorf("snap_back_duration: got %v, want 400ms", cfg.SnapBackDuration)
	}
	// Untouched keys keep their defaults.
	if cfg.ParentDrift != deepzoom.DefaultConfig().ParentDrift {
		t.Errorf("parent_drift: got %v", cfg.ParentDrift)
	}
}

func TestLoad_EnvOverridesAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deepzoom.yml")
	if err := os.WriteFile(path, []byte("navigation_velocity: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEEPZOOM_NAVIGATION_VELOCITY", "9")
	t.Setenv("DEEPZOOM_INERTIA_DECAY", "0.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.NavigationVelocity != 3 {
		t.Errorf("navigation_velocity: got %v, want clamped 3", cfg.NavigationVelocity)
	}
	if cfg.InertiaDecay != 0.5 {
		t.Errorf("inertia_decay: got %v, want 0.5", cfg.InertiaDecay)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("inertia_decay: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deepzoom.yml")

	original := deepzoom.DefaultConfig()
	original.InertiaDecay = 0.8
	original.WheelZoomStep = 1.25
	original.DoBanding = false

	if err := Save(original, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.InertiaDecay != 0.8 {
		t.Errorf("inertia_decay: got %v, want 0.8", loaded.InertiaDecay)
	}
	if loaded.WheelZoomStep != 1.25 {
		t.Errorf("wheel_zoom_step: got %v, want 1.25", loaded.WheelZoomStep)
	}
	if loaded.DoBanding {
		t.Error("do_banding: got true, want false")
	}
}
