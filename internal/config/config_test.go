package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/waypointctl/internal/control"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Gains() != control.DefaultGains() {
		t.Errorf("default config should reproduce the default gains, got %+v", cfg.Gains())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.Replay.FrameRate <= 0 {
		t.Error("frame rate should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("antiwindup")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Controller.IntegralLimit != 25 {
		t.Errorf("expected integral limit 25, got %f", cfg.Controller.IntegralLimit)
	}

	strict := GetPreset("strict")
	if strict.Gains().ZeroSpeed != control.ZeroSpeedError || !strict.Replay.StopOnError {
		t.Errorf("strict preset not strict: %+v", strict)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreIndependent(t *testing.T) {
	a := GetPreset("course")
	a.Controller.Kp = 99
	if GetPreset("course").Controller.Kp == 99 {
		t.Error("modifying a preset leaked into the next lookup")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "controller.yaml")

	cfg := DefaultConfig()
	cfg.Controller.Kp = 0.35
	cfg.Controller.ZeroSpeed = "error"
	if err := Save(name, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(name)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(name, []byte("controller:\n  kd: 0.1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Controller.Kd != 0.1 {
		t.Errorf("expected kd 0.1, got %f", cfg.Controller.Kd)
	}
	if cfg.Controller.Kp != control.DefaultKp || cfg.Controller.LookAhead != 17 {
		t.Errorf("unset fields should keep defaults, got %+v", cfg.Controller)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{"bad policy", "controller:\n  zero_speed: maybe\n"},
		{"bad lookahead", "controller:\n  lookahead: 0\n"},
		{"bad frame rate", "replay:\n  frame_rate: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(name, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(name); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	name := filepath.Join(dir, "policy.yaml")
	_ = os.WriteFile(name, []byte("controller:\n  zero_speed: maybe\n"), 0644)
	if _, err := Load(name); !errors.Is(err, control.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOverPreset(t *testing.T) {
	name := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(name, []byte("controller:\n  kp: 0.3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOver(name, GetPreset("antiwindup"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Controller.Kp != 0.3 {
		t.Errorf("expected kp 0.3, got %f", cfg.Controller.Kp)
	}
	if cfg.Controller.IntegralLimit != 25 {
		t.Errorf("preset integral limit lost, got %f", cfg.Controller.IntegralLimit)
	}
}
