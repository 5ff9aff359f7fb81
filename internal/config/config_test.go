package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesOnTopOfDefaults(t *testing.T) {
	path := writeConfig(t, `
sampling:
  source: mock
  tick_interval_ms: 10
gesture:
  hold_ticks: 4
debug: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Sampling.Source != "mock" || cfg.Sampling.TickIntervalMS != 10 {
		t.Errorf("overrides not applied: %+v", cfg.Sampling)
	}
	if cfg.Gesture.HoldTicks != 4 {
		t.Errorf("hold_ticks = %d, want 4", cfg.Gesture.HoldTicks)
	}
	if !cfg.Debug {
		t.Error("debug override not applied")
	}

	// Untouched keys keep their defaults.
	def := Default()
	if cfg.Gesture.RollThreshold != def.Gesture.RollThreshold {
		t.Errorf("roll_threshold = %v, want default %v", cfg.Gesture.RollThreshold, def.Gesture.RollThreshold)
	}
	if cfg.Telemetry.TopicAttitude != def.Telemetry.TopicAttitude {
		t.Errorf("topic = %q, want default %q", cfg.Telemetry.TopicAttitude, def.Telemetry.TopicAttitude)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown source", "sampling:\n  source: ouija\n"},
		{"zero tick", "sampling:\n  tick_interval_ms: 0\n"},
		{"alpha out of range", "sampling:\n  smoothing_alpha: 1.5\n"},
		{"zero hold ticks", "gesture:\n  hold_ticks: 0\n"},
		{"telemetry without broker", "telemetry:\n  enabled: true\n  broker: \"\"\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
