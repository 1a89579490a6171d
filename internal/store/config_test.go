package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "mode: DRY_RUN\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(cfg.Symbols) != 3 || cfg.Symbols[0] != "EURUSD" {
		t.Errorf("Expected default symbols, got %v", cfg.Symbols)
	}
	if cfg.IndexSymbol != "DXY" {
		t.Errorf("Expected default index symbol DXY, got %s", cfg.IndexSymbol)
	}
	if cfg.CycleMinutes != 15 {
		t.Errorf("Expected default cycle of 15 minutes, got %d", cfg.CycleMinutes)
	}
	if cfg.BarCount != 250 {
		t.Errorf("Expected default bar count 250, got %d", cfg.BarCount)
	}
	if cfg.MLThreshold != 0.7 {
		t.Errorf("Expected default threshold 0.7, got %v", cfg.MLThreshold)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Expected default server port 5000, got %d", cfg.Server.Port)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
mode: LIVE
symbols: [EURUSD]
correlated_set: [EURUSD]
cycle_minutes: 30
lot_size: 0.5
ml_threshold: 0.8
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Mode != "LIVE" {
		t.Errorf("Expected LIVE mode, got %s", cfg.Mode)
	}
	if cfg.CycleMinutes != 30 || cfg.LotSize != 0.5 || cfg.MLThreshold != 0.8 {
		t.Errorf("Expected overrides applied, got %d %v %v", cfg.CycleMinutes, cfg.LotSize, cfg.MLThreshold)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad mode", "mode: PAPER\n"},
		{"bad threshold", "ml_threshold: 1.5\n"},
		{"negative lot", "lot_size: -1\n"},
		{"negative cycle", "cycle_minutes: -5\n"},
	}
	for _, c := range cases {
		path := writeConfig(t, c.content)
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: expected a validation error", c.name)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}
