package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeTempConfig(t, `
role = "b"
surface_path = "/tmp/shared.surface"
width = 800
region_rows = 12
poll_interval = "250ms"
max_poll_attempts = 50
verbose = true
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig failed: %v", err)
	}

	if fc.Role != "b" {
		t.Errorf("Role = %q, want b", fc.Role)
	}
	if fc.SurfacePath != "/tmp/shared.surface" {
		t.Errorf("SurfacePath = %q", fc.SurfacePath)
	}
	if fc.Width != 800 || fc.RegionRows != 12 {
		t.Errorf("Width/RegionRows = %d/%d", fc.Width, fc.RegionRows)
	}
	if fc.PollInterval != "250ms" {
		t.Errorf("PollInterval = %q", fc.PollInterval)
	}
	if fc.Verbose == nil || !*fc.Verbose {
		t.Error("Verbose not parsed")
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	path := writeTempConfig(t, `role = [not toml`)
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("LoadFileConfig accepted malformed TOML")
	}

	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadFileConfig accepted a missing file")
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := DefaultConfig()
	fc := FileConfig{
		Role:         "a",
		Width:        320,
		PollInterval: "50ms",
	}

	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}

	if cfg.Role != "a" {
		t.Errorf("Role = %q, want a", cfg.Role)
	}
	if cfg.Width != 320 {
		t.Errorf("Width = %d, want 320", cfg.Width)
	}
	if cfg.PollInterval != 50*time.Millisecond {
		t.Errorf("PollInterval = %v, want 50ms", cfg.PollInterval)
	}
	// Untouched fields keep their defaults.
	if cfg.RegionRows != DefaultRegionRows {
		t.Errorf("RegionRows = %d, want default", cfg.RegionRows)
	}
}

func TestApplyFileConfig_FlagWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Role = "b" // as if passed on the command line

	fc := FileConfig{Role: "a", PollInterval: "bogus"}
	changed := map[string]bool{"role": true, "poll": true}

	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if cfg.Role != "b" {
		t.Errorf("Role = %q, flag value should win", cfg.Role)
	}
}

func TestApplyFileConfig_BadDuration(t *testing.T) {
	cfg := DefaultConfig()
	fc := FileConfig{PollInterval: "tomorrow"}
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err == nil {
		t.Error("ApplyFileConfig accepted an unparseable duration")
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("PIXELLINK_ROLE", "2")
	t.Setenv("PIXELLINK_WIDTH", "512")
	t.Setenv("PIXELLINK_POLL_INTERVAL", "75ms")
	t.Setenv("PIXELLINK_VERBOSE", "1")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.Role != "2" {
		t.Errorf("Role = %q, want 2", cfg.Role)
	}
	if cfg.Width != 512 {
		t.Errorf("Width = %d, want 512", cfg.Width)
	}
	if cfg.PollInterval != 75*time.Millisecond {
		t.Errorf("PollInterval = %v, want 75ms", cfg.PollInterval)
	}
	if !cfg.Verbose {
		t.Error("Verbose not applied from env")
	}
}

func TestApplyEnvConfig_FlagWins(t *testing.T) {
	t.Setenv("PIXELLINK_WIDTH", "512")

	cfg := DefaultConfig()
	cfg.Width = 2048
	if err := ApplyEnvConfig(&cfg, map[string]bool{"width": true}); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}
	if cfg.Width != 2048 {
		t.Errorf("Width = %d, flag value should win over env", cfg.Width)
	}
}
