package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	def := DefaultConfig()
	if cfg.Simulation != def.Simulation {
		t.Errorf("Simulation = %+v, expected %+v", cfg.Simulation, def.Simulation)
	}
	if cfg.Limits != def.Limits {
		t.Errorf("Limits = %+v, expected %+v", cfg.Limits, def.Limits)
	}
	if cfg.Paths != def.Paths {
		t.Errorf("Paths = %+v, expected %+v", cfg.Paths, def.Paths)
	}
	if cfg.Server != def.Server {
		t.Errorf("Server = %+v, expected %+v", cfg.Server, def.Server)
	}
	if strings.Join(cfg.Display.Palette, ",") != strings.Join(def.Display.Palette, ",") {
		t.Errorf("Palette = %v, expected %v", cfg.Display.Palette, def.Display.Palette)
	}
	if cfg.Display.Glyph != def.Display.Glyph || cfg.Display.AntGlyph != def.Display.AntGlyph {
		t.Errorf("Display = %+v, expected %+v", cfg.Display, def.Display)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed on defaults: %v", err)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turmite.yaml")
	data := "simulation:\n  interval_ms: 20\nlimits:\n  max_states: 4\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Interval() != 20*time.Millisecond {
		t.Errorf("Interval() = %v, expected 20ms", cfg.Interval())
	}
	if cfg.TurmiteLimits().MaxStates != 4 || cfg.TurmiteLimits().MaxColors != 3 {
		t.Errorf("TurmiteLimits() = %+v, expected 4x3", cfg.TurmiteLimits())
	}
	if cfg.Simulation.FPS != DefaultConfig().Simulation.FPS {
		t.Errorf("FPS = %d, expected the default to be kept", cfg.Simulation.FPS)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("simulation: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of an unparsable file should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("limits:\n  max_colors: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(invalid)
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Load() error = %v, expected ValidationError", err)
	}
	if ve.Field != "display.palette" {
		t.Errorf("Field = %q, expected display.palette", ve.Field)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero interval", func(c *Config) { c.Simulation.IntervalMS = 0 }, "simulation.interval_ms"},
		{"negative fps", func(c *Config) { c.Simulation.FPS = -1 }, "simulation.fps"},
		{"zero states", func(c *Config) { c.Limits.MaxStates = 0 }, "limits.max_states"},
		{"zero colors", func(c *Config) { c.Limits.MaxColors = 0 }, "limits.max_colors"},
		{"short palette", func(c *Config) { c.Display.Palette = c.Display.Palette[:1] }, "display.palette"},
		{"empty glyph", func(c *Config) { c.Display.Glyph = "" }, "display"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)

			err := cfg.Validate()
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, expected ValidationError", err)
			}
			if ve.Field != tc.field {
				t.Errorf("Field = %q, expected %q", ve.Field, tc.field)
			}
		})
	}
}

func TestOverlaySkipsInvalidFiles(t *testing.T) {
	base := DefaultConfig()

	if _, ok := overlay(base, []byte("simulation: {fps: 0}")); ok {
		t.Error("overlay() should reject a file that fails validation")
	}
	if _, ok := overlay(base, []byte("::")); ok {
		t.Error("overlay() should reject a file that does not parse")
	}

	cfg, ok := overlay(base, []byte("display: {glyph: '#'}"))
	if !ok {
		t.Fatal("overlay() should accept a valid partial file")
	}
	if cfg.Display.Glyph != "#" || cfg.Display.AntGlyph != base.Display.AntGlyph {
		t.Errorf("Display = %+v", cfg.Display)
	}
}

func TestSpeedPresets(t *testing.T) {
	prev := time.Duration(1<<62 - 1)
	for _, p := range SpeedPresets {
		d, err := IntervalForPreset(p)
		if err != nil {
			t.Fatalf("IntervalForPreset(%q) failed: %v", p, err)
		}
		if d >= prev {
			t.Errorf("%q = %v should be faster than the previous preset", p, d)
		}
		prev = d
	}

	cfg := DefaultConfig()
	if err := ApplySpeedPreset(&cfg, SpeedFast); err != nil {
		t.Fatalf("ApplySpeedPreset() failed: %v", err)
	}
	if cfg.Simulation.IntervalMS != 20 {
		t.Errorf("IntervalMS = %d, expected 20", cfg.Simulation.IntervalMS)
	}

	if err := ApplySpeedPreset(&cfg, "warp"); err == nil {
		t.Error("ApplySpeedPreset() with an unknown preset should fail")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.turmite/runs.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if expected := filepath.Join(home, ".turmite", "runs.db"); got != expected {
		t.Errorf("ExpandHome() = %q, expected %q", got, expected)
	}

	if got, _ := ExpandHome("/tmp/x"); got != "/tmp/x" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}
