package scheduler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plum-bloom/internal/palette"
	"plum-bloom/internal/pattern"
)

func TestClampedForcesRanges(t *testing.T) {
	s := Settings{
		Pattern:      "bogus",
		Palette:      "bogus",
		Density:      5,
		Speed:        999,
		FlowStrength: -4,
		MotionAmount: 140,
	}.Clamped()
	if s.Pattern != pattern.PlumA || s.Palette != palette.Mist {
		t.Fatalf("unknown identifiers should fall back to defaults: %+v", s)
	}
	if s.Density != DensityMin || s.Speed != SpeedMax || s.FlowStrength != 0 || s.MotionAmount != PercentMax {
		t.Fatalf("clamp failed: %+v", s)
	}
}

func TestFromMap(t *testing.T) {
	s := FromMap(map[string]string{
		"pattern":       "spiralB",
		"palette":       "sunset",
		"theme":         "dark",
		"density":       "60",
		"speed":         "not-a-number",
		"flow":          "true",
		"flow_strength": "25",
		"time_motion":   "1",
		"motion_amount": "70",
	})
	want := Settings{
		Pattern:      pattern.SpiralB,
		Palette:      palette.Sunset,
		Dark:         true,
		Density:      60,
		Speed:        DefaultSettings().Speed,
		FlowEnabled:  true,
		FlowStrength: 25,
		TimeMotion:   true,
		MotionAmount: 70,
	}
	if s != want {
		t.Fatalf("FromMap = %+v\nwant      %+v", s, want)
	}
	if FromMap(nil) != DefaultSettings() {
		t.Fatal("nil map should give defaults")
	}
}

func TestLoadSettingsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")
	body := "pattern: crystalC\npalette: aurora\ndark: true\ndensity: 90\ntime_motion: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Pattern != pattern.CrystalC || s.Palette != palette.Aurora || !s.Dark || !s.TimeMotion {
		t.Fatalf("loaded %+v", s)
	}
	if s.Density != DensityMax {
		t.Fatalf("density should clamp to %d, got %d", DensityMax, s.Density)
	}
	if s.Speed != DefaultSettings().Speed {
		t.Fatal("unset keys keep their defaults")
	}

	out, err := s.YAML()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "pattern: crystalC") {
		t.Fatalf("encoded preset:\n%s", out)
	}
}

func TestLoadSettingsRejectsUnknownPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("pattern: fern\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil || !strings.Contains(err.Error(), "fern") {
		t.Fatalf("err = %v, want unknown pattern", err)
	}
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file must fail")
	}
}
