package app

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plum-bloom/internal/palette"
	"plum-bloom/internal/pattern"
	"plum-bloom/internal/scheduler"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("plum", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	return cfg, fs.Parse(args)
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatal(err)
	}
	st, err := cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if st != scheduler.DefaultSettings() {
		t.Fatalf("defaults = %+v", st)
	}
	if cfg.Width != 960 || cfg.Height != 640 || cfg.Seed != 0 {
		t.Fatalf("surface defaults %+v", cfg)
	}
}

func TestConfigFlags(t *testing.T) {
	cfg, err := parse(t, "-pattern", "spiralB", "-palette", "aurora", "-theme", "dark",
		"-density", "60", "-flow", "-motion-amount", "500", "-seed", "7", "-width", "320")
	if err != nil {
		t.Fatal(err)
	}
	st, err := cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if st.Pattern != pattern.SpiralB || st.Palette != palette.Aurora || !st.Dark {
		t.Fatalf("choices not applied: %+v", st)
	}
	if st.Density != 60 || !st.FlowEnabled || st.MotionAmount != scheduler.PercentMax {
		t.Fatalf("numbers not applied: %+v", st)
	}
	if cfg.Seed != 7 || cfg.Size().W != 320 {
		t.Fatalf("surface flags: %+v", cfg)
	}
}

func TestConfigRejectsUnknownChoices(t *testing.T) {
	for _, args := range [][]string{
		{"-pattern", "fern"},
		{"-palette", "neon"},
		{"-theme", "sepia"},
		{"-density", "lots"},
	} {
		if _, err := parse(t, args...); err == nil {
			t.Errorf("%v: expected parse error", args)
		}
	}
}

func TestConfigFlagsOverridePreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte("palette: sunset\ndensity: 30\nspeed: 150\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := parse(t, "-config", path, "-density", "50")
	if err != nil {
		t.Fatal(err)
	}
	st, err := cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if st.Palette != palette.Sunset || st.Speed != 150 {
		t.Fatalf("preset values lost: %+v", st)
	}
	if st.Density != 50 {
		t.Fatalf("density flag should win over the preset, got %d", st.Density)
	}
}

func TestConfigLogger(t *testing.T) {
	cfg := NewConfig()
	var buf bytes.Buffer
	cfg.Logger(&buf).Info("quiet")
	if buf.Len() != 0 {
		t.Fatal("non-verbose logger wrote output")
	}
	cfg.Verbose = true
	cfg.Logger(&buf).Debug("loud", "k", 1)
	if !strings.Contains(buf.String(), "loud") {
		t.Fatalf("verbose logger output %q", buf.String())
	}
}
