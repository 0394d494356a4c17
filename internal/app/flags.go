package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/gogpu/gg"

	"plum-bloom/internal/core"
	"plum-bloom/internal/palette"
	"plum-bloom/internal/pattern"
	"plum-bloom/internal/scheduler"
)

// Config represents the command-line parameters shared by the plum commands.
type Config struct {
	Width   int
	Height  int
	TPS     int
	Seed    int64
	Preset  string
	OutDir  string
	Verbose bool

	Settings scheduler.Settings

	// set records which settings flags appeared on the command line so they
	// can be layered over a preset.
	set map[string]bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:    960,
		Height:   640,
		TPS:      60,
		OutDir:   "snapshots",
		Settings: scheduler.DefaultSettings(),
		set:      map[string]bool{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "surface width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "surface height in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 picks one)")
	fs.StringVar(&c.Preset, "config", c.Preset, "YAML settings preset")
	fs.StringVar(&c.OutDir, "out", c.OutDir, "snapshot directory")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "debug logging to stderr")

	st := &c.Settings
	c.settingFunc(fs, "pattern", fmt.Sprintf("growth pattern %v", pattern.IDs()), string(st.Pattern), func(v string) error {
		if _, ok := pattern.Lookup(pattern.ID(v)); !ok {
			return fmt.Errorf("unknown pattern %q", v)
		}
		st.Pattern = pattern.ID(v)
		return nil
	})
	c.settingFunc(fs, "palette", fmt.Sprintf("palette %v", palette.IDs()), string(st.Palette), func(v string) error {
		if _, ok := palette.Lookup(palette.ID(v)); !ok {
			return fmt.Errorf("unknown palette %q", v)
		}
		st.Palette = palette.ID(v)
		return nil
	})
	c.settingFunc(fs, "theme", "light or dark", st.Theme().String(), func(v string) error {
		theme, ok := core.ParseTheme(v)
		if !ok {
			return fmt.Errorf("unknown theme %q", v)
		}
		st.Dark = theme == core.ThemeDark
		return nil
	})
	c.intSetting(fs, "density", "branch density 28..72", &st.Density)
	c.intSetting(fs, "speed", "branches per frame 40..180", &st.Speed)
	c.boolSetting(fs, "flow", "bend growth toward the pointer", &st.FlowEnabled)
	c.intSetting(fs, "flow-strength", "pointer field strength 0..100", &st.FlowStrength)
	c.boolSetting(fs, "motion", "time motion with idle replay", &st.TimeMotion)
	c.intSetting(fs, "motion-amount", "time field strength 0..100", &st.MotionAmount)
}

func (c *Config) settingFunc(fs *flag.FlagSet, name, usage, def string, apply func(string) error) {
	fs.Func(name, usage+" (default "+def+")", func(v string) error {
		if err := apply(v); err != nil {
			return err
		}
		c.mark(name)
		return nil
	})
}

func (c *Config) intSetting(fs *flag.FlagSet, name, usage string, dst *int) {
	c.settingFunc(fs, name, usage, strconv.Itoa(*dst), func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	})
}

func (c *Config) boolSetting(fs *flag.FlagSet, name, usage string, dst *bool) {
	fs.BoolFunc(name, usage, func(v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*dst = b
		c.mark(name)
		return nil
	})
}

func (c *Config) mark(name string) {
	if c.set == nil {
		c.set = map[string]bool{}
	}
	c.set[name] = true
}

// Resolve returns the effective settings: the preset file if one was given,
// with every settings flag from the command line applied on top.
func (c *Config) Resolve() (scheduler.Settings, error) {
	if c.Preset == "" {
		return c.Settings.Clamped(), nil
	}
	out, err := scheduler.LoadSettings(c.Preset)
	if err != nil {
		return scheduler.Settings{}, err
	}
	flags := c.Settings
	overrides := map[string]func(){
		"pattern":       func() { out.Pattern = flags.Pattern },
		"palette":       func() { out.Palette = flags.Palette },
		"theme":         func() { out.Dark = flags.Dark },
		"density":       func() { out.Density = flags.Density },
		"speed":         func() { out.Speed = flags.Speed },
		"flow":          func() { out.FlowEnabled = flags.FlowEnabled },
		"flow-strength": func() { out.FlowStrength = flags.FlowStrength },
		"motion":        func() { out.TimeMotion = flags.TimeMotion },
		"motion-amount": func() { out.MotionAmount = flags.MotionAmount },
	}
	for name, apply := range overrides {
		if c.set[name] {
			apply()
		}
	}
	return out.Clamped(), nil
}

// Size returns the configured surface size.
func (c *Config) Size() core.Size { return core.Size{W: c.Width, H: c.Height} }

// Logger builds the process logger. Verbose output goes to w at debug level
// and is shared with the gg rasterizer; otherwise everything is discarded.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	if !c.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	if w == nil {
		w = os.Stderr
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	gg.SetLogger(l)
	return l
}
