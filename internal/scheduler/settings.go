package scheduler

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"plum-bloom/internal/core"
	"plum-bloom/internal/palette"
	"plum-bloom/internal/pattern"
)

// Control ranges exposed to the user.
const (
	DensityMin = 28
	DensityMax = 72
	SpeedMin   = 40
	SpeedMax   = 180
	PercentMax = 100
)

// Settings is the user-facing configuration surface.
type Settings struct {
	Pattern      pattern.ID `yaml:"pattern"`
	Palette      palette.ID `yaml:"palette"`
	Dark         bool       `yaml:"dark"`
	Density      int        `yaml:"density"`
	Speed        int        `yaml:"speed"`
	FlowEnabled  bool       `yaml:"flow"`
	FlowStrength int        `yaml:"flow_strength"`
	TimeMotion   bool       `yaml:"time_motion"`
	MotionAmount int        `yaml:"motion_amount"`
}

// DefaultSettings returns the standard configuration.
func DefaultSettings() Settings {
	return Settings{
		Pattern:      pattern.PlumA,
		Palette:      palette.Mist,
		Density:      45,
		Speed:        90,
		FlowStrength: 60,
		MotionAmount: 50,
	}
}

// Theme returns the theme selected by Dark.
func (s Settings) Theme() core.Theme {
	if s.Dark {
		return core.ThemeDark
	}
	return core.ThemeLight
}

// Validate reports identifiers that name no known profile.
func (s Settings) Validate() error {
	if _, ok := pattern.Lookup(s.Pattern); !ok {
		return fmt.Errorf("unknown pattern %q", s.Pattern)
	}
	if _, ok := palette.Lookup(s.Palette); !ok {
		return fmt.Errorf("unknown palette %q", s.Palette)
	}
	return nil
}

// Clamped returns s with every numeric control forced into range and unknown
// identifiers replaced by the defaults.
func (s Settings) Clamped() Settings {
	def := DefaultSettings()
	if _, ok := pattern.Lookup(s.Pattern); !ok {
		s.Pattern = def.Pattern
	}
	if _, ok := palette.Lookup(s.Palette); !ok {
		s.Palette = def.Palette
	}
	s.Density = clampInt(s.Density, DensityMin, DensityMax)
	s.Speed = clampInt(s.Speed, SpeedMin, SpeedMax)
	s.FlowStrength = clampInt(s.FlowStrength, 0, PercentMax)
	s.MotionAmount = clampInt(s.MotionAmount, 0, PercentMax)
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FromMap overrides defaults with string key/value pairs (flag-style).
// Unparseable values are ignored.
func FromMap(cfg map[string]string) Settings {
	s := DefaultSettings()
	if cfg == nil {
		return s
	}
	if v, ok := cfg["pattern"]; ok {
		s.Pattern = pattern.ID(v)
	}
	if v, ok := cfg["palette"]; ok {
		s.Palette = palette.ID(v)
	}
	if v, ok := cfg["theme"]; ok {
		if theme, ok := core.ParseTheme(v); ok {
			s.Dark = theme == core.ThemeDark
		}
	}
	intKey := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil {
				*dst = parsed
			}
		}
	}
	boolKey := func(key string, dst *bool) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseBool(v); err == nil {
				*dst = parsed
			}
		}
	}
	intKey("density", &s.Density)
	intKey("speed", &s.Speed)
	boolKey("flow", &s.FlowEnabled)
	intKey("flow_strength", &s.FlowStrength)
	boolKey("time_motion", &s.TimeMotion)
	intKey("motion_amount", &s.MotionAmount)
	return s.Clamped()
}

// LoadSettings reads a YAML preset on top of the defaults.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings %s: %w", path, err)
	}
	return s.Clamped(), nil
}

// YAML encodes s as a preset file.
func (s Settings) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
