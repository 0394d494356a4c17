package scheduler

import (
	"strconv"

	"plum-bloom/internal/core"
	"plum-bloom/internal/palette"
	"plum-bloom/internal/pattern"
)

// Apply installs next and reacts to what changed:
//
//   - pattern, palette, theme, flow toggle, time motion switched on: reseed now
//   - time motion switched off: cancel a pending replay
//   - density, flow strength, motion amount: reseed after ParamDebounce,
//     coalescing further changes inside the window
//   - speed: picked up by the next frame
func (s *Scheduler) Apply(next Settings) {
	next = next.Clamped()
	prev := s.settings
	s.settings = next

	if prev.Pattern != next.Pattern ||
		prev.Palette != next.Palette ||
		prev.Dark != next.Dark ||
		prev.FlowEnabled != next.FlowEnabled ||
		(!prev.TimeMotion && next.TimeMotion) {
		s.log.Debug("settings changed, reseeding", "pattern", next.Pattern, "palette", next.Palette)
		s.reseed()
		return
	}
	if prev.TimeMotion && !next.TimeMotion {
		s.cancelReplay()
	}
	if prev.Density != next.Density ||
		prev.FlowStrength != next.FlowStrength ||
		prev.MotionAmount != next.MotionAmount {
		s.timers.Cancel(s.paramDebounce)
		s.paramDebounce = s.timers.After(ParamDebounce, s.reseed)
	}
}

// Update applies fn to a copy of the current settings and dispatches the result.
func (s *Scheduler) Update(fn func(*Settings)) {
	next := s.settings
	fn(&next)
	s.Apply(next)
}

// SetPattern selects a growth pattern.
func (s *Scheduler) SetPattern(id pattern.ID) { s.Update(func(st *Settings) { st.Pattern = id }) }

// SetPalette selects a palette.
func (s *Scheduler) SetPalette(id palette.ID) { s.Update(func(st *Settings) { st.Palette = id }) }

// SetTheme switches between light and dark rendering.
func (s *Scheduler) SetTheme(theme core.Theme) {
	s.Update(func(st *Settings) { st.Dark = theme == core.ThemeDark })
}

// SetFlow turns the pointer field on or off.
func (s *Scheduler) SetFlow(on bool) { s.Update(func(st *Settings) { st.FlowEnabled = on }) }

// SetTimeMotion turns the time field and idle replay on or off.
func (s *Scheduler) SetTimeMotion(on bool) { s.Update(func(st *Settings) { st.TimeMotion = on }) }

const (
	keyPattern      = "pattern"
	keyPalette      = "palette"
	keyTheme        = "theme"
	keyDensity      = "density"
	keySpeed        = "speed"
	keyFlow         = "flow"
	keyFlowStrength = "flow_strength"
	keyTimeMotion   = "time_motion"
	keyMotionAmount = "motion_amount"
)

// Parameters reports the current settings and run counters for the HUD.
func (s *Scheduler) Parameters() core.ParameterSnapshot {
	st := s.settings
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Shape",
			Params: []core.Parameter{
				choiceParam(keyPattern, "Pattern", string(st.Pattern)),
				choiceParam(keyPalette, "Palette", string(st.Palette)),
				choiceParam(keyTheme, "Theme", st.Theme().String()),
				intParam(keyDensity, "Density", st.Density),
				intParam(keySpeed, "Speed", st.Speed),
			},
		},
		{
			Name: "Motion",
			Params: []core.Parameter{
				boolParam(keyFlow, "Flow field", st.FlowEnabled),
				intParam(keyFlowStrength, "Flow strength", st.FlowStrength),
				boolParam(keyTimeMotion, "Time motion", st.TimeMotion),
				intParam(keyMotionAmount, "Motion amount", st.MotionAmount),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				intParam("drawn", "Segments", s.Drawn()),
				intParam("budget", "Budget", s.Budget()),
				{Key: "state", Label: "State", Type: core.ParamTypeChoice, Value: s.state.String()},
			},
		},
	}}
}

// ParameterControls lists the settings adjustable from the HUD.
func (s *Scheduler) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: keyPattern, Label: "Pattern", Type: core.ParamTypeChoice},
		{Key: keyPalette, Label: "Palette", Type: core.ParamTypeChoice},
		{Key: keyTheme, Label: "Theme", Type: core.ParamTypeChoice},
		{Key: keyDensity, Label: "Density", Type: core.ParamTypeInt, Step: 2, Min: DensityMin, Max: DensityMax, HasMin: true, HasMax: true},
		{Key: keySpeed, Label: "Speed", Type: core.ParamTypeInt, Step: 10, Min: SpeedMin, Max: SpeedMax, HasMin: true, HasMax: true},
		{Key: keyFlow, Label: "Flow field", Type: core.ParamTypeBool},
		{Key: keyFlowStrength, Label: "Flow strength", Type: core.ParamTypeInt, Step: 5, Min: 0, Max: PercentMax, HasMin: true, HasMax: true},
		{Key: keyTimeMotion, Label: "Time motion", Type: core.ParamTypeBool},
		{Key: keyMotionAmount, Label: "Motion amount", Type: core.ParamTypeInt, Step: 5, Min: 0, Max: PercentMax, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates a numeric setting by key.
func (s *Scheduler) SetIntParameter(key string, value int) bool {
	switch key {
	case keyDensity:
		s.Update(func(st *Settings) { st.Density = value })
	case keySpeed:
		s.Update(func(st *Settings) { st.Speed = value })
	case keyFlowStrength:
		s.Update(func(st *Settings) { st.FlowStrength = value })
	case keyMotionAmount:
		s.Update(func(st *Settings) { st.MotionAmount = value })
	default:
		return false
	}
	return true
}

// SetBoolParameter updates an on/off setting by key.
func (s *Scheduler) SetBoolParameter(key string, value bool) bool {
	switch key {
	case keyFlow:
		s.SetFlow(value)
	case keyTimeMotion:
		s.SetTimeMotion(value)
	default:
		return false
	}
	return true
}

// CycleParameter steps a choice setting forward or backward.
func (s *Scheduler) CycleParameter(key string, direction int) bool {
	switch key {
	case keyPattern:
		s.SetPattern(pattern.Next(s.settings.Pattern, direction))
	case keyPalette:
		s.SetPalette(palette.Next(s.settings.Palette, direction))
	case keyTheme:
		if s.settings.Dark {
			s.SetTheme(core.ThemeLight)
		} else {
			s.SetTheme(core.ThemeDark)
		}
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}

func choiceParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeChoice, Value: value}
}
