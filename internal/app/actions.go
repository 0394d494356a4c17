package app

import (
	"fmt"
	"unicode"

	"plum-bloom/internal/scheduler"
)

// Action is a user command shared by every host.
type Action uint8

const (
	ActionNone Action = iota
	ActionRegenerate
	ActionNextPattern
	ActionNextPalette
	ActionToggleTheme
	ActionToggleFlow
	ActionToggleMotion
	ActionToggleOverlay
	ActionToggleHUD
	ActionSnapshot
	ActionQuit
)

var keyActions = map[rune]Action{
	'r': ActionRegenerate,
	'p': ActionNextPattern,
	'c': ActionNextPalette,
	't': ActionToggleTheme,
	'f': ActionToggleFlow,
	'm': ActionToggleMotion,
	'o': ActionToggleOverlay,
	'h': ActionToggleHUD,
	's': ActionSnapshot,
	'q': ActionQuit,
}

// KeyAction maps a typed key to its action, ignoring case.
func KeyAction(r rune) Action {
	return keyActions[unicode.ToLower(r)]
}

// Perform runs the scheduler side of a. It returns a short status line for
// the host to show, and false for actions the host handles itself.
func Perform(s *scheduler.Scheduler, a Action) (string, bool) {
	switch a {
	case ActionRegenerate:
		if err := s.Regenerate(); err != nil {
			return err.Error(), true
		}
		return "regenerated", true
	case ActionNextPattern:
		s.CycleParameter("pattern", 1)
		return fmt.Sprintf("pattern %s", s.Settings().Pattern), true
	case ActionNextPalette:
		s.CycleParameter("palette", 1)
		return fmt.Sprintf("palette %s", s.Settings().Palette), true
	case ActionToggleTheme:
		s.CycleParameter("theme", 1)
		return fmt.Sprintf("theme %s", s.Settings().Theme()), true
	case ActionToggleFlow:
		s.SetFlow(!s.Settings().FlowEnabled)
		return "flow " + onOff(s.Settings().FlowEnabled), true
	case ActionToggleMotion:
		s.SetTimeMotion(!s.Settings().TimeMotion)
		return "time motion " + onOff(s.Settings().TimeMotion), true
	}
	return "", false
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// SnapshotLabel names a snapshot after the settings that produced it.
func SnapshotLabel(st scheduler.Settings) string {
	return fmt.Sprintf("%s-%s-%s", st.Pattern, st.Palette, st.Theme())
}
