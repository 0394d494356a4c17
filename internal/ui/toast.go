package ui

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Toast timing in seconds.
const (
	ToastHold = 1.4
	ToastFade = 0.6
)

// Toast is a one-line status message that holds, then fades out.
type Toast struct {
	text  string
	hold  float32
	fade  *gween.Tween
	alpha float32
}

// Show replaces the current message and restarts the timer.
func (t *Toast) Show(text string) {
	t.text = text
	t.hold = ToastHold
	t.fade = gween.New(1, 0, ToastFade, ease.InQuad)
	t.alpha = 1
}

// Update advances the toast by dt seconds.
func (t *Toast) Update(dt float32) {
	if t.fade == nil {
		return
	}
	if t.hold > 0 {
		t.hold -= dt
		if t.hold >= 0 {
			return
		}
		dt = -t.hold
		t.hold = 0
	}
	val, done := t.fade.Update(dt)
	t.alpha = val
	if done {
		t.alpha = 0
		t.fade = nil
		t.text = ""
	}
}

// Visible reports whether anything is left to draw.
func (t *Toast) Visible() bool { return t.text != "" && t.alpha > 0 }

// Text returns the current message.
func (t *Toast) Text() string { return t.text }

// Alpha returns the current opacity in [0, 1].
func (t *Toast) Alpha() float64 { return float64(t.alpha) }
