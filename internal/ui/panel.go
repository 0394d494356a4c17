package ui

import (
	"image"
	"math"
	"strconv"

	"plum-bloom/internal/core"
)

// Target is what the settings panel reads and edits.
type Target interface {
	core.ParameterProvider
	core.ParameterControlsProvider
	core.IntParameterSetter
	core.BoolParameterSetter
	core.ChoiceParameterCycler
}

// Panel holds the settings panel's controls, values and button geometry. It
// has no drawing code so the layout and hit testing work headless.
type Panel struct {
	target   Target
	width    int
	snapshot core.ParameterSnapshot
	controls []controlState
}

type controlState struct {
	control core.ParameterControl
	value   string

	intValue  int
	boolValue bool
	hasValue  bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 30
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 20
	controlsTop    = panelPadding + headerBaseline + 14
)

// NewPanel lays out one row per control exposed by target.
func NewPanel(target Target, width int) *Panel {
	p := &Panel{target: target, width: max(width, 0)}
	for _, ctrl := range target.ParameterControls() {
		p.controls = append(p.controls, controlState{control: ctrl, value: "--"})
	}
	p.layout()
	p.Refresh()
	return p
}

// Width is the panel width in pixels.
func (p *Panel) Width() int { return p.width }

// Height is the pixel height the controls need, excluding the readout.
func (p *Panel) Height() int { return controlsTop + len(p.controls)*lineHeight }

// Snapshot returns the values read by the last Refresh.
func (p *Panel) Snapshot() core.ParameterSnapshot { return p.snapshot }

// Refresh re-reads every value from the target.
func (p *Panel) Refresh() {
	p.snapshot = p.target.Parameters()
	for i := range p.controls {
		st := &p.controls[i]
		param, ok := p.snapshot.Lookup(st.control.Key)
		st.hasValue = false
		st.value = "--"
		if !ok {
			continue
		}
		switch st.control.Type {
		case core.ParamTypeInt:
			n, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			st.intValue = n
			st.value = param.Value
		case core.ParamTypeBool:
			b, err := strconv.ParseBool(param.Value)
			if err != nil {
				continue
			}
			st.boolValue = b
			st.value = "off"
			if b {
				st.value = "on"
			}
		case core.ParamTypeChoice:
			st.value = param.Value
		default:
			continue
		}
		st.hasValue = true
	}
}

// Click handles a press at panel-local (x, y). It reports whether a button
// was hit and accepted.
func (p *Panel) Click(x, y int) bool {
	for i := range p.controls {
		st := &p.controls[i]
		if pointInRect(x, y, st.minusRect) {
			return p.Adjust(i, -1)
		}
		if pointInRect(x, y, st.plusRect) {
			return p.Adjust(i, 1)
		}
	}
	return false
}

// Adjust steps control i in direction and refreshes the values.
func (p *Panel) Adjust(i, direction int) bool {
	if i < 0 || i >= len(p.controls) || !p.CanAdjust(i, direction) {
		return false
	}
	st := &p.controls[i]
	var ok bool
	switch st.control.Type {
	case core.ParamTypeInt:
		ok = p.target.SetIntParameter(st.control.Key, p.intTarget(st, direction))
	case core.ParamTypeBool:
		ok = p.target.SetBoolParameter(st.control.Key, direction > 0)
	case core.ParamTypeChoice:
		ok = p.target.CycleParameter(st.control.Key, direction)
	}
	if ok {
		p.Refresh()
	}
	return ok
}

// CanAdjust reports whether the button for direction on control i is live.
// Integer controls stop at their bounds; a boolean's minus button turns it off
// and plus turns it on.
func (p *Panel) CanAdjust(i, direction int) bool {
	if i < 0 || i >= len(p.controls) || direction == 0 {
		return false
	}
	st := &p.controls[i]
	if !st.hasValue {
		return false
	}
	switch st.control.Type {
	case core.ParamTypeInt:
		return p.intTarget(st, direction) != st.intValue
	case core.ParamTypeBool:
		return st.boolValue != (direction > 0)
	case core.ParamTypeChoice:
		return true
	}
	return false
}

func (p *Panel) intTarget(st *controlState, direction int) int {
	step := int(math.Round(st.control.Step))
	if step <= 0 {
		step = 1
	}
	target := st.intValue + direction*step
	if st.control.HasMin {
		target = max(target, int(math.Round(st.control.Min)))
	}
	if st.control.HasMax {
		target = min(target, int(math.Round(st.control.Max)))
	}
	return target
}

func (p *Panel) layout() {
	for i := range p.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(p.width-panelPadding-buttonSize, buttonY, p.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		p.controls[i].top = top
		p.controls[i].minusRect = minusRect
		p.controls[i].plusRect = plusRect
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
