// Package render defines the drawing surface the growth scheduler strokes
// segments onto, and the concrete surfaces behind it.
package render

import (
	"image/color"

	"plum-bloom/internal/core"
)

// LineCap selects the shape of stroke endpoints.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
)

// Style is the pen used for one stroke.
type Style struct {
	Width float64
	Cap   LineCap
	Color color.NRGBA
}

// Sink is a drawing surface that only ever receives path calls. Sinks never
// hand pixels back to the caller.
type Sink interface {
	Clear()
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke(style Style) error
}

// StrokeSegment issues the path calls drawing seg with style.
func StrokeSegment(s Sink, seg core.Segment, style Style) error {
	s.BeginPath()
	s.MoveTo(seg.From.X, seg.From.Y)
	s.LineTo(seg.To.X, seg.To.Y)
	return s.Stroke(style)
}
