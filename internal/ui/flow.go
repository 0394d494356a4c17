package ui

import (
	"math"

	"plum-bloom/internal/core"
	"plum-bloom/internal/field"
)

// Arrow is one sample of the pointer field drawn by the flow overlay.
type Arrow struct {
	At   core.Point
	Dir  core.Point // unit vector, zero when calm
	Norm float64    // pull relative to the strongest possible, 0..1
}

const (
	flowTargetSamples = 480.0
	flowMinSpacing    = 18
	flowMaxSpacing    = 56
)

// FlowGrid caches the sample positions for a surface size.
type FlowGrid struct {
	size    core.Size
	spacing int
	points  []core.Point
}

// Spacing returns the distance between samples in pixels.
func (g *FlowGrid) Spacing() int { return g.spacing }

// Points returns the sample centres, laid out for size.
func (g *FlowGrid) Points(size core.Size) []core.Point {
	if size.W <= 0 || size.H <= 0 {
		return nil
	}
	if size == g.size && len(g.points) > 0 {
		return g.points
	}
	spacing := int(math.Sqrt(float64(size.W*size.H) / flowTargetSamples))
	spacing = min(max(spacing, flowMinSpacing), flowMaxSpacing)

	countX := max((size.W+spacing-1)/spacing, 1)
	countY := max((size.H+spacing-1)/spacing, 1)
	startX := max((size.W-(countX-1)*spacing)/2, 0)
	startY := max((size.H-(countY-1)*spacing)/2, 0)

	g.points = g.points[:0]
	for yi := 0; yi < countY; yi++ {
		y := min(startY+yi*spacing, size.H-1)
		for xi := 0; xi < countX; xi++ {
			x := min(startX+xi*spacing, size.W-1)
			g.points = append(g.points, core.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
		}
	}
	g.size = size
	g.spacing = spacing
	return g.points
}

// Sample evaluates the pointer field at every grid point.
func (g *FlowGrid) Sample(in field.PointerInput) []Arrow {
	points := g.Points(in.Size)
	peak := field.PointerGain * in.Strength / 100
	out := make([]Arrow, len(points))
	for i, p := range points {
		out[i].At = p
		v := field.Pull(in, p)
		l := v.Len()
		if l == 0 || peak <= 0 {
			continue
		}
		out[i].Dir = core.Point{X: v.X / l, Y: v.Y / l}
		out[i].Norm = core.Clamp(l/peak, 0, 1)
	}
	return out
}
