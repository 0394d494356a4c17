// Package term renders growth into a terminal using half-block cells: each
// character cell shows two vertically stacked samples of a small raster.
package term

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"plum-bloom/internal/core"
	"plum-bloom/internal/render"
)

// Raster is a render.Sink backed by a grid of straight-alpha samples.
type Raster struct {
	grid  *core.Grid[color.NRGBA]
	path  []core.Point
	dirty bool
}

// NewRaster allocates a w by h sample raster.
func NewRaster(w, h int) *Raster {
	return &Raster{grid: core.NewGrid[color.NRGBA](w, h), dirty: true}
}

// Size reports the raster dimensions in samples.
func (r *Raster) Size() core.Size { return core.Size{W: r.grid.W, H: r.grid.H} }

// Resize reallocates the raster; the old content is dropped.
func (r *Raster) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("resize raster to %dx%d: dimensions must be positive", w, h)
	}
	r.grid = core.NewGrid[color.NRGBA](w, h)
	r.path = r.path[:0]
	r.dirty = true
	return nil
}

func (r *Raster) Clear() {
	r.grid.Clear()
	r.path = r.path[:0]
	r.dirty = true
}

func (r *Raster) BeginPath() { r.path = r.path[:0] }

func (r *Raster) MoveTo(x, y float64) {
	r.path = append(r.path[:0], core.Point{X: x, Y: y})
}

func (r *Raster) LineTo(x, y float64) {
	r.path = append(r.path, core.Point{X: x, Y: y})
}

// Stroke plots the current path one sample wide. Widths under two samples
// thin the color instead of the line.
func (r *Raster) Stroke(style render.Style) error {
	if len(r.path) < 2 {
		r.path = r.path[:0]
		return nil
	}
	c := style.Color
	c.A = uint8(math.Round(float64(c.A) * core.Clamp(style.Width/2, 0.25, 1)))
	for i := 1; i < len(r.path); i++ {
		r.plotLine(r.path[i-1], r.path[i], c, i > 1)
	}
	r.path = r.path[:0]
	r.dirty = true
	return nil
}

// plotLine walks from a to b and blends c into every sample it crosses,
// visiting each sample once. skipFirst avoids double-blending a shared vertex.
func (r *Raster) plotLine(a, b core.Point, c color.NRGBA, skipFirst bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := int(math.Floor(a.X + dx*t))
		y := int(math.Floor(a.Y + dy*t))
		if x == lastX && y == lastY {
			continue
		}
		lastX, lastY = x, y
		if i == 0 && skipFirst {
			continue
		}
		if r.grid.In(x, y) {
			r.grid.Set(x, y, render.BlendOver(r.grid.At(x, y), c))
		}
	}
}

// At returns the sample at (x, y).
func (r *Raster) At(x, y int) color.NRGBA { return r.grid.At(x, y) }

// Cell returns the upper and lower samples behind terminal cell (col, row),
// composited over bg.
func (r *Raster) Cell(col, row int, bg color.NRGBA) (top, bottom color.NRGBA) {
	top = render.BlendOver(bg, r.grid.At(col, row*2))
	bottom = render.BlendOver(bg, r.grid.At(col, row*2+1))
	return top, bottom
}

// Image copies the raster into an image for export.
func (r *Raster) Image() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, r.grid.W, r.grid.H))
	for y := 0; y < r.grid.H; y++ {
		for x := 0; x < r.grid.W; x++ {
			img.SetNRGBA(x, y, r.grid.At(x, y))
		}
	}
	return img
}

// TakeDirty reports whether the raster changed since the last call.
func (r *Raster) TakeDirty() bool {
	d := r.dirty
	r.dirty = false
	return d
}
