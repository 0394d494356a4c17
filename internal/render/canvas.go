package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"plum-bloom/internal/core"
)

// Canvas is a transparent raster surface backed by a gg context. Strokes
// accumulate until Clear.
type Canvas struct {
	dc    *gg.Context
	dirty bool
}

// NewCanvas allocates a canvas of w by h pixels.
func NewCanvas(w, h int) *Canvas {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Canvas{dc: gg.NewContext(w, h), dirty: true}
}

// Size reports the canvas dimensions.
func (c *Canvas) Size() core.Size { return core.Size{W: c.dc.Width(), H: c.dc.Height()} }

// Resize reallocates the raster; the old content is dropped.
func (c *Canvas) Resize(w, h int) error {
	if err := c.dc.Resize(w, h); err != nil {
		return fmt.Errorf("resize canvas: %w", err)
	}
	c.dc.Clear()
	c.dirty = true
	return nil
}

// Clear wipes the raster to transparent.
func (c *Canvas) Clear() {
	c.dc.ClearPath()
	c.dc.Clear()
	c.dirty = true
}

// BeginPath discards any unstroked path.
func (c *Canvas) BeginPath() { c.dc.ClearPath() }

// MoveTo starts a subpath at (x, y).
func (c *Canvas) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }

// LineTo extends the current subpath to (x, y).
func (c *Canvas) LineTo(x, y float64) { c.dc.LineTo(x, y) }

// Stroke paints the current path with style and clears it.
func (c *Canvas) Stroke(style Style) error {
	c.dc.SetLineWidth(style.Width)
	if style.Cap == CapRound {
		c.dc.SetLineCap(gg.LineCapRound)
	} else {
		c.dc.SetLineCap(gg.LineCapButt)
	}
	c.dc.SetRGBA(unitRGBA(style.Color))
	c.dirty = true
	if err := c.dc.Stroke(); err != nil {
		return fmt.Errorf("stroke: %w", err)
	}
	return nil
}

// Image returns a copy of the raster.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// Pixels returns a copy of the raster as RGBA bytes, row-major.
func (c *Canvas) Pixels() []byte {
	if img, ok := c.dc.Image().(*image.RGBA); ok {
		return img.Pix
	}
	return nil
}

// TakeDirty reports whether the raster changed since the last call.
func (c *Canvas) TakeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}

// Close releases the gg context.
func (c *Canvas) Close() error { return c.dc.Close() }
