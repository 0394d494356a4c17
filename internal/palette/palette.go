// Package palette maps branch depth to stroke colors.
package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"plum-bloom/internal/core"
)

// ID names a palette.
type ID string

const (
	Mist   ID = "mist"
	Sunset ID = "sunset"
	Aurora ID = "aurora"
)

// Profile is the immutable color parameter set of a palette. Lightness ranges
// run from depth 0 to the depth limit.
type Profile struct {
	ID         ID
	BaseHue    float64
	HueStep    float64
	Saturation float64
	Alpha      float64
	Light      [2]float64
	Dark       [2]float64
}

var profiles = []Profile{
	{
		ID:         Mist,
		BaseHue:    204,
		HueStep:    3.5,
		Saturation: 0.36,
		Alpha:      0.62,
		Light:      [2]float64{0.3, 0.7},
		Dark:       [2]float64{0.72, 0.44},
	},
	{
		ID:         Sunset,
		BaseHue:    12,
		HueStep:    5.5,
		Saturation: 0.72,
		Alpha:      0.66,
		Light:      [2]float64{0.36, 0.64},
		Dark:       [2]float64{0.64, 0.48},
	},
	{
		ID:         Aurora,
		BaseHue:    148,
		HueStep:    9,
		Saturation: 0.62,
		Alpha:      0.6,
		Light:      [2]float64{0.28, 0.6},
		Dark:       [2]float64{0.7, 0.5},
	},
}

// Lookup returns the palette registered under id.
func Lookup(id ID) (Profile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// IDs lists the palettes in presentation order.
func IDs() []ID {
	ids := make([]ID, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}
	return ids
}

// Next returns the palette after id, wrapping around.
func Next(id ID, direction int) ID {
	n := len(profiles)
	for i, p := range profiles {
		if p.ID == id {
			return profiles[((i+direction)%n+n)%n].ID
		}
	}
	return profiles[0].ID
}

// Color returns the stroke color for a segment at depth. It is a pure function
// of its arguments.
func Color(depth, depthLimit int, hueOffset float64, p Profile, theme core.Theme) color.NRGBA {
	ratio := 0.0
	if depthLimit > 0 {
		ratio = core.Clamp(float64(depth)/float64(depthLimit), 0, 1)
	}
	span := p.Light
	if theme == core.ThemeDark {
		span = p.Dark
	}
	lightness := span[0] + (span[1]-span[0])*ratio
	hue := NormalizeHue(p.BaseHue + float64(depth)*p.HueStep + hueOffset)

	r, g, b := colorful.Hsl(hue, p.Saturation, lightness).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(core.Clamp(p.Alpha, 0, 1) * 255))}
}

// NormalizeHue wraps h into [0, 360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Background is the opaque backdrop for a theme.
func Background(theme core.Theme) color.NRGBA {
	if theme == core.ThemeDark {
		return color.NRGBA{R: 16, G: 18, B: 24, A: 255}
	}
	return color.NRGBA{R: 246, G: 243, B: 236, A: 255}
}
