package core

import "math"

// Size describes the pixel dimensions of the drawing surface.
type Size struct {
	W int
	H int
}

// Contains reports whether p lies within [0,W]x[0,H].
func (s Size) Contains(p Point) bool {
	return p.X >= 0 && p.X <= float64(s.W) && p.Y >= 0 && p.Y <= float64(s.H)
}

// Min returns the shorter side.
func (s Size) Min() float64 { return math.Min(float64(s.W), float64(s.H)) }

// Max returns the longer side.
func (s Size) Max() float64 { return math.Max(float64(s.W), float64(s.H)) }

// Point is a real-valued 2D coordinate.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Len returns the Euclidean length of p treated as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Polar returns the point length units away from p along heading theta.
func (p Point) Polar(length, theta float64) Point {
	return Point{X: p.X + length*math.Cos(theta), Y: p.Y + length*math.Sin(theta)}
}

// Branch is one pending growth instruction. Branches are values and are never
// modified once queued.
type Branch struct {
	Start     Point
	Length    float64
	Theta     float64
	Depth     int
	HueOffset float64
}

// End returns the endpoint the branch draws to.
func (b Branch) End() Point { return b.Start.Polar(b.Length, b.Theta) }

// Segment is a drawn branch tagged with what the color mapper needs.
type Segment struct {
	From, To   Point
	Depth      int
	DepthLimit int
	HueOffset  float64
}

// Theme selects the light or dark rendering variant.
type Theme uint8

const (
	ThemeLight Theme = iota
	ThemeDark
)

// String returns the theme identifier used in flags and config files.
func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// ParseTheme converts a config string into a Theme.
func ParseTheme(s string) (Theme, bool) {
	switch s {
	case "light":
		return ThemeLight, true
	case "dark":
		return ThemeDark, true
	}
	return ThemeLight, false
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
