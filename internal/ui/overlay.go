//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"plum-bloom/internal/field"
)

// Overlay draws the pointer-field arrows and the status toast on top of the
// canvas.
type Overlay struct {
	ShowFlow bool
	Toast    Toast

	grid  FlowGrid
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update advances the toast by dt seconds.
func (o *Overlay) Update(dt float32) {
	o.Toast.Update(dt)
}

// Draw renders the overlay. in describes the pointer field as the scheduler
// currently sees it.
func (o *Overlay) Draw(screen *ebiten.Image, in field.PointerInput) {
	if o.ShowFlow {
		o.drawFlow(screen, in)
	}
	if o.Toast.Visible() {
		o.drawToast(screen)
	}
}

func (o *Overlay) drawFlow(screen *ebiten.Image, in field.PointerInput) {
	const (
		headAngle    = math.Pi / 6
		minThickness = 1.0
		maxThickness = 2.2
	)
	arrows := o.grid.Sample(in)
	span := float64(o.grid.Spacing())
	minLength := span * 0.3
	maxLength := span * 0.8
	calm := color.RGBA{R: 90, G: 130, B: 170, A: 110}

	for _, a := range arrows {
		if a.Norm == 0 {
			o.drawPoint(screen, a.At.X, a.At.Y, 2, calm)
			continue
		}
		length := minLength + (maxLength-minLength)*math.Sqrt(a.Norm)
		headLength := length * 0.3
		tail := length * 0.4
		tipX := a.At.X + a.Dir.X*(length-tail)
		tipY := a.At.Y + a.Dir.Y*(length-tail)
		tailX := a.At.X - a.Dir.X*tail
		tailY := a.At.Y - a.Dir.Y*tail
		thickness := minThickness + (maxThickness-minThickness)*a.Norm
		col := interpolateColor(a.Norm)

		o.drawLine(screen, tailX, tailY, tipX-a.Dir.X*headLength, tipY-a.Dir.Y*headLength, thickness, col)
		angle := math.Atan2(a.Dir.Y, a.Dir.X)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*headLength, tipY-math.Sin(angle+headAngle)*headLength, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*headLength, tipY-math.Sin(angle-headAngle)*headLength, thickness*0.85, col)
	}

	if in.Known {
		radius := field.PointerRadiusFactor * in.Size.Min()
		o.drawRing(screen, in.Pointer.X, in.Pointer.Y, radius, color.RGBA{R: 240, G: 180, B: 90, A: 90})
		o.drawPoint(screen, in.Pointer.X, in.Pointer.Y, 6, color.RGBA{R: 240, G: 180, B: 90, A: 220})
	}
}

func (o *Overlay) drawRing(screen *ebiten.Image, cx, cy, r float64, col color.RGBA) {
	const steps = 64
	for i := 0; i < steps; i++ {
		a0 := 2 * math.Pi * float64(i) / steps
		a1 := 2 * math.Pi * float64(i+1) / steps
		o.drawLine(screen, cx+r*math.Cos(a0), cy+r*math.Sin(a0), cx+r*math.Cos(a1), cy+r*math.Sin(a1), 1, col)
	}
}

func (o *Overlay) drawToast(screen *ebiten.Image) {
	face := basicfont.Face7x13
	msg := o.Toast.Text()
	bounds := text.BoundString(face, msg)
	alpha := o.Toast.Alpha()
	x := 16
	y := screen.Bounds().Dy() - 16
	bg := color.RGBA{R: 10, G: 10, B: 14, A: uint8(180 * alpha)}
	o.drawRect(screen, float64(x-8), float64(y-bounds.Dy()-8), float64(bounds.Dx()+16), float64(bounds.Dy()+14), bg)
	fg := color.RGBA{R: 235, G: 235, B: 240, A: 255}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(fg)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.DrawWithOptions(screen, msg, face, op)
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	o.drawRect(screen, x-size*0.5, y-size*0.5, size, size, col)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

// interpolateColor runs from a cool blue for weak pull to warm amber at full
// strength.
func interpolateColor(t float64) color.RGBA {
	t = clamp01(t)
	cool := color.RGBA{R: 80, G: 150, B: 220, A: 200}
	warm := color.RGBA{R: 250, G: 170, B: 70, A: 230}
	return color.RGBA{
		R: lerpComponent(cool.R, warm.R, t),
		G: lerpComponent(cool.G, warm.G, t),
		B: lerpComponent(cool.B, warm.B, t),
		A: lerpComponent(cool.A, warm.A, t),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
