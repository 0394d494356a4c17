//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"plum-bloom/internal/core"
)

var (
	hudBackground = color.RGBA{R: 16, G: 16, B: 20, A: 220}
	hudTitle      = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	hudLabel      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	hudMuted      = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD draws the settings panel over the right edge of the canvas.
type HUD struct {
	panel   *Panel
	image   *ebiten.Image
	pixel   *ebiten.Image
	offsetX int
	Visible bool
}

// NewHUD constructs a HUD editing target with a panel of the given width.
func NewHUD(target Target, width int) *HUD {
	h := &HUD{panel: NewPanel(target, width), Visible: true}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	return h
}

// Width is the panel width in pixels.
func (h *HUD) Width() int { return h.panel.Width() }

// Contains reports whether screen point (x, y) falls on the visible panel.
func (h *HUD) Contains(x, y int) bool {
	return h != nil && h.Visible && x >= h.offsetX && y < h.panelHeight()
}

// Update refreshes values and handles clicks. It reports whether the click
// was consumed by the panel.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil || !h.Visible {
		return false
	}
	h.offsetX = panelOffsetX
	h.panel.Refresh()
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.offsetX {
		return false
	}
	return h.panel.Click(mx-h.offsetX, my)
}

func (h *HUD) panelHeight() int {
	return h.panel.Height() + 2*lineHeight
}

// Draw paints the panel at the offset passed to the last Update.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || !h.Visible || h.panel.Width() <= 0 {
		return
	}
	w, ht := h.panel.Width(), h.panelHeight()
	if h.image == nil || h.image.Bounds().Dx() != w || h.image.Bounds().Dy() != ht {
		h.image = ebiten.NewImage(w, ht)
	}
	h.image.Fill(hudBackground)
	h.drawControls()
	h.drawReadout()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(h.offsetX), 0)
	screen.DrawImage(h.image, op)
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	text.Draw(h.image, "Plum Controls", face, panelPadding, panelPadding+headerBaseline, hudTitle)
	for i := range h.panel.controls {
		st := &h.panel.controls[i]
		y := st.top + labelBaseline
		text.Draw(h.image, st.control.Label, face, panelPadding, y, hudLabel)

		valueColor := hudLabel
		if !st.hasValue {
			valueColor = hudMuted
		}
		valueX := st.minusRect.Min.X - buttonGap - text.BoundString(face, st.value).Dx()
		text.Draw(h.image, st.value, face, valueX, y, valueColor)

		minus, plus := "-", "+"
		if st.control.Type != core.ParamTypeInt {
			minus, plus = "<", ">"
		}
		h.drawButton(st.minusRect, minus, h.panel.CanAdjust(i, -1))
		h.drawButton(st.plusRect, plus, h.panel.CanAdjust(i, 1))
	}
}

func (h *HUD) drawReadout() {
	snap := h.panel.Snapshot()
	state, _ := snap.Lookup("state")
	drawn, _ := snap.Lookup("drawn")
	budget, _ := snap.Lookup("budget")
	line := fmt.Sprintf("%s  %s / %s", state.Value, drawn.Value, budget.Value)
	text.Draw(h.image, line, basicfont.Face7x13, panelPadding, h.panel.Height()+lineHeight, hudMuted)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.image.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.image, label, face, x, y, fg)
}
