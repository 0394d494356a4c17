//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// LayerPainter mirrors a Canvas into an ebiten image, uploading only when the
// canvas changed.
type LayerPainter struct {
	w, h int
	img  *ebiten.Image
}

// NewLayerPainter allocates a painter for a w by h canvas.
func NewLayerPainter(w, h int) *LayerPainter {
	lp := &LayerPainter{}
	lp.ensure(w, h)
	return lp
}

func (lp *LayerPainter) ensure(w, h int) {
	if lp.img != nil && lp.w == w && lp.h == h {
		return
	}
	if lp.img != nil {
		lp.img.Deallocate()
	}
	lp.w, lp.h = w, h
	lp.img = ebiten.NewImage(w, h)
}

// Blit fills dst with bg, refreshes the layer from canvas if needed and draws
// it on top.
func (lp *LayerPainter) Blit(dst *ebiten.Image, canvas *Canvas, bg color.Color) {
	size := canvas.Size()
	if lp.w != size.W || lp.h != size.H {
		lp.ensure(size.W, size.H)
		canvas.dirty = true
	}
	if canvas.TakeDirty() {
		if pix := canvas.Pixels(); len(pix) == 4*lp.w*lp.h {
			lp.img.WritePixels(pix)
		}
	}
	dst.Fill(bg)
	dst.DrawImage(lp.img, &ebiten.DrawImageOptions{})
}

// Size returns the dimensions of the underlying image.
func (lp *LayerPainter) Size() (int, int) { return lp.w, lp.h }
