//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Painter uploads rendered frames into an ebiten image and draws them scaled
// onto the screen.
type Painter struct {
	w, h int
	img  *ebiten.Image
}

// NewPainter allocates a painter for frames of size w*h.
func NewPainter(w, h int) *Painter {
	return &Painter{w: w, h: h, img: ebiten.NewImage(w, h)}
}

// Blit uploads f and draws it onto dst.
func (p *Painter) Blit(dst *ebiten.Image, f *Frame, scale int) {
	if f == nil {
		return
	}
	if f.W != p.w || f.H != p.h {
		p.w, p.h = f.W, f.H
		p.img = ebiten.NewImage(f.W, f.H)
	}
	p.img.WritePixels(f.Pix)

	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(p.img, op)
}

// Size returns the dimensions of the underlying image.
func (p *Painter) Size() (int, int) { return p.w, p.h }
