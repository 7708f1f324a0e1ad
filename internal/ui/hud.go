//go:build ebiten

package ui

import (
	"image/color"

	"coal-reveal/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the debug readout in the top-left corner.
type HUD struct {
	provider core.ParameterProvider
	visible  bool
	lines    []string

	panel *ebiten.Image
	pixel *ebiten.Image
}

// NewHUD constructs a HUD reading from provider.
func NewHUD(provider core.ParameterProvider, visible bool) *HUD {
	h := &HUD{provider: provider, visible: visible}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	return h
}

// Toggle shows or hides the panel.
func (h *HUD) Toggle() {
	if h != nil {
		h.visible = !h.visible
	}
}

// Visible reports whether the panel is drawn.
func (h *HUD) Visible() bool { return h != nil && h.visible }

// Update refreshes the cached lines from the provider.
func (h *HUD) Update() {
	if h == nil || !h.visible || h.provider == nil {
		return
	}
	h.lines = HUDLines(h.provider.Parameters())
}

// Draw paints the panel.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || !h.visible || len(h.lines) == 0 {
		return
	}
	w, ht := HUDSize(h.lines)
	if h.panel == nil || h.panel.Bounds().Dx() != w || h.panel.Bounds().Dy() != ht {
		h.panel = ebiten.NewImage(w, ht)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 200})

	face := basicfont.Face7x13
	for i, line := range h.lines {
		col := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if len(line) > 0 && line[0] != ' ' {
			col = color.RGBA{R: 200, G: 170, B: 90, A: 255}
		}
		text.Draw(h.panel, line, face, panelPadding, panelPadding+(i+1)*lineHeight-4, col)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(panelPadding, panelPadding)
	screen.DrawImage(h.panel, op)
}
