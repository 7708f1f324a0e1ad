//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the start prompt and the mute button and turns clicks on
// them into actions.
type Overlay struct {
	pixel *ebiten.Image

	started     bool
	muteVisible bool
	muted       bool
	hover       bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update records the sequence state and resolves this frame's click.
func (o *Overlay) Update(screenW int, started, muteVisible, muted bool) Action {
	o.started, o.muteVisible, o.muted = started, muteVisible, muted
	mx, my := ebiten.CursorPosition()
	o.hover = muteVisible && pointInRect(mx, my, MuteRect(screenW))
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return Action{}
	}
	return Resolve(mx, my, screenW, started, muteVisible)
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if !o.started {
		o.drawPrompt(screen, PromptRect(b.Dx(), b.Dy()))
	}
	if o.muteVisible {
		o.drawMute(screen, MuteRect(b.Dx()))
	}
}

func (o *Overlay) drawPrompt(screen *ebiten.Image, rect image.Rectangle) {
	o.drawRect(screen, rect, color.RGBA{R: 255, G: 255, B: 255, A: 26})
	face := basicfont.Face7x13
	title := text.BoundString(face, Title)
	sub := text.BoundString(face, Subtitle)
	cx := rect.Min.X + rect.Dx()/2
	cy := rect.Min.Y + rect.Dy()/2
	text.Draw(screen, Title, face, cx-title.Dx()/2, cy-4, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	text.Draw(screen, Subtitle, face, cx-sub.Dx()/2, cy+sub.Dy()+6, color.RGBA{R: 170, G: 170, B: 170, A: 255})
}

func (o *Overlay) drawMute(screen *ebiten.Image, rect image.Rectangle) {
	bg := color.RGBA{R: 0, G: 0, B: 0, A: 128}
	if o.hover {
		bg = color.RGBA{R: 40, G: 40, B: 40, A: 180}
	}
	o.drawRect(screen, rect, bg)

	label := MuteLabel(o.muted)
	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(screen, label, face, x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

func (o *Overlay) drawRect(screen *ebiten.Image, rect image.Rectangle, col color.RGBA) {
	if o.pixel == nil || rect.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
