//go:build ebiten

package app

import (
	"log"
	"math"

	"coal-reveal/internal/audio"
	"coal-reveal/internal/core"
	"coal-reveal/internal/render"
	"coal-reveal/internal/scene"
	"coal-reveal/internal/sequence"
	"coal-reveal/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts the reveal sequence and its scene to the ebiten.Game interface.
type Game struct {
	cfg    *Config
	logger *log.Logger

	seq      *sequence.Sequencer
	deck     *audio.Deck
	scene    *scene.Scene
	renderer *render.Renderer
	painter  *render.Painter
	overlay  *ui.Overlay
	hud      *ui.HUD
	timer    *core.FrameTimer

	window    core.Size
	frame     sequence.Frame
	autoMuted bool

	dragging     bool
	lastX, lastY int
}

// New constructs a Game for the provided configuration.
func New(cfg *Config) *Game {
	logger := log.Default()
	clock := core.SystemClock()
	piece := cfg.Piece()
	deck := audio.NewDeck(cfg.Audio(), logger)

	seq := sequence.New(clock, cfg.Timings(), deck.Ambient, deck.Secondary)
	seq.SetLogger(logger)

	size := cfg.RenderSize()
	g := &Game{
		cfg:      cfg,
		logger:   logger,
		seq:      seq,
		deck:     deck,
		scene:    scene.New(piece, cfg.TPS),
		renderer: render.NewRenderer(size.W, size.H),
		painter:  render.NewPainter(size.W, size.H),
		overlay:  ui.NewOverlay(),
		timer:    core.NewFrameTimer(clock),
		window:   cfg.WindowSize(),
		frame:    sequence.Frame{State: seq.State()},
	}
	g.hud = ui.NewHUD(g, cfg.Debug)
	logger.Printf("coal: seed %d, %d vertices", piece.Seed, piece.Mesh.VertexCount())
	return g
}

// Update handles input and advances the sequence and the scene.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.hud.Toggle()
	}

	st := g.seq.State()
	action := g.overlay.Update(g.window.W, st.Phase != sequence.Idle, st.MuteVisible, st.Muted)
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		action.Start = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		action.ToggleMute = true
	}
	if action.Start {
		g.seq.Start()
	}
	if action.ToggleMute {
		g.seq.ToggleMute()
	}
	g.updateOrbit(action.Consumed)

	g.frame = g.seq.Update()
	if g.cfg.Muted && !g.autoMuted && g.frame.State.MuteVisible {
		g.autoMuted = g.seq.ToggleMute()
	}
	g.scene.Update(g.timer.Delta(), g.frame.Scalars)
	g.hud.Update()
	return nil
}

func (g *Game) updateOrbit(consumed bool) {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.dragging = !consumed
	case !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.dragging = false
	case g.dragging && g.window.H > 0:
		h := float64(g.window.H)
		g.scene.Orbit.Rotate(-2*math.Pi*float64(x-g.lastX)/h, -2*math.Pi*float64(y-g.lastY)/h)
	}
	g.lastX, g.lastY = x, y
}

// Draw renders the scene, then the overlay and the HUD on top.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.renderer.Render(g.scene), g.cfg.Scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.window.W, g.window.H
}

// Close tears the sequence down and releases the audio players.
func (g *Game) Close() {
	g.seq.Teardown()
	if err := g.deck.Close(); err != nil {
		g.logger.Printf("audio: close: %v", err)
	}
}

// Parameters exposes the live values to the debug HUD.
func (g *Game) Parameters() core.ParameterSnapshot {
	snap := g.seq.Parameters()
	piece := g.scene.Piece()
	stats := g.renderer.Stats()
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "Scene",
		Params: []core.Parameter{
			core.Int64Param("seed", "Seed", piece.Seed),
			core.FloatParam("lightness", "Lightness", piece.Lightness),
			core.IntParam("triangles", "Triangles", stats.Triangles),
			core.FloatParam("fps", "FPS", ebiten.ActualFPS()),
		},
	})
	return snap
}
