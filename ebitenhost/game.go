package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/deepzoom"
)

var defaultClearColor = color.RGBA{R: 0x1c, G: 0x1e, B: 0x22, A: 0xff}

// Game is an ebiten.Game driving a Diagram.
type Game struct {
	diagram *deepzoom.Diagram
	layer   *CanvasLayer
	cfg     RunConfig
	input   *inputState

	width, height int

	// pending screenshot labels, flushed by Draw
	shots           []string
	shotCheckpoints int
}

// NewGame creates a Game. Use it directly to embed the diagram in a custom
// ebiten loop; Run wraps it with a window.
func NewGame(d *deepzoom.Diagram, layer *CanvasLayer, cfg RunConfig) *Game {
	if cfg.ClearColor == nil {
		cfg.ClearColor = defaultClearColor
	}
	return &Game{
		diagram: d,
		layer:   layer,
		cfg:     cfg,
		input:   newInputState(deepzoom.SystemClock{}),
	}
}

// Update forwards input and advances animations by one tick.
func (g *Game) Update() error {
	// Injected input (gesture scripts) replaces real input for the frame.
	if !g.diagram.Update() {
		g.input.poll(g.diagram)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.Screenshot("manual")
	}
	g.queueCheckpointShots()
	return nil
}

// Draw renders the current level.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor)
	if g.layer != nil {
		g.layer.Draw(screen, g.diagram.Camera())
	}

	y := 4
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 4, y)
		y += 16
	}
	if g.cfg.ShowDebug {
		cam := g.diagram.Camera()
		path := "-"
		if lvl := g.diagram.Level(); lvl != nil {
			path = "/" + lvl.Path()
		}
		msg := fmt.Sprintf("level %s  scale %.4g  center (%.1f, %.1f)  %s",
			path, cam.Scale(), cam.CenterX(), cam.CenterY(), g.diagram.Navigator().State())
		ebitenutil.DebugPrintAt(screen, msg, 4, y)
	}
	g.flushScreenshots(screen)
}

// Layout keeps the diagram viewport in sync with the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.diagram.Resize(0, 0, float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
