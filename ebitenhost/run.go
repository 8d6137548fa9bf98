package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/deepzoom"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ClearColor fills the screen before drawing. Nil uses a dark grey.
	ClearColor color.Color
	// ShowFPS prints frame and tick rates in the top-left corner.
	ShowFPS bool
	// ShowDebug prints the camera scale, level path and navigator state.
	ShowDebug bool
	// Resizable lets the user resize the window; the diagram viewport
	// follows.
	Resizable bool
	// ScreenshotDir receives PNG captures taken with F12 and at gesture
	// checkpoints. Empty disables screenshots.
	ScreenshotDir string
}

// Run opens a window and drives d until the window is closed. layer must be
// the render layer d was created with.
func Run(d *deepzoom.Diagram, layer *CanvasLayer, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(NewGame(d, layer, cfg))
}
