package ebitenhost

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/deepzoom"
)

// GridLayer draws a world-aligned grid whose spacing adapts to the zoom so
// lines stay between MinSpacing and 10*MinSpacing pixels apart.
type GridLayer struct {
	Color      color.Color
	MinSpacing float64
}

// NewGridLayer creates a faint grid.
func NewGridLayer() *GridLayer {
	return &GridLayer{
		Color:      color.RGBA{R: 0x2a, G: 0x2d, B: 0x33, A: 0xff},
		MinSpacing: 24,
	}
}

// Spacing returns the world distance between grid lines at scale.
func (g *GridLayer) Spacing(scale float64) float64 {
	if !(scale > 0) {
		return 0
	}
	return math.Pow(10, math.Ceil(math.Log10(g.MinSpacing/scale)))
}

// Draw renders the grid lines visible through cam.
func (g *GridLayer) Draw(dst *ebiten.Image, cam *deepzoom.Camera) {
	step := g.Spacing(cam.Scale())
	if !(step > 0) || math.IsInf(step, 0) {
		return
	}
	vis := cam.VisibleRect()
	vp := cam.Viewport()
	for x := math.Floor(vis.X/step) * step; x <= vis.Right(); x += step {
		sx := float32(cam.InverseRayX(x))
		vector.StrokeLine(dst, sx, 0, sx, float32(vp.Height), 1, g.Color, false)
	}
	for y := math.Floor(vis.Y/step) * step; y <= vis.Bottom(); y += step {
		sy := float32(cam.InverseRayY(y))
		vector.StrokeLine(dst, 0, sy, float32(vp.Width), sy, 1, g.Color, false)
	}
}
