package ebitenhost

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/deepzoom"
)

// BorderLayer draws a marker on the viewport edge for every cluster of
// off-screen groups of the current level.
type BorderLayer struct {
	Color color.Color
	// Inset is the distance of markers from the viewport edge in pixels.
	Inset float64
	// Radius merges markers closer than this many pixels.
	Radius float64
	// Size is the marker edge length in pixels.
	Size float64
}

// NewBorderLayer creates a BorderLayer with default sizes.
func NewBorderLayer() *BorderLayer {
	return &BorderLayer{
		Color:  color.RGBA{R: 0xe0, G: 0x9a, B: 0x3a, A: 0xff},
		Inset:  12,
		Radius: 28,
		Size:   10,
	}
}

// Draw renders the markers for level as seen by cam.
func (b *BorderLayer) Draw(dst *ebiten.Image, cam *deepzoom.Camera, level *deepzoom.ViewGroup) {
	half := b.Size / 2
	for _, p := range deepzoom.Proxies(cam, level, b.Inset, b.Radius) {
		vector.DrawFilledRect(dst, float32(p.X-half), float32(p.Y-half), float32(b.Size), float32(b.Size), b.Color, true)
		if p.Count() > 1 {
			ebitenutil.DebugPrintAt(dst, strconv.Itoa(p.Count()), int(p.X+half)+2, int(p.Y-half)-2)
		}
	}
}
