package ebitenhost

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/deepzoom"
)

const (
	// minGroupPixels is the on-screen size below which a group is drawn as a
	// plain box without descendants or label.
	minGroupPixels = 24
	// maxDrawDepth bounds how many nested levels below the current one are
	// drawn.
	maxDrawDepth = 3
	// debugGlyphW and debugGlyphH are the cell size of ebitenutil's debug font.
	debugGlyphW = 6
	debugGlyphH = 16
)

// Style holds the colors used by CanvasLayer.
type Style struct {
	Fill   []color.Color // per nesting depth, cycled
	Stroke color.Color
}

// DefaultStyle returns the built-in palette.
func DefaultStyle() Style {
	return Style{
		Fill: []color.Color{
			color.RGBA{R: 0x2e, G: 0x4a, B: 0x6b, A: 0xff},
			color.RGBA{R: 0x3d, G: 0x6b, B: 0x4f, A: 0xff},
			color.RGBA{R: 0x6b, G: 0x4f, B: 0x3d, A: 0xff},
			color.RGBA{R: 0x5a, G: 0x3d, B: 0x6b, A: 0xff},
		},
		Stroke: color.RGBA{R: 0xc8, G: 0xd0, B: 0xd8, A: 0xff},
	}
}

// CanvasLayer is an immediate-mode deepzoom.RenderLayer: it remembers the
// current level and redraws everything from the camera on each Draw.
type CanvasLayer struct {
	Style Style
	// Grid, when non-nil, is drawn under the groups.
	Grid *GridLayer
	// Border, when non-nil, draws markers for off-screen groups.
	Border *BorderLayer

	model *deepzoom.ViewGroup
	// dirty is set by every notification and cleared by Draw.
	dirty bool
}

// NewCanvasLayer creates a layer with the default style, a grid and border
// markers.
func NewCanvasLayer() *CanvasLayer {
	return &CanvasLayer{
		Style:  DefaultStyle(),
		Grid:   NewGridLayer(),
		Border: NewBorderLayer(),
		dirty:  true,
	}
}

func (l *CanvasLayer) OnViewResized()             { l.dirty = true }
func (l *CanvasLayer) OnPanChanged(x, y float64)  { l.dirty = true }
func (l *CanvasLayer) OnZoomChanged(zoom float64) { l.dirty = true }

func (l *CanvasLayer) SetModel(level *deepzoom.ViewGroup) {
	l.model = level
	l.dirty = true
}

func (l *CanvasLayer) Update(level *deepzoom.ViewGroup) {
	l.model = level
	l.dirty = true
}

// Model returns the level being drawn.
func (l *CanvasLayer) Model() *deepzoom.ViewGroup { return l.model }

// Dirty reports whether the camera or model changed since the last Draw.
func (l *CanvasLayer) Dirty() bool { return l.dirty }

// Draw renders the current level as seen by cam.
func (l *CanvasLayer) Draw(dst *ebiten.Image, cam *deepzoom.Camera) {
	l.dirty = false
	if l.Grid != nil {
		l.Grid.Draw(dst, cam)
	}
	if l.model == nil {
		return
	}
	view := deepzoom.Rect{Width: cam.Viewport().Width, Height: cam.Viewport().Height}

	// Outline of the current level itself.
	b := l.model.ContentBounds()
	sx, sy := cam.WorldToScreen(b.X, b.Y)
	s := cam.Scale()
	vector.StrokeRect(dst, float32(sx), float32(sy), float32(b.Width*s), float32(b.Height*s), 1, l.Style.Stroke, false)

	ox, oy := cam.Translation()
	l.drawContents(dst, l.model, view, ox, oy, s, 0)

	if l.Border != nil {
		l.Border.Draw(dst, cam, l.model)
	}
}

// drawContents draws the children of g. (ox, oy) is the screen position of
// g's content origin and s the screen size of one content unit.
func (l *CanvasLayer) drawContents(dst *ebiten.Image, g *deepzoom.ViewGroup, view deepzoom.Rect, ox, oy, s float64, depth int) {
	for _, c := range g.Contents {
		r := deepzoom.Rect{X: ox + c.Left*s, Y: oy + c.Top*s, Width: c.Width * s, Height: c.Height * s}
		if !r.Intersects(view) {
			continue
		}
		fill := l.fillFor(depth)
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), fill, false)
		vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, l.Style.Stroke, false)

		if r.Width < minGroupPixels || r.Height < minGroupPixels {
			continue
		}
		l.drawLabel(dst, c, r)
		if c.HasContents() && depth+1 < maxDrawDepth {
			l.drawContents(dst, c, view, r.X, r.Y, s*c.Scale, depth+1)
		}
	}
}

func (l *CanvasLayer) fillFor(depth int) color.Color {
	if len(l.Style.Fill) == 0 {
		return color.Gray{Y: 0x40}
	}
	return l.Style.Fill[depth%len(l.Style.Fill)]
}

func (l *CanvasLayer) drawLabel(dst *ebiten.Image, g *deepzoom.ViewGroup, r deepzoom.Rect) {
	label := g.Name
	if s, ok := g.UserData.(string); ok && s != "" {
		label = s
	}
	if label == "" || r.Width < float64(len(label)*debugGlyphW+8) || r.Height < debugGlyphH+4 {
		return
	}
	ebitenutil.DebugPrintAt(dst, label, int(math.Round(r.X))+4, int(math.Round(r.Y))+2)
}
