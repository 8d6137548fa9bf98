package deepzoom

import (
	"math"
	"strings"
)

// Vec2 is a 2D vector used for positions, offsets and directions.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsRect reports whether other lies entirely inside r.
// Shared edges count as inside.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Right() <= r.Right() &&
		other.Y >= r.Y && other.Bottom() <= r.Bottom()
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Grow returns r expanded by dx on the left and right and dy on the top and
// bottom. Negative values shrink it.
func (r Rect) Grow(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

// Limits are the navigation bounds of the current reference level, in world
// coordinates.
type Limits struct {
	Left, Top, Right, Bottom float64
}

// Width returns the horizontal span of the limits.
func (l Limits) Width() float64 { return l.Right - l.Left }

// Height returns the vertical span of the limits.
func (l Limits) Height() float64 { return l.Bottom - l.Top }

// Rect returns the limits as a Rect.
func (l Limits) Rect() Rect {
	return Rect{X: l.Left, Y: l.Top, Width: l.Width(), Height: l.Height()}
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key identifies a navigation key understood by the built-in states.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyZoomIn  // '+' / '='
	KeyZoomOut // '-'
	KeyHome    // fit the current level
	KeyEscape  // abort the running animation
)

// KeyEvent is a key press delivered by the host.
type KeyEvent struct {
	Key       Key
	Modifiers KeyModifiers
}

// isFinite reports whether v is neither NaN nor infinite.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var keyNames = map[Key]string{
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyZoomIn:  "zoomin",
	KeyZoomOut: "zoomout",
	KeyHome:    "home",
	KeyEscape:  "escape",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKey returns the Key named s, as produced by Key.String. Unrecognized
// names return KeyUnknown.
func ParseKey(s string) Key {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range keyNames {
		if name == s {
			return k
		}
	}
	switch s {
	case "+", "=", "plus":
		return KeyZoomIn
	case "-", "minus":
		return KeyZoomOut
	case "esc":
		return KeyEscape
	}
	return KeyUnknown
}
