package ebitenhost

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/deepzoom"
)

const (
	// clickSlop is how far the pointer may travel between press and release
	// for the release to count as a click.
	clickSlop = 4.0
	// doubleClickWindow is the longest gap between two clicks of a double
	// click.
	doubleClickWindow = 300 * time.Millisecond
	// doubleClickSlop is how far apart the two clicks may be.
	doubleClickSlop = 6.0
)

// Events is the input surface of a Diagram or Navigator.
type Events interface {
	HandleClick(x, y float64, double bool)
	HandleMouseDown(x, y float64)
	HandleMouseMove(x, y float64)
	HandleMouseUp(x, y float64)
	HandleZoom(x, y, delta float64)
	HandleKey(ev deepzoom.KeyEvent)
}

// keyBindings maps ebiten keys to navigation keys.
var keyBindings = []struct {
	key ebiten.Key
	nav deepzoom.Key
}{
	{ebiten.KeyArrowLeft, deepzoom.KeyLeft},
	{ebiten.KeyArrowRight, deepzoom.KeyRight},
	{ebiten.KeyArrowUp, deepzoom.KeyUp},
	{ebiten.KeyArrowDown, deepzoom.KeyDown},
	{ebiten.KeyEqual, deepzoom.KeyZoomIn},
	{ebiten.KeyNumpadAdd, deepzoom.KeyZoomIn},
	{ebiten.KeyMinus, deepzoom.KeyZoomOut},
	{ebiten.KeyNumpadSubtract, deepzoom.KeyZoomOut},
	{ebiten.KeyHome, deepzoom.KeyHome},
	{ebiten.KeyEscape, deepzoom.KeyEscape},
}

// inputState turns polled ebiten input into navigation events.
type inputState struct {
	clicks clickTracker

	down         bool
	lastX, lastY float64
}

func newInputState(clock deepzoom.Clock) *inputState {
	return &inputState{clicks: clickTracker{clock: clock}}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() deepzoom.KeyModifiers {
	var mods deepzoom.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= deepzoom.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= deepzoom.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= deepzoom.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= deepzoom.ModMeta
	}
	return mods
}

// poll reads this tick's input and forwards it to ev.
func (s *inputState) poll(ev Events) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s.down = true
		s.clicks.press(x, y)
		ev.HandleMouseDown(x, y)
	case s.down && !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		s.down = false
		ev.HandleMouseUp(x, y)
		if click, double := s.clicks.release(x, y); click {
			ev.HandleClick(x, y, double)
		}
	case s.down && (x != s.lastX || y != s.lastY):
		ev.HandleMouseMove(x, y)
	}
	s.lastX, s.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		ev.HandleZoom(x, y, wy)
	}

	mods := readModifiers()
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			ev.HandleKey(deepzoom.KeyEvent{Key: b.nav, Modifiers: mods})
		}
	}
}

// clickTracker recognizes clicks and double clicks from press and release
// positions.
type clickTracker struct {
	clock deepzoom.Clock

	pressX, pressY float64

	lastClick    time.Time
	lastX, lastY float64
	hasLastClick bool
}

func (c *clickTracker) press(x, y float64) {
	c.pressX, c.pressY = x, y
}

// release reports whether the release at (x, y) completes a click, and
// whether that click is the second of a double click.
func (c *clickTracker) release(x, y float64) (click, double bool) {
	if math.Hypot(x-c.pressX, y-c.pressY) > clickSlop {
		c.hasLastClick = false
		return false, false
	}
	now := c.clock.Now()
	if c.hasLastClick && now.Sub(c.lastClick) <= doubleClickWindow &&
		math.Hypot(x-c.lastX, y-c.lastY) <= doubleClickSlop {
		c.hasLastClick = false
		return true, true
	}
	c.lastClick = now
	c.lastX, c.lastY = x, y
	c.hasLastClick = true
	return true, false
}
