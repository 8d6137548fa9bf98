package deepzoom

import "log/slog"

// maxLevelHops bounds the number of level switches a single Check performs.
const maxLevelHops = 8

// LevelChange says how the reference level changed.
type LevelChange uint8

const (
	LevelLoaded LevelChange = iota // set directly by the host
	LevelAscended
	LevelDescended
)

func (c LevelChange) String() string {
	switch c {
	case LevelLoaded:
		return "loaded"
	case LevelAscended:
		return "ascended"
	case LevelDescended:
		return "descended"
	default:
		return "unknown"
	}
}

type levelListener struct {
	id uint32
	fn func(*ViewGroup, LevelChange)
}

// LevelHandle removes a listener registered with OnLevelChanged.
type LevelHandle struct {
	id uint32
	m  *ReferenceManager
}

// Remove unregisters the listener. Removing twice is a no-op.
func (h LevelHandle) Remove() {
	if h.m == nil {
		return
	}
	ls := h.m.listeners
	for i := range ls {
		if ls[i].id == h.id {
			copy(ls[i:], ls[i+1:])
			ls[len(ls)-1] = levelListener{}
			h.m.listeners = ls[:len(ls)-1]
			return
		}
	}
}

// ReferenceManager tracks the current reference level and switches to the
// parent or a child when the viewport geometry calls for it. World space is
// always the current level's content space.
//
// It observes the camera and re-evaluates on every pan and zoom unless
// suspended.
type ReferenceManager struct {
	camera *Camera
	render RenderLayer
	cfg    Config
	log    *debugLogger

	current *ViewGroup
	limits  Limits

	switching bool
	checking  bool
	suspended int

	listeners []levelListener
	nextID    uint32

	handle ObserverHandle
}

// NewReferenceManager creates a manager attached to cam. render may be nil.
// Diagnostics go to logger when cfg.Debug is set; a nil logger uses
// slog.Default().
func NewReferenceManager(cam *Camera, render RenderLayer, cfg Config, logger *slog.Logger) *ReferenceManager {
	return newReferenceManager(cam, render, cfg, newDebugLogger(logger, cfg.Debug))
}

func newReferenceManager(cam *Camera, render RenderLayer, cfg Config, log *debugLogger) *ReferenceManager {
	m := &ReferenceManager{camera: cam, render: render, cfg: cfg.Clamp(), log: log}
	m.handle = cam.AttachObserver(m)
	return m
}

// Detach stops observing the camera.
func (m *ReferenceManager) Detach() {
	m.handle.Remove()
}

// OnLevelChanged registers fn to run after every level change, once the
// camera has been re-anchored.
func (m *ReferenceManager) OnLevelChanged(fn func(level *ViewGroup, change LevelChange)) LevelHandle {
	m.nextID++
	m.listeners = append(m.listeners, levelListener{id: m.nextID, fn: fn})
	return LevelHandle{id: m.nextID, m: m}
}

// Current returns the reference level, or nil before one was set.
func (m *ReferenceManager) Current() *ViewGroup { return m.current }

// Parent returns the parent of the reference level, or nil.
func (m *ReferenceManager) Parent() *ViewGroup {
	if m.current == nil {
		return nil
	}
	return m.current.Parent
}

// Limits returns the navigation limits of the current level.
func (m *ReferenceManager) Limits() Limits { return m.limits }

// HasLevel reports whether a reference level is set.
func (m *ReferenceManager) HasLevel() bool { return m.current != nil }

// SetLevel makes level the reference without moving the camera.
func (m *ReferenceManager) SetLevel(level *ViewGroup) {
	m.load(level)
	m.notify(LevelLoaded)
}

// load replaces the current level, recomputes the limits and hands the level
// to the render layer.
func (m *ReferenceManager) load(level *ViewGroup) {
	m.current = level
	m.limits = computeLimits(level, m.cfg.OverscrollMargin)
	if m.render != nil && level != nil {
		m.render.SetModel(level)
	}
	if level != nil {
		m.log.debug("reference level loaded", "path", level.Path(), "name", level.Name)
	}
}

func (m *ReferenceManager) notify(change LevelChange) {
	if m.current == nil {
		return
	}
	for _, l := range append([]levelListener(nil), m.listeners...) {
		l.fn(m.current, change)
	}
}

// computeLimits grows the level's content bounds by margin times its size.
func computeLimits(level *ViewGroup, margin float64) Limits {
	if level == nil {
		return Limits{}
	}
	b := level.ContentBounds()
	mx, my := b.Width*margin, b.Height*margin
	return Limits{Left: b.X - mx, Top: b.Y - my, Right: b.Right() + mx, Bottom: b.Bottom() + my}
}

// IsOutsideParent reports whether the viewport has grown past the current
// level's bounds, expanded by the drift factor, on all four sides. Only a
// level with a parent can be left.
func (m *ReferenceManager) IsOutsideParent() bool {
	if m.current == nil || m.current.Parent == nil {
		return false
	}
	b := m.current.ContentBounds()
	d := m.cfg.ParentDrift
	b = b.Grow(b.Width*d, b.Height*d)
	v := m.camera.VisibleRect()
	return v.X < b.X && v.Y < b.Y && v.Right() > b.Right() && v.Bottom() > b.Bottom()
}

// IsWithinChildGroup reports whether the viewport lies entirely inside the
// box of child, a group with contents of the current level.
func (m *ReferenceManager) IsWithinChildGroup(child *ViewGroup) bool {
	if child == nil || !child.HasContents() || child.Parent != m.current {
		return false
	}
	return child.Bounds().ContainsRect(m.camera.VisibleRect())
}

// Ascend switches the reference to the parent level, keeping every visible
// point at the same screen position.
func (m *ReferenceManager) Ascend() bool {
	child := m.current
	if child == nil || child.Parent == nil {
		return false
	}
	k := child.contentScale()
	cx, cy := m.camera.Translation()
	s := m.camera.Scale() / k
	x := cx - child.Left*s
	y := cy - child.Top*s

	m.switchTo(child.Parent, x, y, s, LevelAscended)
	return true
}

// Descend switches the reference to child, keeping every visible point at
// the same screen position.
func (m *ReferenceManager) Descend(child *ViewGroup) bool {
	if child == nil || m.current == nil || child.Parent != m.current {
		return false
	}
	k := child.contentScale()
	cx, cy := m.camera.Translation()
	s := m.camera.Scale()
	x := cx + child.Left*s
	y := cy + child.Top*s

	m.switchTo(child, x, y, s*k, LevelDescended)
	return true
}

// switchTo loads level and re-anchors the camera with one atomic update.
func (m *ReferenceManager) switchTo(level *ViewGroup, x, y, scale float64, change LevelChange) {
	m.switching = true
	m.load(level)
	m.camera.ZoomAndMoveTo(x, y, scale)
	m.switching = false
	m.log.debug("reference level switched", "change", change.String(), "path", level.Path(), "scale", scale)
	m.notify(change)
}

// Check ascends or descends as long as the viewport geometry asks for it and
// reports whether the level changed.
func (m *ReferenceManager) Check() bool {
	if m.current == nil || m.switching || m.checking {
		return false
	}
	m.checking = true
	defer func() { m.checking = false }()

	changed := false
	for hops := 0; hops < maxLevelHops; hops++ {
		if m.IsOutsideParent() {
			m.Ascend()
			changed = true
			continue
		}
		if child := m.childUnderViewport(); child != nil {
			m.Descend(child)
			changed = true
			continue
		}
		break
	}
	return changed
}

func (m *ReferenceManager) childUnderViewport() *ViewGroup {
	for _, c := range m.current.Contents {
		if m.IsWithinChildGroup(c) {
			return c
		}
	}
	return nil
}

// Suspend stops automatic checks until the matching Resume.
func (m *ReferenceManager) Suspend() { m.suspended++ }

// Resume re-enables automatic checks and runs one immediately when the last
// suspension ends.
func (m *ReferenceManager) Resume() {
	if m.suspended == 0 {
		return
	}
	m.suspended--
	if m.suspended == 0 {
		m.Check()
	}
}

// Suspended reports whether automatic checks are paused.
func (m *ReferenceManager) Suspended() bool { return m.suspended > 0 }

func (m *ReferenceManager) OnViewResized() { m.autoCheck() }

func (m *ReferenceManager) OnPanChanged(x, y float64) { m.autoCheck() }

func (m *ReferenceManager) OnZoomChanged(zoom float64) { m.autoCheck() }

func (m *ReferenceManager) autoCheck() {
	if m.switching || m.suspended > 0 {
		return
	}
	m.Check()
}
