package deepzoom

import (
	"log/slog"
	"math"
)

// maxHistory caps the transition history kept by a Navigator.
const maxHistory = 32

// fitPadding leaves a margin around a level or group fitted to the viewport.
const fitPadding = 1.1

// StateName identifies a navigation state.
type StateName string

const (
	StateIdle      StateName = "idle"
	StatePanning   StateName = "panning"
	StateAnimating StateName = "animating"

	// Extension states. deepzoom does not implement them; hosts supply them
	// through Navigator.Register.
	StateDrawing    StateName = "drawing"
	StateDragging   StateName = "dragging"
	StateConnecting StateName = "connecting"
	StateSelecting  StateName = "selecting"
	StateEditing    StateName = "editing"
)

// State is one node of the navigation state machine. Coordinates are screen
// pixels relative to the viewport origin.
type State interface {
	Name() StateName
	// Enter is called when the state becomes current. arg is whatever the
	// caller passed to Transition.
	Enter(arg any)
	// Leave is called before another state (or this one again) is entered.
	Leave()

	HandleClick(x, y float64, double bool)
	HandleMouseDown(x, y float64)
	HandleMouseMove(x, y float64)
	HandleMouseUp(x, y float64)
	// HandleZoom receives wheel input; positive delta zooms in.
	HandleZoom(x, y, delta float64)
	HandleKey(ev KeyEvent)
	HandleAbort()
	HandleStop()
}

// BaseState provides no-op event handlers. Embed it in custom states and
// override what the state reacts to. Its HandleAbort returns to idle.
type BaseState struct {
	Nav *Navigator
}

func (BaseState) Enter(any)                        {}
func (BaseState) Leave()                           {}
func (BaseState) HandleClick(_, _ float64, _ bool) {}
func (BaseState) HandleMouseDown(_, _ float64)     {}
func (BaseState) HandleMouseMove(_, _ float64)     {}
func (BaseState) HandleMouseUp(_, _ float64)       {}
func (BaseState) HandleZoom(_, _, _ float64)       {}
func (BaseState) HandleKey(KeyEvent)               {}
func (BaseState) HandleStop()                      {}

func (b BaseState) HandleAbort() {
	if b.Nav != nil {
		b.Nav.Transition(StateIdle, nil)
	}
}

// Navigator turns host input events into camera motion. It owns the state
// machine, the animation factories and the panning behavior, and keeps the
// ReferenceManager quiet while an animation runs.
type Navigator struct {
	camera *Camera
	refs   *ReferenceManager
	anim   *Animations
	pan    *PanningBehavior
	cfg    Config
	log    *debugLogger

	states  map[StateName]State
	current State
	history []StateName

	// last pointer position seen by any handler
	pointerX, pointerY float64

	levelHandle LevelHandle
}

// NewNavigator creates a Navigator in the idle state. refs may be nil for a
// single-level viewer.
func NewNavigator(cam *Camera, refs *ReferenceManager, clock Clock, scheduler Scheduler, cfg Config, logger *slog.Logger) *Navigator {
	return newNavigator(cam, refs, clock, scheduler, cfg, newDebugLogger(logger, cfg.Debug))
}

func newNavigator(cam *Camera, refs *ReferenceManager, clock Clock, scheduler Scheduler, cfg Config, log *debugLogger) *Navigator {
	cfg = cfg.Clamp()
	n := &Navigator{
		camera: cam,
		refs:   refs,
		cfg:    cfg,
		log:    log,
		states: make(map[StateName]State),
		anim:   &Animations{Camera: cam, Clock: clock, Scheduler: scheduler, Config: cfg},
	}
	n.pan = NewPanningBehavior(cam, NewKinetics(clock, cfg), n.limits, cfg)

	n.Register(&idleState{BaseState{n}})
	n.Register(&panningState{BaseState: BaseState{n}})
	n.Register(&animatingState{BaseState: BaseState{n}})

	if refs != nil {
		n.levelHandle = refs.OnLevelChanged(n.onLevelChanged)
	}
	n.current = n.states[StateIdle]
	n.pushHistory(StateIdle)
	n.current.Enter(nil)
	return n
}

// Register adds or replaces the state with s.Name().
func (n *Navigator) Register(s State) {
	n.states[s.Name()] = s
}

// Transition leaves the current state and enters the named one, passing arg
// to Enter. Re-entering the current state restarts it without a history
// entry. Unknown names leave the state unchanged and report false.
func (n *Navigator) Transition(name StateName, arg any) bool {
	next, ok := n.states[name]
	if !ok {
		from := StateName("")
		if n.current != nil {
			from = n.current.Name()
		}
		n.log.debug("unknown state transition ignored", "from", string(from), "to", string(name))
		return false
	}
	prev := n.current
	if prev != nil {
		prev.Leave()
	}
	n.current = next
	if prev == nil || prev.Name() != name {
		n.pushHistory(name)
		if prev != nil {
			n.log.debug("state changed", "from", string(prev.Name()), "to", string(name))
		}
	}
	next.Enter(arg)
	return true
}

func (n *Navigator) pushHistory(name StateName) {
	if len(n.history) == maxHistory {
		copy(n.history, n.history[1:])
		n.history = n.history[:maxHistory-1]
	}
	n.history = append(n.history, name)
}

// State returns the name of the current state.
func (n *Navigator) State() StateName { return n.current.Name() }

// History returns the most recent state names, oldest first.
func (n *Navigator) History() []StateName {
	return append([]StateName(nil), n.history...)
}

// Camera returns the camera driven by the navigator.
func (n *Navigator) Camera() *Camera { return n.camera }

// Animations returns the factory used for navigator animations.
func (n *Navigator) Animations() *Animations { return n.anim }

// Panning returns the panning behavior shared by panning states.
func (n *Navigator) Panning() *PanningBehavior { return n.pan }

// Config returns the clamped configuration.
func (n *Navigator) Config() Config { return n.cfg }

func (n *Navigator) HandleClick(x, y float64, double bool) {
	n.pointerX, n.pointerY = x, y
	n.current.HandleClick(x, y, double)
}

func (n *Navigator) HandleMouseDown(x, y float64) {
	n.pointerX, n.pointerY = x, y
	n.current.HandleMouseDown(x, y)
}

func (n *Navigator) HandleMouseMove(x, y float64) {
	n.pointerX, n.pointerY = x, y
	n.current.HandleMouseMove(x, y)
}

func (n *Navigator) HandleMouseUp(x, y float64) {
	n.pointerX, n.pointerY = x, y
	n.current.HandleMouseUp(x, y)
}

func (n *Navigator) HandleZoom(x, y, delta float64) {
	if delta == 0 || !isFinite(delta) {
		return
	}
	n.pointerX, n.pointerY = x, y
	n.current.HandleZoom(x, y, delta)
}

func (n *Navigator) HandleKey(ev KeyEvent) { n.current.HandleKey(ev) }

func (n *Navigator) HandleAbort() { n.current.HandleAbort() }

func (n *Navigator) HandleStop() { n.current.HandleStop() }

// Animate plays it in the animating state. Forced animations ignore pointer
// and wheel input until they finish. Stopping a running animation may switch
// levels, so an interpolator built from camera state should come after
// StopAnimation.
func (n *Navigator) Animate(it *Interpolator, forced bool) {
	if it == nil {
		return
	}
	n.Transition(StateAnimating, AnimationRequest{Interpolator: it, Forced: forced})
}

// Animating reports whether an animation is playing.
func (n *Navigator) Animating() bool {
	return n.current.Name() == StateAnimating
}

// StopAnimation ends a running animation and returns to idle. Level checks
// held back during the animation run now.
func (n *Navigator) StopAnimation() {
	if n.Animating() {
		n.Transition(StateIdle, nil)
	}
}

// level returns the current reference level, or nil.
func (n *Navigator) level() *ViewGroup {
	if n.refs == nil {
		return nil
	}
	return n.refs.Current()
}

// NavigateTo animates the camera to center world (x, y) with width world
// units across the viewport. The target is in the coordinates of the level
// current at the call; if stopping a running animation switches levels, it
// is carried over into the new level.
func (n *Navigator) NavigateTo(x, y, width float64, forced bool) {
	if !isFinite(x) || !isFinite(y) {
		return
	}
	from := n.level()
	n.StopAnimation()
	if to := n.level(); from != nil && to != from {
		var k float64
		var ok bool
		if x, y, k, ok = from.MapTo(to, x, y); !ok {
			return
		}
		width *= k
	}
	it := n.anim.NavigateTo(x, y, width, n.cfg.ZoomPanPreference, n.cfg.NavigationVelocity)
	n.Animate(it, forced)
}

// NavigateToRect animates the camera so r, in world coordinates, fills the
// viewport with a small margin.
func (n *Navigator) NavigateToRect(r Rect, forced bool) {
	c := r.Center()
	n.NavigateTo(c.X, c.Y, n.fitWidth(r), forced)
}

// FitLevel shows the whole current level, animated or at once.
func (n *Navigator) FitLevel(animate bool) {
	n.StopAnimation()
	if n.refs == nil || n.refs.Current() == nil {
		return
	}
	r := n.refs.Current().ContentBounds()
	if animate {
		n.NavigateToRect(r, true)
		return
	}
	vp := n.camera.Viewport()
	w := n.fitWidth(r)
	if !(w > 0) || vp.Width <= 0 {
		return
	}
	scale := vp.Width / w
	c := r.Center()
	x, y := n.camera.translationForCenter(c.X, c.Y, scale)
	n.camera.ZoomAndMoveTo(x, y, scale)
}

// fitWidth returns the world width to show so r fits the viewport.
func (n *Navigator) fitWidth(r Rect) float64 {
	vp := n.camera.Viewport()
	w := r.Width
	if vp.Width > 0 && vp.Height > 0 {
		w = math.Max(w, r.Height*vp.Width/vp.Height)
	}
	return w * fitPadding
}

// zoomAbout multiplies the scale by factor about screen point (sx, sy).
func (n *Navigator) zoomAbout(sx, sy, factor float64) {
	if !(factor > 0) || !isFinite(factor) {
		return
	}
	wx, wy := n.camera.ScreenToWorld(sx, sy)
	zoom := clamp(n.camera.Scale()*factor, n.cfg.MinScale, n.cfg.MaxScale)
	if zoom == n.camera.Scale() {
		return
	}
	n.camera.ZoomToAbout(zoom, wx, wy)
	n.enforceLimits()
}

// enforceLimits hard-clamps the camera into the current limits.
func (n *Navigator) enforceLimits() {
	lim, ok := n.limits()
	if !ok {
		return
	}
	tx, ty := n.camera.Translation()
	cx, cy, flags := constrainTranslation(tx, ty, n.camera.Scale(), n.camera.Viewport(), lim, false)
	if flags.Any() && (cx != tx || cy != ty) {
		n.camera.MoveTo(cx, cy)
	}
}

// limits returns the active navigation limits, if any apply.
func (n *Navigator) limits() (Limits, bool) {
	if !n.cfg.RespectLimits || n.refs == nil || !n.refs.HasLevel() {
		return Limits{}, false
	}
	return n.refs.Limits(), true
}

// onLevelChanged restarts an active drag in the new level's coordinates.
func (n *Navigator) onLevelChanged(_ *ViewGroup, _ LevelChange) { n.Reanchor() }

// Reanchor restarts an active drag at the last pointer position, keeping its
// momentum. Call it after moving the camera under a drag.
func (n *Navigator) Reanchor() {
	if n.current != nil && n.current.Name() == StatePanning {
		n.Transition(StatePanning, PanStart{X: n.pointerX, Y: n.pointerY, KeepMomentum: true})
	}
}

// Close stops any animation and unregisters from the ReferenceManager.
func (n *Navigator) Close() {
	if n.current.Name() != StateIdle {
		n.Transition(StateIdle, nil)
	}
	n.levelHandle.Remove()
}

// SetDebugMode toggles diagnostic logging.
func (n *Navigator) SetDebugMode(enabled bool) { n.log.enabled = enabled }
