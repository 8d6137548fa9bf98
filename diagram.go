package deepzoom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrNoRenderLayer is returned by NewDiagram without a render layer.
	ErrNoRenderLayer = errors.New("deepzoom: no render layer")
	// ErrInvalidViewport is returned by NewDiagram for an empty or
	// non-finite viewport.
	ErrInvalidViewport = errors.New("deepzoom: invalid viewport")
	// ErrNoLevel is returned by operations that need a reference level
	// before one was set.
	ErrNoLevel = errors.New("deepzoom: no level loaded")
)

// Options configures a Diagram.
type Options struct {
	// Viewport is the screen rectangle the diagram is shown in. Required.
	Viewport Rect
	// Render draws the current level. Required.
	Render RenderLayer
	// Config defaults to DefaultConfig() when zero.
	Config *Config
	// Clock defaults to SystemClock.
	Clock Clock
	// Scheduler defaults to a FrameQueue owned by the Diagram and ticked by
	// Update.
	Scheduler Scheduler
	// Logger receives debug diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
	// Level, when set, is loaded and fitted to the viewport.
	Level *ViewGroup
}

// Diagram wires a Camera, ReferenceManager and Navigator to a render layer.
// It is the entry point for hosts: forward input to the Handle methods and
// call Update once per frame.
type Diagram struct {
	camera *Camera
	refs   *ReferenceManager
	nav    *Navigator
	render RenderLayer
	cfg    Config
	log    *debugLogger

	clock     Clock
	scheduler Scheduler
	frames    *FrameQueue // nil when the host schedules frames

	renderHandle ObserverHandle

	injectQueue []syntheticEvent
	runner      *GestureRunner
	closed      bool
}

// NewDiagram creates a Diagram from opts.
func NewDiagram(opts Options) (*Diagram, error) {
	if opts.Render == nil {
		return nil, fmt.Errorf("new diagram: %w", ErrNoRenderLayer)
	}
	vp := opts.Viewport
	if !(vp.Width > 0) || !(vp.Height > 0) || !isFinite(vp.X) || !isFinite(vp.Y) ||
		!isFinite(vp.Width) || !isFinite(vp.Height) {
		return nil, fmt.Errorf("new diagram: viewport %vx%v: %w", vp.Width, vp.Height, ErrInvalidViewport)
	}
	cfg := DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	cfg = cfg.Clamp()

	d := &Diagram{
		render:    opts.Render,
		cfg:       cfg,
		log:       newDebugLogger(opts.Logger, cfg.Debug),
		clock:     opts.Clock,
		scheduler: opts.Scheduler,
	}
	if d.clock == nil {
		d.clock = SystemClock{}
	}
	if d.scheduler == nil {
		d.frames = NewFrameQueue()
		d.scheduler = d.frames
	}

	d.camera = NewCamera(vp)
	// The render layer observes first so it always draws the newest camera.
	d.renderHandle = d.camera.AttachObserver(opts.Render)
	d.refs = newReferenceManager(d.camera, opts.Render, cfg, d.log)
	d.nav = newNavigator(d.camera, d.refs, d.clock, d.scheduler, cfg, d.log)

	if opts.Level != nil {
		d.SetLevel(opts.Level)
	}
	return d, nil
}

// Camera returns the diagram's camera.
func (d *Diagram) Camera() *Camera { return d.camera }

// Navigator returns the input state machine.
func (d *Diagram) Navigator() *Navigator { return d.nav }

// References returns the level manager.
func (d *Diagram) References() *ReferenceManager { return d.refs }

// Config returns the clamped configuration in use.
func (d *Diagram) Config() Config { return d.cfg }

// Level returns the current reference level, or nil.
func (d *Diagram) Level() *ViewGroup { return d.refs.Current() }

func (d *Diagram) HandleClick(x, y float64, double bool) { d.nav.HandleClick(x, y, double) }
func (d *Diagram) HandleMouseDown(x, y float64)          { d.nav.HandleMouseDown(x, y) }
func (d *Diagram) HandleMouseMove(x, y float64)          { d.nav.HandleMouseMove(x, y) }
func (d *Diagram) HandleMouseUp(x, y float64)            { d.nav.HandleMouseUp(x, y) }
func (d *Diagram) HandleZoom(x, y, delta float64)        { d.nav.HandleZoom(x, y, delta) }
func (d *Diagram) HandleKey(ev KeyEvent)                 { d.nav.HandleKey(ev) }
func (d *Diagram) HandleAbort()                          { d.nav.HandleAbort() }
func (d *Diagram) HandleStop()                           { d.nav.HandleStop() }

// Update advances one frame: the gesture runner steps, one injected event
// is delivered and, when the Diagram owns its scheduler, pending frame
// callbacks run. It reports whether an injected event was consumed; hosts
// skip their real input for that frame.
func (d *Diagram) Update() bool {
	if d.closed {
		return false
	}
	if d.runner != nil {
		d.runner.step(d)
	}
	injected := d.processInjectedInput()
	if d.frames != nil {
		d.frames.Tick()
	}
	return injected
}

// Resize updates the viewport after the host surface changed size.
func (d *Diagram) Resize(x, y, w, h float64) {
	if !(w > 0) || !(h > 0) {
		return
	}
	d.camera.UpdateVisual(x, y, w, h)
}

// SetLevel makes level the reference and fits it to the viewport. A drag in
// progress continues from the fitted view.
func (d *Diagram) SetLevel(level *ViewGroup) {
	if level == nil {
		return
	}
	if d.nav.Animating() {
		d.nav.HandleAbort()
	}
	d.refs.Suspend()
	d.refs.SetLevel(level)
	d.nav.FitLevel(false)
	d.refs.Resume()
	d.nav.Reanchor()
}

// Open loads the level at path from provider and shows it.
func (d *Diagram) Open(ctx context.Context, provider SceneProvider, path string) error {
	level, err := provider.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("open diagram: %w", err)
	}
	d.SetLevel(level)
	return nil
}

// NavigateToLevel animates to the group at path, relative to the root of the
// current tree. The camera first climbs to the closest common ancestor so
// the animation runs in one coordinate space.
func (d *Diagram) NavigateToLevel(path string) error {
	cur := d.refs.Current()
	if cur == nil {
		return fmt.Errorf("navigate to %q: %w", path, ErrNoLevel)
	}
	target := cur.Root().Find(path)
	if target == nil {
		return fmt.Errorf("navigate to %q: %w", path, ErrLevelNotFound)
	}
	if d.nav.Animating() {
		d.nav.HandleAbort()
	}
	d.refs.Suspend()
	defer d.refs.Resume()
	for d.refs.Current() != target && !d.refs.Current().IsAncestorOf(target) {
		if !d.refs.Ascend() {
			break
		}
	}
	cur = d.refs.Current()
	if cur == target {
		d.nav.FitLevel(true)
		return nil
	}
	r, ok := target.BoundsIn(cur)
	if !ok {
		return fmt.Errorf("navigate to %q: %w", path, ErrLevelNotFound)
	}
	d.log.debug("navigating to level", "path", path, "from", cur.Path())
	d.nav.NavigateToRect(r, true)
	return nil
}

// Refresh tells the render layer the current level changed in place.
func (d *Diagram) Refresh() error {
	cur := d.refs.Current()
	if cur == nil {
		return fmt.Errorf("refresh: %w", ErrNoLevel)
	}
	d.render.Update(cur)
	return nil
}

// Proxies returns border markers for off-screen children of the current
// level.
func (d *Diagram) Proxies(inset, radius float64) []Proxy {
	return Proxies(d.camera, d.refs.Current(), inset, radius)
}

// SetGestureRunner attaches a gesture script runner advanced by Update.
func (d *Diagram) SetGestureRunner(r *GestureRunner) { d.runner = r }

// GestureRunner returns the attached gesture runner, or nil.
func (d *Diagram) GestureRunner() *GestureRunner { return d.runner }

// SetDebugMode toggles diagnostic logging for the diagram and its parts.
func (d *Diagram) SetDebugMode(enabled bool) { d.log.enabled = enabled }

// Close stops animations and detaches every camera observer the Diagram
// registered. The Diagram must not be used afterwards.
func (d *Diagram) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.nav.Close()
	d.refs.Detach()
	d.renderHandle.Remove()
	d.injectQueue = nil
}

func (d *Diagram) checkpoint(label string, frame int) Checkpoint {
	cp := Checkpoint{
		Label:   label,
		Frame:   frame,
		Scale:   d.camera.Scale(),
		CenterX: d.camera.CenterX(),
		CenterY: d.camera.CenterY(),
		State:   d.nav.State(),
	}
	if cur := d.refs.Current(); cur != nil {
		cp.Level = cur.Path()
	}
	return cp
}
