package deepzoom

import (
	"math"
	"testing"
	"time"
)

// navRig wires the core parts the way Diagram does, on a manual clock.
type navRig struct {
	clock  *ManualClock
	frames *FrameQueue
	cam    *Camera
	render *RecordingLayer
	refs   *ReferenceManager
	nav    *Navigator
}

func newNavRig(cfg Config, level *ViewGroup) *navRig {
	clock, frames := newTestClock()
	cam := NewCamera(Rect{Width: 800, Height: 600})
	render := NewRecordingLayer()
	cam.AttachObserver(render)
	refs := NewReferenceManager(cam, render, cfg, nil)
	nav := NewNavigator(cam, refs, clock, frames, cfg, nil)
	if level != nil {
		refs.Suspend()
		refs.SetLevel(level)
		refs.Resume()
	}
	return &navRig{clock: clock, frames: frames, cam: cam, render: render, refs: refs, nav: nav}
}

func (r *navRig) advance(n int) { runFrames(r.clock, r.frames, n) }

// settle runs frames until no animation is playing.
func (r *navRig) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 1000 && (r.nav.Animating() || r.frames.Pending() > 0); i++ {
		r.advance(1)
	}
	if r.nav.Animating() {
		t.Fatal("animation did not settle")
	}
}

// move delivers a pointer move 10ms after the previous event.
func (r *navRig) move(x, y float64) {
	r.clock.Advance(10 * time.Millisecond)
	r.nav.HandleMouseMove(x, y)
}

func squareLevel() *ViewGroup {
	return NewViewGroup("root", 0, 0, 1000, 1000, 1)
}

func TestNavigatorStartsIdle(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	if r.nav.State() != StateIdle {
		t.Errorf("State = %q, want idle", r.nav.State())
	}
	if h := r.nav.History(); len(h) != 1 || h[0] != StateIdle {
		t.Errorf("History = %v, want [idle]", h)
	}
}

func TestNavigatorDragPans(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	r.nav.HandleMouseDown(100, 100)
	if r.nav.State() != StatePanning {
		t.Fatalf("State = %q after press, want panning", r.nav.State())
	}
	r.move(150, 120)
	if x, y := r.cam.Translation(); x != 50 || y != 20 {
		t.Errorf("Translation = (%v,%v), want (50,20)", x, y)
	}

	r.clock.Advance(500 * time.Millisecond) // let momentum go stale
	r.nav.HandleMouseUp(150, 120)
	if r.nav.State() != StateIdle {
		t.Errorf("State = %q after slow release, want idle", r.nav.State())
	}
}

func TestNavigatorThrow(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	r.nav.HandleMouseDown(400, 300)
	r.move(380, 300)
	r.move(360, 300)
	r.move(340, 300)
	r.nav.HandleMouseUp(340, 300)

	if r.nav.State() != StateAnimating {
		t.Fatalf("State = %q after fast release, want animating", r.nav.State())
	}
	if !r.refs.Suspended() {
		t.Error("references not suspended during the throw")
	}
	r.settle(t)

	if x, _ := r.cam.Translation(); x >= -60 {
		t.Errorf("X = %v, want the throw to coast past -60", x)
	}
	if r.refs.Suspended() {
		t.Error("references still suspended after the throw")
	}
	want := []StateName{StateIdle, StatePanning, StateAnimating, StateIdle}
	if h := r.nav.History(); len(h) != len(want) {
		t.Errorf("History = %v, want %v", h, want)
	}
}

func TestNavigatorThrowDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseKinetics = false
	r := newNavRig(cfg, squareLevel())
	r.nav.HandleMouseDown(400, 300)
	r.move(380, 300)
	r.move(340, 300)
	r.nav.HandleMouseUp(340, 300)
	if r.nav.State() != StateIdle {
		t.Errorf("State = %q, want idle without kinetics", r.nav.State())
	}
}

func TestNavigatorSnapBack(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	r.nav.HandleMouseDown(0, 300)
	r.move(1200, 300)

	x, _ := r.cam.Translation()
	if !(x > 900 && x < 1200) {
		t.Fatalf("banded X = %v, want between 900 and 1200", x)
	}
	if !r.nav.Panning().NeedsSnapBack() {
		t.Fatal("NeedsSnapBack = false past the limits")
	}
	r.nav.HandleMouseUp(1200, 300)
	if r.nav.State() != StateAnimating {
		t.Fatalf("State = %q, want animating snap-back", r.nav.State())
	}
	r.settle(t)
	if x, y := r.cam.Translation(); x != 900 || y != 0 {
		t.Errorf("Translation = (%v,%v), want (900,0)", x, y)
	}
}

func TestNavigatorHardLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DoBanding = false
	r := newNavRig(cfg, squareLevel())
	r.nav.HandleMouseDown(0, 300)
	r.move(1200, 300)
	if x, _ := r.cam.Translation(); x != 900 {
		t.Errorf("X = %v, want clamped to 900", x)
	}
	r.clock.Advance(time.Second)
	r.nav.HandleMouseUp(1200, 300)
	if r.nav.State() != StateIdle {
		t.Errorf("State = %q, want idle", r.nav.State())
	}
}

func TestNavigatorIgnoresLimitsWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RespectLimits = false
	r := newNavRig(cfg, squareLevel())
	r.nav.HandleMouseDown(0, 300)
	r.move(5000, 300)
	if x, _ := r.cam.Translation(); x != 5000 {
		t.Errorf("X = %v, want 5000", x)
	}
}

func TestNavigatorForcedAnimationIgnoresInput(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	r.nav.FitLevel(true)
	if r.nav.State() != StateAnimating {
		t.Fatalf("State = %q, want animating", r.nav.State())
	}
	r.advance(2)
	r.nav.HandleMouseDown(10, 10)
	r.nav.HandleZoom(10, 10, 3)
	r.nav.HandleClick(10, 10, true)
	r.nav.HandleKey(KeyEvent{Key: KeyLeft})
	r.nav.HandleStop()
	if r.nav.State() != StateAnimating {
		t.Fatalf("State = %q, forced animation was interrupted", r.nav.State())
	}
	r.settle(t)
	if !approxEqual(r.cam.Scale(), 800/(1000*800.0/600*1.1), 1e-9) {
		t.Errorf("Scale = %v after fit, want %v", r.cam.Scale(), 800/(1000*800.0/600*1.1))
	}
	if !approxEqual(r.cam.CenterX(), 500, 1e-6) || !approxEqual(r.cam.CenterY(), 500, 1e-6) {
		t.Errorf("Center = (%v,%v), want (500,500)", r.cam.CenterX(), r.cam.CenterY())
	}
}

func TestNavigatorEscapeAbortsForcedAnimation(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	r.nav.FitLevel(true)
	r.advance(3)
	scale := r.cam.Scale()
	r.nav.HandleKey(KeyEvent{Key: KeyEscape})
	if r.nav.State() != StateIdle {
		t.Fatalf("State = %q after Escape, want idle", r.nav.State())
	}
	r.advance(10)
	if r.cam.Scale() != scale {
		t.Errorf("camera kept moving after abort: %v -> %v", scale, r.cam.Scale())
	}
	if r.frames.Pending() != 0 {
		t.Errorf("Pending = %d after abort, want 0", r.frames.Pending())
	}
	r.nav.HandleAbort() // idle abort is a no-op
	if r.nav.State() != StateIdle {
		t.Errorf("State = %q, want idle", r.nav.State())
	}
}

func TestNavigatorNonForcedAnimationYields(t *testing.T) {
	tests := []struct {
		name  string
		input func(n *Navigator)
		want  StateName
	}{
		{"press pans", func(n *Navigator) { n.HandleMouseDown(10, 10) }, StatePanning},
		{"wheel zooms", func(n *Navigator) { n.HandleZoom(400, 300, 1) }, StateIdle},
		{"key pans", func(n *Navigator) { n.HandleKey(KeyEvent{Key: KeyUp}) }, StateIdle},
		{"stop", func(n *Navigator) { n.HandleStop() }, StateIdle},
		{"abort", func(n *Navigator) { n.HandleAbort() }, StateIdle},
		{"single click ignored", func(n *Navigator) { n.HandleClick(1, 1, false) }, StateAnimating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newNavRig(DefaultConfig(), squareLevel())
			r.nav.NavigateTo(500, 500, 400, false)
			r.advance(2)
			tt.input(r.nav)
			if r.nav.State() != tt.want {
				t.Errorf("State = %q, want %q", r.nav.State(), tt.want)
			}
		})
	}
}

func TestNavigatorWheelForwardedAfterAnimation(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	r.nav.NavigateTo(500, 500, 400, false)
	r.advance(2)
	before := r.cam.Scale()
	r.nav.HandleZoom(400, 300, 1)
	if !approxEqual(r.cam.Scale(), before*1.1, 1e-9) {
		t.Errorf("Scale = %v, want %v", r.cam.Scale(), before*1.1)
	}
}

func TestNavigatorWheelZoom(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	wx, wy := r.cam.ScreenToWorld(200, 150)
	r.nav.HandleZoom(200, 150, 1)
	if !approxEqual(r.cam.Scale(), 1.1, 1e-12) {
		t.Errorf("Scale = %v, want 1.1", r.cam.Scale())
	}
	sx, sy := r.cam.WorldToScreen(wx, wy)
	if !approxEqual(sx, 200, 1e-9) || !approxEqual(sy, 150, 1e-9) {
		t.Errorf("pivot moved to (%v,%v)", sx, sy)
	}

	r.nav.HandleZoom(200, 150, 0)
	r.nav.HandleZoom(200, 150, math.NaN())
	if !approxEqual(r.cam.Scale(), 1.1, 1e-12) {
		t.Errorf("Scale = %v after zero and NaN deltas, want 1.1", r.cam.Scale())
	}
}

func TestNavigatorZoomClampedToMaxScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxScale = 2
	r := newNavRig(cfg, squareLevel())
	r.nav.HandleZoom(400, 300, 50)
	if r.cam.Scale() != 2 {
		t.Errorf("Scale = %v, want 2", r.cam.Scale())
	}
}

func TestNavigatorKeys(t *testing.T) {
	tests := []struct {
		name   string
		ev     KeyEvent
		wantTX float64
		wantTY float64
	}{
		{"left", KeyEvent{Key: KeyLeft}, 50, 0},
		{"right", KeyEvent{Key: KeyRight}, -50, 0},
		{"up", KeyEvent{Key: KeyUp}, 0, 50},
		{"down", KeyEvent{Key: KeyDown}, 0, -50},
		{"shift left", KeyEvent{Key: KeyLeft, Modifiers: ModShift}, 200, 0},
		{"unknown", KeyEvent{Key: KeyUnknown}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newNavRig(DefaultConfig(), squareLevel())
			r.nav.HandleKey(tt.ev)
			if x, y := r.cam.Translation(); x != tt.wantTX || y != tt.wantTY {
				t.Errorf("Translation = (%v,%v), want (%v,%v)", x, y, tt.wantTX, tt.wantTY)
			}
		})
	}
}

func TestNavigatorKeyZoomKeepsCenter(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	r.nav.HandleKey(KeyEvent{Key: KeyZoomIn})
	if !approxEqual(r.cam.Scale(), 1.1, 1e-12) {
		t.Errorf("Scale = %v, want 1.1", r.cam.Scale())
	}
	if !approxEqual(r.cam.CenterX(), 400, 1e-9) || !approxEqual(r.cam.CenterY(), 300, 1e-9) {
		t.Errorf("Center = (%v,%v), want (400,300)", r.cam.CenterX(), r.cam.CenterY())
	}
	r.nav.HandleKey(KeyEvent{Key: KeyZoomOut})
	if !approxEqual(r.cam.Scale(), 1, 1e-12) {
		t.Errorf("Scale = %v, want 1", r.cam.Scale())
	}
}

func TestNavigatorHomeFitsLevel(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	r.nav.HandleKey(KeyEvent{Key: KeyHome})
	r.settle(t)
	if !approxEqual(r.cam.Scale(), 0.5454545454, 1e-6) {
		t.Errorf("Scale = %v, want ~0.54545", r.cam.Scale())
	}
}

func TestNavigatorDoubleClickZooms(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	r.nav.HandleClick(300, 200, false)
	if r.nav.State() != StateIdle {
		t.Fatalf("single click changed state to %q", r.nav.State())
	}
	r.nav.HandleClick(300, 200, true)
	if r.nav.State() != StateAnimating {
		t.Fatalf("State = %q, want animating", r.nav.State())
	}
	r.settle(t)
	if !approxEqual(r.cam.Scale(), 2, 1e-9) {
		t.Errorf("Scale = %v, want 2", r.cam.Scale())
	}
	if !approxEqual(r.cam.CenterX(), 300, 1e-6) || !approxEqual(r.cam.CenterY(), 200, 1e-6) {
		t.Errorf("Center = (%v,%v), want (300,200)", r.cam.CenterX(), r.cam.CenterY())
	}
}

func TestNavigatorZoomWhilePanning(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	r.nav.HandleMouseDown(400, 300)
	r.nav.HandleZoom(400, 300, 1)
	if r.nav.State() != StatePanning {
		t.Fatalf("State = %q, want panning", r.nav.State())
	}
	x0, y0 := r.cam.Translation()
	r.move(410, 300)
	if x, y := r.cam.Translation(); !approxEqual(x, x0+10, 1e-9) || y != y0 {
		t.Errorf("Translation = (%v,%v), want (%v,%v)", x, y, x0+10, y0)
	}
	r.nav.HandleKey(KeyEvent{Key: KeyEscape})
	if r.nav.State() != StateIdle {
		t.Errorf("State = %q after Escape, want idle", r.nav.State())
	}
}

func TestNavigatorPanAcrossLevelSwitch(t *testing.T) {
	root, room, _ := campus()
	r := newNavRig(DefaultConfig(), root)
	centerOn(r.cam, 350, 200, 8)
	if r.refs.Current() != root {
		t.Fatal("descended before the drag")
	}

	r.nav.HandleMouseDown(400, 300)
	r.move(800, 300)
	r.move(1200, 300)
	if r.refs.Current() != room {
		t.Fatalf("Current = %q, want room", r.refs.Current().Name)
	}
	if r.nav.State() != StatePanning {
		t.Fatalf("State = %q, want panning", r.nav.State())
	}

	grabbed := r.cam.CastRayX(1200)
	r.move(1240, 300)
	if got := r.cam.CastRayX(1240); !approxEqual(got, grabbed, 1e-9) {
		t.Errorf("point under the pointer moved from %v to %v", grabbed, got)
	}
	if n := r.nav.Panning().Kinetics.Samples(); n < 4 {
		t.Errorf("kinetics samples = %d, momentum was reset by the level switch", n)
	}
}

func TestNavigatorUnknownTransition(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	if r.nav.Transition(StateDrawing, nil) {
		t.Error("Transition to an unregistered state reported true")
	}
	if r.nav.State() != StateIdle {
		t.Errorf("State = %q, want idle", r.nav.State())
	}
}

type drawingState struct {
	BaseState
	arg    any
	leaves int
}

func (s *drawingState) Name() StateName { return StateDrawing }
func (s *drawingState) Enter(arg any)   { s.arg = arg }
func (s *drawingState) Leave()          { s.leaves++ }

func TestNavigatorCustomState(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	s := &drawingState{BaseState: BaseState{Nav: r.nav}}
	r.nav.Register(s)

	if !r.nav.Transition(StateDrawing, "pen") {
		t.Fatal("Transition to a registered state failed")
	}
	if s.arg != "pen" {
		t.Errorf("Enter arg = %v, want pen", s.arg)
	}
	r.nav.HandleMouseDown(1, 1) // ignored by BaseState
	if r.nav.State() != StateDrawing {
		t.Errorf("State = %q, want drawing", r.nav.State())
	}
	r.nav.HandleAbort()
	if r.nav.State() != StateIdle || s.leaves != 1 {
		t.Errorf("State = %q leaves = %d, want idle and 1", r.nav.State(), s.leaves)
	}
}

func TestNavigatorHistory(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	r.nav.Transition(StateIdle, nil)
	if len(r.nav.History()) != 1 {
		t.Errorf("re-entering idle added history: %v", r.nav.History())
	}
	for i := 0; i < 2*maxHistory; i++ {
		r.nav.HandleMouseDown(0, 0)
		r.nav.HandleStop()
	}
	h := r.nav.History()
	if len(h) != maxHistory {
		t.Errorf("len(History) = %d, want %d", len(h), maxHistory)
	}
	if h[len(h)-1] != StateIdle {
		t.Errorf("last history entry = %q, want idle", h[len(h)-1])
	}
}

func TestNavigatorAnimatingWithoutRequest(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	r.nav.Transition(StateAnimating, nil)
	if r.nav.State() != StateIdle {
		t.Errorf("State = %q, want idle", r.nav.State())
	}
	if r.refs.Suspended() {
		t.Error("references left suspended")
	}
}

func TestNavigatorAnimationThen(t *testing.T) {
	r := newNavRig(DefaultConfig(), squareLevel())
	ran := false
	it := r.nav.Animations().CenterOnWorld(0, 0, 50*time.Millisecond)
	r.nav.Transition(StateAnimating, AnimationRequest{Interpolator: it, Then: func() { ran = true }})
	r.settle(t)
	if !ran {
		t.Error("Then did not run")
	}
}

func TestNavigatorClose(t *testing.T) {
	root, _, _ := campus()
	r := newNavRig(DefaultConfig(), root)
	r.nav.FitLevel(true)
	r.nav.Close()
	if r.nav.State() != StateIdle {
		t.Errorf("State = %q after Close, want idle", r.nav.State())
	}
	if r.refs.Suspended() {
		t.Error("references left suspended after Close")
	}
}

func TestNavigatorRetargetKeepsCallerLevel(t *testing.T) {
	root, room, _ := campus()
	r := newNavRig(DefaultConfig(), root)
	r.nav.NavigateTo(200, 200, 100, false)
	for i := 0; i < 1000 && r.nav.Animating() && !r.refs.IsWithinChildGroup(room); i++ {
		r.advance(1)
	}
	if !r.nav.Animating() || r.refs.Current() != root {
		t.Fatal("want an animation in root with the viewport inside room")
	}

	// Stopping the first flight descends into room; the new target is in
	// root coordinates and must still land there.
	r.nav.NavigateTo(500, 500, 1000, false)
	r.settle(t)

	cx, cy, k, ok := r.refs.Current().MapTo(root, r.cam.CenterX(), r.cam.CenterY())
	if !ok {
		t.Fatal("current level not in the root tree")
	}
	if !approxEqual(cx, 500, 1e-6) || !approxEqual(cy, 500, 1e-6) {
		t.Errorf("center in root = (%.2f,%.2f), want (500,500)", cx, cy)
	}
	if w := r.cam.ProjWidth() * k; !approxEqual(w, 1000, 1e-6) {
		t.Errorf("width in root = %.2f, want 1000", w)
	}
}

func TestNavigatorFitLevelStopsAnimation(t *testing.T) {
	root, room, _ := campus()
	r := newNavRig(DefaultConfig(), root)
	r.nav.NavigateTo(200, 200, 100, false)
	for i := 0; i < 1000 && r.nav.Animating() && !r.refs.IsWithinChildGroup(room); i++ {
		r.advance(1)
	}
	r.nav.FitLevel(false)
	if r.nav.Animating() {
		t.Fatal("FitLevel left the animation running")
	}
	b := r.refs.Current().ContentBounds()
	if c := b.Center(); !approxEqual(r.cam.CenterX(), c.X, 1e-6) || !approxEqual(r.cam.CenterY(), c.Y, 1e-6) {
		t.Errorf("center = (%v,%v), want level center %v", r.cam.CenterX(), r.cam.CenterY(), c)
	}
}
