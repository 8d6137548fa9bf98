package deepzoom

import "math"

// keyPanFastFactor multiplies the key pan step while Shift is held.
const keyPanFastFactor = 4

// PanStart is the Enter argument of the panning state.
type PanStart struct {
	X, Y float64
	// KeepMomentum continues the kinetics samples of an interrupted drag.
	KeepMomentum bool
}

// AnimationRequest is the Enter argument of the animating state.
type AnimationRequest struct {
	Interpolator *Interpolator
	// Forced animations ignore pointer and wheel input until they finish.
	Forced bool
	// Then runs after the animation finished and the navigator is idle again.
	Then func()
}

// idleState waits for input.
type idleState struct {
	BaseState
}

func (s *idleState) Name() StateName { return StateIdle }

func (s *idleState) HandleMouseDown(x, y float64) {
	s.Nav.Transition(StatePanning, PanStart{X: x, Y: y})
}

func (s *idleState) HandleZoom(x, y, delta float64) {
	s.Nav.zoomAbout(x, y, math.Pow(s.Nav.cfg.WheelZoomStep, delta))
}

func (s *idleState) HandleClick(x, y float64, double bool) {
	if !double {
		return
	}
	n := s.Nav
	wx, wy := n.camera.ScreenToWorld(x, y)
	n.NavigateTo(wx, wy, n.camera.ProjWidth()/n.cfg.DoubleClickZoom, false)
}

func (s *idleState) HandleKey(ev KeyEvent) {
	n := s.Nav
	step := n.cfg.KeyPanStep
	if ev.Modifiers&ModShift != 0 {
		step *= keyPanFastFactor
	}
	vp := n.camera.Viewport()
	switch ev.Key {
	case KeyLeft:
		n.camera.MoveBy(step, 0)
		n.enforceLimits()
	case KeyRight:
		n.camera.MoveBy(-step, 0)
		n.enforceLimits()
	case KeyUp:
		n.camera.MoveBy(0, step)
		n.enforceLimits()
	case KeyDown:
		n.camera.MoveBy(0, -step)
		n.enforceLimits()
	case KeyZoomIn:
		n.zoomAbout(vp.Width/2, vp.Height/2, n.cfg.WheelZoomStep)
	case KeyZoomOut:
		n.zoomAbout(vp.Width/2, vp.Height/2, 1/n.cfg.WheelZoomStep)
	case KeyHome:
		n.FitLevel(true)
	}
}

// HandleAbort is a no-op: the navigator is already idle.
func (s *idleState) HandleAbort() {}

// panningState follows a held pointer.
type panningState struct {
	BaseState
}

func (s *panningState) Name() StateName { return StatePanning }

func (s *panningState) Enter(arg any) {
	start, _ := arg.(PanStart)
	if start.KeepMomentum {
		s.Nav.pan.Reanchor(start.X, start.Y)
		return
	}
	s.Nav.pan.Begin(start.X, start.Y)
}

func (s *panningState) Leave() {
	s.Nav.pan.End()
}

func (s *panningState) HandleMouseDown(x, y float64) {
	s.Nav.Transition(StatePanning, PanStart{X: x, Y: y})
}

func (s *panningState) HandleMouseMove(x, y float64) {
	s.Nav.pan.Drag(x, y)
}

// HandleMouseUp ends the drag. A view banded past its limits snaps back
// first; otherwise enough momentum turns the release into a throw.
func (s *panningState) HandleMouseUp(x, y float64) {
	n := s.Nav
	pan := n.pan
	switch {
	case pan.NeedsSnapBack():
		cx, cy := pan.SnapTarget()
		n.Animate(n.anim.CenterOnWorld(cx, cy, n.cfg.SnapBackDuration), false)
	case n.cfg.UseKinetics && pan.Kinetics.HasEnoughMomentum():
		k := pan.Kinetics
		n.Animate(n.anim.ThrowCamera(k.Speed(), k.Angle(), n.cfg.InertiaDecay, pan.Constrain), false)
	default:
		n.Transition(StateIdle, nil)
	}
}

// HandleZoom zooms about the pointer and restarts the drag there.
func (s *panningState) HandleZoom(x, y, delta float64) {
	n := s.Nav
	n.zoomAbout(x, y, math.Pow(n.cfg.WheelZoomStep, delta))
	if n.current == State(s) {
		n.Transition(StatePanning, PanStart{X: x, Y: y})
	}
}

func (s *panningState) HandleKey(ev KeyEvent) {
	if ev.Key == KeyEscape {
		s.HandleAbort()
	}
}

func (s *panningState) HandleStop() {
	s.Nav.Transition(StateIdle, nil)
}

// animatingState plays one Interpolator with the ReferenceManager suspended.
type animatingState struct {
	BaseState
	req AnimationRequest
}

func (s *animatingState) Name() StateName { return StateAnimating }

func (s *animatingState) Enter(arg any) {
	req, ok := arg.(AnimationRequest)
	if !ok || req.Interpolator == nil {
		s.Nav.log.warn("animating state entered without an animation")
		s.Nav.Transition(StateIdle, nil)
		return
	}
	s.req = req
	if refs := s.Nav.refs; refs != nil {
		refs.Suspend()
	}
	it := req.Interpolator
	it.OnFinished(func() {
		if s.Nav.current != State(s) || s.req.Interpolator != it {
			return
		}
		then := s.req.Then
		s.Nav.Transition(StateIdle, nil)
		if then != nil {
			then()
		}
	})
	it.Play()
}

func (s *animatingState) Leave() {
	it := s.req.Interpolator
	if it == nil {
		return
	}
	s.req = AnimationRequest{}
	it.Stop()
	if refs := s.Nav.refs; refs != nil {
		refs.Resume()
	}
}

func (s *animatingState) HandleMouseDown(x, y float64) {
	if s.req.Forced {
		return
	}
	s.Nav.Transition(StatePanning, PanStart{X: x, Y: y})
}

func (s *animatingState) HandleZoom(x, y, delta float64) {
	if s.req.Forced {
		return
	}
	n := s.Nav
	n.Transition(StateIdle, nil)
	n.current.HandleZoom(x, y, delta)
}

func (s *animatingState) HandleClick(x, y float64, double bool) {
	if s.req.Forced || !double {
		return
	}
	n := s.Nav
	n.Transition(StateIdle, nil)
	n.current.HandleClick(x, y, double)
}

func (s *animatingState) HandleKey(ev KeyEvent) {
	if ev.Key == KeyEscape {
		s.HandleAbort()
		return
	}
	if s.req.Forced {
		return
	}
	n := s.Nav
	n.Transition(StateIdle, nil)
	n.current.HandleKey(ev)
}

func (s *animatingState) HandleStop() {
	if s.req.Forced {
		return
	}
	s.Nav.Transition(StateIdle, nil)
}

// Forced reports whether the playing animation ignores input.
func (s *animatingState) Forced() bool { return s.req.Forced }
