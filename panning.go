package deepzoom

// PanningBehavior implements drag panning: it anchors a gesture, moves the
// camera as the pointer moves, applies the navigation limits and feeds the
// kinetics tracker. Any state that pans holds one.
type PanningBehavior struct {
	Kinetics *Kinetics

	// RespectLimits applies the limits at all; Elastic selects banding over
	// hard clamping.
	RespectLimits bool
	Elastic       bool

	camera *Camera
	limits func() (Limits, bool)

	anchorX, anchorY float64
	pressX, pressY   float64
	flags            BandFlags
	active           bool
}

// NewPanningBehavior creates a behavior moving cam. limits reports the
// current navigation limits and whether any apply.
func NewPanningBehavior(cam *Camera, kin *Kinetics, limits func() (Limits, bool), cfg Config) *PanningBehavior {
	if limits == nil {
		limits = func() (Limits, bool) { return Limits{}, false }
	}
	return &PanningBehavior{
		Kinetics:      kin,
		RespectLimits: cfg.RespectLimits,
		Elastic:       cfg.DoBanding,
		camera:        cam,
		limits:        limits,
	}
}

// Begin starts a gesture at screen (x, y), clearing momentum.
func (p *PanningBehavior) Begin(x, y float64) {
	p.Kinetics.Reset()
	p.Reanchor(x, y)
	p.Kinetics.Update(x, y)
}

// Reanchor restarts the drag from the current camera position without
// clearing momentum. Used when the world coordinates changed under an
// active drag.
func (p *PanningBehavior) Reanchor(x, y float64) {
	p.anchorX, p.anchorY = p.camera.Translation()
	p.pressX, p.pressY = x, y
	p.flags = 0
	p.active = true
}

// Drag moves the camera for a pointer at screen (x, y).
func (p *PanningBehavior) Drag(x, y float64) {
	if !p.active {
		p.Begin(x, y)
		return
	}
	tx := p.anchorX + (x - p.pressX)
	ty := p.anchorY + (y - p.pressY)
	p.flags = 0
	if lim, ok := p.activeLimits(); ok {
		tx, ty, p.flags = constrainTranslation(tx, ty, p.camera.Scale(), p.camera.Viewport(), lim, p.Elastic)
	}
	p.Kinetics.Update(x, y)
	p.camera.MoveTo(tx, ty)
}

// End finishes the gesture.
func (p *PanningBehavior) End() { p.active = false }

// Active reports whether a gesture is in progress.
func (p *PanningBehavior) Active() bool { return p.active }

// Violations returns the limit edges crossed by the last drag.
func (p *PanningBehavior) Violations() BandFlags { return p.flags }

// NeedsSnapBack reports whether the view was banded past a limit and has to
// return inside on release.
func (p *PanningBehavior) NeedsSnapBack() bool {
	return p.Elastic && p.flags.Any()
}

// SnapTarget returns the world point to center on so the view rests inside
// the limits at the current scale.
func (p *PanningBehavior) SnapTarget() (x, y float64) {
	tx, ty := p.Constrain(p.camera.Translation())
	vp := p.camera.Viewport()
	s := p.camera.Scale()
	return (vp.Width/2 - tx) / s, (vp.Height/2 - ty) / s
}

// Constrain hard-clamps a proposed translation into the limits. It is the
// constraint handed to throw animations.
func (p *PanningBehavior) Constrain(tx, ty float64) (float64, float64) {
	lim, ok := p.activeLimits()
	if !ok {
		return tx, ty
	}
	tx, ty, _ = constrainTranslation(tx, ty, p.camera.Scale(), p.camera.Viewport(), lim, false)
	return tx, ty
}

func (p *PanningBehavior) activeLimits() (Limits, bool) {
	if !p.RespectLimits {
		return Limits{}, false
	}
	return p.limits()
}
