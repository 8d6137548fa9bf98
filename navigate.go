package deepzoom

import (
	"math"
	"time"
)

// logFloor keeps logarithm arguments of the zoom-pan solver positive.
const logFloor = 1e-9

// Animations builds Interpolators that move a Camera.
type Animations struct {
	Camera    *Camera
	Clock     Clock
	Scheduler Scheduler
	Config    Config
}

func (a *Animations) newInterpolator(d time.Duration, update func(f float64)) *Interpolator {
	return NewInterpolator(a.Clock, a.Scheduler, d, update)
}

// ThrowCamera continues a released drag. speed is in px/ms and angle in
// radians; decay in [0.001, 0.999] sets how long the throw coasts. The
// camera translation follows
//
//	start + (1 - e^(-rate*f)) * D,  rate = 1/(1-decay)
//
// where D is chosen so the initial velocity matches speed. constrain, when
// non-nil, post-processes every proposed translation.
func (a *Animations) ThrowCamera(speed, angle, decay float64, constrain func(x, y float64) (float64, float64)) *Interpolator {
	decay = clamp(decay, 0.001, 0.999)
	rate := 1 / (1 - decay)
	duration := time.Duration(float64(a.Config.ThrowBaseDuration) * rate)
	if !(speed > 0) || !isFinite(speed) {
		speed = 0
	}
	ms := float64(duration) / float64(time.Millisecond)
	dist := speed * ms / rate
	dx := math.Cos(angle) * dist
	dy := math.Sin(angle) * dist

	cam := a.Camera
	sx, sy := cam.Translation()
	return a.newInterpolator(duration, func(f float64) {
		k := 1 - math.Exp(-rate*f)
		x, y := sx+k*dx, sy+k*dy
		if constrain != nil {
			x, y = constrain(x, y)
		}
		cam.MoveTo(x, y)
	})
}

// CenterOnWorld linearly moves the camera so world (x, y) ends at the
// viewport center. The scale is left unchanged.
func (a *Animations) CenterOnWorld(x, y float64, duration time.Duration) *Interpolator {
	cam := a.Camera
	sx, sy := cam.Translation()
	ex, ey := cam.translationForCenter(x, y, cam.Scale())
	return a.newInterpolator(duration, func(f float64) {
		if f >= 1 {
			cam.MoveTo(ex, ey)
			return
		}
		cam.MoveTo(lerp(sx, ex, f), lerp(sy, ey, f))
	})
}

// NavigateTo animates to show world point (targetX, targetY) at the
// viewport center with targetWidth world units across the viewport. rho is
// the zoom/pan preference and velocity the overall speed.
func (a *Animations) NavigateTo(targetX, targetY, targetWidth, rho, velocity float64) *Interpolator {
	cam := a.Camera
	if !(targetWidth > 0) || !isFinite(targetWidth) {
		targetWidth = cam.ProjWidth()
	}
	w0 := cam.ProjWidth()
	if !(w0 > 0) {
		w0 = targetWidth
	}
	velocity = clamp(orDefault(velocity, 1), 0.01, 3.0)
	path := newZoomPanPath(
		Vec2{X: cam.CenterX(), Y: cam.CenterY()}, w0,
		Vec2{X: targetX, Y: targetY}, targetWidth,
		clamp(orDefault(rho, math.Sqrt2), 0.01, 2.0),
	)
	duration := time.Duration(float64(a.Config.NavigateBaseDuration) * math.Sqrt(1+math.Abs(path.S)) / velocity)
	vw, vh := cam.Viewport().Width, cam.Viewport().Height
	return a.newInterpolator(duration, func(f float64) {
		c, w := path.At(f)
		if !(w > 0) || vw <= 0 {
			return
		}
		scale := vw / w
		cam.ZoomAndMoveTo(vw/2-c.X*scale, vh/2-c.Y*scale, scale)
	})
}

// zoomPanPath is the smooth zoom-pan trajectory of van Wijk and Nuij
// ("Smooth and efficient zooming and panning", 2003), parameterized by the
// fraction f in [0, 1].
type zoomPanPath struct {
	c0, c1 Vec2
	w0, w1 float64
	rho    float64
	// S is the path length in the solver's units.
	S float64

	sameCenter bool
	dist       float64
	r0         float64
}

func newZoomPanPath(c0 Vec2, w0 float64, c1 Vec2, w1, rho float64) zoomPanPath {
	p := zoomPanPath{c0: c0, c1: c1, w0: w0, w1: w1, rho: rho}
	p.dist = math.Hypot(c1.X-c0.X, c1.Y-c0.Y)

	if p.dist < 1e-9*math.Max(w0, w1) {
		p.sameCenter = true
		p.S = math.Log(w1/w0) / math.Sqrt2
		return p
	}

	rho2 := rho * rho
	rho4 := rho2 * rho2
	u1 := p.dist
	b0 := (w1*w1 - w0*w0 + rho4*u1*u1) / (2 * w0 * rho2 * u1)
	b1 := (w1*w1 - w0*w0 - rho4*u1*u1) / (2 * w1 * rho2 * u1)
	p.r0 = math.Log(math.Max(solverRatio(b0), logFloor))
	r1 := math.Log(math.Max(solverRatio(b1), logFloor))
	p.S = (r1 - p.r0) / rho
	return p
}

// solverRatio evaluates -b + sqrt(b²+1) without cancellation for large b.
func solverRatio(b float64) float64 {
	if b > 0 {
		return 1 / (b + math.Sqrt(b*b+1))
	}
	return -b + math.Sqrt(b*b+1)
}

// At returns the view center and visible width at fraction f. f >= 1 lands
// exactly on the target.
func (p zoomPanPath) At(f float64) (Vec2, float64) {
	if f >= 1 {
		return p.c1, p.w1
	}
	if f <= 0 {
		return p.c0, p.w0
	}
	if p.sameCenter {
		return p.c0, p.w0 * math.Exp(math.Sqrt2*f*p.S)
	}
	s := f * p.S
	rho2 := p.rho * p.rho
	u := p.w0 / rho2 * (math.Cosh(p.r0)*math.Tanh(p.rho*s+p.r0) - math.Sinh(p.r0))
	w := p.w0 * math.Cosh(p.r0) / math.Cosh(p.rho*s+p.r0)
	t := u / p.dist
	return Vec2{X: lerp(p.c0.X, p.c1.X, t), Y: lerp(p.c0.Y, p.c1.Y, t)}, w
}
