package deepzoom

import (
	"math"
	"time"
)

// Kinetics derives a smoothed velocity from a stream of pointer positions and
// decides whether a released drag should continue as an inertial throw.
// Positions are in screen pixels; velocity is in pixels per millisecond.
type Kinetics struct {
	clock Clock

	// Smoothness in [0, 1) weights the previous velocity against the newest
	// instantaneous sample.
	Smoothness float64
	// MinSpeed is the speed (px/ms) a release must exceed to count as a throw.
	MinSpeed float64
	// MaxDelay is how old the last sample may be at release time.
	MaxDelay time.Duration

	samples  int
	lastX    float64
	lastY    float64
	lastTime time.Time
	vx, vy   float64
	speed    float64
	angle    float64
}

// NewKinetics creates a tracker using clock for sample timestamps and the
// tuning values from cfg.
func NewKinetics(clock Clock, cfg Config) *Kinetics {
	return &Kinetics{
		clock:      clock,
		Smoothness: clamp(cfg.KineticSmoothness, 0, 0.999),
		MinSpeed:   cfg.KineticMinSpeed,
		MaxDelay:   cfg.KineticMaxDelay,
	}
}

// Update records a new position sample.
func (k *Kinetics) Update(x, y float64) {
	now := k.clock.Now()
	if k.samples > 0 {
		dt := float64(now.Sub(k.lastTime)) / float64(time.Millisecond)
		if dt > 0 {
			ivx := (x - k.lastX) / dt
			ivy := (y - k.lastY) / dt
			if k.samples == 1 {
				k.vx, k.vy = ivx, ivy
			} else {
				s := k.Smoothness
				k.vx = s*k.vx + (1-s)*ivx
				k.vy = s*k.vy + (1-s)*ivy
			}
			k.speed = math.Hypot(k.vx, k.vy)
			k.angle = math.Atan2(k.vy, k.vx)
			if k.angle == -math.Pi {
				k.angle = math.Pi
			}
		}
	}
	k.lastX, k.lastY = x, y
	k.lastTime = now
	k.samples++
}

// HasEnoughMomentum reports whether the tracked motion should continue after
// release: at least two samples, speed above MinSpeed, and the newest sample
// no older than MaxDelay.
func (k *Kinetics) HasEnoughMomentum() bool {
	if k.samples < 2 {
		return false
	}
	if k.speed <= k.MinSpeed {
		return false
	}
	return k.clock.Now().Sub(k.lastTime) <= k.MaxDelay
}

// Reset clears all samples and derived state.
func (k *Kinetics) Reset() {
	k.samples = 0
	k.lastX, k.lastY = 0, 0
	k.lastTime = time.Time{}
	k.vx, k.vy = 0, 0
	k.speed = 0
	k.angle = 0
}

// Speed returns the smoothed speed in px/ms.
func (k *Kinetics) Speed() float64 { return k.speed }

// Angle returns the direction of motion in radians, in (-π, π].
func (k *Kinetics) Angle() float64 { return k.angle }

// Velocity returns the smoothed velocity components in px/ms.
func (k *Kinetics) Velocity() (vx, vy float64) { return k.vx, k.vy }

// Samples returns the number of samples since the last Reset.
func (k *Kinetics) Samples() int { return k.samples }
