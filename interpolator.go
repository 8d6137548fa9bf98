package deepzoom

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing remaps a linear time fraction. Any gween/ease function works, e.g.
// ease.OutCubic. Easings are evaluated on the [0, 1] fraction only.
type Easing = ease.TweenFunc

// Interpolator drives update with a fraction in [0, 1] over Duration, one
// call per scheduled frame. The final call always receives exactly 1.0,
// after which OnFinished fires once.
//
// An Interpolator is single-use: Play after completion is a no-op.
type Interpolator struct {
	Duration time.Duration
	Easing   Easing

	update     func(f float64)
	onFinished func()

	clock     Clock
	scheduler Scheduler

	timeline   *gween.Tween
	timelineMs float32
	// playedMs is how far the timeline has been advanced.
	playedMs float32
	start    time.Time

	frame    FrameID
	running  bool
	finished bool
}

// NewInterpolator creates an Interpolator. A non-positive duration is
// clamped to one millisecond.
func NewInterpolator(clock Clock, scheduler Scheduler, duration time.Duration, update func(f float64)) *Interpolator {
	if duration <= 0 {
		duration = time.Millisecond
	}
	return &Interpolator{
		Duration:  duration,
		update:    update,
		clock:     clock,
		scheduler: scheduler,
	}
}

// OnFinished sets the completion callback, replacing any previous one.
func (it *Interpolator) OnFinished(fn func()) {
	it.onFinished = fn
}

// Play starts the animation on the next frame.
func (it *Interpolator) Play() {
	if it.running || it.finished {
		return
	}
	easing := it.Easing
	if easing == nil {
		easing = ease.Linear
	}
	ms := float32(it.Duration) / float32(time.Millisecond)
	if ms <= 0 {
		ms = 1
	}
	it.timeline = gween.New(0, 1, ms, easing)
	it.timelineMs = ms
	it.playedMs = 0
	it.start = it.clock.Now()
	it.running = true
	it.frame = it.scheduler.RequestFrame(it.step)
}

// step is the per-frame callback.
func (it *Interpolator) step() {
	if !it.running {
		return
	}
	elapsed := float64(it.clock.Now().Sub(it.start)) / float64(it.Duration)
	if elapsed < 0 {
		elapsed = 0
	}

	if elapsed >= 1 {
		update, done := it.update, it.onFinished
		it.running = false
		it.finished = true
		it.update = nil
		it.onFinished = nil
		if update != nil {
			update(1)
		}
		if done != nil {
			done()
		}
		return
	}

	at := float32(elapsed) * it.timelineMs
	v, _ := it.timeline.Update(at - it.playedMs)
	it.playedMs = at
	f := clamp(float64(v), 0, 1)
	it.frame = it.scheduler.RequestFrame(it.step)
	if it.update != nil {
		it.update(f)
	}
}

// Stop cancels the pending frame and drops the callbacks. Stopping an
// Interpolator that is not running is a no-op.
func (it *Interpolator) Stop() {
	if !it.running {
		return
	}
	it.running = false
	it.scheduler.CancelFrame(it.frame)
	it.update = nil
	it.onFinished = nil
}

// Running reports whether the animation is playing.
func (it *Interpolator) Running() bool { return it.running }

// Finished reports whether the animation ran to completion.
func (it *Interpolator) Finished() bool { return it.finished }

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}
