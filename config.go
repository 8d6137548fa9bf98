package deepzoom

import (
	"math"
	"time"
)

// Config holds the host-supplied navigation settings. Values are clamped by
// Clamp before use; out-of-range input is never an error.
type Config struct {
	// InertiaDecay controls how quickly a throw decelerates, in [0.001, 0.999].
	InertiaDecay float64 `koanf:"inertia_decay" yaml:"inertia_decay"`
	// ZoomPanPreference trades pan-first against zoom-first navigation
	// paths, in [0.01, 2.0].
	ZoomPanPreference float64 `koanf:"zoom_pan_preference" yaml:"zoom_pan_preference"`
	// NavigationVelocity scales navigate-to speed, in [0.01, 3.0].
	NavigationVelocity float64 `koanf:"navigation_velocity" yaml:"navigation_velocity"`

	UseKinetics   bool `koanf:"use_kinetics" yaml:"use_kinetics"`
	RespectLimits bool `koanf:"respect_limits" yaml:"respect_limits"`
	DoBanding     bool `koanf:"do_banding" yaml:"do_banding"`

	// OverscrollMargin grows the level bounds by this fraction of the level
	// size on each side to form the navigation limits.
	OverscrollMargin float64 `koanf:"overscroll_margin" yaml:"overscroll_margin"`
	// ParentDrift grows the current level bounds by this fraction when
	// testing whether the viewport has left the level.
	ParentDrift float64 `koanf:"parent_drift" yaml:"parent_drift"`

	// WheelZoomStep is the zoom factor applied per wheel unit.
	WheelZoomStep float64 `koanf:"wheel_zoom_step" yaml:"wheel_zoom_step"`
	// DoubleClickZoom is the magnification of a double-click navigation.
	DoubleClickZoom float64 `koanf:"double_click_zoom" yaml:"double_click_zoom"`
	// KeyPanStep is the distance in pixels an arrow key pans.
	KeyPanStep float64 `koanf:"key_pan_step" yaml:"key_pan_step"`
	MinScale   float64 `koanf:"min_scale" yaml:"min_scale"`
	MaxScale   float64 `koanf:"max_scale" yaml:"max_scale"`

	KineticSmoothness float64       `koanf:"kinetic_smoothness" yaml:"kinetic_smoothness"`
	KineticMinSpeed   float64       `koanf:"kinetic_min_speed" yaml:"kinetic_min_speed"`
	KineticMaxDelay   time.Duration `koanf:"kinetic_max_delay" yaml:"kinetic_max_delay"`

	ThrowBaseDuration    time.Duration `koanf:"throw_base_duration" yaml:"throw_base_duration"`
	NavigateBaseDuration time.Duration `koanf:"navigate_base_duration" yaml:"navigate_base_duration"`
	SnapBackDuration     time.Duration `koanf:"snap_back_duration" yaml:"snap_back_duration"`

	// Debug enables diagnostic logging.
	Debug bool `koanf:"debug" yaml:"debug"`
}

// DefaultConfig returns the settings used when the host supplies none.
func DefaultConfig() Config {
	return Config{
		InertiaDecay:         0.9,
		ZoomPanPreference:    1.4,
		NavigationVelocity:   1,
		UseKinetics:          true,
		RespectLimits:        true,
		DoBanding:            true,
		OverscrollMargin:     0.9,
		ParentDrift:          0.6,
		WheelZoomStep:        1.1,
		DoubleClickZoom:      2,
		KeyPanStep:           50,
		MinScale:             1e-4,
		MaxScale:             1e4,
		KineticSmoothness:    0.5,
		KineticMinSpeed:      0.1,
		KineticMaxDelay:      80 * time.Millisecond,
		ThrowBaseDuration:    100 * time.Millisecond,
		NavigateBaseDuration: 600 * time.Millisecond,
		SnapBackDuration:     250 * time.Millisecond,
	}
}

// Clamp returns a copy of c with every value forced into its valid range.
// Zero tuning values fall back to the defaults.
func (c Config) Clamp() Config {
	d := DefaultConfig()
	out := c
	out.InertiaDecay = clamp(orDefault(c.InertiaDecay, d.InertiaDecay), 0.001, 0.999)
	out.ZoomPanPreference = clamp(orDefault(c.ZoomPanPreference, d.ZoomPanPreference), 0.01, 2.0)
	out.NavigationVelocity = clamp(orDefault(c.NavigationVelocity, d.NavigationVelocity), 0.01, 3.0)
	out.OverscrollMargin = clamp(orDefault(c.OverscrollMargin, d.OverscrollMargin), 0, 10)
	out.ParentDrift = clamp(orDefault(c.ParentDrift, d.ParentDrift), 0, 10)
	out.WheelZoomStep = clamp(orDefault(c.WheelZoomStep, d.WheelZoomStep), 1.001, 4)
	out.DoubleClickZoom = clamp(orDefault(c.DoubleClickZoom, d.DoubleClickZoom), 1.01, 100)
	out.KeyPanStep = clamp(orDefault(c.KeyPanStep, d.KeyPanStep), 1, 10000)
	out.MinScale = positiveOr(c.MinScale, d.MinScale)
	out.MaxScale = positiveOr(c.MaxScale, d.MaxScale)
	if out.MaxScale < out.MinScale {
		out.MinScale, out.MaxScale = out.MaxScale, out.MinScale
	}
	out.KineticSmoothness = clamp(c.KineticSmoothness, 0, 0.999)
	out.KineticMinSpeed = positiveOr(c.KineticMinSpeed, d.KineticMinSpeed)
	if out.KineticMaxDelay <= 0 {
		out.KineticMaxDelay = d.KineticMaxDelay
	}
	if out.ThrowBaseDuration <= 0 {
		out.ThrowBaseDuration = d.ThrowBaseDuration
	}
	if out.NavigateBaseDuration <= 0 {
		out.NavigateBaseDuration = d.NavigateBaseDuration
	}
	if out.SnapBackDuration <= 0 {
		out.SnapBackDuration = d.SnapBackDuration
	}
	return out
}

// orDefault returns def when v is unset (zero or NaN).
func orDefault(v, def float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return def
	}
	return v
}

// positiveOr returns def when v is not a positive finite number.
func positiveOr(v, def float64) float64 {
	if !(v > 0) || !isFinite(v) {
		return def
	}
	return v
}
