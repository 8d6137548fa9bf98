package deepzoom

import (
	"math"
	"testing"
	"time"
)

func TestConfigClampZeroUsesDefaults(t *testing.T) {
	got := Config{}.Clamp()
	d := DefaultConfig()
	if got.InertiaDecay != d.InertiaDecay || got.ZoomPanPreference != d.ZoomPanPreference ||
		got.NavigationVelocity != d.NavigationVelocity || got.WheelZoomStep != d.WheelZoomStep {
		t.Errorf("zero Config clamped to %+v", got)
	}
	if got.NavigateBaseDuration != d.NavigateBaseDuration || got.KineticMaxDelay != d.KineticMaxDelay {
		t.Errorf("durations not defaulted: %v %v", got.NavigateBaseDuration, got.KineticMaxDelay)
	}
	// booleans are taken as given
	if got.UseKinetics || got.RespectLimits || got.DoBanding {
		t.Error("zero booleans were changed")
	}
}

func TestConfigClampRanges(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		get  func(Config) float64
		want float64
	}{
		{"decay high", Config{InertiaDecay: 5}, func(c Config) float64 { return c.InertiaDecay }, 0.999},
		{"decay low", Config{InertiaDecay: -1}, func(c Config) float64 { return c.InertiaDecay }, 0.001},
		{"rho high", Config{ZoomPanPreference: 9}, func(c Config) float64 { return c.ZoomPanPreference }, 2},
		{"rho low", Config{ZoomPanPreference: 0.0001}, func(c Config) float64 { return c.ZoomPanPreference }, 0.01},
		{"velocity high", Config{NavigationVelocity: 10}, func(c Config) float64 { return c.NavigationVelocity }, 3},
		{"velocity NaN", Config{NavigationVelocity: math.NaN()}, func(c Config) float64 { return c.NavigationVelocity }, 1},
		{"min scale negative", Config{MinScale: -3}, func(c Config) float64 { return c.MinScale }, 1e-4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.get(tt.in.Clamp()); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigClampSwapsScaleBounds(t *testing.T) {
	c := Config{MinScale: 10, MaxScale: 0.5}.Clamp()
	if c.MinScale != 0.5 || c.MaxScale != 10 {
		t.Errorf("scale bounds = [%v, %v], want [0.5, 10]", c.MinScale, c.MaxScale)
	}
}

func TestConfigClampKeepsValid(t *testing.T) {
	in := DefaultConfig()
	in.InertiaDecay = 0.5
	in.SnapBackDuration = time.Second
	out := in.Clamp()
	if out != in {
		t.Errorf("Clamp changed a valid config:\n got %+v\nwant %+v", out, in)
	}
}

func TestParseKey(t *testing.T) {
	for k := KeyLeft; k <= KeyEscape; k++ {
		if got := ParseKey(k.String()); got != k {
			t.Errorf("ParseKey(%q) = %v, want %v", k.String(), got, k)
		}
	}
	aliases := map[string]Key{"+": KeyZoomIn, "=": KeyZoomIn, " Minus ": KeyZoomOut, "ESC": KeyEscape, "f1": KeyUnknown}
	for s, want := range aliases {
		if got := ParseKey(s); got != want {
			t.Errorf("ParseKey(%q) = %v, want %v", s, got, want)
		}
	}
	if KeyUnknown.String() != "unknown" {
		t.Errorf("KeyUnknown.String() = %q", KeyUnknown.String())
	}
}
