package deepzoom

import "math"

// BandFlags records which navigation limits a proposed camera position
// crossed.
type BandFlags uint8

const (
	BandLeft BandFlags = 1 << iota
	BandTop
	BandRight
	BandBottom
)

// Any reports whether at least one edge was crossed.
func (b BandFlags) Any() bool { return b != 0 }

// bandDamp shrinks an overshoot v past a limit. The result has the sign of v,
// a smaller magnitude, and grows monotonically with |v|. extent is the
// visible world size on that axis and sets how soon resistance builds up.
func bandDamp(v, extent float64) float64 {
	if v == 0 {
		return 0
	}
	if !(extent > 0) {
		return 0
	}
	return v / (1 + math.Log10(1+math.Abs(v)/extent))
}

// bandAxis constrains one axis. lo is the proposed world coordinate of the
// viewport's leading edge and extent the visible world size. It returns the
// constrained leading edge and whether the low or high limit was crossed.
func bandAxis(lo, extent, minLimit, maxLimit float64, elastic bool) (float64, bool, bool) {
	if maxLimit-minLimit < extent {
		// The viewport is wider than the limits: rest centered on them.
		target := (minLimit+maxLimit)/2 - extent/2
		v := lo - target
		if v == 0 {
			return lo, false, false
		}
		out := target
		if elastic {
			out = target + bandDamp(v, extent)
		}
		return out, v < 0, v > 0
	}
	if lo < minLimit {
		if !elastic {
			return minLimit, true, false
		}
		return minLimit + bandDamp(lo-minLimit, extent), true, false
	}
	if hi := lo + extent; hi > maxLimit {
		if !elastic {
			return maxLimit - extent, false, true
		}
		return maxLimit - extent + bandDamp(hi-maxLimit, extent), false, true
	}
	return lo, false, false
}

// constrainTranslation applies limits to a proposed camera translation
// (tx, ty) at the given scale and viewport size. It returns the constrained
// translation and the crossed edges.
func constrainTranslation(tx, ty, scale float64, viewport Rect, limits Limits, elastic bool) (float64, float64, BandFlags) {
	if !(scale > 0) {
		return tx, ty, 0
	}
	extentX := viewport.Width / scale
	extentY := viewport.Height / scale

	var flags BandFlags
	wx, low, high := bandAxis(-tx/scale, extentX, limits.Left, limits.Right, elastic)
	if low {
		flags |= BandLeft
	}
	if high {
		flags |= BandRight
	}
	wy, low, high := bandAxis(-ty/scale, extentY, limits.Top, limits.Bottom, elastic)
	if low {
		flags |= BandTop
	}
	if high {
		flags |= BandBottom
	}
	return -wx * scale, -wy * scale, flags
}
