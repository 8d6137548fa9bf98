package deepzoom

import "math"

// Proxy is a marker on the viewport border standing for one or more child
// groups of the current level that are out of view.
type Proxy struct {
	// X, Y is the marker position in screen coordinates.
	X, Y float64
	// Angle points from the viewport center toward the groups, in radians.
	Angle float64
	// Groups are the off-screen groups the marker stands for.
	Groups []*ViewGroup
}

// Count returns the number of groups merged into the marker.
func (p Proxy) Count() int { return len(p.Groups) }

// Proxies returns border markers for the children of level whose boxes lie
// outside the viewport. Markers sit on the viewport rectangle shrunk by inset
// and markers closer than radius are merged into one. level is expected to
// be the camera's current reference level.
func Proxies(cam *Camera, level *ViewGroup, inset, radius float64) []Proxy {
	if cam == nil || level == nil || !level.HasContents() {
		return nil
	}
	vp := cam.Viewport()
	screen := Rect{Width: vp.Width, Height: vp.Height}
	cx, cy := vp.Width/2, vp.Height/2
	hw := math.Max(vp.Width/2-inset, 0)
	hh := math.Max(vp.Height/2-inset, 0)

	var out []Proxy
	for _, g := range level.Contents {
		b := g.Bounds()
		sx, sy := cam.WorldToScreen(b.X, b.Y)
		sb := Rect{X: sx, Y: sy, Width: b.Width * cam.Scale(), Height: b.Height * cam.Scale()}
		if sb.Intersects(screen) {
			continue
		}
		gc := sb.Center()
		dx, dy := gc.X-cx, gc.Y-cy
		px, py := borderPoint(dx, dy, hw, hh)
		out = mergeProxy(out, Proxy{
			X:      cx + px,
			Y:      cy + py,
			Angle:  math.Atan2(dy, dx),
			Groups: []*ViewGroup{g},
		}, radius)
	}
	return out
}

// borderPoint scales direction (dx, dy) so it ends on the rectangle with
// half extents hw, hh centered at the origin.
func borderPoint(dx, dy, hw, hh float64) (float64, float64) {
	t := math.Inf(1)
	if dx != 0 {
		t = hw / math.Abs(dx)
	}
	if dy != 0 {
		t = math.Min(t, hh/math.Abs(dy))
	}
	if math.IsInf(t, 1) {
		return 0, 0
	}
	return dx * t, dy * t
}

// mergeProxy adds p to list, folding it into the first marker within radius.
// The merged marker moves to the count-weighted mean position.
func mergeProxy(list []Proxy, p Proxy, radius float64) []Proxy {
	if radius > 0 {
		for i := range list {
			q := &list[i]
			if math.Hypot(q.X-p.X, q.Y-p.Y) > radius {
				continue
			}
			n, m := float64(q.Count()), float64(p.Count())
			q.X = (q.X*n + p.X*m) / (n + m)
			q.Y = (q.Y*n + p.Y*m) / (n + m)
			q.Angle = math.Atan2(math.Sin(q.Angle)*n+math.Sin(p.Angle)*m, math.Cos(q.Angle)*n+math.Cos(p.Angle)*m)
			q.Groups = append(q.Groups, p.Groups...)
			return list
		}
	}
	return append(list, p)
}
