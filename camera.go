package deepzoom

// Camera maps between viewport (screen) space and world space:
//
//	screen = world*scale + translation
//
// Translation is in screen units. The visible world rectangle and its center
// are cached and recomputed on every mutation, before observers run.
type Camera struct {
	cameraX, cameraY float64
	scale            float64
	viewport         Rect

	// derived
	worldX, worldY        float64
	projWidth, projHeight float64
	centerX, centerY      float64

	observers observerRegistry
	// gen counts mutations so a dispatch can tell it was superseded.
	gen uint64
}

// NewCamera creates a Camera at translation (0, 0) and scale 1 with the given
// viewport. A viewport with a non-positive size is accepted; the camera then
// projects an empty world rectangle until UpdateVisual is called.
func NewCamera(viewport Rect) *Camera {
	c := &Camera{scale: 1, viewport: viewport}
	c.recompute()
	return c
}

// recompute refreshes the cached world rectangle.
func (c *Camera) recompute() {
	c.worldX = -c.cameraX / c.scale
	c.worldY = -c.cameraY / c.scale
	c.projWidth = c.viewport.Width / c.scale
	c.projHeight = c.viewport.Height / c.scale
	c.centerX = c.worldX + c.projWidth/2
	c.centerY = c.worldY + c.projHeight/2
}

// AttachObserver registers o for resize, pan and zoom notifications.
// Observers are notified in registration order.
func (c *Camera) AttachObserver(o CameraObserver) ObserverHandle {
	id := c.observers.add(o)
	return ObserverHandle{id: id, reg: &c.observers}
}

// notify dispatches one change. If an observer mutates the camera again, the
// nested change is dispatched in full and the rest of this one is dropped, so
// no observer sees a stale event after a newer one.
func (c *Camera) notify(fn func(CameraObserver)) {
	c.gen++
	gen := c.gen
	c.observers.each(func(o CameraObserver) bool {
		fn(o)
		return c.gen == gen
	})
}

// ObserverCount returns the number of attached observers.
func (c *Camera) ObserverCount() int { return c.observers.len() }

// MoveTo sets the translation so the world origin appears at screen (x, y).
func (c *Camera) MoveTo(x, y float64) {
	if !isFinite(x) || !isFinite(y) {
		return
	}
	c.cameraX = x
	c.cameraY = y
	c.recompute()
	c.notify(func(o CameraObserver) { o.OnPanChanged(x, y) })
}

// MoveBy translates the camera by (dx, dy) screen units.
func (c *Camera) MoveBy(dx, dy float64) {
	c.MoveTo(c.cameraX+dx, c.cameraY+dy)
}

// ZoomToAbout sets the scale to zoom while keeping world point (wx, wy) at
// the same screen position. Non-positive or non-finite zoom values are
// ignored.
func (c *Camera) ZoomToAbout(zoom, wx, wy float64) {
	if !(zoom > 0) || !isFinite(zoom) {
		return
	}
	// The pivot's screen position is wx*scale + cameraX before and must be
	// wx*zoom + cameraX' after.
	c.cameraX += wx * (c.scale - zoom)
	c.cameraY += wy * (c.scale - zoom)
	c.scale = zoom
	c.recompute()
	c.notify(func(o CameraObserver) { o.OnZoomChanged(zoom) })
}

// ZoomAndMoveTo sets scale and translation together and fires a single pan
// notification. Non-positive or non-finite zoom values are ignored.
func (c *Camera) ZoomAndMoveTo(x, y, zoom float64) {
	if !(zoom > 0) || !isFinite(zoom) || !isFinite(x) || !isFinite(y) {
		return
	}
	c.cameraX = x
	c.cameraY = y
	c.scale = zoom
	c.recompute()
	c.notify(func(o CameraObserver) { o.OnPanChanged(x, y) })
}

// UpdateVisual sets the viewport rectangle, typically after the host
// container was resized.
func (c *Camera) UpdateVisual(x, y, w, h float64) {
	c.viewport = Rect{X: x, Y: y, Width: w, Height: h}
	c.recompute()
	c.notify(func(o CameraObserver) { o.OnViewResized() })
}

// CenterOnWorld moves the camera so world point (x, y) is at the viewport
// center without changing the scale.
func (c *Camera) CenterOnWorld(x, y float64) {
	tx, ty := c.translationForCenter(x, y, c.scale)
	c.MoveTo(tx, ty)
}

// translationForCenter returns the translation that puts world (x, y) at the
// viewport center at the given scale.
func (c *Camera) translationForCenter(x, y, scale float64) (float64, float64) {
	return c.viewport.Width/2 - x*scale, c.viewport.Height/2 - y*scale
}

// CastRayX converts a screen X coordinate to world space.
func (c *Camera) CastRayX(sx float64) float64 { return (sx - c.cameraX) / c.scale }

// CastRayY converts a screen Y coordinate to world space.
func (c *Camera) CastRayY(sy float64) float64 { return (sy - c.cameraY) / c.scale }

// InverseRayX converts a world X coordinate to screen space.
func (c *Camera) InverseRayX(wx float64) float64 { return wx*c.scale + c.cameraX }

// InverseRayY converts a world Y coordinate to screen space.
func (c *Camera) InverseRayY(wy float64) float64 { return wy*c.scale + c.cameraY }

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return c.CastRayX(sx), c.CastRayY(sy)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return c.InverseRayX(wx), c.InverseRayY(wy)
}

// Scale returns the zoom factor (screen units per world unit).
func (c *Camera) Scale() float64 { return c.scale }

// Translation returns the screen position of the world origin.
func (c *Camera) Translation() (x, y float64) { return c.cameraX, c.cameraY }

// Viewport returns the screen-space viewport rectangle.
func (c *Camera) Viewport() Rect { return c.viewport }

// VisibleRect returns the visible world rectangle.
func (c *Camera) VisibleRect() Rect {
	return Rect{X: c.worldX, Y: c.worldY, Width: c.projWidth, Height: c.projHeight}
}

// WorldX returns the world X coordinate of the viewport's left edge.
func (c *Camera) WorldX() float64 { return c.worldX }

// WorldY returns the world Y coordinate of the viewport's top edge.
func (c *Camera) WorldY() float64 { return c.worldY }

// ProjWidth returns the visible world width.
func (c *Camera) ProjWidth() float64 { return c.projWidth }

// ProjHeight returns the visible world height.
func (c *Camera) ProjHeight() float64 { return c.projHeight }

// CenterX returns the world X coordinate at the viewport center.
func (c *Camera) CenterX() float64 { return c.centerX }

// CenterY returns the world Y coordinate at the viewport center.
func (c *Camera) CenterY() float64 { return c.centerY }
