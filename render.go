package deepzoom

// RenderLayer is the drawing backend of a Diagram. It observes the camera
// for redraws and receives the reference level whenever it changes. How it
// draws is up to the implementation (immediate-mode canvas, retained scene
// graph, or nothing at all).
type RenderLayer interface {
	CameraObserver
	// SetModel replaces the level being drawn.
	SetModel(level *ViewGroup)
	// Update signals that the contents of level changed in place.
	Update(level *ViewGroup)
}

// RecordingLayer is a headless RenderLayer that counts notifications and
// remembers the last model. It backs replays and tests.
type RecordingLayer struct {
	Model *ViewGroup

	Resizes   int
	Pans      int
	Zooms     int
	SetModels int
	Updates   int

	LastPanX, LastPanY float64
	LastZoom           float64
}

// NewRecordingLayer creates an empty RecordingLayer.
func NewRecordingLayer() *RecordingLayer {
	return &RecordingLayer{}
}

func (r *RecordingLayer) OnViewResized() { r.Resizes++ }

func (r *RecordingLayer) OnPanChanged(x, y float64) {
	r.Pans++
	r.LastPanX, r.LastPanY = x, y
}

func (r *RecordingLayer) OnZoomChanged(zoom float64) {
	r.Zooms++
	r.LastZoom = zoom
}

func (r *RecordingLayer) SetModel(level *ViewGroup) {
	r.SetModels++
	r.Model = level
}

func (r *RecordingLayer) Update(level *ViewGroup) {
	r.Updates++
	r.Model = level
}

// Notifications returns the total number of camera notifications received.
func (r *RecordingLayer) Notifications() int {
	return r.Resizes + r.Pans + r.Zooms
}
