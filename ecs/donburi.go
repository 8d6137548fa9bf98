package ecs

import (
	"github.com/phanxgames/deepzoom"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CameraEventKind says which camera notification a CameraEvent carries.
type CameraEventKind uint8

const (
	CameraResized CameraEventKind = iota
	CameraPanned
	CameraZoomed
)

func (k CameraEventKind) String() string {
	switch k {
	case CameraResized:
		return "resized"
	case CameraPanned:
		return "panned"
	case CameraZoomed:
		return "zoomed"
	default:
		return "unknown"
	}
}

// CameraEvent is a camera change as seen by an ECS system. X, Y is the
// camera translation and Scale the zoom after the change.
type CameraEvent struct {
	Kind     CameraEventKind
	X, Y     float64
	Scale    float64
	Viewport deepzoom.Rect
}

// LevelEvent reports a reference level switch.
type LevelEvent struct {
	Change deepzoom.LevelChange
	// Path is the slash-separated path of the new level; ID its scene id.
	Path string
	ID   string
	Name string
}

// CameraEventType is the Donburi event type for camera changes.
var CameraEventType = events.NewEventType[CameraEvent]()

// LevelEventType is the Donburi event type for level switches.
var LevelEventType = events.NewEventType[LevelEvent]()

// DonburiBridge publishes deepzoom notifications into a Donburi world. It
// is a deepzoom.CameraObserver; LevelChanged fits
// ReferenceManager.OnLevelChanged.
type DonburiBridge struct {
	world  donburi.World
	camera *deepzoom.Camera
}

// NewDonburiBridge creates a bridge publishing into world. Camera state in
// the events is read from cam when non-nil.
func NewDonburiBridge(world donburi.World, cam *deepzoom.Camera) *DonburiBridge {
	return &DonburiBridge{world: world, camera: cam}
}

func (b *DonburiBridge) OnViewResized() {
	b.publish(CameraResized)
}

func (b *DonburiBridge) OnPanChanged(x, y float64) {
	b.publish(CameraPanned)
}

func (b *DonburiBridge) OnZoomChanged(zoom float64) {
	b.publish(CameraZoomed)
}

func (b *DonburiBridge) publish(kind CameraEventKind) {
	ev := CameraEvent{Kind: kind}
	if b.camera != nil {
		ev.X, ev.Y = b.camera.Translation()
		ev.Scale = b.camera.Scale()
		ev.Viewport = b.camera.Viewport()
	}
	CameraEventType.Publish(b.world, ev)
}

// LevelChanged publishes a LevelEvent for level.
func (b *DonburiBridge) LevelChanged(level *deepzoom.ViewGroup, change deepzoom.LevelChange) {
	if level == nil {
		return
	}
	LevelEventType.Publish(b.world, LevelEvent{
		Change: change,
		Path:   level.Path(),
		ID:     level.ID,
		Name:   level.Name,
	})
}
