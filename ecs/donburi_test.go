package ecs

import (
	"testing"

	"github.com/phanxgames/deepzoom"

	"github.com/yohamta/donburi"
)

func TestDonburiBridge_CameraEvents(t *testing.T) {
	world := donburi.NewWorld()
	cam := deepzoom.NewCamera(deepzoom.Rect{Width: 800, Height: 600})
	bridge := NewDonburiBridge(world, cam)
	cam.AttachObserver(bridge)

	var received []CameraEvent
	CameraEventType.Subscribe(world, func(w donburi.World, e CameraEvent) {
		received = append(received, e)
	})

	cam.MoveTo(10, 20)
	cam.ZoomToAbout(2, 0, 0)
	cam.UpdateVisual(0, 0, 640, 480)

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before processing, got %d", len(received))
	}
	CameraEventType.ProcessEvents(world)

	if len(received) != 3 {
		t.Fatalf("expected 3 events, got %d", len(received))
	}
	if received[0].Kind != CameraPanned || received[0].X != 10 || received[0].Y != 20 {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Kind != CameraZoomed || received[1].Scale != 2 {
		t.Errorf("event 1: %+v", received[1])
	}
	if received[2].Kind != CameraResized || received[2].Viewport.Width != 640 {
		t.Errorf("event 2: %+v", received[2])
	}
}

func TestDonburiBridge_ImplementsCameraObserver(t *testing.T) {
	var o deepzoom.CameraObserver = NewDonburiBridge(donburi.NewWorld(), nil)
	_ = o // compile-time interface check
}

func TestDonburiBridge_LevelEvents(t *testing.T) {
	world := donburi.NewWorld()
	cam := deepzoom.NewCamera(deepzoom.Rect{Width: 800, Height: 600})
	bridge := NewDonburiBridge(world, cam)

	root := deepzoom.NewViewGroup("root", 0, 0, 1000, 1000, 1)
	room := deepzoom.NewViewGroup("room", 100, 100, 100, 100, 0.1)
	root.AddChild(room)
	room.AddChild(deepzoom.NewViewGroup("desk", 0, 0, 10, 10, 1))

	refs := deepzoom.NewReferenceManager(cam, nil, deepzoom.DefaultConfig(), nil)
	refs.OnLevelChanged(bridge.LevelChanged)

	var got []LevelEvent
	LevelEventType.Subscribe(world, func(w donburi.World, e LevelEvent) {
		got = append(got, e)
	})

	refs.SetLevel(root)
	refs.Descend(room)
	LevelEventType.ProcessEvents(world)

	if len(got) != 2 {
		t.Fatalf("expected 2 level events, got %d", len(got))
	}
	if got[0].Change != deepzoom.LevelLoaded || got[0].Path != "" {
		t.Errorf("event 0: %+v", got[0])
	}
	if got[1].Change != deepzoom.LevelDescended || got[1].Path != "room" || got[1].Name != "room" {
		t.Errorf("event 1: %+v", got[1])
	}
}

func TestDonburiBridge_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	bridge := NewDonburiBridge(world, nil)

	var count1, count2 int
	CameraEventType.Subscribe(world, func(w donburi.World, e CameraEvent) {
		count1++
	})
	CameraEventType.Subscribe(world, func(w donburi.World, e CameraEvent) {
		count2++
	})

	bridge.OnPanChanged(1, 2)
	bridge.OnZoomChanged(3)
	CameraEventType.ProcessEvents(world)

	if count1 != 2 || count2 != 2 {
		t.Errorf("count1=%d count2=%d, want 2 and 2", count1, count2)
	}
}
