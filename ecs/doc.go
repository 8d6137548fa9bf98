// Package ecs bridges deepzoom camera and level changes into a [Donburi]
// world as typed events.
//
// Usage:
//
//	bridge := ecs.NewDonburiBridge(world)
//	handle := diagram.Camera().AttachObserver(bridge)
//	levels := diagram.References().OnLevelChanged(bridge.LevelChanged)
//
// Subscribe to [CameraEventType] or [LevelEventType] in your systems and
// drain them with ProcessEvents once per frame.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
