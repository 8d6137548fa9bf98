// Package deepzoom is the navigation core of an infinite pan/zoom diagram
// viewer over a spatially nested scene tree.
//
// deepzoom owns the camera, the input state machine and the level
// bookkeeping. It draws nothing itself: drawing goes through a
// [RenderLayer], and the ebitenhost package provides one backed by
// [Ebitengine].
//
// # Quick start
//
// Build a tree of [ViewGroup] nodes, create a [Diagram] and forward host
// input to it:
//
//	root := deepzoom.NewViewGroup("root", 0, 0, 1000, 800, 1)
//	room := deepzoom.NewViewGroup("room", 100, 100, 200, 150, 0.1)
//	root.AddChild(room)
//
//	d, err := deepzoom.NewDiagram(deepzoom.Options{
//		Viewport: deepzoom.Rect{Width: 800, Height: 600},
//		Render:   layer,
//		Level:    root,
//	})
//	if err != nil {
//		return err
//	}
//	// every frame:
//	d.Update()
//
// # Levels
//
// World coordinates are always the content coordinates of the current
// reference level. When the viewport drifts far enough out of a level the
// [ReferenceManager] ascends to the parent; when the viewport fits inside a
// child group that has contents, it descends. Both switches re-anchor the
// camera with one atomic update so nothing moves on screen.
//
// # Animation
//
// Animations are [Interpolator] values driven by an injected [Clock] and
// [Scheduler]. [Animations] builds the three camera motions: a kinetic
// throw, a linear re-centering and a smooth zoom-pan flight after van Wijk
// and Nuij. Easings come from [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package deepzoom
