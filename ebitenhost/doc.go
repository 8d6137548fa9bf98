// Package ebitenhost runs a deepzoom Diagram in an [Ebitengine] window.
//
// It polls mouse, wheel and keyboard input each tick, forwards it to the
// diagram and draws the current level with [CanvasLayer]:
//
//	layer := ebitenhost.NewCanvasLayer()
//	d, err := deepzoom.NewDiagram(deepzoom.Options{
//		Viewport: deepzoom.Rect{Width: 1280, Height: 720},
//		Render:   layer,
//		Level:    root,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(ebitenhost.Run(d, layer, ebitenhost.RunConfig{Title: "Campus", Width: 1280, Height: 720}))
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost
