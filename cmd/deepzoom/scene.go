package main

import "github.com/phanxgames/deepzoom"

// demoScene builds the scene shown when no scene file is given: a campus
// with buildings, rooms and furniture, each level ten times finer than its
// parent.
func demoScene() *deepzoom.ViewGroup {
	campus := deepzoom.NewViewGroup("campus", 0, 0, 2000, 1500, 1)

	library := deepzoom.NewViewGroup("library", 200, 300, 400, 300, 0.1)
	reading := deepzoom.NewViewGroup("reading-room", 200, 200, 1600, 1200, 0.1)
	reading.AddChild(deepzoom.NewViewGroup("desk-a", 2000, 2000, 3000, 1500, 1))
	reading.AddChild(deepzoom.NewViewGroup("desk-b", 8000, 2000, 3000, 1500, 1))
	reading.AddChild(deepzoom.NewViewGroup("shelf", 2000, 7000, 11000, 2000, 1))
	library.AddChild(reading)
	library.AddChild(deepzoom.NewViewGroup("archive", 2200, 200, 1600, 1200, 1))
	campus.AddChild(library)

	lab := deepzoom.NewViewGroup("lab", 900, 300, 500, 400, 0.1)
	lab.AddChild(deepzoom.NewViewGroup("bench-1", 500, 500, 1500, 800, 1))
	lab.AddChild(deepzoom.NewViewGroup("bench-2", 2500, 500, 1500, 800, 1))
	lab.AddChild(deepzoom.NewViewGroup("cleanroom", 500, 2000, 3500, 1500, 1))
	campus.AddChild(lab)

	campus.AddChild(deepzoom.NewViewGroup("gym", 300, 900, 600, 400, 1))
	campus.AddChild(deepzoom.NewViewGroup("pond", 1200, 1000, 500, 300, 1))

	campus.Walk(func(g *deepzoom.ViewGroup) bool {
		g.ID = "demo:" + g.Path()
		return true
	})
	return campus
}
