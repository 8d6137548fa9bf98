package deepzoom

type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
	synthClick
	synthWheel
	synthKey
)

// syntheticEvent is one queued input event. Coordinates are screen pixels
// relative to the viewport, exactly as the host would deliver them.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	delta  float64
	double bool
	key    KeyEvent
}

// InjectPress queues a pointer press at screen (x, y). Queued events are
// consumed one per Update.
func (d *Diagram) InjectPress(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthPress, x: x, y: y})
}

// InjectMove queues a pointer move with the button held.
func (d *Diagram) InjectMove(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthMove, x: x, y: y})
}

// InjectRelease queues a pointer release.
func (d *Diagram) InjectRelease(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthRelease, x: x, y: y})
}

// InjectClick queues a single click. Consumes one frame.
func (d *Diagram) InjectClick(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthClick, x: x, y: y})
}

// InjectDoubleClick queues a double click. Consumes one frame.
func (d *Diagram) InjectDoubleClick(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthClick, x: x, y: y, double: true})
}

// InjectWheel queues wheel input at screen (x, y). Positive delta zooms in.
func (d *Diagram) InjectWheel(x, y, delta float64) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthWheel, x: x, y: y, delta: delta})
}

// InjectKey queues a key press.
func (d *Diagram) InjectKey(ev KeyEvent) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthKey, key: ev})
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, a final move and release at (toX, toY). The sequence
// consumes frames+1 frames; frames below 2 is raised to 2.
func (d *Diagram) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	d.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		d.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	d.InjectMove(toX, toY)
	d.InjectRelease(toX, toY)
}

// Pending returns the number of queued synthetic events.
func (d *Diagram) Pending() int { return len(d.injectQueue) }

// processInjectedInput pops one queued event and delivers it to the
// navigator. It reports whether an event was consumed, in which case the
// host's real input for the frame should be skipped.
func (d *Diagram) processInjectedInput() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	evt := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	switch evt.kind {
	case synthPress:
		d.nav.HandleMouseDown(evt.x, evt.y)
	case synthMove:
		d.nav.HandleMouseMove(evt.x, evt.y)
	case synthRelease:
		d.nav.HandleMouseUp(evt.x, evt.y)
	case synthClick:
		d.nav.HandleClick(evt.x, evt.y, evt.double)
	case synthWheel:
		d.nav.HandleZoom(evt.x, evt.y, evt.delta)
	case synthKey:
		d.nav.HandleKey(evt.key)
	}
	return true
}
