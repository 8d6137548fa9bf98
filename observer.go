package deepzoom

// CameraObserver receives camera change notifications. Calls are synchronous
// and happen after the camera's derived fields have been recomputed.
type CameraObserver interface {
	OnViewResized()
	OnPanChanged(x, y float64)
	OnZoomChanged(zoom float64)
}

// ObserverFuncs adapts plain functions to CameraObserver. Nil fields are
// skipped.
type ObserverFuncs struct {
	ViewResized func()
	PanChanged  func(x, y float64)
	ZoomChanged func(zoom float64)
}

func (f ObserverFuncs) OnViewResized() {
	if f.ViewResized != nil {
		f.ViewResized()
	}
}

func (f ObserverFuncs) OnPanChanged(x, y float64) {
	if f.PanChanged != nil {
		f.PanChanged(x, y)
	}
}

func (f ObserverFuncs) OnZoomChanged(zoom float64) {
	if f.ZoomChanged != nil {
		f.ZoomChanged(zoom)
	}
}

type observerEntry struct {
	id uint32
	o  CameraObserver
}

// observerRegistry is an ordered, id-tagged observer list.
type observerRegistry struct {
	entries []observerEntry
	nextID  uint32
	// snapshot is reused between dispatches to avoid allocating per event.
	snapshot []observerEntry
}

func (r *observerRegistry) add(o CameraObserver) uint32 {
	r.nextID++
	r.entries = append(r.entries, observerEntry{id: r.nextID, o: o})
	return r.nextID
}

func (r *observerRegistry) remove(id uint32) bool {
	for i := range r.entries {
		if r.entries[i].id == id {
			copy(r.entries[i:], r.entries[i+1:])
			r.entries[len(r.entries)-1] = observerEntry{}
			r.entries = r.entries[:len(r.entries)-1]
			return true
		}
	}
	return false
}

func (r *observerRegistry) len() int { return len(r.entries) }

// each calls fn for every observer registered when the dispatch started,
// stopping early once fn returns false. Observers removed during the
// dispatch still receive the current event.
func (r *observerRegistry) each(fn func(CameraObserver) bool) {
	if len(r.entries) == 0 {
		return
	}
	snap := append(r.snapshot[:0], r.entries...)
	r.snapshot = nil // nested dispatches get their own buffer
	for _, e := range snap {
		if !fn(e.o) {
			break
		}
	}
	clear(snap)
	r.snapshot = snap[:0]
}

// ObserverHandle allows removing an observer attached with
// Camera.AttachObserver.
type ObserverHandle struct {
	id  uint32
	reg *observerRegistry
}

// Remove detaches the observer. Removing twice, or removing a zero handle,
// is a no-op.
func (h ObserverHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.id)
}
