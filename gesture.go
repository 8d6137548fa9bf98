package deepzoom

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned for a gesture script without steps.
var ErrEmptyScript = errors.New("deepzoom: gesture script has no steps")

// gestureStep is a single action of a gesture script.
type gestureStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Shift  bool    `json:"shift,omitempty"`
	Path   string  `json:"path,omitempty"`
}

type gestureScript struct {
	Steps []gestureStep `json:"steps"`
}

// Checkpoint is the camera and level state captured by a "checkpoint" step.
type Checkpoint struct {
	Label   string
	Frame   int
	Scale   float64
	CenterX float64
	CenterY float64
	Level   string
	State   StateName
}

// GestureRunner replays a scripted sequence of input events across frames.
// Attach it to a Diagram with SetGestureRunner; Diagram.Update advances it.
type GestureRunner struct {
	steps     []gestureStep
	cursor    int
	waitCount int
	frame     int
	done      bool

	checkpoints []Checkpoint
	errs        []error
}

// LoadGestureScript parses a JSON gesture script:
//
//	{"steps": [
//	  {"action": "drag", "fromX": 400, "fromY": 300, "toX": 200, "toY": 300, "frames": 10},
//	  {"action": "wheel", "x": 400, "y": 300, "delta": 3},
//	  {"action": "doubleclick", "x": 420, "y": 310},
//	  {"action": "settle"},
//	  {"action": "checkpoint", "label": "zoomed"}
//	]}
//
// Supported actions are click, doubleclick, press, move, release, drag,
// wheel, key, wait, settle, navigate, fit, abort and checkpoint.
func LoadGestureScript(jsonData []byte) (*GestureRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: %w", ErrEmptyScript)
	}
	for i, st := range script.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "key" && ParseKey(st.Key) == KeyUnknown {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown key %q", i, st.Key)
		}
	}
	return &GestureRunner{steps: script.Steps}, nil
}

func knownAction(a string) bool {
	switch a {
	case "click", "doubleclick", "press", "move", "release", "drag", "wheel",
		"key", "wait", "settle", "navigate", "fit", "abort", "checkpoint":
		return true
	}
	return false
}

// Done reports whether every step has run and its input was consumed.
func (r *GestureRunner) Done() bool { return r.done }

// Checkpoints returns the states captured so far.
func (r *GestureRunner) Checkpoints() []Checkpoint {
	return append([]Checkpoint(nil), r.checkpoints...)
}

// Errors returns the errors of steps that could not be carried out.
func (r *GestureRunner) Errors() []error {
	return append([]error(nil), r.errs...)
}

// step advances the runner by one frame. Called from Diagram.Update before
// injected input is processed.
func (r *GestureRunner) step(d *Diagram) {
	if r.done {
		return
	}
	r.frame++
	// Wait for pending injections to drain before advancing.
	if len(d.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]

	if st.Action == "settle" && d.nav.Animating() {
		// Hold the cursor until the running animation finishes.
		return
	}
	r.cursor++

	switch st.Action {
	case "click":
		d.InjectClick(st.X, st.Y)
	case "doubleclick":
		d.InjectDoubleClick(st.X, st.Y)
	case "press":
		d.InjectPress(st.X, st.Y)
	case "move":
		d.InjectMove(st.X, st.Y)
	case "release":
		d.InjectRelease(st.X, st.Y)
	case "drag":
		d.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		d.InjectWheel(st.X, st.Y, st.Delta)
	case "key":
		ev := KeyEvent{Key: ParseKey(st.Key)}
		if st.Shift {
			ev.Modifiers |= ModShift
		}
		d.InjectKey(ev)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "navigate":
		if err := d.NavigateToLevel(st.Path); err != nil {
			r.errs = append(r.errs, fmt.Errorf("step %d: %w", r.cursor-1, err))
		}
	case "fit":
		d.nav.FitLevel(true)
	case "abort":
		d.nav.HandleAbort()
	case "checkpoint":
		r.checkpoints = append(r.checkpoints, d.checkpoint(st.Label, r.frame))
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(d.injectQueue) == 0 {
		r.done = true
	}
}
