package deepzoom

import (
	"testing"
	"time"
)

func TestManualClockAdvance(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewManualClock(start)
	c.Advance(250 * time.Millisecond)
	c.Advance(-time.Second)
	if got := c.Now().Sub(start); got != 250*time.Millisecond {
		t.Errorf("elapsed = %v, want 250ms", got)
	}
}

func TestFrameQueueRunsInOrder(t *testing.T) {
	q := NewFrameQueue()
	var order []int
	q.RequestFrame(func() { order = append(order, 1) })
	q.RequestFrame(func() { order = append(order, 2) })
	if q.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", q.Pending())
	}
	q.Tick()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
	if q.Pending() != 0 {
		t.Errorf("Pending after Tick = %d, want 0", q.Pending())
	}
}

func TestFrameQueueRequestDuringTickRunsNextTick(t *testing.T) {
	q := NewFrameQueue()
	runs := 0
	var fn func()
	fn = func() {
		runs++
		q.RequestFrame(fn)
	}
	q.RequestFrame(fn)
	q.Tick()
	if runs != 1 {
		t.Fatalf("runs = %d after one Tick, want 1", runs)
	}
	q.Tick()
	q.Tick()
	if runs != 3 {
		t.Errorf("runs = %d after three Ticks, want 3", runs)
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	id := q.RequestFrame(func() { ran = true })
	q.CancelFrame(id)
	q.CancelFrame(id)
	q.CancelFrame(9999)
	q.Tick()
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestFrameQueueCancelDuringTick(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	var second FrameID
	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { ran = true })
	q.Tick()
	if ran {
		t.Error("callback cancelled earlier in the same tick still ran")
	}
}
