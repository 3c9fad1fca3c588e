package schedule

import (
	"testing"
	"time"
)

func TestDebouncerFiresOnceAfterQuiet(t *testing.T) {
	c := NewManualClock(epoch)
	d := NewDebouncer(c, 200*time.Millisecond, nil)
	calls := 0

	for range 3 {
		d.Trigger(func() { calls++ })
		c.Advance(50 * time.Millisecond)
	}
	if calls != 0 {
		t.Fatalf("fired during the burst: %d calls", calls)
	}
	if !d.Pending() {
		t.Error("Pending() = false during quiet period")
	}

	c.Advance(149 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("fired before the quiet period elapsed")
	}
	c.Advance(time.Millisecond)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if d.Pending() {
		t.Error("Pending() = true after firing")
	}

	c.Advance(time.Second)
	if calls != 1 {
		t.Errorf("calls = %d after idle, want 1", calls)
	}
}

func TestDebouncerUsesLatestCallback(t *testing.T) {
	c := NewManualClock(epoch)
	d := NewDebouncer(c, 150*time.Millisecond, nil)
	var got []int

	for i := 1; i <= 3; i++ {
		d.Trigger(func() { got = append(got, i) })
	}
	c.Advance(150 * time.Millisecond)

	if len(got) != 1 || got[0] != 3 {
		t.Errorf("got %v, want [3]", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	c := NewManualClock(epoch)
	d := NewDebouncer(c, 100*time.Millisecond, nil)
	fired := false
	d.Trigger(func() { fired = true })

	if !d.Cancel() {
		t.Error("Cancel() should report a pending action")
	}
	if d.Cancel() {
		t.Error("second Cancel() should report nothing pending")
	}
	c.Advance(time.Second)
	if fired {
		t.Error("cancelled action fired")
	}
}

func TestSlotDropsSupersededDispatch(t *testing.T) {
	c := NewManualClock(epoch)
	var queue []func()
	dispatch := func(fn func()) { queue = append(queue, fn) }

	d := NewDebouncer(c, 100*time.Millisecond, dispatch)
	var got []string
	d.Trigger(func() { got = append(got, "old") })
	c.Advance(100 * time.Millisecond) // fires, callback waits in the queue

	d.Trigger(func() { got = append(got, "new") })
	for _, fn := range queue {
		fn()
	}
	queue = nil
	if len(got) != 0 {
		t.Fatalf("superseded callback ran: %v", got)
	}

	c.Advance(100 * time.Millisecond)
	for _, fn := range queue {
		fn()
	}
	if len(got) != 1 || got[0] != "new" {
		t.Errorf("got %v, want [new]", got)
	}
}

func TestFrameThrottleCoalesces(t *testing.T) {
	c := NewManualClock(epoch)
	ft := NewFrameThrottle(ClockFrames{Clock: c, Interval: 16 * time.Millisecond}, nil)
	var commits []float64

	c.Advance(2 * time.Millisecond)
	for _, v := range []float64{100, 180, 240} {
		ft.Request(func() { commits = append(commits, v) })
		c.Advance(time.Millisecond)
	}
	if len(commits) != 0 {
		t.Fatalf("committed before the frame: %v", commits)
	}

	c.Advance(16 * time.Millisecond)
	if len(commits) != 1 || commits[0] != 240 {
		t.Fatalf("commits = %v, want [240]", commits)
	}

	ft.Request(func() { commits = append(commits, 300) })
	if !ft.Pending() {
		t.Error("Pending() = false after request")
	}
	ft.Cancel()
	c.Advance(time.Second)
	if len(commits) != 1 {
		t.Errorf("cancelled frame committed: %v", commits)
	}
}

func TestClockFramesBoundary(t *testing.T) {
	c := NewManualClock(epoch)
	frames := ClockFrames{Clock: c, Interval: 10 * time.Millisecond}
	var at []time.Duration
	record := func() { at = append(at, c.Now().Sub(epoch)) }

	frames.RequestFrame(record) // aligned: next boundary is a full frame away
	c.Advance(13 * time.Millisecond)
	frames.RequestFrame(record) // 7ms to the next boundary
	c.Advance(20 * time.Millisecond)

	if len(at) != 2 || at[0] != 10*time.Millisecond || at[1] != 20*time.Millisecond {
		t.Errorf("frames fired at %v, want [10ms 20ms]", at)
	}
}
