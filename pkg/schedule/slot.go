package schedule

import (
	"sync"
	"time"
)

// Dispatch runs fn on the goroutine that owns the state fn touches.
type Dispatch func(fn func())

// Inline runs fn immediately on the calling goroutine.
func Inline(fn func()) { fn() }

// Slot holds at most one pending callback. Arming the slot cancels whatever
// was pending, including a callback already handed to the dispatcher but not
// yet run.
//
// A Slot is safe for concurrent use.
type Slot struct {
	dispatch Dispatch

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

// NewSlot creates a slot that delivers callbacks through dispatch.
// A nil dispatch runs callbacks on the timer's goroutine.
func NewSlot(dispatch Dispatch) *Slot {
	if dispatch == nil {
		dispatch = Inline
	}
	return &Slot{dispatch: dispatch}
}

// Arm cancels the pending callback and schedules fn. The schedule function
// receives the wrapped callback and returns the timer it was armed on.
func (s *Slot) Arm(schedule func(fire func()) Timer, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = schedule(func() {
		s.dispatch(func() {
			if !s.claim(gen) {
				return
			}
			fn()
		})
	})
}

// Cancel drops the pending callback. It reports whether one was pending.
func (s *Slot) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.timer != nil
	if pending {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	return pending
}

// Pending reports whether a callback is armed and has not run.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// claim marks generation gen as fired if it is still current.
func (s *Slot) claim(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.timer = nil
	return true
}

// Debouncer delays an action until triggers have been quiet for its delay.
type Debouncer struct {
	clock Clock
	delay time.Duration
	slot  *Slot
}

// NewDebouncer creates a debouncer firing delay after the last trigger.
func NewDebouncer(clock Clock, delay time.Duration, dispatch Dispatch) *Debouncer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Debouncer{clock: clock, delay: delay, slot: NewSlot(dispatch)}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger cancels the pending action and schedules fn after the delay.
func (d *Debouncer) Trigger(fn func()) {
	d.slot.Arm(func(fire func()) Timer { return d.clock.AfterFunc(d.delay, fire) }, fn)
}

// Cancel drops the pending action. It reports whether one was pending.
func (d *Debouncer) Cancel() bool { return d.slot.Cancel() }

// Pending reports whether an action is waiting for the quiet period.
func (d *Debouncer) Pending() bool { return d.slot.Pending() }
