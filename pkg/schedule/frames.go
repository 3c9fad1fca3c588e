package schedule

import "time"

// DefaultFrameInterval is one frame at 60 Hz.
const DefaultFrameInterval = time.Second / 60

// Frames schedules callbacks for the next rendered frame.
type Frames interface {
	RequestFrame(fn func()) Timer
}

// ClockFrames derives frame boundaries from a Clock: frames start at every
// multiple of Interval since the Unix epoch.
type ClockFrames struct {
	Clock    Clock
	Interval time.Duration // defaults to DefaultFrameInterval
}

// RequestFrame runs fn at the next frame boundary strictly after now.
func (f ClockFrames) RequestFrame(fn func()) Timer {
	clock := f.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	interval := f.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	elapsed := time.Duration(clock.Now().UnixNano() % int64(interval))
	return clock.AfterFunc(interval-elapsed, fn)
}

// FrameThrottle commits at most one callback per frame. A request made while
// another is pending replaces it.
type FrameThrottle struct {
	frames Frames
	slot   *Slot
}

// NewFrameThrottle creates a throttle on the given frame source.
func NewFrameThrottle(frames Frames, dispatch Dispatch) *FrameThrottle {
	if frames == nil {
		frames = ClockFrames{}
	}
	return &FrameThrottle{frames: frames, slot: NewSlot(dispatch)}
}

// Request cancels the pending frame callback and requests fn for the next frame.
func (f *FrameThrottle) Request(fn func()) {
	f.slot.Arm(f.frames.RequestFrame, fn)
}

// Cancel drops the pending frame callback. It reports whether one was pending.
func (f *FrameThrottle) Cancel() bool { return f.slot.Cancel() }

// Pending reports whether a frame callback is waiting.
func (f *FrameThrottle) Pending() bool { return f.slot.Pending() }
