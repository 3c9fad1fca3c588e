// Package schedule provides cancellable deferred callbacks: debouncing,
// throttle-to-frame and the clocks that drive them.
//
// # Overview
//
// Every deferred action in this package follows the same contract: arming a
// new callback cancels the pending one outright. Nothing is queued and old
// parameters are never merged with new ones. [Slot] implements that contract
// once; [Debouncer] and [FrameThrottle] are thin wrappers that choose when the
// callback fires.
//
//   - [Debouncer] fires after its delay has passed without a new trigger.
//   - [FrameThrottle] fires on the next frame of a [Frames] source, so a burst
//     of requests within one frame commits only the last one.
//
// # Event Loops
//
// Timers fire on their own goroutines. Layout state is not safe for
// concurrent use, so callbacks are handed to a [Dispatch] function that runs
// them on the owner's loop, for example a bubbletea program:
//
//	d := schedule.NewDebouncer(schedule.SystemClock{}, 200*time.Millisecond,
//	    func(fn func()) { program.Send(runMsg(fn)) })
//
// A callback that was dispatched but superseded before it ran is dropped when
// it reaches the loop.
//
// # Testing
//
// [ManualClock] replaces wall time in tests. [ManualClock.Advance] runs due
// callbacks synchronously, in deadline order, on the calling goroutine.
package schedule
