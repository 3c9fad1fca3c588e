// Package viewport turns raw scroll and resize notifications from a
// rendering surface into rate-limited layout updates.
//
// A [Coordinator] applies three policies:
//
//   - Scroll offsets are committed at most once per frame; a burst of scroll
//     events within a frame commits only the last offset.
//   - Reaching the bottom of the scrollable region is debounced (200ms by
//     default), so a feed loads one page per quiet period rather than one
//     per event.
//   - Window resizes are debounced (150ms by default) before the column count
//     is recomputed, and the column callback only fires on an actual change.
//
// Superseding a pending action always cancels it; nothing is queued.
package viewport

import (
	"sync"
	"time"

	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/schedule"
)

// Default coordinator timings and tolerances.
const (
	DefaultBottomDelay = 200 * time.Millisecond
	DefaultResizeDelay = 150 * time.Millisecond
	DefaultTolerance   = 2.0 // px of sub-pixel slack when testing for the bottom
)

// ScrollEvent is what a surface reports on every scroll notification.
type ScrollEvent struct {
	ScrollTop    float64 `json:"scroll_top"`
	OffsetHeight float64 `json:"offset_height"` // visible height of the scroll region
	ScrollHeight float64 `json:"scroll_height"` // total scrollable height
}

// AtBottom reports whether the event is within tolerance of the end of the
// scrollable region.
func (e ScrollEvent) AtBottom(tolerance float64) bool {
	return e.ScrollTop+e.OffsetHeight >= e.ScrollHeight-tolerance
}

// Config holds coordinator timings. Zero values take the package defaults.
type Config struct {
	ColumnWidth float64
	BottomDelay time.Duration
	ResizeDelay time.Duration
	Tolerance   float64
}

func (c Config) withDefaults() Config {
	if c.ColumnWidth <= 0 {
		c.ColumnWidth = masonry.DefaultColumnWidth
	}
	if c.BottomDelay <= 0 {
		c.BottomDelay = DefaultBottomDelay
	}
	if c.ResizeDelay <= 0 {
		c.ResizeDelay = DefaultResizeDelay
	}
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	return c
}

// Handlers receive the coordinator's committed updates. Nil handlers are skipped.
type Handlers struct {
	OnScroll  func(offset float64) // once per frame with the latest offset
	OnBottom  func()               // once per quiet period at the bottom
	OnColumns func(count int)      // when a resize changes the column count
}

// Coordinator rate-limits surface events. Its handlers run through the
// dispatch function it was built with, so they execute on the owner's loop.
type Coordinator struct {
	cfg      Config
	handlers Handlers

	scroll *schedule.FrameThrottle
	bottom *schedule.Debouncer
	resize *schedule.Debouncer

	mu      sync.Mutex
	columns int
}

// Option customizes a Coordinator.
type Option func(*options)

type options struct {
	clock    schedule.Clock
	frames   schedule.Frames
	dispatch schedule.Dispatch
}

// WithClock sets the clock used for the bottom and resize debouncers.
// Unless WithFrames is also given, frames are derived from the same clock.
func WithClock(c schedule.Clock) Option { return func(o *options) { o.clock = c } }

// WithFrames sets the frame source used to throttle scroll commits.
func WithFrames(f schedule.Frames) Option { return func(o *options) { o.frames = f } }

// WithDispatch sets how handlers are delivered to the owner's loop.
func WithDispatch(d schedule.Dispatch) Option { return func(o *options) { o.dispatch = d } }

// New creates a coordinator. initialColumns seeds the column count so the
// first resize only reports a real change.
func New(cfg Config, initialColumns int, h Handlers, opts ...Option) *Coordinator {
	o := options{clock: schedule.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.frames == nil {
		o.frames = schedule.ClockFrames{Clock: o.clock}
	}
	cfg = cfg.withDefaults()

	return &Coordinator{
		cfg:      cfg,
		handlers: h,
		scroll:   schedule.NewFrameThrottle(o.frames, o.dispatch),
		bottom:   schedule.NewDebouncer(o.clock, cfg.BottomDelay, o.dispatch),
		resize:   schedule.NewDebouncer(o.clock, cfg.ResizeDelay, o.dispatch),
		columns:  max(initialColumns, 1),
	}
}

// Config returns the effective configuration.
func (c *Coordinator) Config() Config { return c.cfg }

// Columns returns the last committed column count.
func (c *Coordinator) Columns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.columns
}

// HandleScroll processes one raw scroll event. It reports whether the event
// was at the bottom of the scrollable region.
func (c *Coordinator) HandleScroll(ev ScrollEvent) bool {
	offset := ev.ScrollTop
	c.scroll.Request(func() {
		if c.handlers.OnScroll != nil {
			c.handlers.OnScroll(offset)
		}
	})

	if !ev.AtBottom(c.cfg.Tolerance) {
		return false
	}
	c.bottom.Trigger(func() {
		if c.handlers.OnBottom != nil {
			c.handlers.OnBottom()
		}
	})
	return true
}

// HandleResize processes one raw resize notification carrying the new
// viewport width.
func (c *Coordinator) HandleResize(viewportWidth float64) {
	c.resize.Trigger(func() {
		n := masonry.ColumnCount(viewportWidth, c.cfg.ColumnWidth)
		c.mu.Lock()
		changed := n != c.columns
		c.columns = n
		c.mu.Unlock()
		if changed && c.handlers.OnColumns != nil {
			c.handlers.OnColumns(n)
		}
	})
}

// Pending reports whether any deferred action is armed.
func (c *Coordinator) Pending() bool {
	return c.scroll.Pending() || c.bottom.Pending() || c.resize.Pending()
}

// Close cancels every pending action.
func (c *Coordinator) Close() {
	c.scroll.Cancel()
	c.bottom.Cancel()
	c.resize.Cancel()
}
