// Package cli implements the mosaic command-line interface.
//
// The commands browse photo feeds in the terminal, compute layouts and
// visible windows from JSON, run the HTTP layout service and manage the
// response cache. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - browse: Interactive masonry browser for Pexels or a local directory
//   - layout: Compute positions for an item list and write them as JSON
//   - window: Show the items mounted at a scroll offset of a layout file
//   - serve: Run the HTTP layout service
//   - photo: Show one photo's details
//   - cache, config: Manage the response cache and the config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a multi-step operation such as a paged fetch.
type progress struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
	steps  int
}

func newProgress(l *log.Logger) *progress {
	now := time.Now()
	return &progress{logger: l, start: now, last: now}
}

// step logs one finished step at debug level with its own duration.
func (p *progress) step(msg string, keyvals ...any) {
	now := time.Now()
	p.steps++
	keyvals = append(keyvals, "step", p.steps, "took", now.Sub(p.last).Round(time.Millisecond))
	p.last = now
	p.logger.Debug(msg, keyvals...)
}

// done logs msg with the total elapsed time, e.g. "Fetched 90 photos (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
