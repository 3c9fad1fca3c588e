package feed

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/observability"
)

// DefaultPerPage is the page size requested when none is configured.
const DefaultPerPage = 30

// Feed accumulates the pages of a Source. It is safe for concurrent use.
type Feed struct {
	perPage int
	logger  *log.Logger

	mu       sync.Mutex
	src      Source
	photos   []Photo
	page     int
	next     int
	err      error
	inflight *call
	gen      int
}

type call struct {
	done   chan struct{}
	change masonry.Change
	err    error
}

// Option configures a Feed.
type Option func(*Feed)

// WithPerPage sets the page size. Values below 1 keep the default.
func WithPerPage(n int) Option {
	return func(f *Feed) {
		if n > 0 {
			f.perPage = n
		}
	}
}

// WithLogger sets the logger used for page loads.
func WithLogger(l *log.Logger) Option {
	return func(f *Feed) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates a Feed over src. Nothing is fetched until LoadNext.
func New(src Source, opts ...Option) *Feed {
	f := &Feed{
		src:     src,
		perPage: DefaultPerPage,
		logger:  log.Default(),
		next:    1,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// LoadNext fetches the next page and appends it. A call made while another
// load is in flight waits for that load and returns its result instead of
// issuing a second request. Once the source is exhausted LoadNext returns
// Appended(0) without fetching.
//
// On failure the accumulated photos are unchanged, the error is kept in Err
// and the returned change is Appended(0).
func (f *Feed) LoadNext(ctx context.Context) (masonry.Change, error) {
	f.mu.Lock()
	if c := f.inflight; c != nil {
		f.mu.Unlock()
		select {
		case <-c.done:
			return c.change, c.err
		case <-ctx.Done():
			return masonry.Appended(0), ctx.Err()
		}
	}
	if f.next <= 0 {
		f.mu.Unlock()
		return masonry.Appended(0), nil
	}

	c := &call{done: make(chan struct{})}
	f.inflight = c
	src, number, gen := f.src, f.next, f.gen
	f.mu.Unlock()

	name := sourceName(src)
	observability.Feed().OnPageStart(ctx, name, number)
	start := time.Now()

	page, err := src.Page(ctx, number, f.perPage)

	f.mu.Lock()
	if f.inflight == c {
		f.inflight = nil
	}
	switch {
	case gen != f.gen:
		// Reset ran while the page was in flight; its result belongs to a
		// listing that no longer exists.
		c.change = masonry.Appended(0)
	case err != nil:
		f.err = err
		c.change, c.err = masonry.Appended(0), err
	default:
		f.err = nil
		f.photos = append(f.photos, page.Items...)
		f.page = number
		f.next = page.Next
		c.change = masonry.Appended(len(page.Items))
	}
	total := len(f.photos)
	f.mu.Unlock()
	close(c.done)

	elapsed := time.Since(start)
	observability.Feed().OnPageComplete(ctx, name, number, c.change.Count, elapsed, c.err)
	if c.err != nil {
		f.logger.Warn("page load failed", "source", name, "page", number, "error", c.err)
	} else {
		f.logger.Debug("page loaded", "source", name, "page", number, "items", c.change.Count, "total", total, "duration", elapsed)
	}
	return c.change, c.err
}

// Reset discards every accumulated photo and starts again from page 1.
// A load in flight at the time completes without touching the feed.
func (f *Feed) Reset() masonry.Change {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
	return masonry.Replaced()
}

// Replace swaps the source and resets, used when a search query changes.
func (f *Feed) Replace(src Source) masonry.Change {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.src = src
	f.resetLocked()
	return masonry.Replaced()
}

func (f *Feed) resetLocked() {
	f.photos = nil
	f.page = 0
	f.next = 1
	f.err = nil
	f.inflight = nil
	f.gen++
}

// Items returns the masonry view of every accumulated photo.
func (f *Feed) Items() []masonry.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Items(f.photos)
}

// Photos returns a copy of the accumulated photos.
func (f *Feed) Photos() []Photo {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Photo, len(f.photos))
	copy(out, f.photos)
	return out
}

// Photo returns the photo at index i.
func (f *Feed) Photo(i int) (Photo, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.photos) {
		return Photo{}, false
	}
	return f.photos[i], true
}

// Len returns the number of accumulated photos.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.photos)
}

// Loading reports whether a page request is in flight.
func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inflight != nil
}

// Err returns the error of the most recent load, nil after a success.
func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Page returns the number of the last page loaded, 0 before the first.
func (f *Feed) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// Done reports whether the source has no further pages.
func (f *Feed) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next <= 0
}

// PerPage returns the configured page size.
func (f *Feed) PerPage() int { return f.perPage }

func sourceName(src Source) string {
	if n, ok := src.(Namer); ok {
		return n.Name()
	}
	return "source"
}
