// Package session keeps the layout sessions of the layout service.
//
// A session owns one masonry grid sized for a client's viewport. Clients
// create a session, stream item batches into it and query visible windows
// as they scroll. Sessions expire after a period of inactivity; every
// successful lookup slides the expiry forward.
//
// # Concurrency
//
// The grid inside a session is not safe for concurrent use. All access goes
// through [Session.Do], which serializes callers on the session's mutex.
// That mutex plays the part of the event loop for HTTP clients.
//
// # Usage
//
//	store := session.NewMemoryStore(30 * time.Minute)
//	sess := session.New(1280, masonry.Options{ColumnWidth: 250, Gap: 15})
//	_ = store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, id)
//	sess.Do(func(g *masonry.Grid) {
//	    g.SetItems(items, masonry.Appended(len(items)))
//	})
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mosaic/pkg/masonry"
)

// DefaultTTL is the default inactivity timeout.
const DefaultTTL = 30 * time.Minute

// Session is one client's layout.
type Session struct {
	ID        string
	CreatedAt time.Time

	expiresAt atomic.Int64

	mu            sync.Mutex
	grid          *masonry.Grid
	viewportWidth float64
}

// New creates a session whose column count fits viewportWidth. Zero option
// fields take the masonry defaults.
func New(viewportWidth float64, opts masonry.Options) *Session {
	opts = opts.WithDefaults()
	cols := masonry.ColumnCount(viewportWidth, opts.ColumnWidth)
	return &Session{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now(),
		grid:          masonry.NewGrid(cols, opts),
		viewportWidth: viewportWidth,
	}
}

// Do runs fn with exclusive access to the grid.
func (s *Session) Do(fn func(g *masonry.Grid)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.grid)
}

// Resize records a new viewport width and recomputes the column count.
// It reports the resulting count and whether the layout was rebuilt.
func (s *Session) Resize(width float64) (columns int, changed bool) {
	s.Do(func(g *masonry.Grid) {
		s.viewportWidth = width
		changed = g.SetColumnCount(masonry.ColumnCount(width, g.Options().ColumnWidth))
		columns = g.Columns()
	})
	return columns, changed
}

// ViewportWidth returns the last reported viewport width.
func (s *Session) ViewportWidth() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewportWidth
}

// ExpiresAt returns when the session lapses.
func (s *Session) ExpiresAt() time.Time {
	return time.Unix(0, s.expiresAt.Load())
}

// IsExpired reports whether the session had lapsed at now.
func (s *Session) IsExpired(now time.Time) bool {
	return now.UnixNano() > s.expiresAt.Load()
}

func (s *Session) touch(now time.Time, ttl time.Duration) {
	s.expiresAt.Store(now.Add(ttl).UnixNano())
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a live session and extends its expiry.
	// Missing and expired sessions yield a SESSION_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session and starts its expiry clock.
	Set(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and returns how many it removed.
	Cleanup(ctx context.Context) (int, error)

	// Len returns the number of stored sessions, expired or not.
	Len() int
}
