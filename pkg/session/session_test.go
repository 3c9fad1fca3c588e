package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/masonry"
)

func testStore(ttl time.Duration) (*MemoryStore, *time.Time) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(ttl)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestNewSizesColumns(t *testing.T) {
	tests := []struct {
		width float64
		opts  masonry.Options
		want  int
	}{
		{1280, masonry.Options{ColumnWidth: 230}, 5},
		{1280, masonry.Options{}, 5},
		{200, masonry.Options{ColumnWidth: 230}, 1},
		{1016, masonry.Options{ColumnWidth: 240}, 4},
	}
	for _, tt := range tests {
		s := New(tt.width, tt.opts)
		s.Do(func(g *masonry.Grid) {
			if g.Columns() != tt.want {
				t.Errorf("New(%v, %+v) columns = %d, want %d", tt.width, tt.opts, g.Columns(), tt.want)
			}
		})
		if s.ID == "" {
			t.Error("session id should be set")
		}
	}
}

func TestSessionResize(t *testing.T) {
	s := New(1280, masonry.Options{ColumnWidth: 230, Gap: 10})
	items := []masonry.Item{{ID: 1, Width: 100, Height: 100}, {ID: 2, Width: 100, Height: 200}}
	s.Do(func(g *masonry.Grid) { g.SetItems(items, masonry.Appended(2)) })

	cols, changed := s.Resize(1300)
	if changed || cols != 5 {
		t.Errorf("Resize(1300) = %d, %v; want 5, false", cols, changed)
	}

	cols, changed = s.Resize(500)
	if !changed || cols != 2 {
		t.Errorf("Resize(500) = %d, %v; want 2, true", cols, changed)
	}
	s.Do(func(g *masonry.Grid) {
		if g.Snapshot().Placed != 2 {
			t.Errorf("relayout placed %d items, want 2", g.Snapshot().Placed)
		}
	})
	if s.ViewportWidth() != 500 {
		t.Errorf("ViewportWidth() = %v", s.ViewportWidth())
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	m, now := testStore(time.Minute)

	s := New(800, masonry.Options{})
	if err := m.Set(ctx, s); err != nil {
		t.Fatal(err)
	}

	got, err := m.Get(ctx, s.ID)
	if err != nil || got != s {
		t.Fatalf("Get() = %v, %v", got, err)
	}

	// Each lookup slides the expiry.
	*now = now.Add(50 * time.Second)
	if _, err := m.Get(ctx, s.ID); err != nil {
		t.Fatalf("Get() before expiry: %v", err)
	}
	*now = now.Add(50 * time.Second)
	if _, err := m.Get(ctx, s.ID); err != nil {
		t.Fatalf("Get() after sliding expiry: %v", err)
	}

	*now = now.Add(2 * time.Minute)
	_, err = m.Get(ctx, s.ID)
	if !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("expired Get() error = %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("expired session should be dropped, Len() = %d", m.Len())
	}
}

func TestMemoryStoreDeleteAndMissing(t *testing.T) {
	ctx := context.Background()
	m, _ := testStore(time.Minute)

	if _, err := m.Get(ctx, "nope"); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get(missing) error = %v", err)
	}

	s := New(800, masonry.Options{})
	_ = m.Set(ctx, s)
	if err := m.Delete(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(ctx, s.ID); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d", m.Len())
	}

	if err := m.Set(ctx, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Set(nil) error = %v", err)
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	m, now := testStore(time.Minute)

	old := New(800, masonry.Options{})
	_ = m.Set(ctx, old)
	*now = now.Add(45 * time.Second)
	fresh := New(800, masonry.Options{})
	_ = m.Set(ctx, fresh)
	*now = now.Add(30 * time.Second)

	n, err := m.Cleanup(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Cleanup() = %d, %v; want 1", n, err)
	}
	if _, err := m.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh session removed: %v", err)
	}
}

func TestSweepStopsOnCancel(t *testing.T) {
	m := NewMemoryStore(time.Millisecond)
	s := New(800, masonry.Options{})
	_ = m.Set(context.Background(), s)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Sweep(ctx, m, 5*time.Millisecond, log.New(io.Discard))
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for m.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if m.Len() != 0 {
		t.Error("sweeper should remove the expired session")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Sweep did not return after cancel")
	}
}
