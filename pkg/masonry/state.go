package masonry

import (
	"errors"
	"fmt"
	"slices"
)

// ErrChangeMismatch is returned by [State.Apply] when an append tag does not
// match the number of unplaced items in the list.
var ErrChangeMismatch = errors.New("change does not match item list")

// State is the owned layout state of one grid: the per-column running
// heights, the placed positions and the count of items already laid out.
//
// All mutation goes through [State.Extend], [State.Apply] and [State.Reset].
// Positions handed out in a [Snapshot] are never rewritten; a reset starts a
// fresh backing array, so earlier snapshots stay valid.
//
// State is not safe for concurrent use.
type State struct {
	opts      Options
	columns   []Column
	positions []Position
	placed    int
}

// NewState creates an empty layout with columnCount columns.
// A column count below 1 is raised to 1.
func NewState(columnCount int, opts Options) *State {
	s := &State{opts: opts.WithDefaults()}
	s.Reset(columnCount)
	return s
}

// Options returns the geometry the state lays items out with.
func (s *State) Options() Options { return s.opts }

// Columns returns the column count.
func (s *State) Columns() int { return len(s.columns) }

// Placed returns how many items have positions.
func (s *State) Placed() int { return s.placed }

// ColumnHeights returns a copy of the running height of every column.
func (s *State) ColumnHeights() []float64 {
	h := make([]float64, len(s.columns))
	for i, c := range s.columns {
		h[i] = c.Height
	}
	return h
}

// ColumnMembers returns a copy of the item indices placed in column i.
func (s *State) ColumnMembers(i int) []int {
	if i < 0 || i >= len(s.columns) {
		return nil
	}
	return slices.Clone(s.columns[i].Items)
}

// Reset discards every placement and sets the column count.
// The next build lays out the whole item list again.
func (s *State) Reset(columnCount int) {
	s.columns = make([]Column, max(columnCount, 1))
	s.positions = nil
	s.placed = 0
}

// Extend lays out the items beyond [State.Placed] and returns the resulting
// snapshot. A [Replaced] change resets the state first. An append change is
// resolved by list length: only the suffix past Placed is processed, whatever
// its tagged count. Extend is a no-op when items is empty or already placed.
func (s *State) Extend(items []Item, change Change) Snapshot {
	if change.Kind == ChangeReplace {
		s.Reset(len(s.columns))
	}
	if len(items) == 0 || s.placed >= len(items) {
		return s.Snapshot()
	}

	width, gap := s.opts.ColumnWidth, s.opts.Gap
	for i := s.placed; i < len(items); i++ {
		item := items[i]
		height := ScaledHeight(item.Width, item.Height, width)

		target := SelectColumn(s.columns)
		col := &s.columns[target]
		s.positions = append(s.positions, Position{
			Top:    col.Height,
			Left:   float64(target) * (width + gap),
			Height: height,
		})
		col.Height += height + gap
		col.Items = append(col.Items, i)
	}
	s.placed = len(items)
	return s.Snapshot()
}

// Apply is the strict form of [State.Extend]. It rejects an append change
// whose count differs from the number of unplaced items, leaving the state
// untouched, so callers can detect a list that was swapped without a
// [Replaced] tag.
func (s *State) Apply(items []Item, change Change) (Snapshot, error) {
	if change.Kind == ChangeAppend {
		if want := len(items) - s.placed; change.Count != want {
			return s.Snapshot(), fmt.Errorf("%w: %s with %d unplaced items", ErrChangeMismatch, change, want)
		}
	}
	return s.Extend(items, change), nil
}

// Snapshot returns the current positions and the longest column height.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Positions:     s.positions[:len(s.positions):len(s.positions)],
		LongestColumn: s.longestColumn(),
		Placed:        s.placed,
	}
}

func (s *State) longestColumn() float64 {
	longest := 0.0
	for _, c := range s.columns {
		longest = max(longest, c.Height)
	}
	return longest
}
