package masonry

// Grid ties a [State] to the item list and viewport it is laid out for.
// It is the single object a rendering surface drives: the surface reports
// item changes, column count, scroll offset and container height, and reads
// back the visible items.
//
// Grid is not safe for concurrent use; callers serialize access on their
// event loop.
type Grid struct {
	state           *State
	items           []Item
	scrollOffset    float64
	containerHeight float64
}

// NewGrid creates an empty grid with columnCount columns.
func NewGrid(columnCount int, opts Options) *Grid {
	return &Grid{state: NewState(columnCount, opts)}
}

// Options returns the grid geometry.
func (g *Grid) Options() Options { return g.state.Options() }

// Columns returns the current column count.
func (g *Grid) Columns() int { return g.state.Columns() }

// Items returns the item list the grid was last given.
func (g *Grid) Items() []Item { return g.items }

// ScrollOffset returns the committed scroll offset.
func (g *Grid) ScrollOffset() float64 { return g.scrollOffset }

// ContainerHeight returns the measured surface height.
func (g *Grid) ContainerHeight() float64 { return g.containerHeight }

// SetItems records the new item list and lays out what change describes.
func (g *Grid) SetItems(items []Item, change Change) Snapshot {
	g.items = items
	return g.state.Extend(items, change)
}

// Apply is the strict form of [Grid.SetItems]; see [State.Apply]. On
// [ErrChangeMismatch] the grid keeps its previous item list.
func (g *Grid) Apply(items []Item, change Change) (Snapshot, error) {
	snap, err := g.state.Apply(items, change)
	if err != nil {
		return snap, err
	}
	g.items = items
	return snap, nil
}

// SetColumnCount changes the column count. When it differs from the current
// one every placement is discarded and the full item list is repacked.
// It reports whether a relayout happened.
func (g *Grid) SetColumnCount(n int) bool {
	n = max(n, 1)
	if n == g.state.Columns() {
		return false
	}
	g.state.Reset(n)
	g.state.Extend(g.items, Appended(len(g.items)))
	return true
}

// SetScrollOffset commits a scroll position. Negative values are clamped to 0.
func (g *Grid) SetScrollOffset(y float64) { g.scrollOffset = max(y, 0) }

// SetContainerHeight records the measured surface height.
func (g *Grid) SetContainerHeight(h float64) { g.containerHeight = max(h, 0) }

// Snapshot returns the current layout.
func (g *Grid) Snapshot() Snapshot { return g.state.Snapshot() }

// Range returns the index window for the current viewport.
func (g *Grid) Range() Range {
	opts := g.state.Options()
	return ComputeRange(g.state.Snapshot().Positions, len(g.items), Window{
		ScrollOffset:    g.scrollOffset,
		ContainerHeight: g.containerHeight,
		Columns:         g.state.Columns(),
		ItemHeight:      opts.ItemHeight,
		Overscan:        opts.Overscan,
	})
}

// Visible returns the items to mount for the current viewport.
func (g *Grid) Visible() []Visible {
	return VisibleItems(g.items, g.state.Snapshot().Positions, g.Range())
}

// ContentWidth returns the width spanned by all columns and the gaps between them.
func (g *Grid) ContentWidth() float64 {
	opts := g.state.Options()
	n := float64(g.state.Columns())
	return opts.ColumnWidth*n + (n-1)*opts.Gap
}

// ContentHeight returns the height of the longest column.
func (g *Grid) ContentHeight() float64 { return g.state.Snapshot().LongestColumn }
