package masonry

import "fmt"

// Default layout values. [Options.WithDefaults] applies only DefaultColumnWidth
// and DefaultItemHeight to zero fields; a zero Gap or Overscan stays zero, so
// the other two reach callers through [DefaultOptions].
const (
	DefaultColumnWidth = 230.0
	DefaultGap         = 10.0
	DefaultItemHeight  = 350.0
	DefaultOverscan    = 2
)

// Item is the read-only view of an element the layout places.
// Width and Height are the intrinsic pixel dimensions; both must be positive
// for the item to receive a non-zero rendered height.
type Item struct {
	ID     int     `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Position is the placement of one item. Positions are index-aligned with the
// item list that produced them, not keyed by item ID.
type Position struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Height float64 `json:"height"` // rendered height at the column width
}

// Bottom returns the vertical coordinate just below the item.
func (p Position) Bottom() float64 { return p.Top + p.Height }

// Column is the running aggregate of one layout column.
type Column struct {
	Height float64 // running height, including the gap after each member
	Items  []int   // member indices in placement order
}

// Snapshot is the externally visible layout state after a build.
type Snapshot struct {
	Positions     []Position `json:"positions"`
	LongestColumn float64    `json:"longest_column"`
	Placed        int        `json:"placed"`
}

// Since returns the positions placed at or after index from.
func (s Snapshot) Since(from int) []Position {
	if from < 0 {
		from = 0
	}
	if from >= len(s.Positions) {
		return nil
	}
	return s.Positions[from:]
}

// Options configures column geometry and windowing.
type Options struct {
	ColumnWidth float64 `json:"column_width" toml:"column_width"`
	Gap         float64 `json:"gap" toml:"gap"`
	ItemHeight  float64 `json:"item_height" toml:"item_height"` // row height hint for windowing
	Overscan    int     `json:"overscan" toml:"overscan"`       // extra rows mounted below the viewport
}

// DefaultOptions returns the options used by the reference grid.
func DefaultOptions() Options {
	return Options{
		ColumnWidth: DefaultColumnWidth,
		Gap:         DefaultGap,
		ItemHeight:  DefaultItemHeight,
		Overscan:    DefaultOverscan,
	}
}

// WithDefaults fills zero fields from [DefaultOptions].
// A negative gap or overscan is treated as zero.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.ColumnWidth <= 0 {
		o.ColumnWidth = d.ColumnWidth
	}
	if o.ItemHeight <= 0 {
		o.ItemHeight = d.ItemHeight
	}
	if o.Gap < 0 {
		o.Gap = 0
	}
	if o.Overscan < 0 {
		o.Overscan = 0
	}
	return o
}

// ChangeKind tells the builder how the item list changed since the last build.
type ChangeKind int

const (
	// ChangeAppend means items were added to the end of the list.
	ChangeAppend ChangeKind = iota
	// ChangeReplace means the list was swapped for a different one.
	ChangeReplace
)

// Change describes an update to the item list.
type Change struct {
	Kind  ChangeKind
	Count int // number of appended items; ignored for ChangeReplace
}

// Appended reports that n items were added to the end of the list.
func Appended(n int) Change { return Change{Kind: ChangeAppend, Count: n} }

// Replaced reports that the list was replaced and must be laid out from scratch.
func Replaced() Change { return Change{Kind: ChangeReplace} }

func (c Change) String() string {
	if c.Kind == ChangeReplace {
		return "replaced"
	}
	return fmt.Sprintf("appended(%d)", c.Count)
}

// Range is an inclusive window of item indices.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether i lies inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i <= r.End }

// Visible pairs a mounted item with its placement.
type Visible struct {
	Index    int      `json:"index"`
	Item     Item     `json:"item"`
	Position Position `json:"position"`
}
