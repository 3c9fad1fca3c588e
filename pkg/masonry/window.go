package masonry

import "math"

// Window describes the viewport a range is computed for.
type Window struct {
	ScrollOffset    float64 // committed scroll position of the surface
	ContainerHeight float64 // measured surface height; 0 when not yet measured
	Columns         int
	ItemHeight      float64 // fixed row height assumed by the scan
	Overscan        int     // extra rows past the viewport
}

// StartIndex returns the first index to mount for the given scroll offset:
// the first position whose top lies below scrollOffset, backed off by two
// rows of columnCount items. A zero offset, no positions, or no position
// below the offset all yield 0.
func StartIndex(positions []Position, scrollOffset float64, columnCount int) int {
	if scrollOffset == 0 || len(positions) == 0 {
		return 0
	}
	for i, p := range positions {
		if p.Top > scrollOffset {
			return max(i-columnCount*2, 0)
		}
	}
	return 0
}

// ComputeRange returns the inclusive index window to mount.
//
// The end index assumes every row is w.ItemHeight tall:
//
//	end = start + ceil(containerHeight/itemHeight)*columns + columns*overscan
//
// With no items the range is {0, 0} and [VisibleItems] yields nothing.
func ComputeRange(positions []Position, itemCount int, w Window) Range {
	if itemCount == 0 {
		return Range{}
	}
	columns := max(w.Columns, 1)
	start := StartIndex(positions, w.ScrollOffset, columns)

	rows := 0
	if w.ContainerHeight > 0 && w.ItemHeight > 0 {
		rows = int(math.Ceil(w.ContainerHeight / w.ItemHeight))
	}
	end := start + rows*columns + columns*max(w.Overscan, 0)
	return Range{Start: start, End: end}
}

// VisibleItems returns the items in r that have both an item and a position.
// Iteration stops at the first index missing either, since positions can lag
// the item list by one build.
func VisibleItems(items []Item, positions []Position, r Range) []Visible {
	if len(items) == 0 {
		return nil
	}
	var out []Visible
	for i := r.Start; i <= r.End; i++ {
		if i >= len(items) || i >= len(positions) {
			break
		}
		out = append(out, Visible{Index: i, Item: items[i], Position: positions[i]})
	}
	return out
}
