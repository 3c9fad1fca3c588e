// Package masonry packs variable-height items into columns and decides which
// of them are close enough to the viewport to be mounted.
//
// # Overview
//
// A masonry layout places every item into whichever column is currently the
// shortest, producing a staggered bottom edge instead of a grid. Items keep
// their aspect ratio: each is scaled to the column width and its height
// follows proportionally.
//
// The package is split along three concerns:
//
//   - [SelectColumn] picks the column that receives the next item.
//   - [State] owns the per-column running heights and the placed positions,
//     and extends them incrementally as the item list grows.
//   - [ComputeRange] and [VisibleItems] turn a scroll offset into the
//     contiguous index window that should be rendered.
//
// [Grid] bundles these into the single object a rendering surface needs.
//
// # Incremental Builds
//
// Feeds grow by appending pages, so [State.Extend] only lays out items past
// [State.Placed]. Positions that were already assigned never move. A change
// of column count invalidates every placement; [State.Reset] clears the state
// and the next build repacks the whole list:
//
//	s := masonry.NewState(3, masonry.DefaultOptions())
//	snap := s.Extend(items, masonry.Appended(len(items)))
//
//	// Later, a second page arrives.
//	items = append(items, page2...)
//	snap = s.Extend(items, masonry.Appended(len(page2)))
//
// Callers describe each change explicitly with [Appended] or [Replaced].
// [State.Extend] treats an append tag the way the item count implies (only
// the suffix is placed); [State.Apply] additionally reports a tag whose count
// disagrees with the list as [ErrChangeMismatch].
//
// # Windowing
//
// The visible window is a deliberate approximation. The start index comes
// from a linear scan for the first item below the scroll offset, backed off by
// two rows. The window length assumes a fixed row height
// ([Options.ItemHeight]) even though real rows vary; [Options.Overscan]
// absorbs the difference.
package masonry
