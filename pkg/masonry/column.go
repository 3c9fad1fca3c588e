package masonry

import "math"

// Viewport constants used to derive the column count from a window width.
const (
	// ViewportMargin is the outer margin subtracted from the window width.
	ViewportMargin = 16.0
	// ColumnAllowance is the per-column gap allowance added to the column width.
	ColumnAllowance = 10.0
)

// SelectColumn returns the index of the column with the smallest running
// height. Ties go to the lowest index. An empty slice yields 0.
func SelectColumn(columns []Column) int {
	shortest := 0
	for i := range columns {
		if columns[i].Height < columns[shortest].Height {
			shortest = i
		}
	}
	return shortest
}

// ScaledHeight returns the height of an item with intrinsic size
// (width, height) once scaled to targetWidth, preserving its aspect ratio.
// A non-positive width yields 0.
func ScaledHeight(width, height, targetWidth float64) float64 {
	if width <= 0 {
		return 0
	}
	return targetWidth / width * height
}

// ColumnCount derives how many columns of columnWidth fit in a viewport of
// viewportWidth pixels. The result is never below 1.
func ColumnCount(viewportWidth, columnWidth float64) int {
	if columnWidth+ColumnAllowance <= 0 {
		return 1
	}
	n := int(math.Floor((viewportWidth - ViewportMargin) / (columnWidth + ColumnAllowance)))
	return max(n, 1)
}
