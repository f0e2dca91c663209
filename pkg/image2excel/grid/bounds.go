package grid

// Bounds holds the hard row/column limits of the target grid format.
type Bounds struct {
	MaxRows int
	MaxCols int
}

// DefaultBounds matches the xlsx worksheet limits.
var DefaultBounds = Bounds{MaxRows: 1048576, MaxCols: 16384}

// Fit clamps image dimensions to the grid bounds, preserving aspect ratio
// with truncating integer arithmetic. Rows are clamped before columns, and
// the column clamp reuses the already-adjusted height, so the two steps are
// order-dependent. Dimensions already within bounds pass through unchanged,
// which makes Fit idempotent.
func (b Bounds) Fit(width, height int) (int, int) {
	if height > b.MaxRows {
		width = b.MaxRows * width / height
		height = b.MaxRows
	}
	if width > b.MaxCols {
		height = b.MaxCols * height / width
		width = b.MaxCols
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// Fits reports whether the given dimensions already conform to the bounds.
func (b Bounds) Fits(width, height int) bool {
	return width <= b.MaxCols && height <= b.MaxRows
}
