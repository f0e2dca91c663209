package sink

// CellPixels is the target square cell edge in pixels at 96 DPI. Small
// enough that a large image reads as contiguous color, large enough that
// the host renders it.
const CellPixels = 4

// Row heights are measured in points: 72 points = 1 inch = 96 pixels at
// 96 DPI.
const (
	pointsPerInch = 72
	pixelsPerInch = 96
)

// Column widths are measured in default-font character units: one unit is
// about 7 pixels of glyph plus 5 pixels of cell padding.
const (
	pixelsPerCharUnit = 7
	cellPaddingPixels = 5
)

// PixelsToPoints converts a pixel length to points at 96 DPI.
func PixelsToPoints(px int) float64 {
	return float64(px) * pointsPerInch / pixelsPerInch
}

// PixelsToColumnWidth converts a pixel width to Excel column width units.
// Below one character unit the width scales linearly against the padded
// unit size, matching how the format resolves sub-character widths.
func PixelsToColumnWidth(px int) float64 {
	if px <= 0 {
		return 0
	}
	if px < pixelsPerCharUnit+cellPaddingPixels {
		return float64(px) / (pixelsPerCharUnit + cellPaddingPixels)
	}
	return float64(px-cellPaddingPixels) / pixelsPerCharUnit
}
