// Package sink materializes colored cells in an xlsx workbook via excelize.
package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lggomez/image2excel/pkg/image2excel/grid"
)

// DefaultSheet is the worksheet name used when none is configured.
const DefaultSheet = "Sheet1"

// Workbook is an in-memory xlsx workbook that accepts (cell, color) writes.
// It is not safe for concurrent writers; the engine serializes all calls
// through a single consumer (see ConcurrentWritesSafe).
type Workbook struct {
	f     *excelize.File
	sheet string

	// styles memoizes fill style IDs by packed RGB. This is the per-write
	// formatting state the Reclaimer flushes between passes.
	styles map[uint32]int
}

// NewWorkbook creates a blank workbook with a single named sheet.
func NewWorkbook(sheet string) (*Workbook, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			f.Close()
			return nil, err
		}
	}
	return &Workbook{
		f:      f,
		sheet:  sheet,
		styles: make(map[uint32]int),
	}, nil
}

// ConcurrentWritesSafe reports whether SetCellColor tolerates concurrent
// callers. excelize files do not, so the engine must serialize writes.
func (w *Workbook) ConcurrentWritesSafe() bool { return false }

// Init validates that the requested grid fits the xlsx format limits.
func (w *Workbook) Init(rows, cols int) error {
	if rows > excelize.TotalRows {
		return fmt.Errorf("%d rows exceed the xlsx limit of %d", rows, excelize.TotalRows)
	}
	if cols > excelize.MaxColumns {
		return fmt.Errorf("%d columns exceed the xlsx limit of %d", cols, excelize.MaxColumns)
	}
	return nil
}

// SetCellColor fills a single cell with the given RGB color.
func (w *Workbook) SetCellColor(addr grid.CellAddress, r, g, b uint8) error {
	id, err := w.styleFor(r, g, b)
	if err != nil {
		return err
	}
	cell := addr.Name()
	return w.f.SetCellStyle(w.sheet, cell, cell, id)
}

func (w *Workbook) styleFor(r, g, b uint8) (int, error) {
	key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	if id, ok := w.styles[key]; ok {
		return id, nil
	}
	id, err := w.f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{fmt.Sprintf("%02X%02X%02X", r, g, b)},
		},
	})
	if err != nil {
		return 0, err
	}
	w.styles[key] = id
	return id, nil
}

// Reclaim drops the style memo. Written cells keep their style IDs; excelize
// deduplicates styles internally, so rebuilding the memo only costs lookups.
func (w *Workbook) Reclaim() error {
	w.styles = make(map[uint32]int)
	return nil
}

// Finalize applies uniform near-square cell sizing over the written range,
// hides gridlines, and zooms the view out so large grids render as an image.
func (w *Workbook) Finalize(rows, cols int) error {
	if err := w.f.SetColWidth(w.sheet, "A", grid.ColumnLetters(cols), PixelsToColumnWidth(CellPixels)); err != nil {
		return err
	}
	height := PixelsToPoints(CellPixels)
	custom := true
	if err := w.f.SetSheetProps(w.sheet, &excelize.SheetPropsOptions{
		DefaultRowHeight: &height,
		CustomHeight:     &custom,
	}); err != nil {
		return err
	}
	showGrid := false
	zoom := 50.0
	if rows > 2000 || cols > 500 {
		zoom = 10.0
	}
	return w.f.SetSheetView(w.sheet, 0, &excelize.ViewOptions{
		ShowGridLines: &showGrid,
		ZoomScale:     &zoom,
	})
}

// Save writes the workbook to the given path.
func (w *Workbook) Save(path string) error {
	return w.f.SaveAs(path)
}

// Close releases the workbook's resources.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Sheet returns the worksheet name cells are written to.
func (w *Workbook) Sheet() string {
	return w.sheet
}
