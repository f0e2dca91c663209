// Package image2excel renders a raster image into an xlsx workbook, one
// colored cell per pixel.
package image2excel

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lggomez/image2excel/pkg/image2excel/grid"
)

// Options configures a conversion run.
type Options struct {
	// Bounds are the target grid's hard row/column limits. The zero value
	// selects grid.DefaultBounds (the xlsx worksheet limits).
	Bounds grid.Bounds
	// Workers is the number of parallel row producers. Zero or negative
	// selects one per CPU.
	Workers int
	// QueueDepth bounds the producer/consumer channel. Zero selects twice
	// the worker count.
	QueueDepth int
	// ReclaimThreshold is the cell-write count that triggers a resource
	// reclamation pass. Zero selects engine.DefaultReclaimThreshold.
	ReclaimThreshold uint64
	// Sheet is the worksheet name. Empty selects the sink default.
	Sheet string
	// OutputPath is where the workbook is saved. Empty derives it from the
	// input path by swapping the extension for .xlsx.
	OutputPath string
	// Progress receives throttled progress lines. Nil selects stdout.
	Progress io.Writer
	// OpenViewer opens the saved workbook with the OS default application.
	// If nil, the workbook is not opened.
	OpenViewer *bool
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{}
}

// GridBounds returns the effective grid limits.
func (o Options) GridBounds() grid.Bounds {
	if o.Bounds == (grid.Bounds{}) {
		return grid.DefaultBounds
	}
	return o.Bounds
}

// ShouldOpenViewer returns whether to launch the OS viewer after saving.
func (o Options) ShouldOpenViewer() bool {
	if o.OpenViewer != nil {
		return *o.OpenViewer
	}
	return false
}

// ProgressWriter returns the effective progress destination.
func (o Options) ProgressWriter() io.Writer {
	if o.Progress != nil {
		return o.Progress
	}
	return os.Stdout
}

// ResolveOutputPath returns the effective workbook path for an input image.
func (o Options) ResolveOutputPath(input string) string {
	if o.OutputPath != "" {
		return o.OutputPath
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".xlsx"
}
