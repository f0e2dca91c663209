package image2excel

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lggomez/image2excel/pkg/image2excel/engine"
	"github.com/lggomez/image2excel/pkg/image2excel/imaging"
	"github.com/lggomez/image2excel/pkg/image2excel/sink"
)

// Result summarizes a conversion run, including non-fatal anomalies.
type Result struct {
	// Rows and Cols are the rendered grid dimensions.
	Rows int
	Cols int
	// CellsWritten is the number of cells successfully colored.
	CellsWritten uint64
	// CellsFailed is the number of cells the sink rejected.
	CellsFailed uint64
	// Elapsed is the total conversion duration.
	Elapsed time.Duration
	// OutputPath is where the workbook was saved.
	OutputPath string
}

// Convert renders the image at path into an xlsx workbook. Images larger
// than the grid bounds are resampled to fit, preserving aspect ratio.
// Per-cell write failures are non-fatal and reported through the Result;
// decode and sink initialization failures abort before any partial output.
func Convert(ctx context.Context, path string, opts Options) (*Result, error) {
	start := time.Now()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	frame, err := imaging.Load(path)
	if err != nil {
		return nil, NewConversionError(path, "decode", err)
	}

	width, height := frame.Size()
	if got, expected := frame.PixelCount(), width*height; got != expected {
		// Decoders may over- or under-report; the backing store is ground
		// truth and the engine never reads past it.
		log.WithFields(log.Fields{
			"expected": expected,
			"actual":   got,
		}).Warn("decoded pixel count disagrees with image dimensions")
	}

	bounds := opts.GridBounds()
	if w, h := bounds.Fit(width, height); w != width || h != height {
		log.WithFields(log.Fields{
			"width":  w,
			"height": h,
		}).Info("image exceeds grid bounds, resampling")
		frame.Scale(w, h)
		width, height = w, h
	}

	wb, err := sink.NewWorkbook(opts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	defer wb.Close()
	if err := wb.Init(height, width); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}

	tracker := engine.NewTracker(uint64(width)*uint64(height), opts.ProgressWriter())
	reclaimer := engine.NewReclaimer(opts.ReclaimThreshold, wb)
	proc := engine.NewProcessor(wb, tracker, reclaimer, opts.Workers, opts.QueueDepth)

	if err := proc.Run(ctx, frame); err != nil {
		return nil, NewConversionError(path, "write", err)
	}

	if err := wb.Finalize(height, width); err != nil {
		return nil, NewConversionError(path, "finalize", err)
	}

	out := opts.ResolveOutputPath(path)
	if err := wb.Save(out); err != nil {
		return nil, NewConversionError(path, "save", err)
	}

	if failed := proc.Failed(); failed > 0 {
		log.WithField("cells", failed).Warn("conversion completed with rejected cell writes")
	}

	if opts.ShouldOpenViewer() {
		if err := sink.Present(out); err != nil {
			log.WithError(err).Warn("could not open workbook viewer")
		}
	}

	return &Result{
		Rows:         height,
		Cols:         width,
		CellsWritten: proc.Written(),
		CellsFailed:  proc.Failed(),
		Elapsed:      time.Since(start),
		OutputPath:   out,
	}, nil
}
