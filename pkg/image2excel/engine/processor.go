package engine

import (
	"context"
	"runtime"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/lggomez/image2excel/pkg/image2excel/grid"
)

// Sink accepts per-cell color writes. ConcurrentWritesSafe declares whether
// SetCellColor may be called from multiple goroutines; when it returns
// false, the processor serializes every sink call through a single
// consumer.
type Sink interface {
	ConcurrentWritesSafe() bool
	SetCellColor(addr grid.CellAddress, r, g, b uint8) error
	Reclaim() error
}

// PixelSource is a row-major image with 8-bit RGB channels. Pixel reports
// ok=false for coordinates outside its backing store, which the processor
// skips rather than indexing past the decoder's buffer.
type PixelSource interface {
	Size() (width, height int)
	Pixel(x, y int) (r, g, b uint8, ok bool)
}

type cellWrite struct {
	addr    grid.CellAddress
	r, g, b uint8
}

type rowBatch struct {
	row    int
	writes []cellWrite
}

// Processor fans pixel-to-cell writes out across worker goroutines. Rows
// are the unit of work; row completion order is unspecified, but the writes
// of a single row are always issued sequentially.
type Processor struct {
	sink       Sink
	tracker    *Tracker
	reclaimer  *Reclaimer
	workers    int
	queueDepth int

	written atomic.Uint64
	failed  atomic.Uint64
}

// NewProcessor creates a processor. workers <= 0 selects GOMAXPROCS-many
// producers; queueDepth <= 0 selects twice the worker count.
func NewProcessor(sink Sink, tracker *Tracker, reclaimer *Reclaimer, workers, queueDepth int) *Processor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if queueDepth <= 0 {
		queueDepth = 2 * workers
	}
	return &Processor{
		sink:       sink,
		tracker:    tracker,
		reclaimer:  reclaimer,
		workers:    workers,
		queueDepth: queueDepth,
	}
}

// Run writes every pixel of src to the sink exactly once as a (cell, color)
// pair. When the sink is not safe for concurrent calls, producers compute
// whole-row batches into a bounded channel and a single consumer performs
// all sink writes, so producers block on a full queue instead of buffering
// unboundedly. Per-cell write failures are logged, counted, and skipped; a
// context cancellation stops producers and consumer.
func (p *Processor) Run(ctx context.Context, src PixelSource) error {
	width, height := src.Size()
	if width <= 0 || height <= 0 {
		return nil
	}

	// Column letters are shared by every row; resolve them once up front.
	letters := make([]string, width+1)
	for j := 1; j <= width; j++ {
		letters[j] = grid.ColumnLetters(j)
	}

	if p.sink.ConcurrentWritesSafe() {
		return p.runConcurrent(ctx, src, letters, width, height)
	}
	return p.runSerialized(ctx, src, letters, width, height)
}

// runSerialized decouples pixel computation (parallel producers) from cell
// writing (single consumer), preserving the sink's thread-affinity.
func (p *Processor) runSerialized(ctx context.Context, src PixelSource, letters []string, width, height int) error {
	rows := make(chan int)
	batches := make(chan rowBatch, p.queueDepth)

	prod, pctx := errgroup.WithContext(ctx)
	prod.Go(func() error {
		defer close(rows)
		return feedRows(pctx, rows, height)
	})
	var pending atomic.Int64
	pending.Store(int64(p.workers))
	for k := 0; k < p.workers; k++ {
		prod.Go(func() error {
			defer func() {
				if pending.Add(-1) == 0 {
					close(batches)
				}
			}()
			for i := range rows {
				b := p.buildRow(src, letters, width, i)
				select {
				case batches <- b:
				case <-pctx.Done():
					return pctx.Err()
				}
			}
			return nil
		})
	}

	for b := range batches {
		for _, w := range b.writes {
			p.write(b.row, w)
		}
		p.tracker.Add(uint64(width))
		p.reclaimer.Note(uint64(width))
	}
	return prod.Wait()
}

// runConcurrent fans out freely when the sink's contract allows concurrent
// writes.
func (p *Processor) runConcurrent(ctx context.Context, src PixelSource, letters []string, width, height int) error {
	rows := make(chan int)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(rows)
		return feedRows(gctx, rows, height)
	})
	for k := 0; k < p.workers; k++ {
		g.Go(func() error {
			for i := range rows {
				b := p.buildRow(src, letters, width, i)
				for _, w := range b.writes {
					p.write(b.row, w)
				}
				p.tracker.Add(uint64(width))
				p.reclaimer.Note(uint64(width))
				if err := gctx.Err(); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func feedRows(ctx context.Context, rows chan<- int, height int) error {
	for i := 1; i <= height; i++ {
		select {
		case rows <- i:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// buildRow computes the (address, color) records for one image row.
func (p *Processor) buildRow(src PixelSource, letters []string, width, row int) rowBatch {
	writes := make([]cellWrite, 0, width)
	for j := 1; j <= width; j++ {
		r, g, b, ok := src.Pixel(j-1, row-1)
		if !ok {
			// Decoder reported fewer pixels than width*height; the anomaly
			// was already surfaced, never read past the buffer.
			continue
		}
		writes = append(writes, cellWrite{
			addr: grid.CellAddress{Column: letters[j], Row: row},
			r:    r, g: g, b: b,
		})
	}
	return rowBatch{row: row, writes: writes}
}

func (p *Processor) write(row int, w cellWrite) {
	if err := p.sink.SetCellColor(w.addr, w.r, w.g, w.b); err != nil {
		p.failed.Add(1)
		log.WithFields(log.Fields{
			"cell": w.addr.Name(),
			"row":  row,
		}).WithError(err).Warn("cell write failed")
		return
	}
	p.written.Add(1)
}

// Written returns the number of cells successfully written.
func (p *Processor) Written() uint64 {
	return p.written.Load()
}

// Failed returns the number of cells the sink rejected.
func (p *Processor) Failed() uint64 {
	return p.failed.Load()
}
