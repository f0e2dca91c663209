// Package engine implements the pixel-to-cell mapping engine: parallel row
// production, serialized sink writing, progress reporting, and resource
// reclamation.
package engine

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"
)

// Tracker accumulates processed-pixel counts and emits throttled progress
// lines. A line is printed only when the integer percentage advanced AND the
// elapsed whole second advanced since the last line, so output is capped at
// one line per percentage point and one line per second. Increments are
// atomic and safe for concurrent callers; the emission gate is best effort
// and a race may duplicate or skip a single line.
type Tracker struct {
	total uint64
	out   io.Writer
	now   func() time.Time
	start time.Time

	processed atomic.Uint64
	prevPct   atomic.Int64
	lastSec   atomic.Int64
}

// NewTracker creates a tracker for the given total pixel count. A nil writer
// defaults to standard output.
func NewTracker(total uint64, out io.Writer) *Tracker {
	if out == nil {
		out = os.Stdout
	}
	t := &Tracker{
		total: total,
		out:   out,
		now:   time.Now,
	}
	t.start = t.now()
	t.lastSec.Store(-1)
	return t
}

// Add records n processed pixels and emits a progress line when both gates
// pass.
func (t *Tracker) Add(n uint64) {
	if t.total == 0 {
		return
	}
	done := t.processed.Add(n)
	pct := int64(done * 100 / t.total)
	if pct > 100 {
		pct = 100
	}
	if pct <= t.prevPct.Load() {
		return
	}
	sec := int64(t.now().Sub(t.start) / time.Second)
	if sec == t.lastSec.Load() {
		return
	}
	t.prevPct.Store(pct)
	t.lastSec.Store(sec)
	fmt.Fprintf(t.out, "\tConverting: %%%d (elapsed: %dm %ds)\n", pct, sec/60, sec%60)
}

// Processed returns the number of pixels recorded so far.
func (t *Tracker) Processed() uint64 {
	return t.processed.Load()
}
