package engine

import (
	"runtime"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// DefaultReclaimThreshold is the write count after which accumulated
// write-side resources are released.
const DefaultReclaimThreshold = 200000

// Reclaimable is the sink-side hook for releasing per-write formatting
// state. Implementations must only compact caches and handles; they must
// never touch cells that were already written.
type Reclaimable interface {
	Reclaim() error
}

// Reclaimer counts cell writes and, once a threshold is crossed, asks the
// sink to release accumulated formatting state and forces a collection
// point. This is a backpressure valve against unbounded native resource
// growth during very large conversions, not an optimization.
type Reclaimer struct {
	threshold uint64
	sink      Reclaimable
	count     atomic.Uint64

	// gc is swappable so tests do not force real collections.
	gc func()
}

// NewReclaimer creates a reclaimer with the given write-count threshold.
// A zero threshold selects DefaultReclaimThreshold.
func NewReclaimer(threshold uint64, sink Reclaimable) *Reclaimer {
	if threshold == 0 {
		threshold = DefaultReclaimThreshold
	}
	return &Reclaimer{
		threshold: threshold,
		sink:      sink,
		gc:        runtime.GC,
	}
}

// Note records n additional cell writes, triggering a reclamation pass when
// the running count crosses the threshold. Safe for concurrent callers; the
// compare-and-swap ensures a single caller performs the pass and resets the
// counter.
func (r *Reclaimer) Note(n uint64) {
	c := r.count.Add(n)
	if c < r.threshold {
		return
	}
	if !r.count.CompareAndSwap(c, 0) {
		return
	}
	if err := r.sink.Reclaim(); err != nil {
		log.WithError(err).Warn("sink reclaim failed")
	}
	r.gc()
}

// Pending returns the write count accumulated since the last reclamation.
func (r *Reclaimer) Pending() uint64 {
	return r.count.Load()
}
