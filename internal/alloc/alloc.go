// Package alloc is the process-wide allocator behind every container buffer.
//
// Blocks are typed Go allocations, so the garbage collector scans them like any other slice
// backing array. Callers are responsible for pairing every Allocate or Reallocate with exactly
// one Release of the same block and its current size.
package alloc

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Metrics is the set of collectors updated by the allocator. Any field may be nil.
type Metrics struct {
	Allocations     prometheus.Counter
	Reallocations   prometheus.Counter
	Releases        prometheus.Counter
	LiveBytes       prometheus.Gauge
	AllocationBytes prometheus.Histogram
}

type observer struct {
	logger  zerolog.Logger
	metrics *Metrics
}

var (
	mu      sync.Mutex
	current atomic.Pointer[observer]
)

func init() {
	current.Store(&observer{logger: zerolog.Nop()})
}

// SetLogger replaces the logger that receives allocation events.
func SetLogger(logger zerolog.Logger) {
	update(func(o *observer) {
		o.logger = logger.With().Str("component", "alloc").Logger()
	})
}

// SetMetrics replaces the collectors updated by the allocator. Nil disables metrics.
func SetMetrics(metrics *Metrics) {
	update(func(o *observer) {
		o.metrics = metrics
	})
}

// Allocate returns a block of n zeroed slots of T.
//
// Out of memory is fatal: the runtime terminates the process, nothing is returned.
func Allocate[T any](n int) unsafe.Pointer {
	if n < 1 {
		panic("allocation size can't be < 1")
	}

	block := make([]T, n)
	size := bytes[T](n)

	o := current.Load()
	o.logger.Debug().Int("cap", n).Int("bytes", size).Msg("allocate")
	if m := o.metrics; m != nil {
		inc(m.Allocations)
		add(m.LiveBytes, size)
		observe(m.AllocationBytes, size)
	}

	return unsafe.Pointer(unsafe.SliceData(block))
}

// Reallocate moves the first oldCap slots of block into a fresh block of newCap slots. The old
// block is zeroed and must not be used again.
func Reallocate[T any](block unsafe.Pointer, oldCap, newCap int) unsafe.Pointer {
	if block == nil {
		panic("can't reallocate nil block")
	}
	if newCap <= oldCap {
		panic("new capacity must be > old capacity")
	}

	src := unsafe.Slice((*T)(block), oldCap)
	dst := make([]T, newCap)
	copy(dst, src)
	clear(src)

	var (
		oldSize = bytes[T](oldCap)
		newSize = bytes[T](newCap)
	)

	o := current.Load()
	o.logger.Debug().
		Int("old_cap", oldCap).
		Int("cap", newCap).
		Int("bytes", newSize).
		Msg("reallocate")
	if m := o.metrics; m != nil {
		inc(m.Reallocations)
		add(m.LiveBytes, newSize-oldSize)
		observe(m.AllocationBytes, newSize)
	}

	return unsafe.Pointer(unsafe.SliceData(dst))
}

// Release zeroes the n slots of block and accounts for their release.
func Release[T any](block unsafe.Pointer, n int) {
	if block == nil || n < 1 {
		return
	}

	clear(unsafe.Slice((*T)(block), n))
	size := bytes[T](n)

	o := current.Load()
	o.logger.Debug().Int("cap", n).Int("bytes", size).Msg("release")
	if m := o.metrics; m != nil {
		inc(m.Releases)
		add(m.LiveBytes, -size)
	}
}

func update(fn func(o *observer)) {
	mu.Lock()
	defer mu.Unlock()

	o := *current.Load()
	fn(&o)
	current.Store(&o)
}

func bytes[T any](n int) int {
	var zero T
	return n * int(unsafe.Sizeof(zero))
}

func inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

func add(g prometheus.Gauge, v int) {
	if g != nil {
		g.Add(float64(v))
	}
}

func observe(h prometheus.Histogram, v int) {
	if h != nil {
		h.Observe(float64(v))
	}
}
