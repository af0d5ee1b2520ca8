package vec

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/teenjuna/vec/internal/alloc"
)

// PrometheusConfig is a config of the Prometheus metrics of the global allocator that backs
// every Vec.
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
type PrometheusConfig struct {
	// Options for the allocations counter.
	Allocations prometheus.CounterOpts
	// Options for the reallocations counter.
	Reallocations prometheus.CounterOpts
	// Options for the releases counter.
	Releases prometheus.CounterOpts
	// Options for the live bytes gauge.
	LiveBytes prometheus.GaugeOpts
	// Options for the allocation size histogram.
	AllocationBytes prometheus.HistogramOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Many default parameters can be configured by passing
// configuration functions.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "vec"
		subsystem = "alloc"
	)

	c := PrometheusConfig{
		registerer: registerer,
		Allocations: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "allocations_total",
			Help:      "Number of buffers allocated",
		},
		Reallocations: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reallocations_total",
			Help:      "Number of buffers grown by reallocation",
		},
		Releases: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "releases_total",
			Help:      "Number of buffers released",
		},
		LiveBytes: prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "live_bytes",
			Help:      "Bytes held by buffers that are not released yet",
		},
		AllocationBytes: prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "allocation_bytes",
			Help:      "Size of allocated and reallocated buffers",
			Buckets:   prometheus.ExponentialBuckets(8, 4, 12),
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

// metrics creates the collectors and registers them. Collectors that are already registered
// with the same options are reused, so configuring the same registerer twice keeps counting into
// the same series.
func (c *PrometheusConfig) metrics() *alloc.Metrics {
	m := alloc.Metrics{
		Allocations:     prometheus.NewCounter(c.Allocations),
		Reallocations:   prometheus.NewCounter(c.Reallocations),
		Releases:        prometheus.NewCounter(c.Releases),
		LiveBytes:       prometheus.NewGauge(c.LiveBytes),
		AllocationBytes: prometheus.NewHistogram(c.AllocationBytes),
	}

	if c.registerer != nil {
		m.Allocations = register(c.registerer, m.Allocations)
		m.Reallocations = register(c.registerer, m.Reallocations)
		m.Releases = register(c.registerer, m.Releases)
		m.LiveBytes = register(c.registerer, m.LiveBytes)
		m.AllocationBytes = register(c.registerer, m.AllocationBytes)
	}

	return &m
}

func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	err := registerer.Register(collector)
	if err == nil {
		return collector
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing
		}
	}

	panic(err)
}
