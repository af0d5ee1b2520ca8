package vec

import (
	"github.com/rs/zerolog"

	"github.com/teenjuna/vec/internal/alloc"
)

// Option changes the configuration of the global allocator shared by every Vec.
type Option = func(*config)

// WithLogger sets the logger that receives allocation events at debug level. By default nothing
// is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = &logger
	}
}

// WithPrometheus enables allocator metrics described by cfg.
func WithPrometheus(cfg *PrometheusConfig) Option {
	if cfg == nil {
		panic("prometheus config can't be nil")
	}
	return func(c *config) {
		c.prometheus = cfg
		c.noPrometheus = false
	}
}

// WithoutPrometheus disables allocator metrics.
func WithoutPrometheus() Option {
	return func(c *config) {
		c.prometheus = nil
		c.noPrometheus = true
	}
}

type config struct {
	logger       *zerolog.Logger
	prometheus   *PrometheusConfig
	noPrometheus bool
}

// Configure applies options to the global allocator. Settings not mentioned by any option are
// kept. It is safe to call Configure while Vecs are in use on other goroutines.
//
// Enabling Prometheus again with the same registerer reuses the collectors registered before.
// It panics if the registerer rejects the collectors for any other reason, for example when a
// different collector already uses one of the names.
func Configure(options ...Option) {
	cfg := config{}
	for _, opt := range options {
		opt(&cfg)
	}

	if cfg.logger != nil {
		alloc.SetLogger(*cfg.logger)
	}

	switch {
	case cfg.noPrometheus:
		alloc.SetMetrics(nil)
	case cfg.prometheus != nil:
		alloc.SetMetrics(cfg.prometheus.metrics())
	}
}
