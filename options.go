package mapper

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/gomapper/nerve"
	"go.opentelemetry.io/otel/trace"
)

type options struct {
	workers          int
	memoryLimit      int64
	nerveStrategy    nerve.Strategy
	metricsCollector MetricsCollector
	logger           *Logger
	tracerProvider   trace.TracerProvider
}

// Option configures Mapper constructor behavior.
type Option func(*options)

// WithWorkers sets how many cells are filtered and clustered concurrently.
//
// Results do not depend on the worker count: per-cell clusters are merged
// in cell enumeration order. If n <= 0, GOMAXPROCS is used.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMemoryLimit bounds the working memory of in-flight cells.
//
// Each cell reserves an estimate of its subset and label buffers before
// clustering and waits while concurrent cells hold too much. A single cell
// whose reservation exceeds the whole limit aborts the run with
// ErrMemoryLimitExceeded; it is not treated as a per-cell failure.
// If bytes <= 0, memory is tracked but not limited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithNerveStrategy selects how Graph finds intersecting clusters.
// The graph is identical for every strategy.
func WithNerveStrategy(s nerve.Strategy) Option {
	return func(o *options) {
		o.nerveStrategy = s
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &mapper.BasicMetricsCollector{}
//	m, _ := mapper.New(points, mapper.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Cells: %d, failed: %d\n", stats.CellCount, stats.CellErrors)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := mapper.NewJSONLogger(slog.LevelInfo)
//	m, _ := mapper.New(points, mapper.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithTracerProvider sets the OpenTelemetry provider used for run spans.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		nerveStrategy:    nerve.StrategyIndexed,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}
