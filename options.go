package groupwheel

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andysmith26/groupwheel-sub002/internal/metrics"
)

// Option configures an Engine with optional dependencies.
type Option func(*engineOptions)

// engineOptions holds optional Engine configuration.
type engineOptions struct {
	hooks    *Hooks
	metrics  MetricsCollector
	logger   Logger
	assigner Assigner
}

// WithHooks sets lifecycle event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	hooks := &groupwheel.Hooks{
//	    OnSaveStateChanged: func(ctx context.Context, from, to groupwheel.SaveState) error {
//	        updateSaveIndicator(to)
//	        return nil
//	    },
//	}
//	engine, err := groupwheel.New(&cfg, store, groupwheel.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *engineOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	collector := groupwheel.NewPrometheusMetrics(nil, "groupwheel")
//	engine, err := groupwheel.New(&cfg, store, groupwheel.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *engineOptions) {
		o.metrics = metrics
	}
}

// NewPrometheusMetrics creates a Prometheus-backed MetricsCollector.
//
// Metric registration is lazy, so constructing the collector has no side
// effects on the registerer.
//
// Parameters:
//   - reg: Prometheus registerer (prometheus.DefaultRegisterer when nil)
//   - namespace: Metrics namespace ("groupwheel" when empty)
//
// Returns:
//   - MetricsCollector: Collector suitable for WithMetrics
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	logger := zap.NewExample().Sugar()
//	engine, err := groupwheel.New(&cfg, store, groupwheel.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithAssigner sets the assignment strategy used by Reoptimize.
//
// Defaults to strategy.NewLocalSearch() seeded with strategy.NewGreedy().
//
// Parameters:
//   - assigner: Assigner implementation
//
// Returns:
//   - Option: Functional option for New
func WithAssigner(assigner Assigner) Option {
	return func(o *engineOptions) {
		o.assigner = assigner
	}
}
