package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andysmith26/groupwheel-sub002/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metric registration is lazy: collectors register with the registerer on
// first use, so constructing the collector is side-effect free.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Engine metrics
	commandsApplied  *prometheus.CounterVec
	commandsRejected *prometheus.CounterVec
	undoTotal        *prometheus.CounterVec
	redoTotal        *prometheus.CounterVec
	historyLength    prometheus.Gauge
	historyCursor    prometheus.Gauge
	satisfaction     *prometheus.GaugeVec

	// Saver metrics
	saveTransitions  *prometheus.CounterVec
	saveAttempts     *prometheus.CounterVec
	saveLatency      prometheus.Histogram
	retryBackoff     prometheus.Histogram
	terminalFailures prometheus.Counter
	droppedStates    prometheus.Counter

	// Optimizer metrics
	generateDuration prometheus.Histogram
	swapsEvaluated   prometheus.Counter
	swapsAccepted    prometheus.Counter
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "groupwheel" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "groupwheel"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.commandsApplied = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "commands_applied_total",
			Help:      "Total commands applied, labeled by command kind.",
		}, []string{"kind"})

		p.commandsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "commands_rejected_total",
			Help:      "Total commands rejected by validation, labeled by reason.",
		}, []string{"reason"})

		p.undoTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "undo_total",
			Help:      "Total undo requests by outcome (applied|noop).",
		}, []string{"outcome"})

		p.redoTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "redo_total",
			Help:      "Total redo requests by outcome (applied|noop).",
		}, []string{"outcome"})

		p.historyLength = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "history_length",
			Help:      "Current number of entries in the command history.",
		})

		p.historyCursor = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "history_cursor",
			Help:      "Current history cursor position (applied entries).",
		})

		p.satisfaction = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "satisfaction",
			Help:      "Latest satisfaction analytics, labeled by measure.",
		}, []string{"measure"})

		p.saveTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "saver",
			Name:      "state_transitions_total",
			Help:      "Total save state machine transitions by from/to state.",
		}, []string{"from", "to"})

		p.saveAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "saver",
			Name:      "save_attempts_total",
			Help:      "Total store write attempts by result (success|failure).",
		}, []string{"result"})

		p.saveLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "saver",
			Name:      "save_latency_seconds",
			Help:      "Latency of store writes in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~4s
		})

		p.retryBackoff = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "saver",
			Name:      "retry_backoff_seconds",
			Help:      "Observed retry backoff delays in seconds.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8},
		})

		p.terminalFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "saver",
			Name:      "terminal_failures_total",
			Help:      "Total entries into the terminal Failed state.",
		})

		p.droppedStates = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "saver",
			Name:      "state_changes_dropped_total",
			Help:      "State notifications dropped due to slow subscribers.",
		})

		p.generateDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "optimizer",
			Name:      "generate_duration_seconds",
			Help:      "Duration of scenario generation in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms .. ~2s
		})

		p.swapsEvaluated = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "optimizer",
			Name:      "swaps_evaluated_total",
			Help:      "Total local search swap candidates evaluated.",
		})

		p.swapsAccepted = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "optimizer",
			Name:      "swaps_accepted_total",
			Help:      "Total strictly improving swaps applied.",
		})

		p.reg.MustRegister(p.commandsApplied)
		p.reg.MustRegister(p.commandsRejected)
		p.reg.MustRegister(p.undoTotal)
		p.reg.MustRegister(p.redoTotal)
		p.reg.MustRegister(p.historyLength)
		p.reg.MustRegister(p.historyCursor)
		p.reg.MustRegister(p.satisfaction)
		p.reg.MustRegister(p.saveTransitions)
		p.reg.MustRegister(p.saveAttempts)
		p.reg.MustRegister(p.saveLatency)
		p.reg.MustRegister(p.retryBackoff)
		p.reg.MustRegister(p.terminalFailures)
		p.reg.MustRegister(p.droppedStates)
		p.reg.MustRegister(p.generateDuration)
		p.reg.MustRegister(p.swapsEvaluated)
		p.reg.MustRegister(p.swapsAccepted)
	})
}

// EngineMetrics implementation

// RecordCommandApplied increments the applied counter for the command kind.
func (p *PrometheusCollector) RecordCommandApplied(kind types.CommandKind) {
	p.ensureRegistered()
	p.commandsApplied.WithLabelValues(kind.String()).Inc()
}

// RecordCommandRejected increments the rejected counter for the reason.
func (p *PrometheusCollector) RecordCommandRejected(reason string) {
	p.ensureRegistered()
	p.commandsRejected.WithLabelValues(reason).Inc()
}

// RecordUndo increments the undo counter by outcome.
func (p *PrometheusCollector) RecordUndo(applied bool) {
	p.ensureRegistered()
	p.undoTotal.WithLabelValues(outcomeLabel(applied)).Inc()
}

// RecordRedo increments the redo counter by outcome.
func (p *PrometheusCollector) RecordRedo(applied bool) {
	p.ensureRegistered()
	p.redoTotal.WithLabelValues(outcomeLabel(applied)).Inc()
}

// RecordHistoryDepth sets the history length and cursor gauges.
func (p *PrometheusCollector) RecordHistoryDepth(length, cursor int) {
	p.ensureRegistered()
	p.historyLength.Set(float64(length))
	p.historyCursor.Set(float64(cursor))
}

// RecordSatisfaction sets the satisfaction gauges from the report.
func (p *PrometheusCollector) RecordSatisfaction(report types.SatisfactionReport) {
	p.ensureRegistered()
	p.satisfaction.WithLabelValues("percent_top_choice").Set(report.PercentTopChoice)
	p.satisfaction.WithLabelValues("percent_top_two").Set(report.PercentTopTwo)
	p.satisfaction.WithLabelValues("average_assigned_rank").Set(report.AverageAssignedRank)
	p.satisfaction.WithLabelValues("with_preferences").Set(float64(report.WithPreferences))
	p.satisfaction.WithLabelValues("no_preference_count").Set(float64(report.NoPreferenceCount))
	p.satisfaction.WithLabelValues("unassigned_to_request_count").Set(float64(report.UnassignedToRequestCount))
}

// SaverMetrics implementation

// RecordSaveStateTransition increments the transition counter.
func (p *PrometheusCollector) RecordSaveStateTransition(from, to types.SaveState) {
	p.ensureRegistered()
	p.saveTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

// RecordSaveAttempt increments the attempt counter by result.
func (p *PrometheusCollector) RecordSaveAttempt(success bool) {
	p.ensureRegistered()
	if success {
		p.saveAttempts.WithLabelValues("success").Inc()
	} else {
		p.saveAttempts.WithLabelValues("failure").Inc()
	}
}

// RecordSaveLatency observes a store write duration.
func (p *PrometheusCollector) RecordSaveLatency(seconds float64) {
	p.ensureRegistered()
	p.saveLatency.Observe(seconds)
}

// RecordRetryBackoff observes a retry backoff delay.
func (p *PrometheusCollector) RecordRetryBackoff(seconds float64) {
	p.ensureRegistered()
	p.retryBackoff.Observe(seconds)
}

// RecordTerminalFailure increments the terminal failure counter.
func (p *PrometheusCollector) RecordTerminalFailure() {
	p.ensureRegistered()
	p.terminalFailures.Inc()
}

// RecordStateChangeDropped increments the dropped notification counter.
func (p *PrometheusCollector) RecordStateChangeDropped() {
	p.ensureRegistered()
	p.droppedStates.Inc()
}

// OptimizerMetrics implementation

// RecordGenerateDuration observes a scenario generation duration.
func (p *PrometheusCollector) RecordGenerateDuration(seconds float64) {
	p.ensureRegistered()
	p.generateDuration.Observe(seconds)
}

// RecordSwapOutcome adds to the swap counters.
func (p *PrometheusCollector) RecordSwapOutcome(evaluated, accepted int) {
	p.ensureRegistered()
	p.swapsEvaluated.Add(float64(evaluated))
	p.swapsAccepted.Add(float64(accepted))
}

func outcomeLabel(applied bool) string {
	if applied {
		return "applied"
	}

	return "noop"
}
