// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/andysmith26/groupwheel-sub002/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// EngineMetrics implementation

// RecordCommandApplied discards the applied-command counter.
func (n *NopMetrics) RecordCommandApplied(_ /* kind */ types.CommandKind) {
	// No-op
}

// RecordCommandRejected discards the rejected-command counter.
func (n *NopMetrics) RecordCommandRejected(_ /* reason */ string) {
	// No-op
}

// RecordUndo discards the undo counter.
func (n *NopMetrics) RecordUndo(_ /* applied */ bool) {
	// No-op
}

// RecordRedo discards the redo counter.
func (n *NopMetrics) RecordRedo(_ /* applied */ bool) {
	// No-op
}

// RecordHistoryDepth discards the history gauges.
func (n *NopMetrics) RecordHistoryDepth(_ /* length */, _ /* cursor */ int) {
	// No-op
}

// RecordSatisfaction discards the satisfaction gauges.
func (n *NopMetrics) RecordSatisfaction(_ /* report */ types.SatisfactionReport) {
	// No-op
}

// SaverMetrics implementation

// RecordSaveStateTransition discards the save state transition metric.
func (n *NopMetrics) RecordSaveStateTransition(_ /* from */, _ /* to */ types.SaveState) {
	// No-op
}

// RecordSaveAttempt discards the save attempt counter.
func (n *NopMetrics) RecordSaveAttempt(_ /* success */ bool) {
	// No-op
}

// RecordSaveLatency discards the save latency observation.
func (n *NopMetrics) RecordSaveLatency(_ /* seconds */ float64) {
	// No-op
}

// RecordRetryBackoff discards the backoff observation.
func (n *NopMetrics) RecordRetryBackoff(_ /* seconds */ float64) {
	// No-op
}

// RecordTerminalFailure discards the terminal failure counter.
func (n *NopMetrics) RecordTerminalFailure() {
	// No-op
}

// RecordStateChangeDropped discards the state change dropped metric.
func (n *NopMetrics) RecordStateChangeDropped() {
	// No-op
}

// OptimizerMetrics implementation

// RecordGenerateDuration discards the generation duration observation.
func (n *NopMetrics) RecordGenerateDuration(_ /* seconds */ float64) {
	// No-op
}

// RecordSwapOutcome discards the swap counters.
func (n *NopMetrics) RecordSwapOutcome(_ /* evaluated */, _ /* accepted */ int) {
	// No-op
}
