package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called from timer goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better
// modularity.
type MetricsCollector interface {
	EngineMetrics
	SaverMetrics
	OptimizerMetrics
}

// EngineMetrics defines metrics for command application and history.
type EngineMetrics interface {
	// RecordCommandApplied records a successfully applied command.
	RecordCommandApplied(kind CommandKind)

	// RecordCommandRejected records a command rejected by validation.
	//
	// Parameters:
	//   - reason: Short reason label (e.g., "unknown_group", "save_failed")
	RecordCommandRejected(reason string)

	// RecordUndo records an undo attempt and whether it applied.
	RecordUndo(applied bool)

	// RecordRedo records a redo attempt and whether it applied.
	RecordRedo(applied bool)

	// RecordHistoryDepth sets the current history length and cursor (gauges).
	RecordHistoryDepth(length, cursor int)

	// RecordSatisfaction records the latest satisfaction report gauges.
	RecordSatisfaction(report SatisfactionReport)
}

// SaverMetrics defines metrics for the persistence status machine.
type SaverMetrics interface {
	// RecordSaveStateTransition records a save status machine transition.
	RecordSaveStateTransition(from, to SaveState)

	// RecordSaveAttempt records a write attempt (success or failure).
	RecordSaveAttempt(success bool)

	// RecordSaveLatency records the duration of a write in seconds.
	RecordSaveLatency(seconds float64)

	// RecordRetryBackoff records an observed retry backoff delay in seconds.
	RecordRetryBackoff(seconds float64)

	// RecordTerminalFailure records entry into the terminal Failed state.
	RecordTerminalFailure()

	// RecordStateChangeDropped records a state notification dropped due to a
	// slow subscriber.
	RecordStateChangeDropped()
}

// OptimizerMetrics defines metrics for partition generation.
type OptimizerMetrics interface {
	// RecordGenerateDuration records the time taken to generate a scenario.
	RecordGenerateDuration(seconds float64)

	// RecordSwapOutcome records local search swap counters.
	//
	// Parameters:
	//   - evaluated: Number of swap candidates evaluated
	//   - accepted: Number of strictly improving swaps applied
	RecordSwapOutcome(evaluated, accepted int)
}
