package types

import "context"

// Hooks defines callbacks for editing engine lifecycle events.
//
// All hooks are optional. Hooks may fire while the engine is applying the
// command that triggered them, so they must not call back into the engine;
// record what you need from the arguments and return. Hook errors are
// logged but never fail the operation that triggered them.
//
// Best practices for hook implementation:
//   - Complete quickly (< 1 second recommended)
//   - Respect context cancellation
//   - Don't block on long I/O operations
//   - Make hooks idempotent (may be called multiple times)
type Hooks struct {
	// OnSaveStateChanged is called when the persistence status machine
	// transitions (e.g., Idle → Saving, Error → Failed).
	OnSaveStateChanged func(ctx context.Context, from, to SaveState) error

	// OnAnalyticsUpdated is called after a debounced satisfaction
	// recomputation with the fresh report and the frozen baseline.
	OnAnalyticsUpdated func(ctx context.Context, current, baseline SatisfactionReport) error

	// OnError is called when a recoverable background error occurs
	// (e.g., a save attempt that will be retried).
	OnError func(ctx context.Context, err error) error
}
