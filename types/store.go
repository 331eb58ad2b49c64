package types

import "context"

// Store is the persistence port consumed by the editing engine.
//
// Implementations may be in-memory, file-backed, NATS KV, or a database;
// the engine only relies on the consistency contract:
//   - At-least-once durability per successful call
//   - Subsequent reads reflect the latest successful write
//   - Update fails with ErrNotFound (distinguishably from other errors)
//     when the scenario has never been saved, so the engine can fall back
//     to Save transparently
//
// Writes are idempotent at the call site: the engine always writes the full
// current scenario keyed by its id.
type Store interface {
	// Get loads a scenario by id.
	//
	// Returns:
	//   - *Scenario: The stored scenario (a copy safe for the caller to own)
	//   - error: ErrNotFound when absent, or an I/O error
	Get(ctx context.Context, id string) (*Scenario, error)

	// Save creates the scenario record.
	Save(ctx context.Context, scenario *Scenario) error

	// Update replaces an existing scenario record.
	//
	// Returns:
	//   - error: ErrNotFound when the scenario was never saved
	Update(ctx context.Context, scenario *Scenario) error
}
