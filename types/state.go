package types

// SaveState represents the persistence status machine of the editing engine.
//
// Normal operation cycles:
//
//	SaveStateIdle → SaveStateSaving → SaveStateSaved → SaveStateIdle
//
// The Saved state auto-reverts to Idle after a short hold. On write failure:
//
//	SaveStateSaving → SaveStateError → SaveStateSaving (retry) → … → SaveStateFailed
//
// SaveStateFailed is terminal: all mutating operations are rejected until an
// explicit retry resets the machine to Idle. Exhausting the retry budget is
// the only path into Failed.
type SaveState int

const (
	// SaveStateIdle indicates no write is pending or in flight.
	SaveStateIdle SaveState = iota

	// SaveStateSaving indicates a write is in flight.
	SaveStateSaving

	// SaveStateSaved indicates the last write succeeded (auto-reverts to Idle).
	SaveStateSaved

	// SaveStateError indicates a transient failure with retries remaining.
	SaveStateError

	// SaveStateFailed indicates the retry budget is exhausted; mutation is
	// blocked until an explicit retry.
	SaveStateFailed
)

// String returns the string representation of the save state.
func (s SaveState) String() string {
	switch s {
	case SaveStateIdle:
		return "Idle"
	case SaveStateSaving:
		return "Saving"
	case SaveStateSaved:
		return "Saved"
	case SaveStateError:
		return "Error"
	case SaveStateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
