package types

import "errors"

// Sentinel errors for the groupwheel library.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). All components use these sentinels for known conditions and
// wrap external errors with context using fmt.Errorf("%s: %w", msg, err).
//
// Validation failures are ordinary returned errors and never panic: the
// engine leaves state untouched when it returns one.

// Engine errors - Public API errors returned by the editing engine.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreRequired is returned when the persistence store is nil.
	ErrStoreRequired = errors.New("scenario store is required")

	// ErrNotInitialized is returned when a mutating method is invoked before
	// Initialize. This signals a usage-contract violation by the caller, not
	// a runtime condition.
	ErrNotInitialized = errors.New("engine not initialized")

	// ErrEngineClosed is returned when operations are invoked after Close.
	ErrEngineClosed = errors.New("engine closed")

	// ErrSaveFailed is returned when mutation is blocked by a terminal
	// persistence failure. An explicit RetrySave is the only way out.
	ErrSaveFailed = errors.New("save failed: persistence retries exhausted")

	// ErrNotDraft is returned when Adopt is called on a non-DRAFT scenario.
	ErrNotDraft = errors.New("scenario is not in draft status")
)

// Validation errors - Typed failure reasons for rejected commands.
var (
	// ErrInvalidScenario is returned when scenario invariants are violated.
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrUnknownParticipant is returned when a participant id is not in the
	// scenario's immutable snapshot.
	ErrUnknownParticipant = errors.New("participant not in snapshot")

	// ErrUnknownGroup is returned when a group id does not exist.
	ErrUnknownGroup = errors.New("group not found")

	// ErrSameContainer is returned when a move targets its own source.
	ErrSameContainer = errors.New("source and target containers are the same")

	// ErrNotInSource is returned when the participant does not occupy the
	// declared source container.
	ErrNotInSource = errors.New("participant not in source container")

	// ErrAlreadyInTarget is returned when the target already contains the
	// participant.
	ErrAlreadyInTarget = errors.New("participant already in target container")

	// ErrEmptyGroupName is returned when a group update supplies an empty name.
	ErrEmptyGroupName = errors.New("group name must not be empty")

	// ErrDuplicateGroupName is returned when a group update collides with an
	// existing name (case-insensitive).
	ErrDuplicateGroupName = errors.New("group name already in use")

	// ErrInvalidPermutation is returned when a reorder is not a permutation
	// of the container's current members.
	ErrInvalidPermutation = errors.New("order is not a permutation of the container")
)

// Store errors - Shared by all persistence port implementations.
var (
	// ErrNotFound is returned by Get and Update when no scenario exists for
	// the id. It must be distinguishable from other failures so the saver
	// can fall back from Update to Save transparently.
	ErrNotFound = errors.New("scenario not found")
)
