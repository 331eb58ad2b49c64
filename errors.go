package groupwheel

import "github.com/andysmith26/groupwheel-sub002/types"

// Sentinel errors re-exported from the types subpackage so callers can
// check them with errors.Is against the root package.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrStoreRequired is returned when the store is nil.
	ErrStoreRequired = types.ErrStoreRequired

	// ErrNotInitialized is returned by mutating methods before Initialize.
	ErrNotInitialized = types.ErrNotInitialized

	// ErrEngineClosed is returned when the engine has been closed.
	ErrEngineClosed = types.ErrEngineClosed

	// ErrSaveFailed is returned while persistence is in the terminal Failed
	// state; mutation is blocked until RetrySave.
	ErrSaveFailed = types.ErrSaveFailed

	// ErrNotDraft is returned when mutating a scenario that is not DRAFT.
	ErrNotDraft = types.ErrNotDraft

	// ErrInvalidScenario is returned when a scenario fails validation.
	ErrInvalidScenario = types.ErrInvalidScenario

	// ErrUnknownParticipant is returned for a participant outside the snapshot.
	ErrUnknownParticipant = types.ErrUnknownParticipant

	// ErrUnknownGroup is returned for a container id that does not exist.
	ErrUnknownGroup = types.ErrUnknownGroup

	// ErrSameContainer is returned when a move names the same source and target.
	ErrSameContainer = types.ErrSameContainer

	// ErrNotInSource is returned when the participant is not in the source.
	ErrNotInSource = types.ErrNotInSource

	// ErrAlreadyInTarget is returned when the participant is already in the target.
	ErrAlreadyInTarget = types.ErrAlreadyInTarget

	// ErrEmptyGroupName is returned when a group update clears the name.
	ErrEmptyGroupName = types.ErrEmptyGroupName

	// ErrDuplicateGroupName is returned for a case-insensitive name collision.
	ErrDuplicateGroupName = types.ErrDuplicateGroupName

	// ErrInvalidPermutation is returned when a reorder is not a permutation
	// of the container's current members.
	ErrInvalidPermutation = types.ErrInvalidPermutation

	// ErrNotFound is returned by stores when a scenario does not exist.
	ErrNotFound = types.ErrNotFound
)
