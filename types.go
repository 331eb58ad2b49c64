package groupwheel

import "github.com/andysmith26/groupwheel-sub002/types"

// Re-export types from the types subpackage.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the
// `types` subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root package,
// while still providing a convenient `groupwheel.Scenario`,
// `groupwheel.SaveState`, etc. for users.
type (
	Scenario           = types.Scenario
	ScenarioStatus     = types.ScenarioStatus
	Group              = types.Group
	Preference         = types.Preference
	Command            = types.Command
	CommandKind        = types.CommandKind
	SaveState          = types.SaveState
	SatisfactionReport = types.SatisfactionReport
)

// Re-export interfaces from the types subpackage for convenience.
type (
	Store            = types.Store
	Assigner         = types.Assigner
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Re-export scenario status constants from the types subpackage.
const (
	StatusDraft    = types.StatusDraft
	StatusAdopted  = types.StatusAdopted
	StatusArchived = types.StatusArchived
)

// Re-export save state constants from the types subpackage.
const (
	SaveStateIdle   = types.SaveStateIdle
	SaveStateSaving = types.SaveStateSaving
	SaveStateSaved  = types.SaveStateSaved
	SaveStateError  = types.SaveStateError
	SaveStateFailed = types.SaveStateFailed
)

// Re-export container constants from the types subpackage.
const (
	UnassignedContainer = types.UnassignedContainer
	CapacityUnlimited   = types.CapacityUnlimited
)
