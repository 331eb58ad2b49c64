package strategy

import "errors"

// Sentinel errors returned by partition strategies.
var (
	// ErrNoGroups is returned when participants exist but no groups do.
	ErrNoGroups = errors.New("no groups available for assignment")

	// ErrInsufficientCapacity is returned when the combined group capacity
	// cannot hold every participant.
	ErrInsufficientCapacity = errors.New("insufficient group capacity for all participants")

	// ErrInvalidPlan is returned when a capacity plan is derived from
	// non-positive targets.
	ErrInvalidPlan = errors.New("invalid capacity plan")
)
