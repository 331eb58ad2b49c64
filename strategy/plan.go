package strategy

import "fmt"

// Plan describes a derived capacity configuration: how many groups to
// create and the per-group capacity.
type Plan struct {
	// GroupCount is the number of groups to create.
	GroupCount int

	// GroupCapacity is the capacity of each created group.
	GroupCapacity int
}

// PlanByCount derives a plan from a fixed group count.
//
// Capacity is ceil(participants / count) so the groups can always hold the
// whole roster. A zero-participant roster still yields the requested group
// count with capacity 1.
//
// Parameters:
//   - participants: Roster size
//   - count: Desired group count (must be positive)
//
// Returns:
//   - Plan: Derived plan
//   - error: ErrInvalidPlan when count is not positive
func PlanByCount(participants, count int) (Plan, error) {
	if count <= 0 {
		return Plan{}, fmt.Errorf("%w: group count %d", ErrInvalidPlan, count)
	}
	capacity := (participants + count - 1) / count
	if capacity < 1 {
		capacity = 1
	}

	return Plan{GroupCount: count, GroupCapacity: capacity}, nil
}

// PlanBySize derives a plan from a fixed target group size.
//
// The group count is ceil(participants / size). A zero-participant roster
// yields a single empty group.
//
// Parameters:
//   - participants: Roster size
//   - size: Desired group size (must be positive)
//
// Returns:
//   - Plan: Derived plan
//   - error: ErrInvalidPlan when size is not positive
func PlanBySize(participants, size int) (Plan, error) {
	if size <= 0 {
		return Plan{}, fmt.Errorf("%w: group size %d", ErrInvalidPlan, size)
	}
	count := (participants + size - 1) / size
	if count < 1 {
		count = 1
	}

	return Plan{GroupCount: count, GroupCapacity: size}, nil
}
