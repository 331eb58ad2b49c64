package strategy

import (
	"sort"

	"github.com/andysmith26/groupwheel-sub002/types"
)

// Greedy implements preference-degree ordered greedy seeding.
type Greedy struct{}

var _ types.Assigner = (*Greedy)(nil)

// NewGreedy creates a new greedy seeding strategy.
//
// The strategy orders participants by descending connection degree (the
// number of declared preference links, i.e. wishlist length) so the most
// constrained participants are placed first, then assigns each to the
// remaining-capacity group it ranks best; ties resolve to the earliest
// group with capacity.
//
// Returns:
//   - *Greedy: Initialized greedy strategy
//
// Example:
//
//	seed := strategy.NewGreedy()
//	groups, err := seed.Assign(participants, prefs, groups)
func NewGreedy() *Greedy {
	return &Greedy{}
}

// Assign seeds every participant into exactly one group.
//
// The algorithm:
//  1. Verify combined capacity can hold the roster
//  2. Order participants by descending wishlist length (stable for ties)
//  3. Assign each, in order, to the group with remaining capacity that the
//     participant ranks best; ties break to the earliest group
//
// Parameters:
//   - participants: Deduplicated participant ids to place
//   - prefs: Ranked group wishlists keyed by participant id
//   - groups: Target groups carrying capacity configuration
//
// Returns:
//   - []types.Group: Groups with member lists populated
//   - error: ErrNoGroups or ErrInsufficientCapacity
func (g *Greedy) Assign(participants []string, prefs map[string]types.Preference, groups []types.Group) ([]types.Group, error) {
	out := types.CloneGroups(groups)
	for i := range out {
		out[i].MemberIDs = []string{}
	}
	if len(participants) == 0 {
		return out, nil
	}
	if len(out) == 0 {
		return nil, ErrNoGroups
	}
	if err := checkCapacity(len(participants), out); err != nil {
		return nil, err
	}

	// Most-connected participants placed first; stable sort keeps roster
	// order for equal degrees so the result is deterministic.
	ordered := append([]string(nil), participants...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(prefs[ordered[i]].Wishlist) > len(prefs[ordered[j]].Wishlist)
	})

	for _, p := range ordered {
		best := -1
		bestRank := 0
		pref := prefs[p]
		for i := range out {
			if !out[i].HasCapacity() {
				continue
			}
			rank := pref.Rank(out[i].ID)
			if best == -1 || rank < bestRank {
				best = i
				bestRank = rank
			}
		}
		if best == -1 {
			// checkCapacity ruled this out already
			return nil, ErrInsufficientCapacity
		}
		out[best].MemberIDs = append(out[best].MemberIDs, p)
	}

	return out, nil
}

// checkCapacity verifies the combined capacity can hold n participants.
func checkCapacity(n int, groups []types.Group) error {
	total := 0
	for _, g := range groups {
		if g.Capacity == types.CapacityUnlimited {
			return nil
		}
		total += g.Capacity
	}
	if total < n {
		return ErrInsufficientCapacity
	}

	return nil
}
