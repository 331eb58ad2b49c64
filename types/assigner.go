package types

// Assigner partitions participants into groups.
//
// Strategies implement different assignment algorithms:
//   - Greedy: connection-degree ordered seeding into best-ranked groups
//   - LocalSearch: randomized pairwise swap hill-climbing over a seed
//   - Custom: user-defined algorithms
//
// Strategy implementations should:
//   - Be deterministic (same input → same output; randomized strategies
//     derive their seed from the input or an explicit option)
//   - Never exceed declared group capacities
//   - Handle edge cases (no participants, no groups, full groups)
//   - Be stateless (no side effects between calls)
type Assigner interface {
	// Assign distributes every participant into exactly one group.
	//
	// The incoming groups define ids, names, and capacities; implementations
	// own the member lists and must return groups whose member union is
	// exactly the participant list. When total capacity cannot hold all
	// participants the remainder goes to the groups in order (still never
	// exceeding capacity is impossible then; implementations return an
	// error instead of silently over-filling).
	//
	// Parameters:
	//   - participants: Deduplicated participant ids to place
	//   - prefs: Ranked group wishlists keyed by participant id
	//   - groups: Target groups carrying capacity configuration
	//
	// Returns:
	//   - []Group: Groups with member lists populated
	//   - error: Assignment error (e.g., insufficient capacity)
	Assign(participants []string, prefs map[string]Preference, groups []Group) ([]Group, error)
}
