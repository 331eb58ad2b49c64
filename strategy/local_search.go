package strategy

import (
	rand "math/rand/v2"

	"github.com/andysmith26/groupwheel-sub002/internal/seed"
	"github.com/andysmith26/groupwheel-sub002/types"
)

// DefaultIterations is the default local search swap budget.
const DefaultIterations = 300

// LocalSearch improves a seeded assignment with randomized pairwise swaps.
type LocalSearch struct {
	seeder     types.Assigner
	iterations int
	seed       uint64
	metrics    types.OptimizerMetrics
}

var _ types.Assigner = (*LocalSearch)(nil)

// LocalSearchOption configures a LocalSearch strategy.
type LocalSearchOption func(*LocalSearch)

// NewLocalSearch creates a hill-climbing local search strategy.
//
// The strategy delegates seeding to an inner strategy (Greedy by default),
// then runs a fixed budget of randomized pairwise swaps between
// participants in different groups. Each trial simulates the swap, scores
// the delta, and accepts only strictly positive improvements -- there is no
// probabilistic acceptance of worse states. The budget, not convergence,
// bounds the runtime.
//
// Parameters:
//   - opts: Optional configuration (WithIterations, WithSeed, WithSeeder,
//     WithOptimizerMetrics)
//
// Returns:
//   - *LocalSearch: Initialized local search strategy
//
// Example:
//
//	assigner := strategy.NewLocalSearch(
//	    strategy.WithIterations(500),
//	)
//	groups, err := assigner.Assign(participants, prefs, groups)
func NewLocalSearch(opts ...LocalSearchOption) *LocalSearch {
	ls := &LocalSearch{
		seeder:     NewGreedy(),
		iterations: DefaultIterations,
	}
	for _, opt := range opts {
		opt(ls)
	}

	return ls
}

// WithIterations sets the swap evaluation budget.
//
// Parameters:
//   - n: Number of swap trials (values < 1 keep the default)
//
// Returns:
//   - LocalSearchOption: Configuration option
func WithIterations(n int) LocalSearchOption {
	return func(ls *LocalSearch) {
		if n > 0 {
			ls.iterations = n
		}
	}
}

// WithSeed sets an explicit RNG seed.
//
// When unset (0), the seed derives from the input ids, so identical inputs
// still produce identical output.
//
// Parameters:
//   - s: Seed value
//
// Returns:
//   - LocalSearchOption: Configuration option
func WithSeed(s uint64) LocalSearchOption {
	return func(ls *LocalSearch) {
		ls.seed = s
	}
}

// WithSeeder sets the inner seeding strategy (default: Greedy).
//
// Parameters:
//   - seeder: Strategy producing the starting assignment
//
// Returns:
//   - LocalSearchOption: Configuration option
func WithSeeder(seeder types.Assigner) LocalSearchOption {
	return func(ls *LocalSearch) {
		if seeder != nil {
			ls.seeder = seeder
		}
	}
}

// WithOptimizerMetrics sets a metrics recorder for swap outcomes.
//
// Parameters:
//   - m: Optimizer metrics recorder
//
// Returns:
//   - LocalSearchOption: Configuration option
func WithOptimizerMetrics(m types.OptimizerMetrics) LocalSearchOption {
	return func(ls *LocalSearch) {
		ls.metrics = m
	}
}

// Assign seeds the groups and then hill-climbs with pairwise swaps.
//
// The algorithm:
//  1. Delegate to the seeding strategy
//  2. For each of the budgeted iterations, pick two random participants in
//     different groups and compute the swap's rank delta
//  3. Apply the swap only when it strictly improves the summed rank
//     satisfaction of the two participants
//
// With group-ranked wishlists a swap leaves every groupmate's own
// assignment unchanged, so their satisfaction terms cancel out of the
// delta; only the two swapped participants are scored.
//
// Parameters:
//   - participants: Deduplicated participant ids to place
//   - prefs: Ranked group wishlists keyed by participant id
//   - groups: Target groups carrying capacity configuration
//
// Returns:
//   - []types.Group: Improved groups
//   - error: Seeding error, if any
func (ls *LocalSearch) Assign(participants []string, prefs map[string]types.Preference, groups []types.Group) ([]types.Group, error) {
	out, err := ls.seeder.Assign(participants, prefs, groups)
	if err != nil {
		return nil, err
	}
	if len(participants) < 2 || len(out) < 2 {
		return out, nil
	}

	// location of every assigned participant: group index + member index
	type slot struct{ group, member int }
	where := make(map[string]slot, len(participants))
	assigned := make([]string, 0, len(participants))
	for gi := range out {
		for mi, id := range out[gi].MemberIDs {
			where[id] = slot{group: gi, member: mi}
			assigned = append(assigned, id)
		}
	}
	if len(assigned) < 2 {
		return out, nil
	}

	seedVal := ls.seed
	if seedVal == 0 {
		ids := make([]string, len(out))
		for i, g := range out {
			ids[i] = g.ID
		}
		seedVal = seed.FromInputs(participants, ids)
	}
	rng := rand.New(rand.NewPCG(seedVal, seedVal^0x9e3779b97f4a7c15))

	accepted := 0
	for range ls.iterations {
		p := assigned[rng.IntN(len(assigned))]
		q := assigned[rng.IntN(len(assigned))]
		sp, sq := where[p], where[q]
		if sp.group == sq.group {
			continue
		}

		gp, gq := out[sp.group].ID, out[sq.group].ID
		before := prefs[p].Rank(gp) + prefs[q].Rank(gq)
		after := prefs[p].Rank(gq) + prefs[q].Rank(gp)
		if after >= before {
			continue
		}

		out[sp.group].MemberIDs[sp.member] = q
		out[sq.group].MemberIDs[sq.member] = p
		where[p], where[q] = sq, sp
		accepted++
	}

	if ls.metrics != nil {
		ls.metrics.RecordSwapOutcome(ls.iterations, accepted)
	}

	return out, nil
}
