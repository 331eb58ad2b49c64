package groupwheel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andysmith26/groupwheel-sub002/internal/metrics"
	"github.com/andysmith26/groupwheel-sub002/roster"
	"github.com/andysmith26/groupwheel-sub002/strategy"
	"github.com/andysmith26/groupwheel-sub002/types"
)

// GroupSpec declares one group for Generate. Capacity zero means
// unlimited.
type GroupSpec struct {
	Name     string `yaml:"name" json:"name"`
	Capacity int    `yaml:"capacity" json:"capacity"`
}

// GenerateInput describes the roster and target group shape for the
// optimizer.
//
// Exactly one of Groups, GroupCount, or GroupSize should be set (checked
// in that priority order): explicit specs keep their declared capacities,
// a count derives capacity as ceil(n/count), a size derives the count as
// ceil(n/size).
type GenerateInput struct {
	// Participants is the roster; duplicates collapse to the first
	// occurrence and blanks are dropped.
	Participants []string

	// Preferences holds ranked group-name wishlists keyed by participant
	// id. Wishlist entries name groups by their GroupSpec names (or "Group N"
	// for derived groups); they are translated to group ids internally.
	Preferences map[string]types.Preference

	// Groups declares explicit groups with capacities.
	Groups []GroupSpec

	// GroupCount asks for a fixed number of groups.
	GroupCount int

	// GroupSize asks for groups of at most this size.
	GroupSize int
}

// GenerateOption configures a Generate call.
type GenerateOption func(*generateOptions)

type generateOptions struct {
	seed       uint64
	iterations int
	metrics    MetricsCollector
}

// WithGenerateSeed fixes the local search RNG seed for reproducible
// output. Zero derives the seed from the input ids.
func WithGenerateSeed(seed uint64) GenerateOption {
	return func(o *generateOptions) {
		o.seed = seed
	}
}

// WithGenerateIterations overrides the local search swap budget.
func WithGenerateIterations(n int) GenerateOption {
	return func(o *generateOptions) {
		o.iterations = n
	}
}

// WithGenerateMetrics sets the metrics collector for generation timings
// and swap counters.
func WithGenerateMetrics(m MetricsCollector) GenerateOption {
	return func(o *generateOptions) {
		o.metrics = m
	}
}

// Generate builds a DRAFT scenario from a roster and ranked preferences.
//
// The pipeline is: capacity plan, greedy seed ordered by declared
// preference degree, then a fixed budget of randomized pairwise swaps
// accepting only strict improvements. Output is deterministic for a
// given input (or a fixed seed).
//
// The returned scenario is valid and complete: the union of groups plus
// the unassigned list is exactly the deduplicated roster, and no group
// exceeds its capacity. Generate does not persist; hand the scenario to
// an Engine or a Store for that.
//
// Parameters:
//   - ctx: Context checked before the (CPU-bound) search runs
//   - input: Roster, preferences, and group shape
//   - opts: Optional seed, iteration budget, metrics
//
// Returns:
//   - *types.Scenario: New DRAFT scenario with uuid id and UTC timestamps
//   - error: strategy.ErrNoGroups, strategy.ErrInsufficientCapacity, or a
//     context error
func Generate(ctx context.Context, input GenerateInput, opts ...GenerateOption) (*types.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := &generateOptions{iterations: strategy.DefaultIterations}
	for _, opt := range opts {
		opt(options)
	}
	collector := options.metrics
	if collector == nil {
		collector = metrics.NewNop()
	}

	start := time.Now()
	defer func() {
		collector.RecordGenerateDuration(time.Since(start).Seconds())
	}()

	participants := roster.NewSnapshot(input.Participants)

	groups, nameToID, err := buildGroups(input, len(participants))
	if err != nil {
		return nil, err
	}

	prefs := translatePreferences(input.Preferences, nameToID)

	assigner := strategy.NewLocalSearch(
		strategy.WithIterations(options.iterations),
		strategy.WithSeed(options.seed),
		strategy.WithOptimizerMetrics(collector),
	)

	assigned, err := assigner.Assign(participants, prefs, groups)
	if err != nil {
		return nil, err
	}

	return types.NewScenario(uuid.NewString(), participants, assigned, time.Now().UTC())
}

// buildGroups materializes the group list from the input shape and
// returns a fold-cased name to group id translation map.
func buildGroups(input GenerateInput, participants int) ([]types.Group, map[string]string, error) {
	var groups []types.Group

	switch {
	case len(input.Groups) > 0:
		groups = make([]types.Group, 0, len(input.Groups))
		for i, spec := range input.Groups {
			name := strings.TrimSpace(spec.Name)
			if name == "" {
				name = fmt.Sprintf("Group %d", i+1)
			}
			capacity := spec.Capacity
			if capacity < 0 {
				capacity = types.CapacityUnlimited
			}
			groups = append(groups, types.Group{
				ID:       uuid.NewString(),
				Name:     name,
				Capacity: capacity,
			})
		}
	case input.GroupCount > 0:
		plan, err := strategy.PlanByCount(participants, input.GroupCount)
		if err != nil {
			return nil, nil, err
		}
		groups = groupsFromPlan(plan)
	case input.GroupSize > 0:
		plan, err := strategy.PlanBySize(participants, input.GroupSize)
		if err != nil {
			return nil, nil, err
		}
		groups = groupsFromPlan(plan)
	case participants == 0:
		// Empty input yields an empty scenario, not an error.
		return nil, map[string]string{}, nil
	default:
		return nil, nil, strategy.ErrNoGroups
	}

	nameToID := make(map[string]string, len(groups))
	for i := range groups {
		nameToID[strings.ToLower(groups[i].Name)] = groups[i].ID
	}

	return groups, nameToID, nil
}

func groupsFromPlan(plan strategy.Plan) []types.Group {
	groups := make([]types.Group, 0, plan.GroupCount)
	for i := range plan.GroupCount {
		groups = append(groups, types.Group{
			ID:       uuid.NewString(),
			Name:     fmt.Sprintf("Group %d", i+1),
			Capacity: plan.GroupCapacity,
		})
	}

	return groups
}

// translatePreferences maps wishlist entries from group names to group
// ids. Entries naming unknown groups are dropped; entries that already
// are group ids pass through.
func translatePreferences(prefs map[string]types.Preference, nameToID map[string]string) map[string]types.Preference {
	idSet := make(map[string]struct{}, len(nameToID))
	for _, id := range nameToID {
		idSet[id] = struct{}{}
	}

	out := make(map[string]types.Preference, len(prefs))
	for pid, pref := range prefs {
		wishlist := make([]string, 0, len(pref.Wishlist))
		for _, entry := range pref.Wishlist {
			if id, ok := nameToID[strings.ToLower(strings.TrimSpace(entry))]; ok {
				wishlist = append(wishlist, id)
				continue
			}
			if _, ok := idSet[entry]; ok {
				wishlist = append(wishlist, entry)
			}
		}
		out[pid] = types.Preference{ParticipantID: pid, Wishlist: wishlist}
	}

	return out
}
