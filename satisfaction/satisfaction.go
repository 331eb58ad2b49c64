// Package satisfaction scores a partition against ranked preferences.
//
// Compute is a pure function: identical inputs always produce an identical
// Report, which is what lets the editing engine diff a frozen baseline
// against the live state without re-deriving anything.
package satisfaction

import (
	"math"

	"github.com/andysmith26/groupwheel-sub002/types"
)

// Report is the aggregate satisfaction metric set.
type Report = types.SatisfactionReport

// Compute scores groups against preferences for a participant snapshot.
//
// For each snapshot participant with a non-empty wishlist that is assigned
// to a group, the assigned rank is the 1-based position of that group in
// the wishlist, or len(wishlist)+1 when the group is absent from it -- a
// finite sentinel, never infinity, so averages stay comparable.
// Participants with no preferences or no assignment are excluded from the
// rank aggregates and counted separately.
//
// Parameters:
//   - groups: Current partition
//   - prefs: Ranked wishlists keyed by participant id
//   - snapshot: The scenario's immutable participant set
//
// Returns:
//   - Report: Aggregates; AverageAssignedRank is NaN when no participant
//     has both preferences and an assignment
func Compute(groups []types.Group, prefs map[string]types.Preference, snapshot []string) Report {
	assigned := make(map[string]string, len(snapshot))
	for _, g := range groups {
		for _, m := range g.MemberIDs {
			assigned[m] = g.ID
		}
	}

	var (
		withPrefs  int
		topChoice  int
		topTwo     int
		rankSum    int
		noPrefs    int
		unassigned int
	)

	for _, id := range snapshot {
		pref, ok := prefs[id]
		if !ok || pref.IsEmpty() {
			noPrefs++
			continue
		}

		groupID, ok := assigned[id]
		if !ok {
			unassigned++
			continue
		}

		rank := pref.Rank(groupID)
		withPrefs++
		rankSum += rank
		if rank == 1 {
			topChoice++
		}
		if rank <= 2 {
			topTwo++
		}
	}

	report := Report{
		WithPreferences:          withPrefs,
		NoPreferenceCount:        noPrefs,
		UnassignedToRequestCount: unassigned,
		AverageAssignedRank:      math.NaN(),
	}
	if withPrefs > 0 {
		report.PercentTopChoice = 100 * float64(topChoice) / float64(withPrefs)
		report.PercentTopTwo = 100 * float64(topTwo) / float64(withPrefs)
		report.AverageAssignedRank = float64(rankSum) / float64(withPrefs)
	}

	return report
}
