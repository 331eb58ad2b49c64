package satisfaction

import (
	"math"
	"testing"

	"github.com/andysmith26/groupwheel-sub002/types"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	snapshot := []string{"a", "b", "c", "d"}
	groups := []types.Group{
		{ID: "g1", Name: "Group 1", MemberIDs: []string{"a", "b"}},
		{ID: "g2", Name: "Group 2", MemberIDs: []string{"c"}},
	}

	t.Run("full satisfaction", func(t *testing.T) {
		prefs := map[string]types.Preference{
			"a": {ParticipantID: "a", Wishlist: []string{"g1"}},
			"b": {ParticipantID: "b", Wishlist: []string{"g1", "g2"}},
			"c": {ParticipantID: "c", Wishlist: []string{"g2"}},
		}

		report := Compute(groups, prefs, snapshot)

		require.Equal(t, 3, report.WithPreferences)
		require.InDelta(t, 100.0, report.PercentTopChoice, 1e-9)
		require.InDelta(t, 100.0, report.PercentTopTwo, 1e-9)
		require.InDelta(t, 1.0, report.AverageAssignedRank, 1e-9)
		require.Equal(t, 1, report.NoPreferenceCount) // d
	})

	t.Run("unlisted assignment scores beyond explicit ranks", func(t *testing.T) {
		prefs := map[string]types.Preference{
			// a wants g2 only; assigned g1 → rank len+1 = 2
			"a": {ParticipantID: "a", Wishlist: []string{"g2"}},
		}

		report := Compute(groups, prefs, snapshot)

		require.Equal(t, 1, report.WithPreferences)
		require.InDelta(t, 0.0, report.PercentTopChoice, 1e-9)
		require.InDelta(t, 100.0, report.PercentTopTwo, 1e-9)
		require.InDelta(t, 2.0, report.AverageAssignedRank, 1e-9)
	})

	t.Run("unassigned participants tracked separately", func(t *testing.T) {
		prefs := map[string]types.Preference{
			"d": {ParticipantID: "d", Wishlist: []string{"g1"}},
		}

		report := Compute(groups, prefs, snapshot)

		require.Equal(t, 0, report.WithPreferences)
		require.Equal(t, 1, report.UnassignedToRequestCount)
		require.True(t, math.IsNaN(report.AverageAssignedRank))
	})

	t.Run("empty inputs yield NaN average", func(t *testing.T) {
		report := Compute(nil, nil, nil)

		require.True(t, math.IsNaN(report.AverageAssignedRank))
		require.Zero(t, report.PercentTopChoice)
	})

	t.Run("idempotent for identical inputs", func(t *testing.T) {
		prefs := map[string]types.Preference{
			"a": {ParticipantID: "a", Wishlist: []string{"g2", "g1"}},
			"b": {ParticipantID: "b", Wishlist: []string{"g1"}},
		}

		first := Compute(groups, prefs, snapshot)
		second := Compute(groups, prefs, snapshot)

		require.Equal(t, first, second)
	})
}
