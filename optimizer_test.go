package groupwheel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andysmith26/groupwheel-sub002/satisfaction"
	"github.com/andysmith26/groupwheel-sub002/strategy"
	"github.com/andysmith26/groupwheel-sub002/types"
)

// groupByName finds a generated group by display name.
func groupByName(t *testing.T, scn *types.Scenario, name string) types.Group {
	t.Helper()

	for _, g := range scn.Groups {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("no group named %q", name)

	return types.Group{}
}

// membersByName maps group names to sorted-insensitive member sets for
// comparisons across runs (group ids are fresh uuids every call).
func membersByName(scn *types.Scenario) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(scn.Groups))
	for _, g := range scn.Groups {
		set := make(map[string]bool, len(g.MemberIDs))
		for _, m := range g.MemberIDs {
			set[m] = true
		}
		out[g.Name] = set
	}

	return out
}

func TestGenerate_AllTopChoice(t *testing.T) {
	ctx := t.Context()

	// Six participants, two groups of three, preferences that fit exactly.
	input := GenerateInput{
		Participants: []string{"a1", "a2", "a3", "b1", "b2", "b3"},
		Groups: []GroupSpec{
			{Name: "Red", Capacity: 3},
			{Name: "Blue", Capacity: 3},
		},
		Preferences: map[string]types.Preference{
			"a1": {ParticipantID: "a1", Wishlist: []string{"Red", "Blue"}},
			"a2": {ParticipantID: "a2", Wishlist: []string{"Red", "Blue"}},
			"a3": {ParticipantID: "a3", Wishlist: []string{"Red", "Blue"}},
			"b1": {ParticipantID: "b1", Wishlist: []string{"Blue", "Red"}},
			"b2": {ParticipantID: "b2", Wishlist: []string{"Blue", "Red"}},
			"b3": {ParticipantID: "b3", Wishlist: []string{"Blue", "Red"}},
		},
	}

	scn, err := Generate(ctx, input, WithGenerateSeed(1))
	require.NoError(t, err)

	require.Equal(t, types.StatusDraft, scn.Status)
	require.NotEmpty(t, scn.ID)
	require.Empty(t, scn.Unassigned)
	require.NoError(t, scn.Validate())

	red := groupByName(t, scn, "Red")
	blue := groupByName(t, scn, "Blue")
	require.ElementsMatch(t, []string{"a1", "a2", "a3"}, red.MemberIDs)
	require.ElementsMatch(t, []string{"b1", "b2", "b3"}, blue.MemberIDs)

	// Wishlists have to be rescored against the generated group ids.
	prefs := map[string]types.Preference{}
	for id, p := range input.Preferences {
		wishlist := make([]string, len(p.Wishlist))
		for i, name := range p.Wishlist {
			wishlist[i] = groupByName(t, scn, name).ID
		}
		prefs[id] = types.Preference{ParticipantID: id, Wishlist: wishlist}
	}
	report := satisfaction.Compute(scn.Groups, prefs, scn.ParticipantSnapshot)
	require.InDelta(t, 100.0, report.PercentTopChoice, 0.001)
	require.InDelta(t, 1.0, report.AverageAssignedRank, 0.001)
}

func TestGenerate_Deterministic(t *testing.T) {
	ctx := t.Context()

	input := GenerateInput{
		Participants: []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8"},
		GroupCount:   3,
		Preferences: map[string]types.Preference{
			"p1": {ParticipantID: "p1", Wishlist: []string{"Group 1"}},
			"p4": {ParticipantID: "p4", Wishlist: []string{"Group 2"}},
			"p7": {ParticipantID: "p7", Wishlist: []string{"Group 3", "Group 1"}},
		},
	}

	first, err := Generate(ctx, input, WithGenerateSeed(42))
	require.NoError(t, err)
	second, err := Generate(ctx, input, WithGenerateSeed(42))
	require.NoError(t, err)

	require.Equal(t, membersByName(first), membersByName(second))

	// Scenario identity is fresh per call even for identical input.
	require.NotEqual(t, first.ID, second.ID)
}

func TestGenerate_DerivedPlans(t *testing.T) {
	ctx := t.Context()

	t.Run("by count", func(t *testing.T) {
		scn, err := Generate(ctx, GenerateInput{
			Participants: []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"},
			GroupCount:   3,
		})
		require.NoError(t, err)

		require.Len(t, scn.Groups, 3)
		names := []string{scn.Groups[0].Name, scn.Groups[1].Name, scn.Groups[2].Name}
		require.ElementsMatch(t, []string{"Group 1", "Group 2", "Group 3"}, names)
		for _, g := range scn.Groups {
			require.Equal(t, 3, g.Capacity)
			require.False(t, g.OverCapacity())
		}
		require.Empty(t, scn.Unassigned)
	})

	t.Run("by size", func(t *testing.T) {
		scn, err := Generate(ctx, GenerateInput{
			Participants: []string{"p1", "p2", "p3", "p4", "p5"},
			GroupSize:    2,
		})
		require.NoError(t, err)

		require.Len(t, scn.Groups, 3)
		for _, g := range scn.Groups {
			require.False(t, g.OverCapacity())
		}
	})
}

func TestGenerate_InputNormalization(t *testing.T) {
	ctx := t.Context()

	t.Run("roster dedup and blank trimming", func(t *testing.T) {
		scn, err := Generate(ctx, GenerateInput{
			Participants: []string{" alice ", "bob", "alice", "", "bob"},
			GroupCount:   1,
		})
		require.NoError(t, err)
		require.Equal(t, []string{"alice", "bob"}, scn.ParticipantSnapshot)
	})

	t.Run("preference names translate case-insensitively", func(t *testing.T) {
		scn, err := Generate(ctx, GenerateInput{
			Participants: []string{"alice", "bob"},
			Groups: []GroupSpec{
				{Name: "Red", Capacity: 1},
				{Name: "Blue", Capacity: 1},
			},
			Preferences: map[string]types.Preference{
				"alice": {ParticipantID: "alice", Wishlist: []string{"blue"}},
				"bob":   {ParticipantID: "bob", Wishlist: []string{"RED", "NoSuchGroup"}},
			},
		}, WithGenerateSeed(7))
		require.NoError(t, err)

		require.Equal(t, []string{"alice"}, groupByName(t, scn, "Blue").MemberIDs)
		require.Equal(t, []string{"bob"}, groupByName(t, scn, "Red").MemberIDs)
	})

	t.Run("blank spec names default", func(t *testing.T) {
		scn, err := Generate(ctx, GenerateInput{
			Participants: []string{"alice"},
			Groups:       []GroupSpec{{Name: "  "}, {Name: "Named"}},
		})
		require.NoError(t, err)
		require.Equal(t, "Group 1", scn.Groups[0].Name)
		require.Equal(t, "Named", scn.Groups[1].Name)
	})

	t.Run("negative capacity means unlimited", func(t *testing.T) {
		scn, err := Generate(ctx, GenerateInput{
			Participants: []string{"alice", "bob", "carol"},
			Groups:       []GroupSpec{{Name: "All", Capacity: -1}},
		})
		require.NoError(t, err)
		require.Equal(t, types.CapacityUnlimited, scn.Groups[0].Capacity)
		require.Len(t, scn.Groups[0].MemberIDs, 3)
	})
}

func TestGenerate_Errors(t *testing.T) {
	ctx := t.Context()

	t.Run("empty input yields empty scenario", func(t *testing.T) {
		scn, err := Generate(ctx, GenerateInput{})
		require.NoError(t, err)
		require.Empty(t, scn.ParticipantSnapshot)
		require.Empty(t, scn.Groups)
		require.Empty(t, scn.Unassigned)
	})

	t.Run("participants without group shape", func(t *testing.T) {
		_, err := Generate(ctx, GenerateInput{Participants: []string{"alice"}})
		require.ErrorIs(t, err, strategy.ErrNoGroups)
	})

	t.Run("insufficient capacity", func(t *testing.T) {
		_, err := Generate(ctx, GenerateInput{
			Participants: []string{"p1", "p2", "p3", "p4", "p5"},
			Groups: []GroupSpec{
				{Name: "Red", Capacity: 2},
				{Name: "Blue", Capacity: 2},
			},
		})
		require.ErrorIs(t, err, strategy.ErrInsufficientCapacity)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := Generate(cancelled, GenerateInput{
			Participants: []string{"alice"},
			GroupCount:   1,
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestGenerate_FeedsEngine(t *testing.T) {
	ctx := t.Context()

	scn, err := Generate(ctx, GenerateInput{
		Participants: []string{"p1", "p2", "p3", "p4"},
		GroupCount:   2,
	}, WithGenerateSeed(3))
	require.NoError(t, err)

	cfg := TestConfig()
	engine, err := New(&cfg, newFlakyStore())
	require.NoError(t, err)
	defer engine.Close()

	require.NoError(t, engine.Initialize(ctx, scn, nil))

	// A generated scenario is immediately editable.
	member := scn.Groups[0].MemberIDs[0]
	require.NoError(t, engine.Move(ctx, member, scn.Groups[0].ID, scn.Groups[1].ID))
}
