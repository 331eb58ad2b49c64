// Package groupwheel provides participant grouping: an optimizer that
// builds preference-aware group assignments and an editing engine for
// refining them with undo/redo and debounced persistence.
//
// Groupwheel splits the work into two halves. Generate produces a draft
// scenario from a roster and ranked group preferences using a greedy seed
// followed by randomized hill-climbing swaps. The Engine then owns that
// scenario for interactive editing: every mutation applies immediately,
// lands in an invertible command history, and is persisted in the
// background through a debounced save state machine with retry and a
// terminal failure mode.
//
// # Quick Start
//
// Generate a scenario and edit it:
//
//	import "github.com/andysmith26/groupwheel-sub002"
//
//	scn, err := groupwheel.Generate(ctx, groupwheel.GenerateInput{
//	    Participants: roster,
//	    Preferences:  prefs,
//	    GroupCount:   4,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := groupwheel.DefaultConfig()
//	engine, err := groupwheel.New(&cfg, memstore.New())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	if err := engine.Initialize(ctx, scn, prefs); err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = engine.Move(ctx, "alice", "g1", "g2")
//	_, _ = engine.Undo(ctx)
//
// # Key Features
//
//   - Deterministic optimizer: greedy seeding plus a fixed budget of
//     randomized pairwise swaps, seeded from the input for repeatability
//   - Invertible commands: move, create, delete, update, reorder, each
//     carrying enough before/after data for exact undo
//   - Coalesced edits: rapid renames of one group merge into a single
//     history entry whose undo restores the pre-burst values
//   - Debounced persistence: an explicit Idle/Saving/Saved/Error/Failed
//     state machine with doubling backoff and an operator-visible
//     terminal failure
//   - Continuous analytics: satisfaction reports recomputed after every
//     edit and diffed against the frozen baseline
//
// # Architecture
//
// The save lifecycle follows a state machine:
//
//	Idle → Saving → Saved → Idle
//	         ↓  ↑
//	        Error → (retries exhausted) → Failed
//
// Failed blocks further mutation until RetrySave. Adopt flushes pending
// writes synchronously and promotes the scenario from DRAFT to ADOPTED.
//
// # Advanced Usage
//
// Options inject the ambient dependencies:
//
//	engine, err := groupwheel.New(&cfg, store,
//	    groupwheel.WithLogger(zap.NewExample().Sugar()),
//	    groupwheel.WithMetrics(groupwheel.NewPrometheusMetrics(nil, "groupwheel")),
//	    groupwheel.WithHooks(&groupwheel.Hooks{
//	        OnSaveStateChanged: func(ctx context.Context, from, to groupwheel.SaveState) error {
//	            // Surface the save indicator
//	            return nil
//	        },
//	    }),
//	)
//
// See the examples/ directory for a complete working example.
package groupwheel
