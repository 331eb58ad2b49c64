package groupwheel

import (
	"fmt"
	"time"
)

// ============================================================================
// Timing Configuration Model
// ============================================================================
//
// The engine uses three independent debounce/hold timers:
//
//   - CoalesceWindow (default 500ms): history-level. Rapid updates to the
//     same group within this window merge into one undo entry. Live state
//     always reflects every intermediate value immediately.
//   - SaveDebounce (default 800ms): persistence-level. A write starts only
//     after this quiet period, so a burst of edits produces one write.
//   - AnalyticsDebounce (default 300ms): reporting-level. Satisfaction
//     recomputation is deferred by this amount and never gates edits.
//
// Failed writes retry with doubling backoff starting at RetryBackoffBase
// (1s, 2s, 4s with defaults). After MaxSaveRetries retries the saver
// enters the terminal Failed state and mutation is blocked until an
// explicit RetrySave.
//
// Constraint hierarchy (validated):
//
//	CoalesceWindow <= SaveDebounce (a coalesced burst should not outlive
//	the quiet period that triggers its write)
//
// ============================================================================

// Config is the configuration for the Engine.
//
// All duration fields accept standard Go duration strings like "500ms", "2s".
type Config struct {
	// SaveDebounce is the quiet period after an edit before a write starts.
	// Recommended: 500ms-2s.
	SaveDebounce time.Duration `yaml:"saveDebounce"`

	// SavedHold is how long the Saved state shows before reverting to Idle.
	// Purely cosmetic for save indicators. Recommended: 2 seconds.
	SavedHold time.Duration `yaml:"savedHold"`

	// RetryBackoffBase is the first retry delay after a failed write.
	// Each subsequent retry doubles it. Recommended: 1 second.
	RetryBackoffBase time.Duration `yaml:"retryBackoffBase"`

	// MaxSaveRetries is the number of retries after the initial failed
	// attempt before persistence enters the terminal Failed state.
	// Recommended: 3.
	MaxSaveRetries int `yaml:"maxSaveRetries"`

	// CoalesceWindow is the sliding window within which successive updates
	// to the same group merge into one history entry.
	// Recommended: 500ms.
	CoalesceWindow time.Duration `yaml:"coalesceWindow"`

	// AnalyticsDebounce is the delay before satisfaction analytics are
	// recomputed after an edit. Recommended: 300ms.
	AnalyticsDebounce time.Duration `yaml:"analyticsDebounce"`

	// OptimizerIterations is the local search swap budget used by Generate.
	// Recommended: 300.
	OptimizerIterations int `yaml:"optimizerIterations"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		SaveDebounce:        800 * time.Millisecond,
		SavedHold:           2 * time.Second,
		RetryBackoffBase:    time.Second,
		MaxSaveRetries:      3,
		CoalesceWindow:      500 * time.Millisecond,
		AnalyticsDebounce:   300 * time.Millisecond,
		OptimizerIterations: 300,
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.SaveDebounce == 0 {
		cfg.SaveDebounce = defaults.SaveDebounce
	}
	if cfg.SavedHold == 0 {
		cfg.SavedHold = defaults.SavedHold
	}
	if cfg.RetryBackoffBase == 0 {
		cfg.RetryBackoffBase = defaults.RetryBackoffBase
	}
	if cfg.MaxSaveRetries == 0 {
		cfg.MaxSaveRetries = defaults.MaxSaveRetries
	}
	if cfg.CoalesceWindow == 0 {
		cfg.CoalesceWindow = defaults.CoalesceWindow
	}
	if cfg.AnalyticsDebounce == 0 {
		cfg.AnalyticsDebounce = defaults.AnalyticsDebounce
	}
	if cfg.OptimizerIterations == 0 {
		cfg.OptimizerIterations = defaults.OptimizerIterations
	}
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - All durations > 0
//   - MaxSaveRetries >= 1
//   - OptimizerIterations >= 1
//   - CoalesceWindow <= SaveDebounce
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.SaveDebounce <= 0 {
		return fmt.Errorf("SaveDebounce must be > 0, got %v", cfg.SaveDebounce)
	}
	if cfg.SavedHold <= 0 {
		return fmt.Errorf("SavedHold must be > 0, got %v", cfg.SavedHold)
	}
	if cfg.RetryBackoffBase <= 0 {
		return fmt.Errorf("RetryBackoffBase must be > 0, got %v", cfg.RetryBackoffBase)
	}
	if cfg.MaxSaveRetries < 1 {
		return fmt.Errorf("MaxSaveRetries must be >= 1, got %d", cfg.MaxSaveRetries)
	}
	if cfg.CoalesceWindow <= 0 {
		return fmt.Errorf("CoalesceWindow must be > 0, got %v", cfg.CoalesceWindow)
	}
	if cfg.AnalyticsDebounce <= 0 {
		return fmt.Errorf("AnalyticsDebounce must be > 0, got %v", cfg.AnalyticsDebounce)
	}
	if cfg.OptimizerIterations < 1 {
		return fmt.Errorf("OptimizerIterations must be >= 1, got %d", cfg.OptimizerIterations)
	}
	if cfg.CoalesceWindow > cfg.SaveDebounce {
		return fmt.Errorf(
			"CoalesceWindow (%v) must be <= SaveDebounce (%v) so a coalesced burst does not outlive the save quiet period",
			cfg.CoalesceWindow, cfg.SaveDebounce,
		)
	}

	return nil
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Test timings are 10-100x faster than production defaults to enable
// rapid iteration without sacrificing test coverage. Use DefaultConfig()
// for production deployments.
//
// Returns:
//   - Config: Configuration with fast timings for tests
//
// Example:
//
//	cfg := groupwheel.TestConfig()
//	engine, err := groupwheel.New(&cfg, memstore.New())
func TestConfig() Config {
	cfg := DefaultConfig()

	// Fast timings for test execution (10-100x faster)
	cfg.SaveDebounce = 20 * time.Millisecond     // 40x faster
	cfg.SavedHold = 40 * time.Millisecond        // 50x faster
	cfg.RetryBackoffBase = 5 * time.Millisecond  // 200x faster
	cfg.CoalesceWindow = 20 * time.Millisecond   // 25x faster
	cfg.AnalyticsDebounce = 5 * time.Millisecond // 60x faster
	cfg.OptimizerIterations = 100                // 3x fewer swaps

	return cfg
}
