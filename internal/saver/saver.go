// Package saver provides debounced, serialized persistence for a scenario.
//
// Writes go through an explicit status machine rather than ad hoc flags:
//
//   - Idle: Nothing pending
//   - Saving: A write is in flight
//   - Saved: Last write succeeded (auto-reverts to Idle after a hold)
//   - Error: A write failed, retry pending with backoff
//   - Failed: Retries exhausted; terminal until an explicit retry
//
// At most one write is in flight at a time. Edits arriving mid-write set a
// dirty flag that triggers exactly one follow-up write, so a burst of edits
// collapses into the minimal number of store calls.
package saver

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/andysmith26/groupwheel-sub002/types"
)

// Config holds saver timing parameters.
type Config struct {
	// Debounce is the quiet period after an edit before a write starts.
	Debounce time.Duration

	// SavedHold is how long the Saved state shows before reverting to Idle.
	SavedHold time.Duration

	// RetryBase is the first retry delay; each retry doubles it.
	RetryBase time.Duration

	// MaxRetries is the number of retries after the initial failed attempt
	// before the saver enters the terminal Failed state.
	MaxRetries int
}

// setDefaults fills zero fields with production defaults.
func (c *Config) setDefaults() {
	if c.Debounce <= 0 {
		c.Debounce = 800 * time.Millisecond
	}
	if c.SavedHold <= 0 {
		c.SavedHold = 2 * time.Second
	}
	if c.RetryBase <= 0 {
		c.RetryBase = time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
}

// Saver owns the persistence lifecycle of a single scenario.
//
// All exported methods are safe for concurrent use. The engine calls
// MarkDirty after every mutation; writes happen on background goroutines.
type Saver struct {
	store   types.Store
	logger  types.Logger
	metrics types.SaverMetrics
	cfg     Config

	// Optional callback invoked after every state transition, outside locks.
	onState func(from, to types.SaveState)

	state atomic.Int32 // types.SaveState

	subscribers      *xsync.Map[uint64, *stateSubscriber]
	nextSubscriberID atomic.Uint64

	mu      sync.Mutex
	pending *types.Scenario
	dirty   bool
	lastErr error
	gen     uint64 // debounce generation; bumping cancels older timers
	holdGen uint64 // saved-hold generation

	// saveMu serializes actual store writes.
	saveMu sync.Mutex

	wg     sync.WaitGroup
	stopCh chan struct{}
	closed atomic.Bool
}

// New creates a saver in the Idle state.
//
// Parameters:
//   - store: Persistence backend
//   - logger: Logger for write outcomes and transitions
//   - metrics: Collector for save attempts, latency, and backoff
//   - cfg: Timing parameters (zero fields get production defaults)
//   - onState: Optional transition callback, may be nil
//
// Returns:
//   - *Saver: A new saver instance
func New(
	store types.Store,
	logger types.Logger,
	metrics types.SaverMetrics,
	cfg Config,
	onState func(from, to types.SaveState),
) *Saver {
	cfg.setDefaults()
	s := &Saver{
		store:       store,
		logger:      logger,
		metrics:     metrics,
		cfg:         cfg,
		onState:     onState,
		subscribers: xsync.NewMap[uint64, *stateSubscriber](),
		stopCh:      make(chan struct{}),
	}
	s.state.Store(int32(types.SaveStateIdle))

	return s
}

// State returns the current save state.
func (s *Saver) State() types.SaveState {
	return types.SaveState(s.state.Load())
}

// Err returns the error from the most recent failed write, or nil.
func (s *Saver) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

// Subscribe returns a channel receiving save state changes.
//
// The channel is buffered (size 4); a slow subscriber drops intermediate
// states rather than blocking the saver. The current state is delivered
// immediately upon subscription.
//
// Returns:
//   - <-chan types.SaveState: Channel that receives state updates
//   - func(): Unsubscribe function to clean up resources
func (s *Saver) Subscribe() (<-chan types.SaveState, func()) {
	id := s.nextSubscriberID.Add(1)

	sub := &stateSubscriber{ch: make(chan types.SaveState, 4)}
	s.subscribers.Store(id, sub)

	sub.trySend(s.State(), s.metrics)

	unsubscribe := func() {
		if old, ok := s.subscribers.LoadAndDelete(id); ok {
			old.close()
		}
	}

	return sub.ch, unsubscribe
}

// MarkDirty records a new snapshot to persist and restarts the debounce.
//
// The saver retains the snapshot directly; the caller must pass a copy it
// will not mutate afterwards. In the Failed state the snapshot is retained
// for a later RetrySave but no timer starts.
func (s *Saver) MarkDirty(scn *types.Scenario) {
	if s.closed.Load() {
		return
	}

	s.mu.Lock()
	s.pending = scn
	s.dirty = true
	if s.State() == types.SaveStateFailed {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	// A fresh edit ends the Saved hold early.
	if s.State() == types.SaveStateSaved {
		s.transition(types.SaveStateIdle)
	}

	s.wg.Go(func() {
		timer := time.NewTimer(s.cfg.Debounce)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-s.stopCh:
			return
		}

		s.mu.Lock()
		stale := gen != s.gen || !s.dirty
		s.mu.Unlock()
		if stale {
			return
		}

		s.saveCycle(context.Background())
	})
}

// Flush synchronously attempts to persist any pending snapshot.
//
// Any running debounce timer is cancelled and an in-flight write is waited
// for. Exactly one direct attempt is made; on failure the snapshot stays
// dirty, the state moves to Error, and the normal retry machinery resumes
// in the background.
//
// Returns:
//   - error: types.ErrSaveFailed in the Failed state, or the write error
func (s *Saver) Flush(ctx context.Context) error {
	if s.State() == types.SaveStateFailed {
		return types.ErrSaveFailed
	}

	s.mu.Lock()
	s.gen++
	s.mu.Unlock()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	// A failing cycle may have been in flight when the check above ran and
	// exhausted its retries while we waited for the write lock. Failed is
	// terminal; only RetrySave leaves it.
	if s.State() == types.SaveStateFailed {
		return types.ErrSaveFailed
	}

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	scn := s.pending
	s.dirty = false
	s.mu.Unlock()

	s.transition(types.SaveStateSaving)

	if err := s.writeOnce(ctx, scn); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.lastErr = err
		s.mu.Unlock()

		s.transition(types.SaveStateError)
		s.logger.Warn("flush attempt failed, resuming background retries",
			"scenario_id", scn.ID,
			"error", err,
		)
		s.wg.Go(func() {
			s.saveCycle(context.Background())
		})

		return err
	}

	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()

	s.transition(types.SaveStateSaved)
	s.startSavedHold()

	return nil
}

// RetrySave resets the terminal Failed state and retries immediately.
//
// This is the only path out of Failed. Calling it in any other state is a
// no-op.
func (s *Saver) RetrySave(ctx context.Context) {
	if s.State() != types.SaveStateFailed {
		return
	}

	s.logger.Info("retrying after terminal save failure")
	s.transition(types.SaveStateIdle)

	s.wg.Go(func() {
		s.saveCycle(context.Background())
	})
}

// Close stops all timers, waits for background goroutines, and closes
// subscriber channels. The saver must not be used afterwards.
func (s *Saver) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.stopCh)
	s.wg.Wait()

	s.subscribers.Range(func(id uint64, sub *stateSubscriber) bool {
		s.subscribers.Delete(id)
		sub.close()

		return true
	})
}

// saveCycle drains the dirty flag, writing until no follow-up remains.
//
// Runs with saveMu held for its whole duration so writes never overlap.
func (s *Saver) saveCycle(ctx context.Context) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	wrote := false
	for {
		s.mu.Lock()
		if !s.dirty || s.State() == types.SaveStateFailed {
			s.mu.Unlock()
			break
		}
		scn := s.pending
		s.dirty = false
		s.mu.Unlock()

		s.transition(types.SaveStateSaving)

		if err := s.writeWithRetry(ctx, scn); err != nil {
			s.mu.Lock()
			s.dirty = true
			s.lastErr = err
			s.mu.Unlock()

			s.transition(types.SaveStateFailed)
			s.metrics.RecordTerminalFailure()
			s.logger.Error("persistence failed permanently, edits blocked until explicit retry",
				"scenario_id", scn.ID,
				"error", err,
			)

			return
		}
		wrote = true
	}

	if !wrote {
		return
	}

	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()

	s.transition(types.SaveStateSaved)
	s.startSavedHold()
}

// writeWithRetry attempts the write, retrying with doubling backoff.
//
// One initial attempt plus cfg.MaxRetries retries; between attempts the
// state shows Error. Returns the last error once retries are exhausted.
func (s *Saver) writeWithRetry(ctx context.Context, scn *types.Scenario) error {
	backoff := s.cfg.RetryBase

	for attempt := 0; ; attempt++ {
		err := s.writeOnce(ctx, scn)
		if err == nil {
			return nil
		}

		if attempt >= s.cfg.MaxRetries {
			return err
		}

		s.transition(types.SaveStateError)
		s.logger.Warn("save attempt failed, backing off",
			"scenario_id", scn.ID,
			"attempt", attempt+1,
			"backoff", backoff,
			"error", err,
		)
		s.metrics.RecordRetryBackoff(backoff.Seconds())

		select {
		case <-time.After(backoff):
		case <-s.stopCh:
			return err
		case <-ctx.Done():
			return err
		}
		backoff *= 2

		s.transition(types.SaveStateSaving)
	}
}

// writeOnce performs a single store write: Update, falling back to Save
// when the scenario does not exist yet.
func (s *Saver) writeOnce(ctx context.Context, scn *types.Scenario) error {
	start := time.Now()

	err := s.store.Update(ctx, scn)
	if errors.Is(err, types.ErrNotFound) {
		err = s.store.Save(ctx, scn)
	}

	s.metrics.RecordSaveLatency(time.Since(start).Seconds())
	s.metrics.RecordSaveAttempt(err == nil)

	return err
}

// startSavedHold reverts Saved to Idle after the hold, unless a newer
// transition superseded it.
func (s *Saver) startSavedHold() {
	s.mu.Lock()
	s.holdGen++
	hg := s.holdGen
	s.mu.Unlock()

	s.wg.Go(func() {
		timer := time.NewTimer(s.cfg.SavedHold)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-s.stopCh:
			return
		}

		s.mu.Lock()
		stale := hg != s.holdGen
		s.mu.Unlock()
		if stale || s.State() != types.SaveStateSaved {
			return
		}

		s.transition(types.SaveStateIdle)
	})
}

// transition moves to a new state and notifies subscribers and the
// callback. No-op when the state is unchanged.
func (s *Saver) transition(to types.SaveState) {
	from := types.SaveState(s.state.Swap(int32(to)))
	if from == to {
		return
	}

	s.metrics.RecordSaveStateTransition(from, to)
	s.logger.Debug("save state transition", "from", from, "to", to)

	s.subscribers.Range(func(_ uint64, sub *stateSubscriber) bool {
		sub.trySend(to, s.metrics)
		return true
	})

	if s.onState != nil {
		s.onState(from, to)
	}
}
