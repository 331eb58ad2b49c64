package groupwheel

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/andysmith26/groupwheel-sub002/internal/history"
	"github.com/andysmith26/groupwheel-sub002/internal/logging"
	"github.com/andysmith26/groupwheel-sub002/internal/metrics"
	"github.com/andysmith26/groupwheel-sub002/internal/saver"
	"github.com/andysmith26/groupwheel-sub002/satisfaction"
	"github.com/andysmith26/groupwheel-sub002/strategy"
	"github.com/andysmith26/groupwheel-sub002/types"
)

// defaultGroupName seeds CreateGroup when no name is given; collisions
// disambiguate with a numeric suffix.
const defaultGroupName = "New Group"

// GroupUpdate describes a partial group update. Nil fields keep the
// current value.
type GroupUpdate struct {
	// Name replaces the group name when non-nil. Must be non-empty and
	// unique (case-insensitive) among the scenario's groups.
	Name *string

	// Capacity replaces the member capacity when non-nil. Zero means
	// unlimited; must not be negative.
	Capacity *int
}

// Engine owns one scenario's mutable state for interactive editing.
//
// Engine is the main entry point for the editing half of the library.
// It handles:
//   - Optimistic command application with full undo/redo history
//   - Coalescing of rapid updates into single history entries
//   - Debounced, serialized persistence with retry and terminal failure
//   - Continuous satisfaction analytics diffed against a frozen baseline
//
// Exactly one Engine owns one Scenario. A single mutex serializes command
// application; persistence and analytics run on background timers and
// never gate edits.
type Engine struct {
	cfg      Config
	store    Store
	logger   Logger
	metrics  MetricsCollector
	hooks    *Hooks
	assigner Assigner

	mu          sync.Mutex
	scn         *types.Scenario
	prefs       map[string]types.Preference
	log         *history.Log
	baseline    SatisfactionReport
	current     SatisfactionReport
	initialized bool

	saver *saver.Saver

	analyticsGen atomic.Uint64
	wg           sync.WaitGroup
	stopCh       chan struct{}
	closed       atomic.Bool
}

// New creates a new Engine instance with the provided configuration.
//
// Returns a concrete *Engine struct following the "accept interfaces,
// return structs" principle. Consumers can define their own interfaces
// for testing if needed.
//
// Parameters:
//   - cfg: Runtime configuration with parsed durations
//   - store: Persistence backend for scenario snapshots
//   - opts: Optional configuration (hooks, metrics, logger, assigner)
//
// Returns:
//   - *Engine: Initialized engine instance
//   - error: Validation error if configuration is invalid
//
// Example:
//
//	cfg := groupwheel.DefaultConfig()
//	engine, err := groupwheel.New(&cfg, memstore.New())
func New(cfg *Config, store Store, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	// Fill in missing configuration values with defaults
	SetDefaults(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Apply options
	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	hooksInstance := options.hooks
	if hooksInstance == nil {
		hooksInstance = &Hooks{}
	}

	assignerInstance := options.assigner
	if assignerInstance == nil {
		assignerInstance = strategy.NewLocalSearch(
			strategy.WithIterations(cfg.OptimizerIterations),
			strategy.WithOptimizerMetrics(metricsCollector),
		)
	}

	e := &Engine{
		cfg:      *cfg,
		store:    store,
		logger:   loggerInstance,
		metrics:  metricsCollector,
		hooks:    hooksInstance,
		assigner: assignerInstance,
		log:      history.New(cfg.CoalesceWindow),
		stopCh:   make(chan struct{}),
	}

	e.saver = saver.New(store, loggerInstance, metricsCollector, saver.Config{
		Debounce:   cfg.SaveDebounce,
		SavedHold:  cfg.SavedHold,
		RetryBase:  cfg.RetryBackoffBase,
		MaxRetries: cfg.MaxSaveRetries,
	}, e.onSaveState)

	return e, nil
}

// Initialize loads a deep working copy of the scenario, resets history,
// and freezes the baseline satisfaction report for later diffing.
//
// All mutating methods return ErrNotInitialized until Initialize succeeds.
// The initial snapshot is marked for persistence, which covers scenarios
// fresh from Generate that have never been written.
//
// Parameters:
//   - ctx: Context for hook callbacks
//   - scn: Scenario to edit (deep-copied, caller keeps ownership)
//   - prefs: Preference records keyed by participant id
//
// Returns:
//   - error: Validation error if the scenario is inconsistent
func (e *Engine) Initialize(ctx context.Context, scn *types.Scenario, prefs map[string]types.Preference) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	if scn == nil {
		return fmt.Errorf("%w: scenario is nil", ErrInvalidScenario)
	}

	work := scn.Clone()
	// Hand-built scenarios may omit the derived unassigned list; a non-nil
	// list must already satisfy the container invariants.
	if work.Unassigned == nil {
		work.Unassigned = work.DeriveUnassigned()
	}
	if err := work.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	e.scn = work
	e.prefs = types.ClonePreferences(prefs)
	e.log.Reset()
	e.baseline = satisfaction.Compute(e.scn.Groups, e.prefs, e.scn.ParticipantSnapshot)
	e.current = e.baseline
	e.initialized = true
	snapshot := e.scn.Clone()
	baseline := e.baseline
	e.mu.Unlock()

	e.logger.Info("engine initialized",
		"scenario_id", snapshot.ID,
		"participants", len(snapshot.ParticipantSnapshot),
		"groups", len(snapshot.Groups),
	)
	e.metrics.RecordSatisfaction(baseline)
	e.metrics.RecordHistoryDepth(0, 0)
	e.saver.MarkDirty(snapshot)

	if e.hooks.OnAnalyticsUpdated != nil {
		e.hooks.OnAnalyticsUpdated(ctx, baseline, baseline)
	}

	return nil
}

// Move moves a participant between two containers.
//
// Containers are group ids or types.UnassignedContainer. Capacity is NOT
// enforced: over-capacity moves succeed and are surfaced only through
// OverCapacity. Manual overrides must never be silently blocked.
//
// Parameters:
//   - ctx: Context for hook callbacks
//   - participantID: Participant to move (must be in the snapshot)
//   - from: Container currently holding the participant
//   - to: Destination container
//
// Returns:
//   - error: Sentinel validation error, or nil; state unchanged on error
func (e *Engine) Move(ctx context.Context, participantID, from, to string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.beginMutation(); err != nil {
		return err
	}

	if from == to {
		return e.reject("same_container", fmt.Errorf("%w: %q", ErrSameContainer, from))
	}
	if !e.scn.InSnapshot(participantID) {
		return e.reject("unknown_participant", fmt.Errorf("%w: %q", ErrUnknownParticipant, participantID))
	}

	src, ok := e.containerRef(from)
	if !ok {
		return e.reject("unknown_group", fmt.Errorf("%w: %q", ErrUnknownGroup, from))
	}
	dst, ok := e.containerRef(to)
	if !ok {
		return e.reject("unknown_group", fmt.Errorf("%w: %q", ErrUnknownGroup, to))
	}

	fromIndex := indexOf(*src, participantID)
	if fromIndex < 0 {
		return e.reject("not_in_source", fmt.Errorf("%w: %q not in %q", ErrNotInSource, participantID, from))
	}
	if indexOf(*dst, participantID) >= 0 {
		return e.reject("already_in_target", fmt.Errorf("%w: %q already in %q", ErrAlreadyInTarget, participantID, to))
	}

	cmd := types.Command{
		Kind: types.CommandMove,
		Move: &types.MoveCommand{
			ParticipantID: participantID,
			From:          from,
			To:            to,
			FromIndex:     fromIndex,
			ToIndex:       len(*dst),
		},
	}

	if err := e.applyCommand(cmd); err != nil {
		return err
	}
	e.log.Append(cmd)
	e.commit(ctx, cmd.Kind)

	return nil
}

// CreateGroup adds a new empty group with unlimited capacity.
//
// An empty name gets a default. Names colliding case-insensitively with
// an existing group are disambiguated with a numeric suffix.
//
// Returns:
//   - string: The new group's id
//   - error: Sentinel validation error, or nil
func (e *Engine) CreateGroup(ctx context.Context, name string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.beginMutation(); err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultGroupName
	}
	name = e.disambiguateName(name)

	cmd := types.Command{
		Kind: types.CommandCreateGroup,
		Create: &types.CreateGroupCommand{
			Group: types.Group{
				ID:       uuid.NewString(),
				Name:     name,
				Capacity: types.CapacityUnlimited,
			},
			Index: len(e.scn.Groups),
		},
	}

	if err := e.applyCommand(cmd); err != nil {
		return "", err
	}
	e.log.Append(cmd)
	e.commit(ctx, cmd.Kind)

	return cmd.Create.Group.ID, nil
}

// DeleteGroup removes a group. Its members move to the end of the
// unassigned list in their group order; undo restores the exact group,
// membership order, and position.
func (e *Engine) DeleteGroup(ctx context.Context, groupID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.beginMutation(); err != nil {
		return err
	}

	idx := e.scn.GroupIndex(groupID)
	if idx < 0 {
		return e.reject("unknown_group", fmt.Errorf("%w: %q", ErrUnknownGroup, groupID))
	}

	cmd := types.Command{
		Kind: types.CommandDeleteGroup,
		Delete: &types.DeleteGroupCommand{
			Group: e.scn.Groups[idx].Clone(),
			Index: idx,
		},
	}

	if err := e.applyCommand(cmd); err != nil {
		return err
	}
	e.log.Append(cmd)
	e.commit(ctx, cmd.Kind)

	return nil
}

// UpdateGroup applies a partial update to a group's name or capacity.
//
// Rapid repeated updates to the same group within CoalesceWindow merge
// into one history entry whose undo restores the pre-burst values, while
// every intermediate value applies immediately to live state.
func (e *Engine) UpdateGroup(ctx context.Context, groupID string, upd GroupUpdate) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.beginMutation(); err != nil {
		return err
	}

	idx := e.scn.GroupIndex(groupID)
	if idx < 0 {
		return e.reject("unknown_group", fmt.Errorf("%w: %q", ErrUnknownGroup, groupID))
	}
	group := &e.scn.Groups[idx]

	newName := group.Name
	if upd.Name != nil {
		newName = strings.TrimSpace(*upd.Name)
		if newName == "" {
			return e.reject("empty_name", ErrEmptyGroupName)
		}
		for i := range e.scn.Groups {
			if i != idx && e.scn.Groups[i].NameEquals(newName) {
				return e.reject("duplicate_name", fmt.Errorf("%w: %q", ErrDuplicateGroupName, newName))
			}
		}
	}

	newCapacity := group.Capacity
	if upd.Capacity != nil {
		if *upd.Capacity < 0 {
			return e.reject("negative_capacity", fmt.Errorf("capacity must be >= 0, got %d", *upd.Capacity))
		}
		newCapacity = *upd.Capacity
	}

	if newName == group.Name && newCapacity == group.Capacity {
		return nil
	}

	upd2 := types.UpdateGroupCommand{
		GroupID:     groupID,
		OldName:     group.Name,
		NewName:     newName,
		OldCapacity: group.Capacity,
		NewCapacity: newCapacity,
	}

	group.Name = newName
	group.Capacity = newCapacity

	e.log.AppendUpdate(upd2, time.Now())
	e.commit(ctx, types.CommandUpdateGroup)

	return nil
}

// ReorderGroup permutes the membership order within a group.
//
// The new order must be a permutation of the group's current members.
func (e *Engine) ReorderGroup(ctx context.Context, groupID string, order []string) error {
	return e.reorder(ctx, groupID, order)
}

// ReorderUnassigned permutes the order of the unassigned list.
func (e *Engine) ReorderUnassigned(ctx context.Context, order []string) error {
	return e.reorder(ctx, types.UnassignedContainer, order)
}

func (e *Engine) reorder(ctx context.Context, container string, order []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.beginMutation(); err != nil {
		return err
	}

	ref, ok := e.containerRef(container)
	if !ok {
		return e.reject("unknown_group", fmt.Errorf("%w: %q", ErrUnknownGroup, container))
	}
	if !samePermutation(*ref, order) {
		return e.reject("invalid_permutation",
			fmt.Errorf("%w: order is not a permutation of container %q", ErrInvalidPermutation, container))
	}
	if equalOrder(*ref, order) {
		return nil
	}

	cmd := types.Command{
		Kind: types.CommandReorder,
		Reorder: &types.ReorderCommand{
			Container: container,
			Before:    append([]string(nil), *ref...),
			After:     append([]string(nil), order...),
		},
	}

	if err := e.applyCommand(cmd); err != nil {
		return err
	}
	e.log.Append(cmd)
	e.commit(ctx, cmd.Kind)

	return nil
}

// Undo reverts the most recent command.
//
// Any pending coalesced update flushes first, so a rename burst undoes
// back to its pre-burst value in one step.
//
// Returns:
//   - bool: false at the earliest history position or while save state
//     is Failed (no-op)
//   - error: ErrNotInitialized or ErrEngineClosed only
func (e *Engine) Undo(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed.Load() {
		return false, ErrEngineClosed
	}
	if !e.initialized {
		return false, ErrNotInitialized
	}
	if e.saver.State() == SaveStateFailed {
		e.metrics.RecordUndo(false)
		return false, nil
	}

	cmd, ok := e.log.Undo()
	if !ok {
		e.metrics.RecordUndo(false)
		return false, nil
	}

	if err := e.applyCommand(cmd.Invert()); err != nil {
		return false, err
	}
	e.metrics.RecordUndo(true)
	e.commit(ctx, cmd.Kind)

	return true, nil
}

// Redo re-applies the most recently undone command.
//
// Returns:
//   - bool: false at the newest history position or while save state is
//     Failed (no-op)
//   - error: ErrNotInitialized or ErrEngineClosed only
func (e *Engine) Redo(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed.Load() {
		return false, ErrEngineClosed
	}
	if !e.initialized {
		return false, ErrNotInitialized
	}
	if e.saver.State() == SaveStateFailed {
		e.metrics.RecordRedo(false)
		return false, nil
	}

	cmd, ok := e.log.Redo()
	if !ok {
		e.metrics.RecordRedo(false)
		return false, nil
	}

	if err := e.applyCommand(cmd); err != nil {
		return false, err
	}
	e.metrics.RecordRedo(true)
	e.commit(ctx, cmd.Kind)

	return true, nil
}

// Regenerate atomically replaces the whole partition, clears history, and
// recaptures the baseline. The undo chain deliberately breaks: the new
// partition is not a delta of the old one.
//
// Group members are validated against the frozen participant snapshot.
func (e *Engine) Regenerate(ctx context.Context, newGroups []types.Group) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.beginMutation(); err != nil {
		return err
	}

	return e.replacePartition(ctx, newGroups)
}

// Reoptimize reruns the assignment strategy over the current group shapes
// and replaces the partition with the result, as if the scenario had been
// generated fresh. Group ids, names, and capacities survive; membership is
// reassigned from scratch using the preferences given to Initialize. Like
// Regenerate, it clears history and recaptures the baseline.
//
// The strategy defaults to local search seeded by greedy and is overridden
// with WithAssigner.
func (e *Engine) Reoptimize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.beginMutation(); err != nil {
		return err
	}

	empty := types.CloneGroups(e.scn.Groups)
	for i := range empty {
		empty[i].MemberIDs = []string{}
	}

	assigned, err := e.assigner.Assign(e.scn.ParticipantSnapshot, e.prefs, empty)
	if err != nil {
		return e.reject("assign_failed", fmt.Errorf("reoptimize: %w", err))
	}

	return e.replacePartition(ctx, assigned)
}

// replacePartition swaps in a new validated partition, clears history, and
// recaptures the baseline. Callers must hold e.mu.
func (e *Engine) replacePartition(ctx context.Context, newGroups []types.Group) error {
	now := time.Now().UTC()
	replacement, err := types.NewScenario(e.scn.ID, e.scn.ParticipantSnapshot, newGroups, now)
	if err != nil {
		return err
	}
	replacement.CreatedAt = e.scn.CreatedAt
	replacement.Status = e.scn.Status

	e.scn = replacement
	e.log.Reset()
	e.baseline = satisfaction.Compute(e.scn.Groups, e.prefs, e.scn.ParticipantSnapshot)
	e.current = e.baseline

	e.logger.Info("scenario regenerated", "scenario_id", e.scn.ID, "groups", len(e.scn.Groups))
	e.metrics.RecordHistoryDepth(0, 0)
	e.metrics.RecordSatisfaction(e.baseline)
	e.saver.MarkDirty(e.scn.Clone())

	if e.hooks.OnAnalyticsUpdated != nil {
		e.hooks.OnAnalyticsUpdated(ctx, e.baseline, e.baseline)
	}

	return nil
}

// Adopt promotes the scenario from DRAFT to ADOPTED.
//
// Pending writes flush synchronously first; the transition happens only
// on a clean flush. While persistence is in the terminal Failed state
// Adopt returns ErrSaveFailed.
func (e *Engine) Adopt(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed.Load() {
		return ErrEngineClosed
	}
	if !e.initialized {
		return ErrNotInitialized
	}
	if e.scn.Status != types.StatusDraft {
		return fmt.Errorf("%w: status is %s", ErrNotDraft, e.scn.Status)
	}
	if e.saver.State() == SaveStateFailed {
		return ErrSaveFailed
	}

	e.log.Flush()

	e.scn.Status = types.StatusAdopted
	e.scn.LastModifiedAt = time.Now().UTC()
	e.saver.MarkDirty(e.scn.Clone())

	if err := e.saver.Flush(ctx); err != nil {
		e.scn.Status = types.StatusDraft
		return fmt.Errorf("adopt: flush pending writes: %w", err)
	}

	e.logger.Info("scenario adopted", "scenario_id", e.scn.ID)

	return nil
}

// RetrySave explicitly resets the terminal Failed save state and retries
// immediately. This is the only escape from Failed.
func (e *Engine) RetrySave(ctx context.Context) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.saver.RetrySave(ctx)

	return nil
}

// Close stops timers, waits for background goroutines, and releases the
// saver. The engine must not be used afterwards.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	// Holding the mutex orders Close after any mutation in flight; once it
	// is released every later mutation fails the closed check before it can
	// schedule work, so wg.Wait never races a wg.Go.
	e.mu.Lock()
	close(e.stopCh)
	e.mu.Unlock()

	e.wg.Wait()
	e.saver.Close()

	return nil
}

// Scenario returns a deep copy of the current scenario, or nil before
// Initialize.
func (e *Engine) Scenario() *types.Scenario {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return nil
	}

	return e.scn.Clone()
}

// Unassigned returns a copy of the ordered unassigned participant list.
func (e *Engine) Unassigned() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return nil
	}

	return append([]string(nil), e.scn.Unassigned...)
}

// History returns the history length and cursor position. A pending
// coalesced update counts once it flushes.
func (e *Engine) History() (length, cursor int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.log.PendingExpired(time.Now()) {
		e.log.Flush()
	}

	return e.log.Len(), e.log.Cursor()
}

// SaveState returns the current persistence state.
func (e *Engine) SaveState() SaveState {
	return e.saver.State()
}

// SaveErr returns the error from the most recent failed write, or nil.
func (e *Engine) SaveErr() error {
	return e.saver.Err()
}

// Analytics returns the latest satisfaction report and the frozen
// baseline captured at Initialize or the last Regenerate.
func (e *Engine) Analytics() (current, baseline SatisfactionReport) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.current, e.baseline
}

// OverCapacity reports whether the group holds more members than its
// capacity allows. Always false for unlimited capacity or unknown ids.
func (e *Engine) OverCapacity(groupID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return false
	}
	group := e.scn.GroupByID(groupID)
	if group == nil {
		return false
	}

	return group.OverCapacity()
}

// beginMutation checks the preconditions shared by all mutating methods.
// Callers must hold e.mu.
func (e *Engine) beginMutation() error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	if !e.initialized {
		return ErrNotInitialized
	}
	if e.saver.State() == SaveStateFailed {
		e.metrics.RecordCommandRejected("save_failed")
		return ErrSaveFailed
	}
	if e.scn.Status != types.StatusDraft {
		e.metrics.RecordCommandRejected("not_draft")
		return fmt.Errorf("%w: status is %s", ErrNotDraft, e.scn.Status)
	}

	// An idle coalescing burst whose window has elapsed lands in history
	// before the next command so ordering matches what the user saw.
	if e.log.PendingExpired(time.Now()) {
		e.log.Flush()
	}

	return nil
}

// reject records a rejected command and returns its error unchanged.
func (e *Engine) reject(reason string, err error) error {
	e.metrics.RecordCommandRejected(reason)
	e.logger.Debug("command rejected", "reason", reason, "error", err)

	return err
}

// commit finishes a successful mutation: stamps the modification time,
// records metrics, marks the snapshot for persistence, and schedules the
// analytics recomputation. Callers must hold e.mu.
func (e *Engine) commit(ctx context.Context, kind types.CommandKind) {
	e.scn.LastModifiedAt = time.Now().UTC()

	e.metrics.RecordCommandApplied(kind)
	e.metrics.RecordHistoryDepth(e.log.Len(), e.log.Cursor())
	e.saver.MarkDirty(e.scn.Clone())
	e.scheduleAnalytics(ctx)
}

// applyCommand mutates live state per the command. Validation has already
// happened; errors here indicate a corrupted history and are returned for
// the caller to surface.
func (e *Engine) applyCommand(cmd types.Command) error {
	switch cmd.Kind {
	case types.CommandMove:
		return e.applyMove(cmd.Move)
	case types.CommandCreateGroup:
		return e.applyCreate(cmd.Create)
	case types.CommandDeleteGroup:
		return e.applyDelete(cmd.Delete)
	case types.CommandUpdateGroup:
		return e.applyUpdate(cmd.Update)
	case types.CommandReorder:
		return e.applyReorder(cmd.Reorder)
	default:
		return fmt.Errorf("unknown command kind %d", cmd.Kind)
	}
}

func (e *Engine) applyMove(mv *types.MoveCommand) error {
	src, ok := e.containerRef(mv.From)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, mv.From)
	}
	dst, ok := e.containerRef(mv.To)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, mv.To)
	}

	idx := indexOf(*src, mv.ParticipantID)
	if idx < 0 {
		return fmt.Errorf("%w: %q not in %q", ErrNotInSource, mv.ParticipantID, mv.From)
	}
	*src = append((*src)[:idx], (*src)[idx+1:]...)

	at := min(mv.ToIndex, len(*dst))
	*dst = append(*dst, "")
	copy((*dst)[at+1:], (*dst)[at:])
	(*dst)[at] = mv.ParticipantID

	return nil
}

func (e *Engine) applyCreate(cr *types.CreateGroupCommand) error {
	if e.scn.GroupIndex(cr.Group.ID) >= 0 {
		return fmt.Errorf("group %q already exists", cr.Group.ID)
	}

	group := cr.Group.Clone()

	// When this create is the inverse of a delete, the captured members
	// are currently unassigned and must leave that list.
	for _, id := range group.MemberIDs {
		if idx := indexOf(e.scn.Unassigned, id); idx >= 0 {
			e.scn.Unassigned = append(e.scn.Unassigned[:idx], e.scn.Unassigned[idx+1:]...)
		}
	}

	at := min(cr.Index, len(e.scn.Groups))
	e.scn.Groups = append(e.scn.Groups, types.Group{})
	copy(e.scn.Groups[at+1:], e.scn.Groups[at:])
	e.scn.Groups[at] = group

	return nil
}

func (e *Engine) applyDelete(del *types.DeleteGroupCommand) error {
	idx := e.scn.GroupIndex(del.Group.ID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, del.Group.ID)
	}

	members := e.scn.Groups[idx].MemberIDs
	e.scn.Unassigned = append(e.scn.Unassigned, members...)
	e.scn.Groups = append(e.scn.Groups[:idx], e.scn.Groups[idx+1:]...)

	return nil
}

func (e *Engine) applyUpdate(upd *types.UpdateGroupCommand) error {
	group := e.scn.GroupByID(upd.GroupID)
	if group == nil {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, upd.GroupID)
	}

	group.Name = upd.NewName
	group.Capacity = upd.NewCapacity

	return nil
}

func (e *Engine) applyReorder(ro *types.ReorderCommand) error {
	ref, ok := e.containerRef(ro.Container)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, ro.Container)
	}

	*ref = append([]string(nil), ro.After...)

	return nil
}

// containerRef resolves a container id to its member slice. Callers must
// hold e.mu; the returned pointer aliases live state.
func (e *Engine) containerRef(id string) (*[]string, bool) {
	if id == types.UnassignedContainer {
		return &e.scn.Unassigned, true
	}
	if idx := e.scn.GroupIndex(id); idx >= 0 {
		return &e.scn.Groups[idx].MemberIDs, true
	}

	return nil, false
}

// disambiguateName appends " 2", " 3", ... until the name is unique
// case-insensitively among the scenario's groups.
func (e *Engine) disambiguateName(name string) string {
	taken := func(candidate string) bool {
		for i := range e.scn.Groups {
			if e.scn.Groups[i].NameEquals(candidate) {
				return true
			}
		}
		return false
	}

	if !taken(name) {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d", name, n)
		if !taken(candidate) {
			return candidate
		}
	}
}

// scheduleAnalytics debounces a satisfaction recomputation. The compute
// runs off the engine mutex; only the newest scheduled run publishes.
func (e *Engine) scheduleAnalytics(ctx context.Context) {
	gen := e.analyticsGen.Add(1)

	groups := types.CloneGroups(e.scn.Groups)
	snapshot := append([]string(nil), e.scn.ParticipantSnapshot...)
	prefs := e.prefs

	e.wg.Go(func() {
		timer := time.NewTimer(e.cfg.AnalyticsDebounce)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-e.stopCh:
			return
		}

		if gen != e.analyticsGen.Load() {
			return
		}

		report := satisfaction.Compute(groups, prefs, snapshot)

		e.mu.Lock()
		if gen != e.analyticsGen.Load() {
			e.mu.Unlock()
			return
		}
		e.current = report
		baseline := e.baseline
		e.mu.Unlock()

		e.metrics.RecordSatisfaction(report)
		if e.hooks.OnAnalyticsUpdated != nil {
			e.hooks.OnAnalyticsUpdated(ctx, report, baseline)
		}
	})
}

// onSaveState fans saver transitions out to the hooks.
func (e *Engine) onSaveState(from, to SaveState) {
	if e.hooks.OnSaveStateChanged != nil {
		e.hooks.OnSaveStateChanged(context.Background(), from, to)
	}
	if to == SaveStateFailed && e.hooks.OnError != nil {
		e.hooks.OnError(context.Background(), ErrSaveFailed)
	}
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}

	return -1
}

func equalOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// samePermutation reports whether b is a reordering of a (same multiset).
func samePermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}

	return true
}
