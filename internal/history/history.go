// Package history implements the editing engine's undo/redo command log.
//
// The log is an append-only ordered sequence plus a cursor (arena + index),
// not a branching undo tree: appending while the cursor sits before the end
// simply truncates the redo tail. That is sufficient for single-user,
// single-branch history and keeps every operation O(1) amortized.
package history

import (
	"time"

	"github.com/andysmith26/groupwheel-sub002/types"
)

// Log is the command history: an arena of applied commands and a cursor.
//
// The cursor counts applied commands: entries[:cursor] are applied,
// entries[cursor:] are the redo tail. A pending coalesced update sits
// outside the arena until flushed, so a burst of rapid edits lands as one
// entry whose undo target is the value from before the burst.
//
// Log is not safe for concurrent use; the engine serializes access.
type Log struct {
	entries []types.Command
	cursor  int

	pending     *types.Command
	pendingLast time.Time
	window      time.Duration
}

// New creates an empty log.
//
// Parameters:
//   - coalesceWindow: Sliding window within which successive updates to the
//     same group merge into the pending entry
//
// Returns:
//   - *Log: Empty history log
func New(coalesceWindow time.Duration) *Log {
	return &Log{window: coalesceWindow}
}

// Len returns the number of entries in the arena (excluding any pending
// coalesced update).
func (l *Log) Len() int {
	return len(l.entries)
}

// Cursor returns the number of currently applied entries.
func (l *Log) Cursor() int {
	return l.cursor
}

// Reset clears the arena, the cursor, and any pending coalesced update.
func (l *Log) Reset() {
	l.entries = nil
	l.cursor = 0
	l.pending = nil
}

// Append records an applied command, truncating any redo tail first.
//
// Any pending coalesced update flushes before the new entry so ordering in
// the arena matches the order the user saw edits apply.
func (l *Log) Append(cmd types.Command) {
	l.Flush()
	l.truncate()
	l.entries = append(l.entries, cmd)
	l.cursor++
}

// AppendUpdate records a group update, coalescing rapid bursts.
//
// When a pending update targets the same group and now is within the
// coalesce window of the previous edit, the pending entry absorbs the new
// values while keeping its pre-burst old values. Otherwise the pending
// entry flushes and the update starts a new burst. The caller has already
// applied the update optimistically to live state; only history entry
// creation is deferred.
//
// Parameters:
//   - upd: The applied update (old values = state immediately before it)
//   - now: Current time for window arithmetic
func (l *Log) AppendUpdate(upd types.UpdateGroupCommand, now time.Time) {
	if l.pending != nil &&
		l.pending.Update.GroupID == upd.GroupID &&
		now.Sub(l.pendingLast) <= l.window {
		l.pending.Update.NewName = upd.NewName
		l.pending.Update.NewCapacity = upd.NewCapacity
		l.pendingLast = now

		return
	}

	l.Flush()
	cmd := types.Command{Kind: types.CommandUpdateGroup, Update: &upd}
	l.pending = &cmd
	l.pendingLast = now
}

// Flush moves any pending coalesced update into the arena.
//
// The window is not consulted: Flush is called exactly when the burst must
// end (a different command, undo/redo, adopt, or an expired window observed
// by the caller).
func (l *Log) Flush() {
	if l.pending == nil {
		return
	}
	cmd := *l.pending
	l.pending = nil

	// A burst that ended where it began records nothing.
	if cmd.Update.OldName == cmd.Update.NewName && cmd.Update.OldCapacity == cmd.Update.NewCapacity {
		return
	}

	l.truncate()
	l.entries = append(l.entries, cmd)
	l.cursor++
}

// PendingExpired reports whether a pending update exists whose window has
// elapsed at now. The engine checks this on a timer so an idle burst still
// lands in the arena.
func (l *Log) PendingExpired(now time.Time) bool {
	return l.pending != nil && now.Sub(l.pendingLast) > l.window
}

// HasPending reports whether a coalesced update awaits flushing.
func (l *Log) HasPending() bool {
	return l.pending != nil
}

// Undo returns the command to invert and retreats the cursor.
//
// Any pending coalesced update flushes first so the burst undoes as one
// step back to its pre-burst value.
//
// Returns:
//   - types.Command: The most recently applied command
//   - bool: false at the earliest history position
func (l *Log) Undo() (types.Command, bool) {
	l.Flush()
	if l.cursor == 0 {
		return types.Command{}, false
	}
	l.cursor--

	return l.entries[l.cursor], true
}

// Redo returns the command to re-apply and advances the cursor.
//
// Returns:
//   - types.Command: The next redo entry
//   - bool: false at the newest history position
func (l *Log) Redo() (types.Command, bool) {
	l.Flush()
	if l.cursor >= len(l.entries) {
		return types.Command{}, false
	}
	cmd := l.entries[l.cursor]
	l.cursor++

	return cmd, true
}

// truncate drops the redo tail past the cursor.
func (l *Log) truncate() {
	if l.cursor < len(l.entries) {
		l.entries = l.entries[:l.cursor]
	}
}
