package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andysmith26/groupwheel-sub002/types"
)

func moveCmd(pid, from, to string) types.Command {
	return types.Command{
		Kind: types.CommandMove,
		Move: &types.MoveCommand{ParticipantID: pid, From: from, To: to},
	}
}

func TestLog_AppendUndoRedo(t *testing.T) {
	t.Run("undo on empty log returns false", func(t *testing.T) {
		l := New(500 * time.Millisecond)
		_, ok := l.Undo()
		require.False(t, ok)
		_, ok = l.Redo()
		require.False(t, ok)
	})

	t.Run("undo returns entries newest first", func(t *testing.T) {
		l := New(500 * time.Millisecond)
		l.Append(moveCmd("p1", "g1", "g2"))
		l.Append(moveCmd("p2", "g2", "g1"))
		require.Equal(t, 2, l.Len())
		require.Equal(t, 2, l.Cursor())

		cmd, ok := l.Undo()
		require.True(t, ok)
		require.Equal(t, "p2", cmd.Move.ParticipantID)

		cmd, ok = l.Undo()
		require.True(t, ok)
		require.Equal(t, "p1", cmd.Move.ParticipantID)

		_, ok = l.Undo()
		require.False(t, ok)
	})

	t.Run("redo replays in original order", func(t *testing.T) {
		l := New(500 * time.Millisecond)
		l.Append(moveCmd("p1", "g1", "g2"))
		l.Append(moveCmd("p2", "g2", "g1"))
		l.Undo()
		l.Undo()

		cmd, ok := l.Redo()
		require.True(t, ok)
		require.Equal(t, "p1", cmd.Move.ParticipantID)

		cmd, ok = l.Redo()
		require.True(t, ok)
		require.Equal(t, "p2", cmd.Move.ParticipantID)

		_, ok = l.Redo()
		require.False(t, ok)
	})

	t.Run("append truncates the redo tail", func(t *testing.T) {
		l := New(500 * time.Millisecond)
		l.Append(moveCmd("p1", "g1", "g2"))
		l.Append(moveCmd("p2", "g2", "g1"))
		l.Undo()

		l.Append(moveCmd("p3", "g1", "g2"))
		require.Equal(t, 2, l.Len())

		_, ok := l.Redo()
		require.False(t, ok)

		cmd, ok := l.Undo()
		require.True(t, ok)
		require.Equal(t, "p3", cmd.Move.ParticipantID)
	})

	t.Run("reset clears everything", func(t *testing.T) {
		l := New(500 * time.Millisecond)
		l.Append(moveCmd("p1", "g1", "g2"))
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g1", OldName: "A", NewName: "B"}, time.Now())
		l.Reset()
		require.Zero(t, l.Len())
		require.Zero(t, l.Cursor())
		require.False(t, l.HasPending())
	})
}

func TestLog_Coalescing(t *testing.T) {
	window := 500 * time.Millisecond
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("rapid updates to same group merge into one entry", func(t *testing.T) {
		l := New(window)
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g1", OldName: "Red", NewName: "Re"}, base)
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g1", OldName: "Re", NewName: "R"}, base.Add(100*time.Millisecond))
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g1", OldName: "R", NewName: "Rockets"}, base.Add(200*time.Millisecond))
		require.True(t, l.HasPending())
		require.Zero(t, l.Len())

		l.Flush()
		require.Equal(t, 1, l.Len())

		cmd, ok := l.Undo()
		require.True(t, ok)
		require.Equal(t, "Red", cmd.Update.OldName)
		require.Equal(t, "Rockets", cmd.Update.NewName)
	})

	t.Run("update past the window starts a new entry", func(t *testing.T) {
		l := New(window)
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g1", OldName: "Red", NewName: "Blue"}, base)
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g1", OldName: "Blue", NewName: "Green"}, base.Add(2*time.Second))
		require.True(t, l.HasPending())
		require.Equal(t, 1, l.Len())

		l.Flush()
		require.Equal(t, 2, l.Len())
	})

	t.Run("update to a different group flushes the pending entry", func(t *testing.T) {
		l := New(window)
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g1", OldName: "Red", NewName: "Blue"}, base)
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g2", OldName: "X", NewName: "Y"}, base.Add(50*time.Millisecond))
		require.Equal(t, 1, l.Len())
		require.True(t, l.HasPending())
	})

	t.Run("other commands flush the pending entry first", func(t *testing.T) {
		l := New(window)
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g1", OldName: "Red", NewName: "Blue"}, base)
		l.Append(moveCmd("p1", "g1", "g2"))
		require.Equal(t, 2, l.Len())
		require.False(t, l.HasPending())

		cmd, ok := l.Undo()
		require.True(t, ok)
		require.Equal(t, types.CommandMove, cmd.Kind)

		cmd, ok = l.Undo()
		require.True(t, ok)
		require.Equal(t, types.CommandUpdateGroup, cmd.Kind)
	})

	t.Run("undo flushes the pending entry", func(t *testing.T) {
		l := New(window)
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g1", OldName: "Red", NewName: "Blue"}, base)

		cmd, ok := l.Undo()
		require.True(t, ok)
		require.Equal(t, "Red", cmd.Update.OldName)
		require.Equal(t, "Blue", cmd.Update.NewName)
	})

	t.Run("burst ending at its start records nothing", func(t *testing.T) {
		l := New(window)
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g1", OldName: "Red", NewName: "Blue"}, base)
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g1", OldName: "Blue", NewName: "Red"}, base.Add(100*time.Millisecond))
		l.Flush()
		require.Zero(t, l.Len())
	})

	t.Run("pending expiry is observable", func(t *testing.T) {
		l := New(window)
		l.AppendUpdate(types.UpdateGroupCommand{GroupID: "g1", OldName: "Red", NewName: "Blue"}, base)
		require.False(t, l.PendingExpired(base.Add(200*time.Millisecond)))
		require.True(t, l.PendingExpired(base.Add(time.Second)))
	})
}
