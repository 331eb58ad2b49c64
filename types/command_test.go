package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommand_Invert(t *testing.T) {
	t.Run("move swaps containers and indexes", func(t *testing.T) {
		cmd := Command{Kind: CommandMove, Move: &MoveCommand{
			ParticipantID: "a", From: "g1", To: UnassignedContainer, FromIndex: 2, ToIndex: 0,
		}}

		inv := cmd.Invert()

		require.Equal(t, CommandMove, inv.Kind)
		require.Equal(t, UnassignedContainer, inv.Move.From)
		require.Equal(t, "g1", inv.Move.To)
		require.Equal(t, 0, inv.Move.FromIndex)
		require.Equal(t, 2, inv.Move.ToIndex)
	})

	t.Run("create inverts to delete and back", func(t *testing.T) {
		cmd := Command{Kind: CommandCreateGroup, Create: &CreateGroupCommand{
			Group: Group{ID: "g9", Name: "New Group"}, Index: 3,
		}}

		inv := cmd.Invert()
		require.Equal(t, CommandDeleteGroup, inv.Kind)
		require.Equal(t, "g9", inv.Delete.Group.ID)
		require.Equal(t, 3, inv.Delete.Index)

		roundTrip := inv.Invert()
		require.Equal(t, CommandCreateGroup, roundTrip.Kind)
		require.Equal(t, cmd.Create.Group, roundTrip.Create.Group)
	})

	t.Run("delete captures exact membership for restore", func(t *testing.T) {
		cmd := Command{Kind: CommandDeleteGroup, Delete: &DeleteGroupCommand{
			Group: Group{ID: "g1", Name: "G", MemberIDs: []string{"a", "c"}}, Index: 0,
		}}

		inv := cmd.Invert()

		require.Equal(t, CommandCreateGroup, inv.Kind)
		require.Equal(t, []string{"a", "c"}, inv.Create.Group.MemberIDs)
	})

	t.Run("update swaps old and new values", func(t *testing.T) {
		cmd := Command{Kind: CommandUpdateGroup, Update: &UpdateGroupCommand{
			GroupID: "g1", OldName: "Before", NewName: "After", OldCapacity: 4, NewCapacity: 6,
		}}

		inv := cmd.Invert()

		require.Equal(t, "After", inv.Update.OldName)
		require.Equal(t, "Before", inv.Update.NewName)
		require.Equal(t, 6, inv.Update.OldCapacity)
		require.Equal(t, 4, inv.Update.NewCapacity)
	})

	t.Run("reorder swaps before and after", func(t *testing.T) {
		cmd := Command{Kind: CommandReorder, Reorder: &ReorderCommand{
			Container: "g1", Before: []string{"a", "b"}, After: []string{"b", "a"},
		}}

		inv := cmd.Invert()

		require.Equal(t, []string{"b", "a"}, inv.Reorder.Before)
		require.Equal(t, []string{"a", "b"}, inv.Reorder.After)
	})
}

func TestCommandKind_String(t *testing.T) {
	require.Equal(t, "Move", CommandMove.String())
	require.Equal(t, "CreateGroup", CommandCreateGroup.String())
	require.Equal(t, "DeleteGroup", CommandDeleteGroup.String())
	require.Equal(t, "UpdateGroup", CommandUpdateGroup.String())
	require.Equal(t, "Reorder", CommandReorder.String())
	require.Equal(t, "Unknown", CommandKind(99).String())
}

func TestPreference_Rank(t *testing.T) {
	p := Preference{ParticipantID: "a", Wishlist: []string{"g1", "g2"}}

	require.Equal(t, 1, p.Rank("g1"))
	require.Equal(t, 2, p.Rank("g2"))
	// Beyond all explicit ranks, finite sentinel.
	require.Equal(t, 3, p.Rank("g3"))
}

func TestSaveState_String(t *testing.T) {
	require.Equal(t, "Idle", SaveStateIdle.String())
	require.Equal(t, "Saving", SaveStateSaving.String())
	require.Equal(t, "Saved", SaveStateSaved.String())
	require.Equal(t, "Error", SaveStateError.String())
	require.Equal(t, "Failed", SaveStateFailed.String())
	require.Equal(t, "Unknown", SaveState(99).String())
}
