package types

// CommandKind discriminates the Command union.
type CommandKind int

// Command kinds. Each kind has exactly one non-nil payload on the Command.
const (
	// CommandMove moves a participant between containers.
	CommandMove CommandKind = iota

	// CommandCreateGroup adds a new, empty group.
	CommandCreateGroup

	// CommandDeleteGroup removes a group, unassigning its members.
	CommandDeleteGroup

	// CommandUpdateGroup changes a group's name and/or capacity.
	CommandUpdateGroup

	// CommandReorder permutes the member order of one container.
	CommandReorder
)

// String returns the string representation of the command kind.
func (k CommandKind) String() string {
	switch k {
	case CommandMove:
		return "Move"
	case CommandCreateGroup:
		return "CreateGroup"
	case CommandDeleteGroup:
		return "DeleteGroup"
	case CommandUpdateGroup:
		return "UpdateGroup"
	case CommandReorder:
		return "Reorder"
	default:
		return "Unknown"
	}
}

// Command is a reversible, atomic transition applied to a scenario's groups.
//
// It is a tagged union: Kind selects which payload pointer is set. Each
// payload carries enough before/after data to both apply the transition and
// exactly invert it, which is what makes the undo history a plain sequence
// of commands plus a cursor rather than a snapshot stack.
type Command struct {
	Kind CommandKind `json:"kind"`

	Move    *MoveCommand        `json:"move,omitempty"`
	Create  *CreateGroupCommand `json:"create,omitempty"`
	Delete  *DeleteGroupCommand `json:"delete,omitempty"`
	Update  *UpdateGroupCommand `json:"update,omitempty"`
	Reorder *ReorderCommand     `json:"reorder,omitempty"`
}

// MoveCommand moves one participant from one container to another.
//
// Containers are group ids or UnassignedContainer. The indexes record the
// exact positions involved so inversion restores ordering precisely.
type MoveCommand struct {
	ParticipantID string `json:"participantId"`

	// From and To are the source and target container ids.
	From string `json:"from"`
	To   string `json:"to"`

	// FromIndex is the position the participant occupied in the source.
	FromIndex int `json:"fromIndex"`

	// ToIndex is the position the participant was inserted at in the target.
	ToIndex int `json:"toIndex"`
}

// CreateGroupCommand records the creation of a group.
//
// The full group value is captured so the inverse (a delete) needs no extra
// state; a freshly created group has no members.
type CreateGroupCommand struct {
	Group Group `json:"group"`

	// Index is the position the group was inserted at in the group list.
	Index int `json:"index"`
}

// DeleteGroupCommand records the removal of a group.
//
// The exact prior group -- including membership order -- and its position
// are captured so undo restores both precisely. The members themselves move
// to the unassigned container on apply (appended in group order).
type DeleteGroupCommand struct {
	Group Group `json:"group"`

	// Index is the position the group occupied in the group list.
	Index int `json:"index"`
}

// UpdateGroupCommand records a change to a group's name and/or capacity.
//
// Both old and new values are carried. When rapid updates to the same group
// coalesce into a single history entry, the old values stay pinned to the
// state from before the burst while the new values track the latest edit.
type UpdateGroupCommand struct {
	GroupID string `json:"groupId"`

	OldName string `json:"oldName"`
	NewName string `json:"newName"`

	OldCapacity int `json:"oldCapacity"`
	NewCapacity int `json:"newCapacity"`
}

// ReorderCommand records a permutation of one container's member order.
type ReorderCommand struct {
	// Container is a group id or UnassignedContainer.
	Container string `json:"container"`

	Before []string `json:"before"`
	After  []string `json:"after"`
}

// Invert returns the command that exactly reverses this one.
func (c Command) Invert() Command {
	switch c.Kind {
	case CommandMove:
		m := *c.Move

		return Command{Kind: CommandMove, Move: &MoveCommand{
			ParticipantID: m.ParticipantID,
			From:          m.To,
			To:            m.From,
			FromIndex:     m.ToIndex,
			ToIndex:       m.FromIndex,
		}}
	case CommandCreateGroup:
		return Command{Kind: CommandDeleteGroup, Delete: &DeleteGroupCommand{
			Group: c.Create.Group.Clone(),
			Index: c.Create.Index,
		}}
	case CommandDeleteGroup:
		return Command{Kind: CommandCreateGroup, Create: &CreateGroupCommand{
			Group: c.Delete.Group.Clone(),
			Index: c.Delete.Index,
		}}
	case CommandUpdateGroup:
		u := *c.Update

		return Command{Kind: CommandUpdateGroup, Update: &UpdateGroupCommand{
			GroupID:     u.GroupID,
			OldName:     u.NewName,
			NewName:     u.OldName,
			OldCapacity: u.NewCapacity,
			NewCapacity: u.OldCapacity,
		}}
	case CommandReorder:
		r := *c.Reorder

		return Command{Kind: CommandReorder, Reorder: &ReorderCommand{
			Container: r.Container,
			Before:    append([]string(nil), r.After...),
			After:     append([]string(nil), r.Before...),
		}}
	default:
		return Command{Kind: c.Kind}
	}
}
