package types

import "strings"

// CapacityUnlimited marks a group with no capacity bound.
const CapacityUnlimited = 0

// UnassignedContainer is the identifier of the implicit pseudo-container
// holding participants that belong to no group. It is a reserved id and
// never collides with group ids, which are generated UUIDs.
const UnassignedContainer = "unassigned"

// Group is a named, capacity-bounded container of participants within a
// Scenario.
//
// Groups hold one-directional ownership: the group carries an ordered member
// list, and "which group is X in" is answered by lookup rather than a stored
// back-pointer on the participant. Capacity is advisory for manual edits --
// only the optimizer treats it as a hard constraint.
type Group struct {
	// ID uniquely identifies the group within its scenario.
	ID string `json:"id" yaml:"id" bson:"id"`

	// Name is the display name, unique (case-insensitive) and non-empty
	// within a scenario.
	Name string `json:"name" yaml:"name" bson:"name"`

	// Capacity is the declared member limit, or CapacityUnlimited (0).
	Capacity int `json:"capacity" yaml:"capacity" bson:"capacity"`

	// MemberIDs is the ordered list of participant ids in this group.
	// Each id appears at most once.
	MemberIDs []string `json:"memberIds" yaml:"memberIds" bson:"member_ids"`
}

// MemberIndex returns the position of a participant in the member list.
//
// Returns:
//   - int: Zero-based index, or -1 if the participant is not a member
func (g Group) MemberIndex(participantID string) int {
	for i, id := range g.MemberIDs {
		if id == participantID {
			return i
		}
	}

	return -1
}

// HasMember reports whether the participant belongs to this group.
func (g Group) HasMember(participantID string) bool {
	return g.MemberIndex(participantID) >= 0
}

// HasCapacity reports whether the group can take another member without
// exceeding its declared capacity. Unlimited groups always have capacity.
func (g Group) HasCapacity() bool {
	return g.Capacity == CapacityUnlimited || len(g.MemberIDs) < g.Capacity
}

// OverCapacity reports whether the member count exceeds the declared
// capacity. This can only happen through manual edits; the optimizer never
// produces over-capacity groups.
func (g Group) OverCapacity() bool {
	return g.Capacity != CapacityUnlimited && len(g.MemberIDs) > g.Capacity
}

// NameEquals compares group names case-insensitively.
func (g Group) NameEquals(name string) bool {
	return strings.EqualFold(g.Name, name)
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	members := make([]string, len(g.MemberIDs))
	copy(members, g.MemberIDs)
	g.MemberIDs = members

	return g
}

// CloneGroups returns a deep copy of a group slice.
func CloneGroups(groups []Group) []Group {
	if groups == nil {
		return nil
	}
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}

	return out
}
