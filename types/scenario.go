package types

import (
	"fmt"
	"strings"
	"time"
)

// ScenarioStatus is the lifecycle status of a scenario.
type ScenarioStatus string

// Scenario lifecycle statuses. Transitions go DRAFT → ADOPTED → ARCHIVED;
// adoption requires a clean flush of pending writes.
const (
	StatusDraft    ScenarioStatus = "DRAFT"
	StatusAdopted  ScenarioStatus = "ADOPTED"
	StatusArchived ScenarioStatus = "ARCHIVED"
)

// Scenario is one reproducible grouping result for a fixed participant set.
//
// The participant snapshot is captured once at construction and never
// mutated afterwards. This is what guarantees reproducibility even as the
// underlying roster later changes: every member id in every group must be
// an element of the snapshot, checked at construction and preserved by
// every command the editing engine applies.
type Scenario struct {
	// ID uniquely identifies the scenario.
	ID string `json:"id" yaml:"id" bson:"_id"`

	// ParticipantSnapshot is the immutable, deduplicated participant set.
	ParticipantSnapshot []string `json:"participantSnapshot" yaml:"participantSnapshot" bson:"participant_snapshot"`

	// Groups is the ordered list of groups partitioning the snapshot.
	Groups []Group `json:"groups" yaml:"groups" bson:"groups"`

	// Unassigned is the ordered list of snapshot participants that belong
	// to no group. It is derived data with explicit ordering so it can be
	// reordered like any other container.
	Unassigned []string `json:"unassigned" yaml:"unassigned" bson:"unassigned"`

	// Status is the lifecycle status.
	Status ScenarioStatus `json:"status" yaml:"status" bson:"status"`

	// CreatedAt is when the scenario was produced.
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt" bson:"created_at"`

	// LastModifiedAt is when the scenario was last mutated or persisted.
	LastModifiedAt time.Time `json:"lastModifiedAt" yaml:"lastModifiedAt" bson:"last_modified_at"`
}

// NewScenario constructs a validated DRAFT scenario.
//
// The participant list is used as the immutable snapshot (callers dedupe via
// roster.NewSnapshot). Every group member must be in the snapshot, no
// participant may appear in two groups, and group names must be non-empty
// and unique case-insensitively. The unassigned list is derived as the
// snapshot remainder in snapshot order.
//
// Parameters:
//   - id: Scenario identifier
//   - participants: Deduplicated participant snapshot
//   - groups: Initial groups (may be empty)
//   - now: Creation timestamp
//
// Returns:
//   - *Scenario: Validated scenario in DRAFT status
//   - error: Validation error describing the first violated invariant
func NewScenario(id string, participants []string, groups []Group, now time.Time) (*Scenario, error) {
	s := &Scenario{
		ID:                  id,
		ParticipantSnapshot: append([]string(nil), participants...),
		Groups:              CloneGroups(groups),
		Status:              StatusDraft,
		CreatedAt:           now,
		LastModifiedAt:      now,
	}
	if s.Groups == nil {
		s.Groups = []Group{}
	}
	s.Unassigned = s.DeriveUnassigned()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks the scenario's structural invariants: member ids are
// snapshot elements, no participant is in two groups, group names are
// non-empty and unique (case-insensitive), and the unassigned list is
// exactly the snapshot minus all group members, duplicate-free.
//
// Returns:
//   - error: First violated invariant, nil when the scenario is consistent
func (s *Scenario) Validate() error {
	snapshot := make(map[string]struct{}, len(s.ParticipantSnapshot))
	for _, id := range s.ParticipantSnapshot {
		if _, dup := snapshot[id]; dup {
			return fmt.Errorf("%w: duplicate participant %q in snapshot", ErrInvalidScenario, id)
		}
		snapshot[id] = struct{}{}
	}

	seenMembers := make(map[string]string, len(s.ParticipantSnapshot))
	seenNames := make(map[string]string, len(s.Groups))
	for _, g := range s.Groups {
		if g.Name == "" {
			return fmt.Errorf("%w: group %q has an empty name", ErrInvalidScenario, g.ID)
		}
		lower := foldName(g.Name)
		if other, dup := seenNames[lower]; dup {
			return fmt.Errorf("%w: groups %q and %q share the name %q", ErrInvalidScenario, other, g.ID, g.Name)
		}
		seenNames[lower] = g.ID

		memberSet := make(map[string]struct{}, len(g.MemberIDs))
		for _, m := range g.MemberIDs {
			if _, ok := snapshot[m]; !ok {
				return fmt.Errorf("%w: member %q of group %q is not in the participant snapshot", ErrInvalidScenario, m, g.ID)
			}
			if _, dup := memberSet[m]; dup {
				return fmt.Errorf("%w: member %q appears twice in group %q", ErrInvalidScenario, m, g.ID)
			}
			memberSet[m] = struct{}{}
			if other, taken := seenMembers[m]; taken {
				return fmt.Errorf("%w: participant %q belongs to groups %q and %q", ErrInvalidScenario, m, other, g.ID)
			}
			seenMembers[m] = g.ID
		}
	}

	unassignedSet := make(map[string]struct{}, len(s.Unassigned))
	for _, id := range s.Unassigned {
		if _, ok := snapshot[id]; !ok {
			return fmt.Errorf("%w: unassigned participant %q is not in the participant snapshot", ErrInvalidScenario, id)
		}
		if _, dup := unassignedSet[id]; dup {
			return fmt.Errorf("%w: participant %q appears twice in the unassigned list", ErrInvalidScenario, id)
		}
		if group, grouped := seenMembers[id]; grouped {
			return fmt.Errorf("%w: participant %q is both in group %q and unassigned", ErrInvalidScenario, id, group)
		}
		unassignedSet[id] = struct{}{}
	}
	if len(seenMembers)+len(unassignedSet) != len(snapshot) {
		return fmt.Errorf("%w: %d of %d snapshot participants are in no container",
			ErrInvalidScenario, len(snapshot)-len(seenMembers)-len(unassignedSet), len(snapshot))
	}

	return nil
}

// GroupByID returns a pointer to the group with the given id, or nil.
//
// The pointer aliases the scenario's own slice; callers that mutate through
// it own the scenario's lock.
func (s *Scenario) GroupByID(id string) *Group {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i]
		}
	}

	return nil
}

// GroupIndex returns the position of the group with the given id, or -1.
func (s *Scenario) GroupIndex(id string) int {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return i
		}
	}

	return -1
}

// ContainerOf returns the container currently holding a participant: a
// group id, UnassignedContainer, or "" when the participant is unknown.
func (s *Scenario) ContainerOf(participantID string) string {
	for i := range s.Groups {
		if s.Groups[i].HasMember(participantID) {
			return s.Groups[i].ID
		}
	}
	for _, id := range s.Unassigned {
		if id == participantID {
			return UnassignedContainer
		}
	}

	return ""
}

// InSnapshot reports whether the participant is part of the immutable
// snapshot.
func (s *Scenario) InSnapshot(participantID string) bool {
	for _, id := range s.ParticipantSnapshot {
		if id == participantID {
			return true
		}
	}

	return false
}

// Clone returns a deep copy of the scenario.
func (s *Scenario) Clone() *Scenario {
	out := *s
	out.ParticipantSnapshot = append([]string(nil), s.ParticipantSnapshot...)
	out.Groups = CloneGroups(s.Groups)
	out.Unassigned = append([]string(nil), s.Unassigned...)

	return &out
}

// foldName normalizes a group name for case-insensitive uniqueness checks.
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DeriveUnassigned computes the snapshot remainder in snapshot order: every
// snapshot participant that belongs to no group. It does not mutate the
// scenario; callers assign the result when rebuilding a hand-constructed or
// deserialized scenario whose unassigned list is absent.
func (s *Scenario) DeriveUnassigned() []string {
	grouped := make(map[string]struct{})
	for _, g := range s.Groups {
		for _, m := range g.MemberIDs {
			grouped[m] = struct{}{}
		}
	}
	unassigned := make([]string, 0, len(s.ParticipantSnapshot)-len(grouped))
	for _, id := range s.ParticipantSnapshot {
		if _, ok := grouped[id]; !ok {
			unassigned = append(unassigned, id)
		}
	}

	return unassigned
}
