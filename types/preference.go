package types

// Preference is a participant's ranked wishlist of desired groups.
//
// The wishlist holds group ids ordered by desirability, rank 1 first. An
// empty wishlist is the explicit "no preference" variant: malformed or
// missing payloads normalize to it at the boundary (see the roster package)
// instead of erroring deep inside the algorithms.
type Preference struct {
	// ParticipantID is the participant this preference belongs to.
	ParticipantID string `json:"participantId" yaml:"participantId" bson:"participant_id"`

	// Wishlist is the ordered list of desired group ids, most desired first.
	Wishlist []string `json:"wishlist" yaml:"wishlist" bson:"wishlist"`
}

// IsEmpty reports whether the participant declared no preferences.
func (p Preference) IsEmpty() bool {
	return len(p.Wishlist) == 0
}

// Rank returns the 1-based rank of a group in the wishlist.
//
// An assigned group that is absent from the wishlist scores as
// len(wishlist)+1 -- "beyond all explicit ranks", a finite sentinel that
// keeps averages comparable instead of degenerating to infinity.
//
// Returns:
//   - int: 1-based rank, or len(Wishlist)+1 when the group is not listed
func (p Preference) Rank(groupID string) int {
	for i, id := range p.Wishlist {
		if id == groupID {
			return i + 1
		}
	}

	return len(p.Wishlist) + 1
}

// Clone returns a deep copy of the preference.
func (p Preference) Clone() Preference {
	wishlist := make([]string, len(p.Wishlist))
	copy(wishlist, p.Wishlist)
	p.Wishlist = wishlist

	return p
}

// ClonePreferences returns a deep copy of a preference map.
func ClonePreferences(prefs map[string]Preference) map[string]Preference {
	if prefs == nil {
		return nil
	}
	out := make(map[string]Preference, len(prefs))
	for id, p := range prefs {
		out[id] = p.Clone()
	}

	return out
}
