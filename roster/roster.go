// Package roster normalizes raw participant and preference inputs at the
// system boundary.
//
// Upstream payloads (form submissions, CSV imports, YAML files) are messy:
// duplicated ids, stray whitespace, wishlists that repeat a group or omit
// a participant entirely. This package collapses all of that into the clean
// shapes the optimizer and editing engine consume. Normalization never
// errors on malformed preference content; a broken wishlist degrades to
// the explicit "no preference" variant instead.
package roster

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andysmith26/groupwheel-sub002/types"
)

// RawPreference is an unvalidated preference record as it arrives from the
// outside world.
type RawPreference struct {
	// ParticipantID identifies the participant; blanks invalidate the record.
	ParticipantID string `json:"participantId" yaml:"participantId"`

	// Wishlist is the ordered list of desired groups, most desired first.
	// Entries may be group names or group ids; blanks and duplicates are
	// dropped during normalization.
	Wishlist []string `json:"wishlist" yaml:"wishlist"`
}

// NewSnapshot builds a deduplicated participant snapshot from raw ids.
//
// Whitespace is trimmed, blank entries are dropped, and duplicates collapse
// to the first occurrence so the snapshot preserves arrival order. The
// returned slice is always non-nil.
//
// Returns:
//   - []string: deduplicated participant ids in first-occurrence order
func NewSnapshot(ids []string) []string {
	snapshot := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		snapshot = append(snapshot, id)
	}

	return snapshot
}

// NormalizePreferences converts raw preference records into validated
// preferences keyed by participant id.
//
// Malformed records degrade instead of erroring:
//   - blank participant ids invalidate the whole record
//   - blank wishlist entries are dropped
//   - duplicated wishlist entries keep their first (best) rank
//   - a second record for the same participant is ignored
//
// Participants absent from the result simply have no preference; callers
// treat a missing key the same as an empty wishlist.
//
// Returns:
//   - map[string]types.Preference: normalized preferences by participant id
func NormalizePreferences(raw []RawPreference) map[string]types.Preference {
	prefs := make(map[string]types.Preference, len(raw))

	for _, r := range raw {
		id := strings.TrimSpace(r.ParticipantID)
		if id == "" {
			continue
		}
		if _, ok := prefs[id]; ok {
			continue
		}

		wishlist := make([]string, 0, len(r.Wishlist))
		seen := make(map[string]struct{}, len(r.Wishlist))
		for _, entry := range r.Wishlist {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			if _, ok := seen[entry]; ok {
				continue
			}
			seen[entry] = struct{}{}
			wishlist = append(wishlist, entry)
		}

		prefs[id] = types.Preference{ParticipantID: id, Wishlist: wishlist}
	}

	return prefs
}

// GroupSpec declares a group in a roster file.
type GroupSpec struct {
	// Name is the display name for the group.
	Name string `json:"name" yaml:"name"`

	// Capacity is the soft member limit; zero or negative means unlimited.
	Capacity int `json:"capacity" yaml:"capacity"`
}

// File is a YAML roster document: the participant list plus optional
// preferences and group declarations.
//
// Exactly one of Groups, GroupCount, or GroupSize drives group layout;
// the generator validates that, not the loader.
type File struct {
	// Participants lists raw participant ids.
	Participants []string `json:"participants" yaml:"participants"`

	// Preferences lists raw preference records.
	Preferences []RawPreference `json:"preferences" yaml:"preferences"`

	// Groups declares explicit groups with capacities.
	Groups []GroupSpec `json:"groups" yaml:"groups"`

	// GroupCount requests a fixed number of derived groups.
	GroupCount int `json:"groupCount" yaml:"groupCount"`

	// GroupSize requests derived groups of a target size.
	GroupSize int `json:"groupSize" yaml:"groupSize"`
}

// LoadFile reads and parses a YAML roster file.
//
// Only structural problems (missing file, invalid YAML) error; content-level
// cleanup happens later via NewSnapshot and NormalizePreferences.
//
// Parameters:
//   - path: filesystem path to the roster YAML document
//
// Returns:
//   - *File: the parsed roster document
//   - error: non-nil when the file cannot be read or parsed
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse roster file %s: %w", path, err)
	}

	return &f, nil
}
