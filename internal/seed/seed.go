// Package seed derives deterministic RNG seeds from assignment inputs.
package seed

import (
	"github.com/zeebo/xxh3"
)

// FromInputs hashes the participant and group id lists into a stable seed.
//
// The same roster and group configuration always produce the same seed, so
// randomized strategies stay reproducible without callers threading an
// explicit seed through. Id order matters, which is fine: inputs carry
// stable ordering by construction.
//
// Parameters:
//   - participants: Participant ids in roster order
//   - groupIDs: Group ids in scenario order
//
// Returns:
//   - uint64: Deterministic non-zero seed
func FromInputs(participants, groupIDs []string) uint64 {
	h := xxh3.New()
	for _, id := range participants {
		_, _ = h.WriteString(id)
		_, _ = h.WriteString("\x1f")
	}
	_, _ = h.WriteString("\x1e")
	for _, id := range groupIDs {
		_, _ = h.WriteString(id)
		_, _ = h.WriteString("\x1f")
	}

	sum := h.Sum64()
	if sum == 0 {
		sum = 0x9e3779b97f4a7c15
	}

	return sum
}
