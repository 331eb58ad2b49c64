package types

// SatisfactionReport aggregates how well assigned groups match ranked
// preferences.
//
// Percentages and the average rank are computed only over participants that
// declared a non-empty wishlist AND are assigned to some group; the two
// excluded populations are tracked separately so nothing is silently
// dropped. AverageAssignedRank is NaN when no participant qualifies.
type SatisfactionReport struct {
	// PercentTopChoice is 100 × (#assigned their rank-1 group) / (#with preferences).
	PercentTopChoice float64 `json:"percentAssignedTopChoice"`

	// PercentTopTwo is the analogous percentage for rank 1 or 2.
	PercentTopTwo float64 `json:"percentAssignedTop2"`

	// AverageAssignedRank is the mean assigned rank over participants with
	// preferences; a group absent from a wishlist counts as
	// len(wishlist)+1, a finite sentinel. NaN when the set is empty.
	AverageAssignedRank float64 `json:"averagePreferenceRankAssigned"`

	// WithPreferences is the number of assigned participants with a
	// non-empty wishlist (the denominator of the percentages).
	WithPreferences int `json:"studentsWithPreferences"`

	// NoPreferenceCount is the number of participants with no (or empty)
	// wishlists, excluded from rank aggregates.
	NoPreferenceCount int `json:"studentsWithNoPreferences"`

	// UnassignedToRequestCount is the number of participants with
	// preferences that are not assigned to any group.
	UnassignedToRequestCount int `json:"studentsUnassignedToRequest"`
}
