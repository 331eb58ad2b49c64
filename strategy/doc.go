// Package strategy provides partition strategies for assigning participants
// to capacity-bounded groups.
//
// Two strategies are included:
//
//   - Greedy: orders participants by declared preference degree and seeds
//     each into the best-ranked group with remaining capacity. Fast and
//     deterministic; used as the seeding phase.
//
//   - LocalSearch: wraps a seeding strategy and improves its result with a
//     fixed budget of randomized pairwise swaps, accepting only strictly
//     positive score deltas (hill-climbing; worse states are never
//     accepted). Runtime is bounded by the budget, not convergence.
//
// All strategies implement types.Assigner, are deterministic for a fixed
// seed, and never exceed declared group capacities. Manual over-capacity
// edits are an editing engine concern, not a strategy one.
package strategy
