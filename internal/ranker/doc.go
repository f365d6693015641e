// Package ranker scores and filters catalog results against a reference
// string using fuzzy lexical matching.
//
// Two metrics are used across the engine:
//   - Partial ratio: the best-aligning substring of the longer string is
//     compared against the shorter one, so a short query contained in a
//     long description scores near 100. Used to rank raw catalog results.
//   - Full ratio: whole-string similarity that penalizes length mismatch.
//     Used when comparing two already well-formed descriptions.
//
// Ranking is deterministic: output order is a function of the query, the
// candidate set, and the threshold. Ties keep the candidates' original
// order.
package ranker
