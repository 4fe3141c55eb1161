package tokenizer

import (
	"cmp"
	"sort"
)

// rankFromScores transforms a vector of scores into a dense rank, 0 being
// the highest score. Equal scores receive equal ranks; the ordering used
// is cmp.Compare's total order over float64, which places NaN
// deterministically (Go's stdlib analogue of Rust's f32::total_cmp) so
// that vocabularies carrying non-finite scores still rank reproducibly
// across platforms. Grounded on original_source/src/bpe/mod.rs's rank().
//
// Note: dedup/rank assignment is done by walking a total-ordered sort
// rather than by hashing scores into a map, because float64 map-key
// equality (IEEE 754 ==) disagrees with cmp.Compare's total order on NaN
// (NaN != NaN under ==, but cmp.Compare treats all NaNs as equal); hashing
// would silently give every NaN input its own rank instead of a shared one.
func rankFromScores(scores []float64) []uint32 {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cmp.Compare(scores[order[a]], scores[order[b]]) > 0
	})

	ranks := make([]uint32, len(scores))
	var rank uint32
	for i, idx := range order {
		if i > 0 && cmp.Compare(scores[order[i-1]], scores[idx]) != 0 {
			rank++
		}
		ranks[idx] = rank
	}
	return ranks
}
