package tokenizer

import (
	"bytes"
	"sort"
)

// slot is the (offset, length) of one token's piece inside the sealed
// arena buffer.
type slot struct {
	off uint32
	len uint32
}

// buildArena packs the contents of every piece into one buffer, reusing
// existing substrings greedily. Pieces are placed longest-first so that
// short pieces have the best chance of landing inside an already-placed
// longer piece (spec.md §4.3 / original_source/src/vocab.rs
// CompressedVocab::new).
//
// The returned buffer is never resized afterward; callers must treat it as
// sealed. Go slices over an unshared backing array that is never appended
// to again are as stable as spec.md's "pinned" buffer requires.
func buildArena(pieces [][]byte, totalLen int) ([]byte, []slot) {
	order := make([]int, len(pieces))
	for i := range order {
		order[i] = i
	}
	// Stable sort by length descending, matching the spec's "stably
	// sorted by piece length descending".
	sort.SliceStable(order, func(a, b int) bool {
		return len(pieces[order[a]]) > len(pieces[order[b]])
	})

	buf := make([]byte, 0, totalLen)
	slots := make([]slot, len(pieces))
	for _, i := range order {
		v := pieces[i]
		off := bytes.Index(buf, v)
		if off < 0 {
			off = len(buf)
			buf = append(buf, v...)
		}
		slots[i] = slot{off: uint32(off), len: uint32(len(v))}
	}
	return buf, slots
}
