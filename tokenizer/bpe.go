package tokenizer

import (
	"cmp"
	"unicode/utf8"

	"github.com/emirpasic/gods/v2/trees/binaryheap"
)

// tokenMeta is the per-token record: an (offset, length) view into the
// sealed arena plus the token's merge rank. Byte tokens are resolved the
// same way: their one-byte pieces are copied into the arena along with
// the normal pieces. Rank 0 is the highest priority.
type tokenMeta struct {
	off  uint32
	len  uint32
	rank uint32
}

// BPE is a Byte Pair Encoding tokenizer: an incremental, priority-driven
// merge engine (spec.md C6) over a vocabulary built once at construction
// time and immutable thereafter.
type BPE struct {
	arena        []byte
	tokens       []tokenMeta
	sortedPieces []Token
	bytesTable   [256]Token
	unk          Token
}

// NewBPE builds a BPE tokenizer from parallel piece/score slices, treating
// any piece of the form <0xHH> as a byte token automatically.
func NewBPE(vocabs [][]byte, scores []float64, unk Token) (*BPE, error) {
	cv := collectVocab(vocabs, unk)
	return newBPEFromCollected(cv, scores, unk)
}

// NewBPEWithHint builds a BPE tokenizer using an explicit per-piece
// byte-token flag instead of auto-detection. A positive hint on a piece
// that is not a valid <0xHH> form fails construction.
func NewBPEWithHint(vocabs [][]byte, scores []float64, isByte []bool, unk Token) (*BPE, error) {
	cv, err := collectVocabWithHint(vocabs, isByte, unk)
	if err != nil {
		return nil, err
	}
	return newBPEFromCollected(cv, scores, unk)
}

func newBPEFromCollected(cv collectedVocab, scores []float64, unk Token) (*BPE, error) {
	if len(scores) != len(cv.pieces) {
		return nil, ErrScoreArityMismatch
	}
	ranks := rankFromScores(scores)
	arena, slots := buildArena(cv.pieces, cv.totalLen)

	tokens := make([]tokenMeta, len(cv.pieces))
	for i, s := range slots {
		tokens[i] = tokenMeta{off: s.off, len: s.len, rank: ranks[i]}
	}

	b := &BPE{
		arena:      arena,
		tokens:     tokens,
		bytesTable: cv.bytes,
		unk:        unk,
	}
	b.sortedPieces = buildPieceIndex(len(tokens), unk, cv.bytes, b.token)
	return b, nil
}

// token returns the piece bytes for a token id.
func (b *BPE) token(t Token) []byte {
	m := b.tokens[t]
	return b.arena[m.off : m.off+m.len]
}

func (b *BPE) findPiece(piece []byte) (Token, bool) {
	return findPiece(b.sortedPieces, b.bytesTable, b.unk, piece, b.token)
}

// UnkToken implements Method.
func (b *BPE) UnkToken() Token { return b.unk }

// VocabSize implements Method.
func (b *BPE) VocabSize() int { return len(b.tokens) }

// InternalSpecial identifies vocabulary pieces unreachable by the merge
// algorithm: probe every indexed piece that is valid UTF-8 by encoding its
// own string; a piece that does not collapse back to a single token is
// internally special. Pieces that are not valid UTF-8 are skipped. Grounded on original_source/src/bpe/mod.rs's inaccessible().
func (b *BPE) InternalSpecial() map[string]Token {
	out := make(map[string]Token)
	for _, t := range b.sortedPieces {
		piece := b.token(t)
		if !utf8.Valid(piece) {
			continue
		}
		s := string(piece)
		toks := b.Encode(s)
		if len(toks) > 1 {
			out[s] = t
		}
	}
	return out
}

// Encode implements Method: run the merge engine to completion and
// collect the final live token stream.
func (b *BPE) Encode(text string) []Token {
	state := b.beginMerge(text)
	for state.step() {
	}
	return state.collect()
}

// Decode implements Method.
func (b *BPE) Decode(t Token) []byte { return b.token(t) }

// mark is a per-input-byte record: the token id currently occupying this
// byte position (unk if interior to another token's span) and the byte
// distance back to the preceding live position.
type mark struct {
	token        Token
	backDistance uint32
}

// mergeCand is a queued possibility of replacing the adjacent pair
// (t1, t2) at byte offset pos with token merge.
type mergeCand struct {
	pos   int
	t1    Token
	t2    Token
	merge Token
	rank  uint32
}

// mergeCandLess orders candidates by (rank, merge, pos, pair) ascending,
// the priority order spec.md §3 requires: smaller rank wins, then smaller
// merge id, then smaller pos, then lexicographic pair comparison.
func mergeCandLess(a, b mergeCand) int {
	if c := cmp.Compare(a.rank, b.rank); c != 0 {
		return c
	}
	if c := cmp.Compare(a.merge, b.merge); c != 0 {
		return c
	}
	if c := cmp.Compare(a.pos, b.pos); c != 0 {
		return c
	}
	if c := cmp.Compare(a.t1, b.t1); c != 0 {
		return c
	}
	return cmp.Compare(a.t2, b.t2)
}

// mergeState is the per-call scratch state of one Encode invocation: the
// mark array plus a priority queue of candidate merges. It is discarded
// after the call.
type mergeState struct {
	bpe   *BPE
	text  []byte
	marks []mark
	queue *binaryheap.Heap[mergeCand]
}

// beginMerge seeds the mark array and the merge queue by walking the
// UTF-8 characters of text, matching each against the piece index and
// falling back to per-byte tokens where no piece matches. Grounded 1:1 on
// original_source/src/bpe/algorithm.rs's Bpe::begin_merge.
func (b *BPE) beginMerge(text string) *mergeState {
	tb := []byte(text)
	marks := make([]mark, len(tb))
	for i := range marks {
		marks[i] = mark{token: b.unk}
	}
	queue := binaryheap.NewWith(mergeCandLess)

	last := -1 // -1 means "no preceding live position"
	for i, w := 0, 0; i < len(text); i += w {
		r, size := utf8.DecodeRuneInString(text[i:])
		w = size
		_ = r
		c := tb[i : i+w]
		if tok, ok := b.findPiece(c); ok && tok != b.unk {
			marks[i].token = tok
			if last >= 0 {
				marks[i].backDistance = uint32(i - last)
				if cand, ok := b.buildMerge(tb, last, i+w, marks[last].token, tok); ok {
					queue.Push(cand)
				}
			}
			last = i
		} else {
			for k := 0; k < w; k++ {
				marks[i+k].token = b.bytesTable[tb[i+k]]
			}
			last = -1
		}
	}

	return &mergeState{bpe: b, text: tb, marks: marks, queue: queue}
}

// buildMerge attempts to resolve the concatenated span [start:end) to a
// single token; on success it returns the merge candidate for the pair
// (t1, t2) at pos start.
func (b *BPE) buildMerge(text []byte, start, end int, t1, t2 Token) (mergeCand, bool) {
	merged, ok := b.findPiece(text[start:end])
	if !ok {
		return mergeCand{}, false
	}
	return mergeCand{
		pos:   start,
		t1:    t1,
		t2:    t2,
		merge: merged,
		rank:  b.tokens[merged].rank,
	}, true
}

// step pops the highest-priority candidate, discarding stale entries
// whose recorded pair no longer occupies its positions, and applies the
// first valid one. Returns false once the queue is exhausted without a
// valid candidate. Grounded 1:1 on
// original_source/src/bpe/algorithm.rs's MergeState::merge.
func (s *mergeState) step() bool {
	b := s.bpe
	for {
		cand, ok := s.queue.Pop()
		if !ok {
			return false
		}
		p1 := cand.pos
		if s.marks[p1].token != cand.t1 {
			continue
		}
		l1 := len(b.token(cand.t1))
		p2 := p1 + l1
		if s.marks[p2].token != cand.t2 {
			continue
		}

		s.marks[p1].token = cand.merge
		s.marks[p2].token = b.unk

		l2 := len(b.token(cand.t2))
		p3 := p2 + l2
		if p3 < len(s.text) && s.marks[p3].token != b.unk {
			s.marks[p3].backDistance = uint32(l1 + l2)
			t3 := s.marks[p3].token
			l3 := len(b.token(t3))
			p4 := p3 + l3
			if c, ok := b.buildMerge(s.text, p1, p4, cand.merge, t3); ok {
				s.queue.Push(c)
			}
		}

		if l0 := s.marks[p1].backDistance; l0 != 0 {
			p0 := p1 - int(l0)
			t0 := s.marks[p0].token
			if c, ok := b.buildMerge(s.text, p0, p3, t0, cand.merge); ok {
				s.queue.Push(c)
			}
		}
		return true
	}
}

// collect walks the final mark array left to right, emitting the token
// at each live position and advancing by its length. A live unk stands
// for one unmatched byte.
func (s *mergeState) collect() []Token {
	var out []Token
	for i := 0; i < len(s.marks); {
		tok := s.marks[i].token
		out = append(out, tok)
		if tok == s.bpe.unk {
			i++
			continue
		}
		i += len(s.bpe.token(tok))
	}
	return out
}
