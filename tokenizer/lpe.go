package tokenizer

// LPE is a Longest Prefix Encoding tokenizer: a greedy trie walk that
// repeatedly consumes the longest matching vocabulary prefix of the
// remaining input, falling back to a single byte token when nothing
// matches. It shares the vocabulary collector (C2) and arena (C3) with
// BPE; only the lookup structure differs (radixTrie instead of a sorted
// piece index). Grounded on original_source/src/lpe/mod.rs.
type LPE struct {
	arena      []byte
	tokens     []slot
	trie       *radixTrie
	bytesTable [256]Token
	unk        Token
}

// NewLPE builds an LPE tokenizer from a vocabulary, auto-detecting byte
// tokens via the <0xHH> convention.
func NewLPE(vocabs [][]byte, unk Token) *LPE {
	cv := collectVocab(vocabs, unk)
	arena, slots := buildArena(cv.pieces, cv.totalLen)

	excluded := make(map[Token]struct{}, 257)
	excluded[unk] = struct{}{}
	for _, t := range cv.bytes {
		excluded[t] = struct{}{}
	}

	trie := newRadixTrie()
	for i := range slots {
		tok := Token(i)
		if _, skip := excluded[tok]; skip {
			continue
		}
		s := slots[i]
		trie.put(arena[s.off:s.off+s.len], tok)
	}

	return &LPE{arena: arena, tokens: slots, trie: trie, bytesTable: cv.bytes, unk: unk}
}

func (l *LPE) token(t Token) []byte {
	s := l.tokens[t]
	return l.arena[s.off : s.off+s.len]
}

// UnkToken implements Method.
func (l *LPE) UnkToken() Token { return l.unk }

// VocabSize implements Method.
func (l *LPE) VocabSize() int { return len(l.tokens) }

// InternalSpecial implements Method: LPE has no merge process to be
// unreachable from, so no piece is internally special.
func (l *LPE) InternalSpecial() map[string]Token { return nil }

// Encode implements Method: repeatedly take the longest matching prefix
// of the remaining input, advancing by exactly its length (spec.md's LPE
// locality property); fall back to the byte table on no match.
func (l *LPE) Encode(text string) []Token {
	b := []byte(text)
	var out []Token
	for len(b) > 0 {
		tok, n, ok := l.trie.longestPrefix(b)
		if !ok {
			tok, n = l.bytesTable[b[0]], 1
		}
		out = append(out, tok)
		b = b[n:]
	}
	return out
}

// Decode implements Method.
func (l *LPE) Decode(t Token) []byte { return l.token(t) }
