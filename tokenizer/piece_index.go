package tokenizer

import (
	"bytes"
	"sort"
)

// buildPieceIndex returns token ids sorted by the lex order of their piece
// bytes, excluding every byte-table id and unk. Grounded on
// original_source/src/bpe/mod.rs's sorted_pieces construction.
func buildPieceIndex(numTokens int, unk Token, bytesTable [256]Token, pieceOf func(Token) []byte) []Token {
	excluded := make(map[Token]struct{}, 257)
	excluded[unk] = struct{}{}
	for _, t := range bytesTable {
		excluded[t] = struct{}{}
	}

	sorted := make([]Token, 0, numTokens)
	for t := 0; t < numTokens; t++ {
		tok := Token(t)
		if _, skip := excluded[tok]; skip {
			continue
		}
		sorted = append(sorted, tok)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(pieceOf(sorted[i]), pieceOf(sorted[j])) < 0
	})
	return sorted
}

// findPiece binary searches sortedPieces for the token whose piece equals
// bytes exactly. On a miss, a single byte falls back to the byte table
// (which may itself hold unk); any other length miss is "no piece".
func findPiece(sortedPieces []Token, bytesTable [256]Token, unk Token, piece []byte, pieceOf func(Token) []byte) (Token, bool) {
	n := len(sortedPieces)
	i := sort.Search(n, func(i int) bool {
		return bytes.Compare(pieceOf(sortedPieces[i]), piece) >= 0
	})
	if i < n && bytes.Equal(pieceOf(sortedPieces[i]), piece) {
		return sortedPieces[i], true
	}
	if len(piece) == 1 {
		return bytesTable[piece[0]], true
	}
	return unk, false
}
