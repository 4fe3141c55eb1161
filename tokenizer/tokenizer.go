// Package tokenizer implements subword tokenization: Byte Pair Encoding
// (BPE) and Longest Prefix Encoding (LPE), composed with a special-literal
// splitter (Tokeneer). The BPE merge engine is the hard core: an
// incremental, priority-driven byte-pair merger operating on a mark array
// with back-links into a deduplicated vocabulary arena.
package tokenizer

// Token is a vocabulary entry id, used as an index into a tokenizer's
// token table.
type Token = uint32

// Method is the contract shared by BPE and LPE tokenizers.
type Method interface {
	// UnkToken returns the id reserved for unrecognized input.
	UnkToken() Token
	// VocabSize returns the number of distinct token ids.
	VocabSize() int
	// InternalSpecial returns vocabulary pieces that exist as tokens but
	// are not reachable by the merge/match algorithm from their own
	// string content.
	InternalSpecial() map[string]Token
	// Encode converts text to a token sequence.
	Encode(text string) []Token
	// Decode returns the raw bytes a token represents.
	Decode(tok Token) []byte
}
