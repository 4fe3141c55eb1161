package tokenizer

import "errors"

// Construction and decode error kinds. All construction errors are fatal
// for the tokenizer instance being built: a partially built tokenizer is
// never returned.
var (
	// ErrInvalidByteToken is returned when a byte hint claims a piece is
	// a byte token but it does not match the <0xHH> form.
	ErrInvalidByteToken = errors.New("tokenizer: piece is not a valid <0xHH> byte token")

	// ErrScoreArityMismatch is returned when the number of scores differs
	// from the number of pieces.
	ErrScoreArityMismatch = errors.New("tokenizer: score count does not match vocabulary size")

	// ErrMalformedModel is returned when tokenizer.model framing breaks
	// mid-stream.
	ErrMalformedModel = errors.New("tokenizer: malformed tokenizer.model framing")

	// ErrInvalidUTF8 is returned by Decode when the concatenated token
	// bytes are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("tokenizer: decoded bytes are not valid utf-8")

	// ErrSpecialConflict is returned by ExtendSpecial when an existing
	// key is given a different token sequence.
	ErrSpecialConflict = errors.New("tokenizer: special literal already mapped to a different token sequence")

	// ErrInvalidRegex is returned if the special-literal escaper produces
	// a pattern the regexp engine rejects. The escape set in buildPattern
	// should make this unreachable; it is surfaced defensively rather
	// than panicking.
	ErrInvalidRegex = errors.New("tokenizer: special literal pattern failed to compile")
)
