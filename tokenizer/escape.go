package tokenizer

// asByteToken recognizes pieces of the form <0xHH> (exactly six bytes, H
// case-insensitive hex digits) and returns the decoded byte value. Any
// other shape, including the shorter <0x9>, is rejected.
func asByteToken(piece []byte) (byte, bool) {
	if len(piece) != 6 {
		return 0, false
	}
	if piece[0] != '<' || piece[1] != '0' || piece[2] != 'x' || piece[5] != '>' {
		return 0, false
	}
	hi, ok := hexDigit(piece[3])
	if !ok {
		return 0, false
	}
	lo, ok := hexDigit(piece[4])
	if !ok {
		return 0, false
	}
	return hi<<4 | lo, true
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// identityBytes[i] always equals byte(i). The vocabulary collector takes
// each byte token's one-byte piece from this table; the arena builder then
// copies that byte into the compressed arena like any other piece.
var identityBytes [256]byte

func init() {
	for i := range identityBytes {
		identityBytes[i] = byte(i)
	}
}
