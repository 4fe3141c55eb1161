package tokenizer

// collectedVocab partitions a raw vocabulary into normal and byte pieces.
// Normal tokens are represented by the caller-supplied bytes unchanged;
// byte tokens are rewritten to a 1-byte view of identityBytes so that
// every effective piece, normal or byte, is addressable the same way by
// the arena builder (C3).
type collectedVocab struct {
	pieces   [][]byte
	bytes    [256]Token
	totalLen int
}

// collectVocab auto-detects byte tokens via asByteToken: a piece matching
// <0xHH> becomes the byte token for that value, last writer wins on
// duplicate claims.
func collectVocab(vocabs [][]byte, unk Token) collectedVocab {
	cv := collectedVocab{pieces: make([][]byte, len(vocabs))}
	for i := range cv.bytes {
		cv.bytes[i] = unk
	}
	for i, piece := range vocabs {
		if b, ok := asByteToken(piece); ok {
			cv.bytes[b] = Token(i)
			piece = identityBytes[b : int(b)+1]
		}
		cv.pieces[i] = piece
		cv.totalLen += len(piece)
	}
	return cv
}

// collectVocabWithHint uses an explicit per-piece byte-token flag instead
// of auto-detection. A positive hint on a piece that is not a valid
// <0xHH> form is a construction error.
func collectVocabWithHint(vocabs [][]byte, isByte []bool, unk Token) (collectedVocab, error) {
	cv := collectedVocab{pieces: make([][]byte, len(vocabs))}
	for i := range cv.bytes {
		cv.bytes[i] = unk
	}
	for i, piece := range vocabs {
		if isByte[i] {
			b, ok := asByteToken(piece)
			if !ok {
				return collectedVocab{}, ErrInvalidByteToken
			}
			cv.bytes[b] = Token(i)
			piece = identityBytes[b : int(b)+1]
		}
		cv.pieces[i] = piece
		cv.totalLen += len(piece)
	}
	return cv, nil
}
