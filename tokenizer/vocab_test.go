package tokenizer

import "testing"

func TestCollectVocabAutoDetectsByteTokens(t *testing.T) {
	vocabs := [][]byte{[]byte("hi"), []byte("<0x41>"), []byte("there")}
	cv := collectVocab(vocabs, 99)

	if cv.bytes[0x41] != 1 {
		t.Fatalf("expected byte 0x41 to map to token 1, got %d", cv.bytes[0x41])
	}
	if string(cv.pieces[1]) != "A" {
		t.Fatalf("expected effective piece for byte token to be the raw byte, got %q", cv.pieces[1])
	}
	if string(cv.pieces[0]) != "hi" || string(cv.pieces[2]) != "there" {
		t.Fatalf("normal pieces should pass through unchanged, got %q %q", cv.pieces[0], cv.pieces[2])
	}
	if cv.bytes[0x00] != 99 {
		t.Fatalf("unclaimed byte should default to unk, got %d", cv.bytes[0x00])
	}
	if cv.totalLen != len("hi")+1+len("there") {
		t.Fatalf("unexpected totalLen %d", cv.totalLen)
	}
}

func TestCollectVocabLastWriterWinsOnDuplicateByte(t *testing.T) {
	vocabs := [][]byte{[]byte("<0x41>"), []byte("<0x41>")}
	cv := collectVocab(vocabs, 0)
	if cv.bytes[0x41] != 1 {
		t.Fatalf("expected last writer (token 1) to win, got %d", cv.bytes[0x41])
	}
}

func TestCollectVocabWithHintRejectsBadByteForm(t *testing.T) {
	vocabs := [][]byte{[]byte("not-a-byte")}
	_, err := collectVocabWithHint(vocabs, []bool{true}, 0)
	if err != ErrInvalidByteToken {
		t.Fatalf("expected ErrInvalidByteToken, got %v", err)
	}
}

func TestCollectVocabWithHintHonorsFalseHint(t *testing.T) {
	// A piece that looks like a byte token but is hinted false stays literal.
	vocabs := [][]byte{[]byte("<0x41>")}
	cv, err := collectVocabWithHint(vocabs, []bool{false}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(cv.pieces[0]) != "<0x41>" {
		t.Fatalf("expected literal piece to survive, got %q", cv.pieces[0])
	}
	if cv.bytes[0x41] != 0 {
		t.Fatalf("byte table entry should stay at unk, got %d", cv.bytes[0x41])
	}
}
