package tokenizer

import (
	"math"
	"testing"
)

func appendModelRecord(buf []byte, piece []byte, score float32) []byte {
	content := make([]byte, 0, 1+len(piece)+2+4)
	content = append(content, byte(len(piece)))
	content = append(content, piece...)
	content = append(content, 0, 0) // separator bytes, unused by the reader
	bits := math.Float32bits(score)
	content = append(content, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))

	totalLen := len(content) + 2
	buf = append(buf, 0x0A, byte(totalLen), 0x0A)
	buf = append(buf, content...)
	return buf
}

func buildFullModel() []byte {
	var buf []byte
	buf = appendModelRecord(buf, []byte("<unk>"), 0)
	buf = appendModelRecord(buf, []byte("reserved1"), 0)
	buf = appendModelRecord(buf, []byte("reserved2"), 0)
	for i := 0; i < 256; i++ {
		buf = appendModelRecord(buf, []byte(formatByteToken(byte(i))), float32(i))
	}
	buf = appendModelRecord(buf, []byte("ab"), 1000)
	return buf
}

func TestParseTokenizerModelRoundTripsRecords(t *testing.T) {
	buf := appendModelRecord(nil, []byte("<unk>"), 0)
	buf = appendModelRecord(buf, []byte("hello"), 3.5)

	records, err := parseTokenizerModel(buf)
	if err != nil {
		t.Fatalf("parseTokenizerModel: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if string(records[1].piece) != "hello" {
		t.Fatalf("got piece %q, want %q", records[1].piece, "hello")
	}
	if records[1].score != 3.5 {
		t.Fatalf("got score %v, want 3.5", records[1].score)
	}
}

func TestParseTokenizerModelTruncatedFails(t *testing.T) {
	buf := appendModelRecord(nil, []byte("hello"), 1)
	truncated := buf[:len(buf)-3]
	if _, err := parseTokenizerModel(truncated); err == nil {
		t.Fatalf("expected ErrMalformedModel for a truncated buffer")
	}
}

func TestParseTokenizerModelStopsCleanlyOnTrailingStrayBytes(t *testing.T) {
	buf := appendModelRecord(nil, []byte("<unk>"), 0)
	buf = appendModelRecord(buf, []byte("hello"), 1)
	// One or two stray bytes after the last complete record is the natural
	// end of the stream (spec.md §6), not a mid-record break: the reader
	// must return what it already parsed instead of ErrMalformedModel.
	for _, stray := range [][]byte{{0x0A}, {0x0A, 0x05}} {
		withStray := append(append([]byte{}, buf...), stray...)
		records, err := parseTokenizerModel(withStray)
		if err != nil {
			t.Fatalf("unexpected error with %d trailing stray bytes: %v", len(stray), err)
		}
		if len(records) != 2 {
			t.Fatalf("expected the 2 complete records to survive, got %d", len(records))
		}
		if string(records[1].piece) != "hello" {
			t.Fatalf("got piece %q, want %q", records[1].piece, "hello")
		}
	}
}

func TestNewBPEFromModelBuildsUsableTokenizer(t *testing.T) {
	buf := buildFullModel()
	b, err := NewBPEFromModel(buf)
	if err != nil {
		t.Fatalf("NewBPEFromModel: %v", err)
	}
	if b.VocabSize() != 3+256+1 {
		t.Fatalf("unexpected vocab size %d", b.VocabSize())
	}

	toks := b.Encode("ab")
	if len(toks) == 0 {
		t.Fatalf("expected at least one token")
	}
	var out []byte
	for _, tok := range toks {
		out = append(out, b.Decode(tok)...)
	}
	if string(out) != "ab" {
		t.Fatalf("round trip failed: got %q", out)
	}
}

func TestParseVocabsTxtAndNewLPEFromVocabsTxt(t *testing.T) {
	// Line 1 is token 0, which NewLPEFromVocabsTxt reserves as unk.
	txt := "\"<unk>\"\n\"hello\"\n\"world\"\n\n\"ab\"\n"
	vocabs, err := parseVocabsTxt([]byte(txt))
	if err != nil {
		t.Fatalf("parseVocabsTxt: %v", err)
	}
	if len(vocabs) != 4 {
		t.Fatalf("expected 4 pieces, got %d: %v", len(vocabs), vocabs)
	}

	lpe, err := NewLPEFromVocabsTxt([]byte(txt))
	if err != nil {
		t.Fatalf("NewLPEFromVocabsTxt: %v", err)
	}
	toks := lpe.Encode("hello")
	if len(toks) != 1 {
		t.Fatalf("expected \"hello\" to match as a single token, got %v", toks)
	}
}

func TestParseVocabsTxtRejectsUnquotedLine(t *testing.T) {
	if _, err := parseVocabsTxt([]byte("hello\n")); err == nil {
		t.Fatalf("expected ErrMalformedModel for an unquoted line")
	}
}
