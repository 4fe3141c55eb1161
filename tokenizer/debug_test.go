package tokenizer

import (
	"bytes"
	"strings"
	"testing"
)

func TestDumpVocabRendersAllTokens(t *testing.T) {
	vocabs := [][]byte{[]byte("<unk>"), []byte("a"), []byte("<0x00>")}
	scores := []float64{0, 1, 2}
	b, err := NewBPE(vocabs, scores, 0)
	if err != nil {
		t.Fatalf("NewBPE: %v", err)
	}

	var buf bytes.Buffer
	DumpVocab(&buf, b)
	out := buf.String()
	if !strings.Contains(out, "0x00") {
		t.Fatalf("expected byte token to render in hex form, got:\n%s", out)
	}
	if !strings.Contains(out, `"a"`) {
		t.Fatalf("expected normal piece to render quoted, got:\n%s", out)
	}
}
