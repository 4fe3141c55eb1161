package tokenizer

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strings"
)

// modelRecord is one parsed tokenizer.model entry: its piece bytes and
// raw f32 score, read byte-wise since the score field may be unaligned.
type modelRecord struct {
	piece []byte
	score float64
}

// parseTokenizerModel reads the SentencePiece-like framing described in
// spec.md §6: a stream of records, each `0x0A, totalLen byte, 0x0A,
// content...`, content = `pieceLen byte, piece bytes, 2 separator bytes,
// 4 little-endian f32 score bytes`, so a record occupies totalLen+1 bytes.
// totalLen is a single byte, capping it at 255 (documented limitation, not silently
// extended — use NewBPE for larger vocabularies). Records are read until
// the framing no longer matches a header (including simply running out of
// bytes at a record boundary, which just ends the stream with whatever was
// already parsed); a header that matches but whose declared length then
// overruns the buffer is a true mid-record break and fails with
// ErrMalformedModel rather than returning a partial vocabulary.
func parseTokenizerModel(model []byte) ([]modelRecord, error) {
	var records []modelRecord
	offset := 0
	for offset < len(model) {
		if offset+3 > len(model) {
			// Fewer than 3 bytes remain: no complete header can start here,
			// which is the natural end of the stream, not a broken record.
			break
		}
		if model[offset] != 0x0A || model[offset+2] != 0x0A {
			break
		}
		totalLen := int(model[offset+1])
		if totalLen < 2 {
			return nil, fmt.Errorf("%w: total_len %d too small at offset %d", ErrMalformedModel, totalLen, offset)
		}
		contentLen := totalLen - 2
		contentStart := offset + 3
		if contentStart+contentLen > len(model) {
			return nil, fmt.Errorf("%w: record overruns buffer at offset %d", ErrMalformedModel, offset)
		}
		content := model[contentStart : contentStart+contentLen]

		rec, err := parseModelContent(content)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)

		offset = contentStart + contentLen
	}
	return records, nil
}

func parseModelContent(content []byte) (modelRecord, error) {
	if len(content) < 1 {
		return modelRecord{}, fmt.Errorf("%w: empty record content", ErrMalformedModel)
	}
	pieceLen := int(content[0])
	need := 1 + pieceLen + 2 + 4
	if len(content) < need {
		return modelRecord{}, fmt.Errorf("%w: record content too short for piece_len %d", ErrMalformedModel, pieceLen)
	}
	piece := content[1 : 1+pieceLen]
	scoreBytes := content[1+pieceLen+2 : 1+pieceLen+2+4]
	bits := uint32(scoreBytes[0]) | uint32(scoreBytes[1])<<8 | uint32(scoreBytes[2])<<16 | uint32(scoreBytes[3])<<24
	score := float64(math.Float32frombits(bits))
	return modelRecord{piece: piece, score: score}, nil
}

// byteTokenStart and byteTokenEnd are the tokenizer.model record indices
// (inclusive) reserved for the 256 byte tokens; every other record index
// is a normal piece. Grounded on spec.md §6.
const (
	byteTokenStart = 3
	byteTokenEnd   = 258
)

// NewBPEFromModel parses a tokenizer.model buffer and builds a BPE
// tokenizer from it, with unk fixed at token id 0 per spec.md §6.
// Grounded on original_source/src/bpe/mod.rs's from_tokenizer_model.
func NewBPEFromModel(model []byte) (*BPE, error) {
	records, err := parseTokenizerModel(model)
	if err != nil {
		return nil, err
	}
	vocabs := make([][]byte, len(records))
	scores := make([]float64, len(records))
	isByte := make([]bool, len(records))
	for i, r := range records {
		vocabs[i] = r.piece
		scores[i] = r.score
		isByte[i] = i >= byteTokenStart && i <= byteTokenEnd
	}
	return NewBPEWithHint(vocabs, scores, isByte, 0)
}

// parseVocabsTxt reads vocabs.txt: one quoted piece per line, e.g.
// `"hello"`. Grounded on original_source/src/lpe/mod.rs's
// Lpe::from_vocabs_txt.
func parseVocabsTxt(txt []byte) ([][]byte, error) {
	var out [][]byte
	sc := bufio.NewScanner(bytes.NewReader(txt))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, `"`) || !strings.HasSuffix(line, `"`) || len(line) < 2 {
			return nil, fmt.Errorf("%w: vocabs.txt line %d is not a quoted piece", ErrMalformedModel, lineNo)
		}
		inner := line[1 : len(line)-1]
		out = append(out, []byte(inner))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// NewLPEFromVocabsTxt parses a vocabs.txt buffer and builds an LPE
// tokenizer from it, with unk fixed at token id 0.
func NewLPEFromVocabsTxt(txt []byte) (*LPE, error) {
	vocabs, err := parseVocabsTxt(txt)
	if err != nil {
		return nil, err
	}
	return NewLPE(vocabs, 0), nil
}
