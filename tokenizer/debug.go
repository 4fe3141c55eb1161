package tokenizer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// DumpVocab renders a token id / rank / piece table to w, in the style of
// the teacher's cmd_list.go. Single-byte pieces outside printable ASCII
// render in their <0xHH> form so the table stays printable; every other
// piece, including a printable byte token, renders quoted.
func DumpVocab(w io.Writer, b *BPE) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"TOKEN", "RANK", "PIECE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")

	var data [][]string
	for t := 0; t < len(b.tokens); t++ {
		tok := Token(t)
		data = append(data, []string{
			strconv.FormatUint(uint64(tok), 10),
			strconv.FormatUint(uint64(b.tokens[tok].rank), 10),
			formatPiece(b.token(tok)),
		})
	}
	table.AppendBulk(data)
	table.Render()
}

// DumpMergeQueue renders the candidates currently queued for an in-progress
// merge state, highest priority first. It drains the queue to read it back
// in order, so the state has no pending merges left afterwards; a state
// that has already finished stepping has an empty queue and renders no
// rows. Not part of the Method contract.
func DumpMergeQueue(w io.Writer, s *mergeState) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"POS", "PAIR", "MERGE", "RANK"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")

	for {
		cand, ok := s.queue.Pop()
		if !ok {
			break
		}
		table.Append([]string{
			strconv.Itoa(cand.pos),
			fmt.Sprintf("%d+%d", cand.t1, cand.t2),
			strconv.FormatUint(uint64(cand.merge), 10),
			strconv.FormatUint(uint64(cand.rank), 10),
		})
	}
	table.Render()
}

// formatPiece renders a piece as its <0xHH> form when it is a single byte
// outside printable ASCII, or as a quoted string otherwise.
func formatPiece(piece []byte) string {
	if len(piece) == 1 && (piece[0] < 0x20 || piece[0] >= 0x7f) {
		return fmt.Sprintf("<0x%02X>", piece[0])
	}
	return strconv.Quote(string(piece))
}
