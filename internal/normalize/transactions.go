package normalize

import (
	"strings"

	"github.com/crelab/dircrawl/pkg/records"
)

// Number of lines that make up one structured transaction tuple
// (name, location, type, size).
const transactionGroupSize = 4

// Transactions parses the text captured under a "Significant Transactions"
// heading. When the non-empty line count is an exact multiple of four, every
// group of four lines becomes a structured tuple; otherwise each line is
// kept as an unstructured entry. The result is homogeneous either way.
func Transactions(block string) []records.TransactionEntry {
	var lines []string
	for _, l := range strings.Split(block, "\n") {
		if s := strings.TrimSpace(l); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	if len(lines)%transactionGroupSize == 0 {
		entries := make([]records.TransactionEntry, 0, len(lines)/transactionGroupSize)
		for i := 0; i < len(lines); i += transactionGroupSize {
			entries = append(entries, records.TransactionEntry{
				Name:     lines[i],
				Location: lines[i+1],
				Type:     lines[i+2],
				Size:     lines[i+3],
			})
		}
		return entries
	}

	entries := make([]records.TransactionEntry, 0, len(lines))
	for _, l := range lines {
		entries = append(entries, records.TransactionEntry{Raw: l})
	}
	return entries
}

// TransactionWindow cuts the section between the start heading and the end
// heading out of a larger text blob. A missing end heading extends the
// window to the end of the blob; a missing start heading returns the blob
// unchanged.
func TransactionWindow(blob, start, end string) string {
	i := strings.Index(blob, start)
	if i < 0 {
		return blob
	}
	chunk := blob[i+len(start):]
	if j := strings.Index(chunk, end); j >= 0 {
		chunk = chunk[:j]
	}
	return chunk
}
