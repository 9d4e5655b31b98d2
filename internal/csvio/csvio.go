// Package csvio implements the minimal CSV dialect used by the batch
// pipeline.
//
// Known limitation: the parser splits on literal commas and line breaks
// with no support for quoting, escaping, or multi-line fields. Values that
// contain commas cannot survive a parse. The writer compensates on the
// output side by JSON-string-encoding every cell, so embedded quotes and
// commas are escaped with JSON backslash rules rather than RFC 4180
// quoting. Spreadsheet tools open the result fine for plain values; anyone
// needing strict CSV semantics should swap this package for encoding/csv
// at both ends.
package csvio

import (
	"encoding/json"
	"strings"
)

// Document is a parsed CSV file: a header row and zero or more data rows.
// Every row has exactly len(Headers) fields; short input rows are padded
// with empty strings and extra fields are dropped.
type Document struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the document has no header row.
func (d Document) Empty() bool {
	return len(d.Headers) == 0
}

// Index returns the position of the named header, or -1.
// Matching is exact and case-sensitive; callers that accept several
// spellings probe their aliases in priority order.
func (d Document) Index(name string) int {
	for i, h := range d.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Parse splits CSV text into a Document.
//
// Lines are split on LF after stripping CR, blank lines are dropped, and
// the first surviving line becomes the header row. Header names and field
// values are whitespace-trimmed. Empty input yields an empty Document, not
// an error.
func Parse(text string) Document {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r", ""), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Document{}
	}

	headers := splitTrim(lines[0])

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitTrim(line)
		row := make([]string, len(headers))
		for i := range headers {
			if i < len(fields) {
				row[i] = fields[i]
			}
		}
		rows = append(rows, row)
	}

	return Document{Headers: headers, Rows: rows}
}

// splitTrim splits a line on literal commas and trims each field.
func splitTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Write serializes headers and rows to CSV text.
//
// Every cell, headers included, is JSON-string-encoded, so embedded commas
// and quotes come out backslash-escaped inside double quotes. Decoding a
// cell with json.Unmarshal recovers the original value exactly. Lines are
// joined with a single newline and the text ends without a trailing one.
func Write(headers []string, rows [][]string) string {
	var b strings.Builder

	writeLine := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.Write(encodeCell(f))
		}
	}

	writeLine(headers)
	for _, row := range rows {
		b.WriteByte('\n')
		writeLine(row)
	}

	return b.String()
}

// encodeCell returns the JSON string encoding of a cell value.
func encodeCell(s string) []byte {
	// Marshal of a string cannot fail.
	out, _ := json.Marshal(s)
	return out
}

// DecodeCell reverses encodeCell for round-trip checks and tooling.
// A cell that is not valid JSON is returned unchanged, so plain unquoted
// CSV can pass through the same path.
func DecodeCell(cell string) string {
	var s string
	if err := json.Unmarshal([]byte(cell), &s); err != nil {
		return cell
	}
	return s
}
