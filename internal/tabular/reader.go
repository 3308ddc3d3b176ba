// Package tabular parses delimited fitness-test exports into ordered
// header-to-value rows.
//
// The format is comma-separated UTF-8 text with optionally quoted fields.
// A double quote toggles quoted mode; inside it the delimiter is literal.
// The logical header row may span multiple physical lines: when tokenizing
// the header leaves a quote open, the next physical line is appended and the
// whole buffer is re-tokenized until quotes balance. Data rows are tokenized
// exactly once, so an unbalanced quote in a data row simply swallows the
// rest of that line.
package tabular

import "strings"

const delimiter = ','

// lineJoin marks where physical lines were stitched back together while
// accumulating a multi-line header. It is collapsed to a single space when a
// header cell is materialized.
const lineJoin = "\n"

// Row maps a header name to the cell value for one export row. Rows are
// ephemeral: they exist only to feed the merge and are discarded afterwards.
type Row map[string]string

// Report accounts for what happened to the input during a parse.
type Report struct {
	// Rows is the number of rows that survived the required-column filter.
	Rows int
	// Dropped counts rows excluded because a required column was empty or
	// absent. Dropping is a data-quality outcome, not an error.
	Dropped int
	// Headers is the materialized logical header row.
	Headers []string
}

// Parse tokenizes text into rows keyed by the header line. Rows missing a
// non-empty value for any of the required columns are dropped and counted in
// the report. Malformed quoting that never balances is not an error: parsing
// consumes whatever input remains and returns what was accumulated.
func Parse(text string, required []string) ([]Row, Report) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, Report{}
	}

	headerBuf := lines[0]
	dataStart := 1
	headers, open := tokenize(headerBuf)
	for open && dataStart < len(lines) {
		headerBuf += lineJoin + lines[dataStart]
		dataStart++
		headers, open = tokenize(headerBuf)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.ReplaceAll(h, lineJoin, " "))
	}

	report := Report{Headers: headers}
	var rows []Row
	for _, line := range lines[dataStart:] {
		values, _ := tokenize(line)
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = strings.TrimSpace(values[i])
			} else {
				row[h] = ""
			}
		}
		if !hasRequired(row, required) {
			report.Dropped++
			continue
		}
		rows = append(rows, row)
		report.Rows++
	}
	return rows, report
}

// splitLines drops blank lines before tokenizing, matching the source
// exports where trailing blank lines are routine.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// tokenize scans a buffer into comma-separated fields. The returned open
// flag reports whether the buffer ended inside a quoted field, which drives
// multi-line header accumulation.
func tokenize(buf string) ([]string, bool) {
	var fields []string
	var current strings.Builder
	inQuotes := false
	for _, r := range buf {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delimiter && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())
	return fields, inQuotes
}

func hasRequired(row Row, required []string) bool {
	for _, col := range required {
		if strings.TrimSpace(row[col]) == "" {
			return false
		}
	}
	return true
}
