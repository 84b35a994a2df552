package tabular

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMalformedInput is returned when the text has no header line to decode.
var ErrMalformedInput = errors.New("malformed input: no header")

const (
	Tab   = '\t'
	Comma = ','
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Record is one data line zipped positionally against the header.
type Record struct {
	header []string
	fields map[string]string
}

// Get returns the cell for the named column, or "" if the column is absent
// or the line was too short to reach it.
func (r Record) Get(name string) string {
	return r.fields[name]
}

// Has reports whether the header declared the column.
func (r Record) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// First returns the cell of the first column in names that the header
// declares. An empty cell in a declared column still wins over later names.
func (r Record) First(names ...string) string {
	for _, n := range names {
		if v, ok := r.fields[n]; ok {
			return v
		}
	}
	return ""
}

// GetFold looks a column up ignoring case and whitespace in the header name,
// so "Opponent Total", "opponenttotal" and "OpponentTotal" all match.
func (r Record) GetFold(name string) (string, bool) {
	target := foldHeader(name)
	for _, h := range r.header {
		if foldHeader(h) == target {
			return r.fields[h], true
		}
	}
	return "", false
}

// Header returns the column names in declaration order.
func (r Record) Header() []string {
	return append([]string(nil), r.header...)
}

func foldHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// Parse splits delimited text into records. The first line names the
// columns; every later non-empty line is split on the same delimiter and
// assigned to columns by position. Missing trailing cells read as "".
// Extra cells beyond the header are dropped.
func Parse(text string, delim rune) ([]Record, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		if text == "" {
			return nil, ErrMalformedInput
		}
		return []Record{}, nil
	}

	lines := lineBreak.Split(trimmed, -1)
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitTrim(line, delim))
	}
	return Zip(splitTrim(lines[0], delim), rows), nil
}

// Zip assigns already split rows to header columns by position, for callers
// that did their own splitting (quoted CSV, for one).
func Zip(header []string, rows [][]string) []Record {
	records := make([]Record, 0, len(rows))
	for _, cells := range rows {
		fields := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(cells) {
				fields[h] = strings.TrimSpace(cells[i])
			} else {
				fields[h] = ""
			}
		}
		records = append(records, Record{header: header, fields: fields})
	}
	return records
}

func splitTrim(line string, delim rune) []string {
	parts := strings.Split(line, string(delim))
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
