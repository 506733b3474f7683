// internal/service/ingestion/text.go
package ingestion

import (
	"fmt"
	"strings"

	xerrors "customer-lookup-service/internal/pkg/errors"
)

// Table is a source split into a header row and raw data rows.
type Table struct {
	Headers []string
	Rows    [][]Cell
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ParseText splits a comma-delimited UTF-8 payload. Blank lines keep their
// position so record IDs match the source row numbers.
func ParseText(data []byte) (*Table, error) {
	text := strings.TrimPrefix(string(data), "\ufeff")
	lines := SplitLines(text)
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: empty source, expected a header line and at least one data line", xerrors.ErrMalformedSource)
	}
	if strings.TrimSpace(lines[0]) == "" {
		return nil, fmt.Errorf("%w: header line is blank", xerrors.ErrMalformedSource)
	}

	table := &Table{
		Headers: SplitFields(lines[0]),
		Rows:    make([][]Cell, 0, len(lines)-1),
	}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			table.Rows = append(table.Rows, nil)
			continue
		}
		fields := SplitFields(line)
		cells := make([]Cell, len(fields))
		for i, f := range fields {
			cells[i] = f
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

// SplitLines trims the payload and splits it on any line-ending convention.
func SplitLines(text string) []string {
	text = strings.TrimSpace(lineBreaks.Replace(text))
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// SplitFields splits a line on commas that are followed by an even number of
// double quotes, so commas inside a quoted field stay literal. Each field is
// trimmed and loses one surrounding quote pair.
func SplitFields(line string) []string {
	remaining := strings.Count(line, `"`)
	fields := make([]string, 0, strings.Count(line, ",")+1)
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			remaining--
		case ',':
			if remaining%2 == 0 {
				fields = append(fields, cleanField(line[start:i]))
				start = i + 1
			}
		}
	}
	return append(fields, cleanField(line[start:]))
}

func cleanField(s string) string {
	return stripQuotes(strings.TrimSpace(s))
}
