package parser

import "strings"

// ParseCSV splits comma-separated text into rows of fields.
//
// Quoted fields may contain commas, line breaks and doubled quotes ("" → ").
// A row holding a single blank field is treated as an empty line and dropped.
// Malformed quoting never fails: an unterminated quote swallows the rest of the input.
func ParseCSV(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		if !(len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inQuotes {
			if ch == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
				continue
			}
			field.WriteByte(ch)
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()
		case '\n':
			endRow()
		default:
			field.WriteByte(ch)
		}
	}

	// Flush whatever is pending; a trailing terminator leaves a blank row that endRow drops.
	endRow()
	return rows
}
