package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected [][]string
	}{
		{
			name:     "Simple rows",
			input:    "a,b\nc,d\n",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "No trailing terminator",
			input:    "a,b\nc,d",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "Blank lines dropped",
			input:    "a,b\n\n\nc,d",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "Whitespace-only line dropped",
			input:    "a\n   \t\nb\n  ",
			expected: [][]string{{"a"}, {"b"}},
		},
		{
			name:     "Quoted comma",
			input:    `"a,b",c`,
			expected: [][]string{{"a,b", "c"}},
		},
		{
			name:     "Escaped quote",
			input:    `"a""b"`,
			expected: [][]string{{`a"b`}},
		},
		{
			name:     "CRLF and lone CR",
			input:    "a,b\r\nc,d\re,f",
			expected: [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}},
		},
		{
			name:     "Quoted newline stays in field",
			input:    "\"x\ny\",z\nw",
			expected: [][]string{{"x\ny", "z"}, {"w"}},
		},
		{
			name:     "Unterminated quote swallows remainder",
			input:    "a,\"b,c\nd",
			expected: [][]string{{"a", "b,c\nd"}},
		},
		{
			name:     "Empty fields kept in multi-field rows",
			input:    ",,\n",
			expected: [][]string{{"", "", ""}},
		},
		{
			name:     "CJK fields",
			input:    "行,列,字\n1,1,琴",
			expected: [][]string{{"行", "列", "字"}, {"1", "1", "琴"}},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCSV(tt.input))
		})
	}
}
