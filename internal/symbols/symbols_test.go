package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractUnicode(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []Symbol
	}{
		{
			name: "accented character after ascii prefix",
			text: "café",
			expected: []Symbol{
				{Content: "é", Unicode: "U+00E9", Desc: "LATIN SMALL LETTER E WITH ACUTE", Position: 3},
			},
		},
		{
			name:     "pure ascii yields nothing",
			text:     "plain ascii text, 123!",
			expected: nil,
		},
		{
			name:     "empty input",
			text:     "",
			expected: nil,
		},
		{
			name: "repeats are not deduplicated",
			text: "ααα",
			expected: []Symbol{
				{Content: "α", Unicode: "U+03B1", Desc: "GREEK SMALL LETTER ALPHA", Position: 0},
				{Content: "α", Unicode: "U+03B1", Desc: "GREEK SMALL LETTER ALPHA", Position: 1},
				{Content: "α", Unicode: "U+03B1", Desc: "GREEK SMALL LETTER ALPHA", Position: 2},
			},
		},
		{
			name: "positions count characters not bytes",
			text: "αx β€",
			expected: []Symbol{
				{Content: "α", Unicode: "U+03B1", Desc: "GREEK SMALL LETTER ALPHA", Position: 0},
				{Content: "β", Unicode: "U+03B2", Desc: "GREEK SMALL LETTER BETA", Position: 3},
				{Content: "€", Unicode: "U+20AC", Desc: "EURO SIGN", Position: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractUnicode(tt.text))
		})
	}
}

func TestExtractUnicodeUnnamedCharacters(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "c1 control", text: ""},
		{name: "private use", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syms := ExtractUnicode(tt.text)
			assert.Len(t, syms, 1)
			assert.Equal(t, "UNKNOWN", syms[0].Desc)
		})
	}
}

func TestExtractMath(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []Math
	}{
		{
			name:     "dollar inline",
			text:     "see $x^2$ here",
			expected: []Math{{Content: "$x^2$", Start: 4, End: 9}},
		},
		{
			name:     "no math",
			text:     "nothing to find here",
			expected: nil,
		},
		{
			name:     "parenthesis delimiters",
			text:     `a \(y+1\) b`,
			expected: []Math{{Content: `\(y+1\)`, Start: 2, End: 9}},
		},
		{
			name:     "bracket delimiters",
			text:     `\[z\]`,
			expected: []Math{{Content: `\[z\]`, Start: 0, End: 5}},
		},
		{
			name:     "match crosses newline",
			text:     "$a\n+b$",
			expected: []Math{{Content: "$a\n+b$", Start: 0, End: 6}},
		},
		{
			name: "grouped by delimiter style",
			text: `\(p\) then $q$`,
			expected: []Math{
				{Content: "$q$", Start: 11, End: 14},
				{Content: `\(p\)`, Start: 0, End: 5},
			},
		},
		{
			name: "overlap across styles retained",
			text: `$a \( b$ c\)`,
			expected: []Math{
				{Content: `$a \( b$`, Start: 0, End: 8},
				{Content: `\( b$ c\)`, Start: 3, End: 12},
			},
		},
		{
			name:     "character offsets with multibyte prefix",
			text:     "αβ $x$",
			expected: []Math{{Content: "$x$", Start: 3, End: 6}},
		},
		{
			name:     "unterminated dollar ignored",
			text:     "costs $5 total",
			expected: nil,
		},
		{
			name: "consecutive dollars pair up",
			text: "$a$b$c$",
			expected: []Math{
				{Content: "$a$", Start: 0, End: 3},
				{Content: "$c$", Start: 4, End: 7},
			},
		},
		{
			name:     "empty expression",
			text:     "$$",
			expected: []Math{{Content: "$$", Start: 0, End: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractMath(tt.text))
		})
	}
}
