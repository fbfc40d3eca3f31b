// Package symbols tags non-ASCII characters and inline math markup in
// extracted text. Both taggers operate on rune offsets so positions line
// up with character indices regardless of UTF-8 encoding width.
package symbols

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/runenames"
)

// Symbol describes a single non-ASCII character found in a text.
type Symbol struct {
	Content  string // the character itself
	Unicode  string // formatted codepoint, e.g. "U+00E9"
	Desc     string // canonical Unicode name, or "UNKNOWN" if unnamed
	Position int    // 0-based character offset in the source text
}

// ExtractUnicode scans text left to right and returns one Symbol for every
// character with a codepoint above 127. Repeated occurrences each produce
// their own entry; nothing is deduplicated.
func ExtractUnicode(text string) []Symbol {
	var out []Symbol
	pos := 0
	for _, r := range text {
		if r > 127 {
			out = append(out, Symbol{
				Content:  string(r),
				Unicode:  fmt.Sprintf("U+%04X", r),
				Desc:     runeName(r),
				Position: pos,
			})
		}
		pos++
	}
	return out
}

// runeName resolves the canonical Unicode name of r. Unassigned codepoints
// and range placeholders such as "<control>" map to "UNKNOWN".
func runeName(r rune) string {
	name := runenames.Name(r)
	if name == "" || strings.HasPrefix(name, "<") {
		return "UNKNOWN"
	}
	return name
}
