package symbols

import (
	"regexp"
	"unicode/utf8"
)

// Math describes one inline math expression found in a text.
type Math struct {
	Content string // the matched substring, delimiters included
	Start   int    // 0-based character offset of the first delimiter
	End     int    // 0-based character offset just past the last delimiter
}

// The three delimiter styles are matched independently and non-greedily,
// with "." crossing newlines. Overlapping matches across styles are all
// retained; recall matters more than precision here.
var mathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)\$.*?\$`),
	regexp.MustCompile(`(?s)\\\(.*?\\\)`),
	regexp.MustCompile(`(?s)\\\[.*?\\\]`),
}

// ExtractMath returns every inline math expression in text, grouped by
// delimiter style ($...$, \(...\), \[...\]) and in document order within
// each style. Offsets are character offsets, not byte offsets.
func ExtractMath(text string) []Math {
	var out []Math
	for _, pat := range mathPatterns {
		for _, loc := range pat.FindAllStringIndex(text, -1) {
			out = append(out, Math{
				Content: text[loc[0]:loc[1]],
				Start:   utf8.RuneCountInString(text[:loc[0]]),
				End:     utf8.RuneCountInString(text[:loc[1]]),
			})
		}
	}
	return out
}
