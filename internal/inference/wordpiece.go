package inference

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Special tokens of the BERT vocabulary family.
const (
	clsToken     = "[CLS]"
	sepToken     = "[SEP]"
	bertUnkToken = "[UNK]"
	bertPadToken = "[PAD]"
)

// Words longer than this become a single unknown token.
const maxWordPieceChars = 100

// WordPieceTokenizer is an uncased WordPiece tokenizer over a vocab.txt
// file, as used by the sentiment classifier.
type WordPieceTokenizer struct {
	vocab map[string]int64

	cls, sep, unk, pad int64
}

// NewWordPieceTokenizer loads the vocabulary from disk; line number is
// token id.
func NewWordPieceTokenizer(vocabPath string) (*WordPieceTokenizer, error) {
	f, err := os.Open(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}
	defer f.Close()

	vocab := make(map[string]int64)
	scanner := bufio.NewScanner(f)
	var id int64
	for scanner.Scan() {
		token := strings.TrimSuffix(scanner.Text(), "\r")
		vocab[token] = id
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}

	t := &WordPieceTokenizer{vocab: vocab}
	for _, s := range []struct {
		tok string
		id  *int64
	}{
		{clsToken, &t.cls},
		{sepToken, &t.sep},
		{bertUnkToken, &t.unk},
		{bertPadToken, &t.pad},
	} {
		id, ok := vocab[s.tok]
		if !ok {
			return nil, fmt.Errorf("vocabulary is missing %s", s.tok)
		}
		*s.id = id
	}
	return t, nil
}

// Encode converts text into token ids, without special tokens.
func (t *WordPieceTokenizer) Encode(text string) []int64 {
	var ids []int64
	for _, word := range basicTokenize(text) {
		ids = append(ids, t.wordpiece(word)...)
	}
	return ids
}

// EncodeWithSpecials encodes text as [CLS] body [SEP], truncating the body
// so the whole sequence stays within maxLen tokens. Returns the ids and an
// all-ones attention mask of the same length.
func (t *WordPieceTokenizer) EncodeWithSpecials(text string, maxLen int) ([]int64, []int64) {
	body := t.Encode(text)
	if maxLen > 2 && len(body) > maxLen-2 {
		body = body[:maxLen-2]
	}
	ids := make([]int64, 0, len(body)+2)
	ids = append(ids, t.cls)
	ids = append(ids, body...)
	ids = append(ids, t.sep)
	return ids, onesMask(len(ids))
}

// wordpiece splits one word into the longest vocabulary pieces, continuation
// pieces carrying the ## prefix. A word with any uncovered remainder becomes
// a single unknown token.
func (t *WordPieceTokenizer) wordpiece(word string) []int64 {
	runes := []rune(word)
	if len(runes) > maxWordPieceChars {
		return []int64{t.unk}
	}

	var pieces []int64
	start := 0
	for start < len(runes) {
		end := len(runes)
		match := int64(-1)
		for end > start {
			sub := string(runes[start:end])
			if start > 0 {
				sub = "##" + sub
			}
			if id, ok := t.vocab[sub]; ok {
				match = id
				break
			}
			end--
		}
		if match < 0 {
			return []int64{t.unk}
		}
		pieces = append(pieces, match)
		start = end
	}
	return pieces
}

// basicTokenize cleans the text, lowercases it, strips accents and splits
// it into words with punctuation as standalone tokens.
func basicTokenize(text string) []string {
	var cleaned []rune
	for _, r := range text {
		switch {
		case r == 0 || r == utf8.RuneError:
			continue
		case unicode.IsSpace(r):
			cleaned = append(cleaned, ' ')
		case unicode.IsControl(r):
			continue
		default:
			cleaned = append(cleaned, r)
		}
	}

	var words []string
	for _, w := range strings.Fields(string(cleaned)) {
		w = stripAccents(strings.ToLower(w))
		words = append(words, splitPunct(w)...)
	}
	return words
}

func stripAccents(s string) string {
	var sb strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func splitPunct(word string) []string {
	var out []string
	var current []rune
	for _, r := range word {
		if isWordPiecePunct(r) {
			if len(current) > 0 {
				out = append(out, string(current))
				current = nil
			}
			out = append(out, string(r))
		} else {
			current = append(current, r)
		}
	}
	if len(current) > 0 {
		out = append(out, string(current))
	}
	return out
}

// isWordPiecePunct treats all ASCII non-alphanumerics as punctuation, the
// way BERT tokenization does, plus everything Unicode classifies as such.
func isWordPiecePunct(r rune) bool {
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) || (r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}
