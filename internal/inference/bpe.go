package inference

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Special tokens of the RoBERTa/BART vocabulary family.
const (
	bosToken  = "<s>"
	eosToken  = "</s>"
	padToken  = "<pad>"
	unkToken  = "<unk>"
	maskToken = "<mask>"
)

// BPETokenizer is a byte-level byte pair encoder over a vocab.json and
// merges.txt pair, as used by the seq2seq summarizer and the NLI model.
type BPETokenizer struct {
	vocab       map[string]int64
	tokens      map[int64]string
	ranks       map[[2]string]int
	byteEncoder [256]rune
	byteDecoder map[rune]byte

	bos, eos, pad, unk int64
}

// NewBPETokenizer loads the vocabulary and merge rules from disk.
func NewBPETokenizer(vocabPath, mergesPath string) (*BPETokenizer, error) {
	vocabData, err := os.ReadFile(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}
	var vocab map[string]int64
	if err := json.Unmarshal(vocabData, &vocab); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}
	ranks, err := loadMerges(mergesPath)
	if err != nil {
		return nil, err
	}

	t := &BPETokenizer{
		vocab:  vocab,
		tokens: make(map[int64]string, len(vocab)),
		ranks:  ranks,
	}
	for tok, id := range vocab {
		t.tokens[id] = tok
	}
	t.byteEncoder, t.byteDecoder = buildByteEncoder()

	for _, s := range []struct {
		tok string
		id  *int64
	}{
		{bosToken, &t.bos},
		{eosToken, &t.eos},
		{padToken, &t.pad},
		{unkToken, &t.unk},
	} {
		id, ok := vocab[s.tok]
		if !ok {
			return nil, fmt.Errorf("vocabulary is missing %s", s.tok)
		}
		*s.id = id
	}
	return t, nil
}

func loadMerges(path string) (map[[2]string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read merge rules: %w", err)
	}
	defer f.Close()

	ranks := make(map[[2]string]int)
	scanner := bufio.NewScanner(f)
	rank := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#version") {
			continue
		}
		parts := strings.Split(line, " ")
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed merge rule %q", line)
		}
		ranks[[2]string{parts[0], parts[1]}] = rank
		rank++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read merge rules: %w", err)
	}
	return ranks, nil
}

// buildByteEncoder maps every byte to a printable rune, keeping visible
// Latin-1 characters as themselves and shifting the rest past U+0100.
func buildByteEncoder() ([256]rune, map[rune]byte) {
	direct := func(b int) bool {
		return (b >= '!' && b <= '~') || (b >= 0xA1 && b <= 0xAC) || (b >= 0xAE && b <= 0xFF)
	}

	var enc [256]rune
	dec := make(map[rune]byte, 256)
	n := 0
	for b := 0; b < 256; b++ {
		if direct(b) {
			enc[b] = rune(b)
		} else {
			enc[b] = rune(256 + n)
			n++
		}
		dec[enc[b]] = byte(b)
	}
	return enc, dec
}

// BOS returns the begin-of-sequence token id.
func (t *BPETokenizer) BOS() int64 { return t.bos }

// EOS returns the end-of-sequence token id.
func (t *BPETokenizer) EOS() int64 { return t.eos }

// Pad returns the padding token id.
func (t *BPETokenizer) Pad() int64 { return t.pad }

// Encode converts text into token ids, without special tokens.
func (t *BPETokenizer) Encode(text string) []int64 {
	var ids []int64
	for _, pre := range pretokenize(text) {
		word := make([]string, 0, len(pre))
		for i := 0; i < len(pre); i++ {
			word = append(word, string(t.byteEncoder[pre[i]]))
		}
		for _, sym := range t.mergeWord(word) {
			if id, ok := t.vocab[sym]; ok {
				ids = append(ids, id)
			} else {
				ids = append(ids, t.unk)
			}
		}
	}
	return ids
}

// EncodeWithSpecials encodes text as <s> body </s>, truncating the body so
// the whole sequence stays within maxLen tokens. Returns the ids and an
// all-ones attention mask of the same length.
func (t *BPETokenizer) EncodeWithSpecials(text string, maxLen int) ([]int64, []int64) {
	body := t.Encode(text)
	if maxLen > 2 && len(body) > maxLen-2 {
		body = body[:maxLen-2]
	}
	ids := make([]int64, 0, len(body)+2)
	ids = append(ids, t.bos)
	ids = append(ids, body...)
	ids = append(ids, t.eos)
	return ids, onesMask(len(ids))
}

// EncodePair encodes a premise/hypothesis pair as <s> a </s></s> b </s>,
// trimming the longer side first when the pair exceeds maxLen tokens.
func (t *BPETokenizer) EncodePair(a, b string, maxLen int) ([]int64, []int64) {
	aIDs := t.Encode(a)
	bIDs := t.Encode(b)
	const overhead = 4
	for maxLen > overhead && len(aIDs)+len(bIDs) > maxLen-overhead {
		if len(aIDs) >= len(bIDs) {
			aIDs = aIDs[:len(aIDs)-1]
		} else {
			bIDs = bIDs[:len(bIDs)-1]
		}
	}
	ids := make([]int64, 0, len(aIDs)+len(bIDs)+overhead)
	ids = append(ids, t.bos)
	ids = append(ids, aIDs...)
	ids = append(ids, t.eos, t.eos)
	ids = append(ids, bIDs...)
	ids = append(ids, t.eos)
	return ids, onesMask(len(ids))
}

// Decode converts token ids back into text, optionally dropping special
// tokens.
func (t *BPETokenizer) Decode(ids []int64, skipSpecial bool) string {
	var sb strings.Builder
	for _, id := range ids {
		tok, ok := t.tokens[id]
		if !ok {
			continue
		}
		if skipSpecial && isSpecialToken(tok) {
			continue
		}
		sb.WriteString(tok)
	}

	buf := make([]byte, 0, sb.Len())
	for _, r := range sb.String() {
		if b, ok := t.byteDecoder[r]; ok {
			buf = append(buf, b)
		}
	}
	return string(buf)
}

func isSpecialToken(tok string) bool {
	switch tok {
	case bosToken, eosToken, padToken, unkToken, maskToken:
		return true
	}
	return false
}

// mergeWord applies merge rules to one byte-encoded word, always merging
// the lowest-ranked adjacent pair first.
func (t *BPETokenizer) mergeWord(word []string) []string {
	for len(word) > 1 {
		bestRank := -1
		var bestPair [2]string
		for i := 0; i < len(word)-1; i++ {
			pair := [2]string{word[i], word[i+1]}
			if rank, ok := t.ranks[pair]; ok && (bestRank < 0 || rank < bestRank) {
				bestRank = rank
				bestPair = pair
			}
		}
		if bestRank < 0 {
			break
		}

		merged := make([]string, 0, len(word))
		for i := 0; i < len(word); {
			if i < len(word)-1 && word[i] == bestPair[0] && word[i+1] == bestPair[1] {
				merged = append(merged, bestPair[0]+bestPair[1])
				i += 2
			} else {
				merged = append(merged, word[i])
				i++
			}
		}
		word = merged
	}
	return word
}

var contractions = []string{"'s", "'t", "'re", "'ve", "'m", "'ll", "'d"}

func contractionLen(runes []rune, i int) int {
	if runes[i] != '\'' {
		return 0
	}
	rest := string(runes[i:])
	for _, c := range contractions {
		if strings.HasPrefix(rest, c) {
			return len([]rune(c))
		}
	}
	return 0
}

// pretokenize splits text into the groups byte-level BPE operates on:
// contraction suffixes, then letter, number and punctuation groups each
// absorbing one leading space, then whitespace runs which yield their final
// space to a following group.
func pretokenize(text string) []string {
	runes := []rune(text)
	var tokens []string
	for i := 0; i < len(runes); {
		if l := contractionLen(runes, i); l > 0 {
			tokens = append(tokens, string(runes[i:i+l]))
			i += l
			continue
		}

		j := i
		if runes[j] == ' ' && j+1 < len(runes) && !unicode.IsSpace(runes[j+1]) {
			j++
		}
		switch {
		case j < len(runes) && unicode.IsLetter(runes[j]):
			k := j
			for k < len(runes) && unicode.IsLetter(runes[k]) {
				k++
			}
			tokens = append(tokens, string(runes[i:k]))
			i = k
		case j < len(runes) && unicode.IsNumber(runes[j]):
			k := j
			for k < len(runes) && unicode.IsNumber(runes[k]) {
				k++
			}
			tokens = append(tokens, string(runes[i:k]))
			i = k
		case j < len(runes) && !unicode.IsSpace(runes[j]):
			k := j
			for k < len(runes) && !unicode.IsSpace(runes[k]) && !unicode.IsLetter(runes[k]) && !unicode.IsNumber(runes[k]) {
				k++
			}
			tokens = append(tokens, string(runes[i:k]))
			i = k
		default:
			k := i
			for k < len(runes) && unicode.IsSpace(runes[k]) {
				k++
			}
			stop := k
			if k < len(runes) && k-i > 1 {
				stop = k - 1
			}
			tokens = append(tokens, string(runes[i:stop]))
			i = stop
		}
	}
	return tokens
}

func onesMask(n int) []int64 {
	mask := make([]int64, n)
	for i := range mask {
		mask[i] = 1
	}
	return mask
}
