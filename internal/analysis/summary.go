package analysis

import (
	"sort"
	"strings"
)

// Texts shorter than this many whitespace-separated words are returned
// verbatim instead of summarized.
const summaryMinWords = 40

// extractiveSentenceCount is how many sentences the extractive fallback
// keeps.
const extractiveSentenceCount = 3

// Summarize produces an abstractive summary of the text. Short texts come
// back verbatim. Input is truncated to the model's word budget before
// inference; any model failure falls back to the extractive summarizer
// over the text as it stood at the point of failure.
func (a *Analyzer) Summarize(text string) string {
	if len(strings.Fields(text)) < summaryMinWords {
		return text
	}

	generator, err := a.loadSummarizer()
	if err != nil {
		a.logger.Error("summarization failed", "error", err)
		return a.extractiveSummarize(text, extractiveSentenceCount)
	}

	truncated := truncateWords(text, maxModelInputWords)
	summary, err := generator.Generate(truncated)
	if err != nil {
		a.logger.Error("summarization failed", "error", err)
		return a.extractiveSummarize(truncated, extractiveSentenceCount)
	}
	return summary
}

// extractiveSummarize picks the count highest-scoring sentences and rejoins
// them in document order. A sentence's score is the sum, over all its
// tokens, of each token's document-wide frequency normalized by the
// highest frequency; only alphanumeric non-stopword tokens are counted.
// Texts with at most count sentences come back verbatim.
func (a *Analyzer) extractiveSummarize(text string, count int) string {
	sentences := splitSentences(text)
	if len(sentences) <= count {
		return text
	}

	frequency := make(map[string]int)
	for _, sentence := range sentences {
		for _, token := range tokenizeWords(strings.ToLower(sentence)) {
			if isAlnum(token) && !isStopword(token) {
				frequency[token]++
			}
		}
	}

	maxFrequency := 0
	for _, n := range frequency {
		if n > maxFrequency {
			maxFrequency = n
		}
	}
	if maxFrequency == 0 {
		maxFrequency = 1
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, 0, len(sentences))
	for i, sentence := range sentences {
		total := 0.0
		counted := false
		for _, token := range tokenizeWords(strings.ToLower(sentence)) {
			if n, ok := frequency[token]; ok {
				total += float64(n) / float64(maxFrequency)
				counted = true
			}
		}
		// Sentences without a single counted word never rank.
		if counted {
			ranked = append(ranked, scored{index: i, score: total})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if count > len(ranked) {
		count = len(ranked)
	}
	indices := make([]int, 0, count)
	for _, entry := range ranked[:count] {
		indices = append(indices, entry.index)
	}
	sort.Ints(indices)

	selected := make([]string, 0, len(indices))
	for _, i := range indices {
		selected = append(selected, sentences[i])
	}
	return strings.Join(selected, " ")
}

// truncateWords caps text at limit whitespace-separated words, leaving
// shorter text untouched.
func truncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ")
}
