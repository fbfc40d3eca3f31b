package analysis

import (
	"sort"
	"strings"
	"unicode"
)

// ExtractKeywords returns the topN most salient lemmas of the text. Each
// lemma's score is its TF-IDF weight summed over the document's sentences
// multiplied by its raw frequency; the frequency factor deliberately boosts
// repeated terms. Ties keep first-occurrence order.
func (a *Analyzer) ExtractKeywords(text string, topN int) []Keyword {
	lemmas := a.filteredLemmas(text)

	frequency := make(map[string]int, len(lemmas))
	order := make([]string, 0, len(lemmas))
	for _, lemma := range lemmas {
		if _, seen := frequency[lemma]; !seen {
			order = append(order, lemma)
		}
		frequency[lemma]++
	}

	summed := a.sentenceTFIDF(text)

	type scored struct {
		term  string
		score float64
	}
	ranked := make([]scored, 0, len(order))
	for _, term := range order {
		if weight, ok := summed[term]; ok {
			ranked = append(ranked, scored{term: term, score: weight * float64(frequency[term])})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if topN > len(ranked) {
		topN = len(ranked)
	}
	keywords := make([]Keyword, 0, topN)
	for _, entry := range ranked[:topN] {
		keywords = append(keywords, Keyword{Keyword: entry.term, Score: entry.score})
	}
	return keywords
}

// filteredLemmas lowercases the text, tokenizes it, keeps alphanumeric
// non-stopword tokens, and lemmatizes each survivor.
func (a *Analyzer) filteredLemmas(text string) []string {
	tokens := tokenizeWords(strings.ToLower(text))
	lemmas := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !isAlnum(token) || isStopword(token) {
			continue
		}
		lemmas = append(lemmas, a.lemma(token))
	}
	return lemmas
}

// isAlnum reports whether the token is non-empty and consists entirely of
// letters and digits.
func isAlnum(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
