package analysis

import "math"

// sentenceTFIDF treats each sentence of the text as one document of a
// TF-IDF corpus and returns, per lemma, its weight summed across every
// sentence containing it. The corpus deliberately consists of the
// document's own sentences rather than an external collection, so IDF
// measures how widely a term spreads within this document. Weights use
// smoothed IDF, ln((1+N)/(1+df)) + 1, and each sentence's weight vector is
// L2-normalized before summing. Terms are accumulated in first-seen order
// to keep the floating-point sums reproducible.
func (a *Analyzer) sentenceTFIDF(text string) map[string]float64 {
	sentences := splitSentences(text)

	perSentence := make([][]string, 0, len(sentences))
	documentFrequency := make(map[string]int)
	for _, sentence := range sentences {
		lemmas := a.filteredLemmas(sentence)
		perSentence = append(perSentence, lemmas)

		seen := make(map[string]struct{}, len(lemmas))
		for _, lemma := range lemmas {
			if _, ok := seen[lemma]; ok {
				continue
			}
			seen[lemma] = struct{}{}
			documentFrequency[lemma]++
		}
	}

	corpusSize := float64(len(sentences))
	idf := make(map[string]float64, len(documentFrequency))
	for term, df := range documentFrequency {
		idf[term] = math.Log((1+corpusSize)/(1+float64(df))) + 1
	}

	summed := make(map[string]float64, len(documentFrequency))
	for _, lemmas := range perSentence {
		termFrequency := make(map[string]int, len(lemmas))
		terms := make([]string, 0, len(lemmas))
		for _, lemma := range lemmas {
			if _, ok := termFrequency[lemma]; !ok {
				terms = append(terms, lemma)
			}
			termFrequency[lemma]++
		}

		weights := make([]float64, len(terms))
		var norm float64
		for i, term := range terms {
			weight := float64(termFrequency[term]) * idf[term]
			weights[i] = weight
			norm += weight * weight
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)

		for i, term := range terms {
			summed[term] += weights[i] / norm
		}
	}
	return summed
}
