package analysis

import (
	"strings"

	"github.com/docmill/docmill/internal/inference"
)

// Chunks passed to the sentiment classifier stay under this many
// whitespace-separated words.
const sentimentChunkWords = 512

// AnalyzeSentiment classifies the text's polarity. Long texts are packed
// into sentence chunks, each chunk is classified independently, and the
// chunk votes are aggregated by majority. Degenerate input with no chunks
// yields a neutral result without touching the model; a classifier failure
// yields the neutral result with an error note.
func (a *Analyzer) AnalyzeSentiment(text string) Sentiment {
	chunks := chunkSentences(splitSentences(text), sentimentChunkWords)
	if len(chunks) == 0 {
		return Sentiment{Label: "NEUTRAL", Score: 0.5}
	}

	classifier, err := a.loadSentiment()
	if err != nil {
		a.logger.Error("sentiment analysis failed", "error", err)
		return Sentiment{Label: "NEUTRAL", Score: 0.5, Error: err.Error()}
	}

	results := make([]inference.Sentiment, 0, len(chunks))
	for _, chunk := range chunks {
		result, err := classifier.Classify(chunk)
		if err != nil {
			a.logger.Error("sentiment analysis failed", "error", err)
			return Sentiment{Label: "NEUTRAL", Score: 0.5, Error: err.Error()}
		}
		results = append(results, result)
	}

	return aggregateSentiment(results)
}

// chunkSentences greedily packs consecutive sentences into chunks whose
// word counts stay under limit. A single sentence at or over the limit
// forms its own chunk; sentences are never split.
func chunkSentences(sentences []string, limit int) []string {
	var chunks []string
	current := ""
	for _, sentence := range sentences {
		if len(strings.Fields(current))+len(strings.Fields(sentence)) < limit {
			current += " " + sentence
		} else {
			if current != "" {
				chunks = append(chunks, strings.TrimSpace(current))
			}
			current = sentence
		}
	}
	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}
	return chunks
}

// aggregateSentiment folds per-chunk classifications into one verdict.
// The label wins by vote count, with ties broken by the higher summed
// confidence (positive on an exact tie). The score is the winning class's
// summed confidence divided by the total chunk count, so a mixed document
// scores lower than a unanimous one. Ratios are vote fractions.
func aggregateSentiment(results []inference.Sentiment) Sentiment {
	var positiveSum, negativeSum float64
	var positiveCount, negativeCount int
	for _, result := range results {
		if result.Label == "POSITIVE" {
			positiveSum += result.Score
			positiveCount++
		} else {
			negativeSum += result.Score
			negativeCount++
		}
	}

	total := float64(len(results))
	var label string
	var score float64
	switch {
	case positiveCount > negativeCount:
		label, score = "POSITIVE", positiveSum/total
	case negativeCount > positiveCount:
		label, score = "NEGATIVE", negativeSum/total
	case positiveSum >= negativeSum:
		label, score = "POSITIVE", positiveSum/total
	default:
		label, score = "NEGATIVE", negativeSum/total
	}

	positiveRatio := float64(positiveCount) / total
	negativeRatio := float64(negativeCount) / total
	return Sentiment{
		Label:         label,
		Score:         score,
		PositiveRatio: &positiveRatio,
		NegativeRatio: &negativeRatio,
	}
}
