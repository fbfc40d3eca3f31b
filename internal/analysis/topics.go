package analysis

import "sort"

// topicLabels is the fixed candidate set for zero-shot topic
// classification.
var topicLabels = []string{
	"business", "technology", "politics", "health", "science",
	"education", "entertainment", "sports", "environment",
	"finance", "law", "medicine", "art", "history", "literature",
}

// ExtractTopics classifies the text against the fixed topic candidates and
// returns the numTopics best matches in descending confidence. Any model
// failure yields an empty, non-nil list.
func (a *Analyzer) ExtractTopics(text string, numTopics int) []Topic {
	classifier, err := a.loadZeroShot()
	if err != nil {
		a.logger.Error("topic extraction failed", "error", err)
		return []Topic{}
	}

	truncated := truncateWords(text, maxModelInputWords)
	confidences, err := classifier.Score(truncated, topicLabels)
	if err != nil {
		a.logger.Error("topic extraction failed", "error", err)
		return []Topic{}
	}

	ranked := make([]Topic, len(topicLabels))
	for i, label := range topicLabels {
		ranked[i] = Topic{Topic: label, Confidence: confidences[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	if numTopics > len(ranked) {
		numTopics = len(ranked)
	}
	return ranked[:numTopics]
}
