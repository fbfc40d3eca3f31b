package analysis

// Result holds the outcome of one Analyze call. The counters are present
// whenever the input was non-empty; each optional section is present only
// when its option was enabled. Slice and map sections use omitzero so a
// section that ran but found nothing still serializes as an empty list or
// object, while disabled sections omit the key entirely.
type Result struct {
	TextLength    int                 `json:"text_length,omitzero"`
	WordCount     int                 `json:"word_count,omitzero"`
	SentenceCount int                 `json:"sentence_count,omitzero"`
	Keywords      []Keyword           `json:"keywords,omitzero"`
	Entities      map[string][]string `json:"entities,omitzero"`
	Summary       string              `json:"summary,omitempty"`
	Topics        []Topic             `json:"topics,omitzero"`
	Sentiment     *Sentiment          `json:"sentiment,omitempty"`
	Readability   *Readability        `json:"readability,omitempty"`
	Error         string              `json:"error,omitempty"`
}

// Keyword is a salient term with its salience score.
type Keyword struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
}

// Topic is a zero-shot classification label with its confidence.
type Topic struct {
	Topic      string  `json:"topic"`
	Confidence float64 `json:"confidence"`
}

// Sentiment is the aggregated polarity over the text's chunks. The vote
// ratios are pointers so the degenerate zero-chunk result serializes as
// just {label, score} while a real run keeps ratio keys even at 0.
type Sentiment struct {
	Label         string   `json:"label"`
	Score         float64  `json:"score"`
	PositiveRatio *float64 `json:"positive_ratio,omitempty"`
	NegativeRatio *float64 `json:"negative_ratio,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// Readability carries Flesch-family metrics. The two averages omit when
// zero, which only happens on degenerate input (no words or no sentences).
type Readability struct {
	FleschReadingEase   float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade  float64 `json:"flesch_kincaid_grade"`
	ComplexWordRatio    float64 `json:"complex_word_ratio"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence,omitempty"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word,omitempty"`
}
