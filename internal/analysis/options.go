package analysis

// Options selects which analysis sections Analyze computes. The three
// counters (text length, word count, sentence count) are always computed.
type Options struct {
	Keywords    bool
	Entities    bool
	Summary     bool
	Topics      bool
	Sentiment   bool
	Readability bool
}

// DefaultOptions enables every section except sentiment, which runs
// model inference per text chunk and is opt-in.
func DefaultOptions() Options {
	return Options{
		Keywords:    true,
		Entities:    true,
		Summary:     true,
		Topics:      true,
		Sentiment:   false,
		Readability: true,
	}
}
