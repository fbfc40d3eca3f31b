package analysis

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/jdkato/prose/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestAnalyzer points the model directory at an empty temp dir, so
// every model load fails deterministically and the fallback paths run.
func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return New(Config{ModelsDir: t.TempDir(), Logger: discardLogger()})
}

func jsonKeys(t *testing.T, v any) map[string]json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	return keys
}

func TestAnalyzeEmptyText(t *testing.T) {
	a := newTestAnalyzer(t)

	for _, text := range []string{"", "   ", " \n\t  "} {
		result := a.Analyze(text, DefaultOptions())
		assert.Equal(t, "Empty text provided for analysis", result.Error)
		assert.Zero(t, result.TextLength)
		assert.Zero(t, result.WordCount)
		assert.Zero(t, result.SentenceCount)

		keys := jsonKeys(t, result)
		assert.Len(t, keys, 1)
		assert.Contains(t, keys, "error")
	}
}

func TestAnalyzeCountersOnly(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.Analyze("Go is great. Rust is nice.", Options{})
	assert.Empty(t, result.Error)
	assert.Equal(t, 26, result.TextLength)
	assert.Equal(t, 8, result.WordCount)
	assert.Equal(t, 2, result.SentenceCount)

	assert.Nil(t, result.Keywords)
	assert.Nil(t, result.Entities)
	assert.Empty(t, result.Summary)
	assert.Nil(t, result.Topics)
	assert.Nil(t, result.Sentiment)
	assert.Nil(t, result.Readability)

	keys := jsonKeys(t, result)
	assert.Len(t, keys, 3)
	assert.Contains(t, keys, "text_length")
	assert.Contains(t, keys, "word_count")
	assert.Contains(t, keys, "sentence_count")
}

func TestAnalyzeCountsRunesNotBytes(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.Analyze("héllo wörld.", Options{})
	assert.Equal(t, 12, result.TextLength)
}

func TestAnalyzeDefaultSectionsWithoutModels(t *testing.T) {
	a := newTestAnalyzer(t)

	text := "Solar energy storage systems keep surplus solar energy for calm dark evenings. " +
		"The national energy grid depends on large storage reserves every single day. " +
		"My neighbor paints tiny wooden boats. " +
		"Cheap energy storage will reshape the modern solar market very quickly. " +
		"Blue teapots whistle."
	result := a.Analyze(text, DefaultOptions())

	assert.Empty(t, result.Error)
	assert.NotEmpty(t, result.Keywords)
	assert.NotNil(t, result.Entities)
	assert.NotEmpty(t, result.Summary)
	require.NotNil(t, result.Topics)
	assert.Empty(t, result.Topics)
	assert.Nil(t, result.Sentiment)
	require.NotNil(t, result.Readability)
	assert.Positive(t, result.Readability.AvgWordsPerSentence)
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := newTestAnalyzer(t)

	text := "The committee reviewed the proposal. The committee approved the budget."
	first := a.Analyze(text, Options{Keywords: true, Readability: true})
	second := a.Analyze(text, Options{Keywords: true, Readability: true})
	assert.Equal(t, first, second)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.Keywords)
	assert.True(t, opts.Entities)
	assert.True(t, opts.Summary)
	assert.True(t, opts.Topics)
	assert.False(t, opts.Sentiment)
	assert.True(t, opts.Readability)
}

func TestGroupEntities(t *testing.T) {
	spans := []prose.Entity{
		{Text: "Acme", Label: "ORG"},
		{Text: "Alice", Label: "PERSON"},
		{Text: "Acme", Label: "ORG"},
		{Text: "Bob", Label: "PERSON"},
		{Text: "Alice", Label: "PERSON"},
	}

	grouped := groupEntities(spans, make(map[string][]string))
	assert.Equal(t, map[string][]string{
		"ORG":    {"Acme"},
		"PERSON": {"Alice", "Bob"},
	}, grouped)
}

func TestExtractEntitiesNeverNil(t *testing.T) {
	a := newTestAnalyzer(t)

	entities := a.ExtractEntities("it rained quietly all afternoon")
	assert.NotNil(t, entities)
}

func TestResultWireShape(t *testing.T) {
	t.Run("error only", func(t *testing.T) {
		keys := jsonKeys(t, Result{Error: "Empty text provided for analysis"})
		assert.Len(t, keys, 1)
	})

	t.Run("empty sections serialize as empty collections", func(t *testing.T) {
		result := Result{
			TextLength:    5,
			WordCount:     2,
			SentenceCount: 1,
			Keywords:      []Keyword{},
			Entities:      map[string][]string{},
			Topics:        []Topic{},
		}
		keys := jsonKeys(t, result)
		assert.JSONEq(t, "[]", string(keys["keywords"]))
		assert.JSONEq(t, "{}", string(keys["entities"]))
		assert.JSONEq(t, "[]", string(keys["topics"]))
	})

	t.Run("neutral sentiment omits ratios", func(t *testing.T) {
		keys := jsonKeys(t, Sentiment{Label: "NEUTRAL", Score: 0.5})
		assert.Len(t, keys, 2)
		assert.Contains(t, keys, "label")
		assert.Contains(t, keys, "score")
	})

	t.Run("voted sentiment keeps zero ratios", func(t *testing.T) {
		zero := 0.0
		one := 1.0
		keys := jsonKeys(t, Sentiment{Label: "POSITIVE", Score: 0.9, PositiveRatio: &one, NegativeRatio: &zero})
		assert.Len(t, keys, 4)
		assert.JSONEq(t, "0", string(keys["negative_ratio"]))
	})

	t.Run("degenerate readability keeps only zero metrics", func(t *testing.T) {
		keys := jsonKeys(t, Readability{})
		assert.Len(t, keys, 3)
		assert.Contains(t, keys, "flesch_reading_ease")
		assert.Contains(t, keys, "flesch_kincaid_grade")
		assert.Contains(t, keys, "complex_word_ratio")
	})
}
