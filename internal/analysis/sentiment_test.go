package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docmill/docmill/internal/inference"
)

func TestChunkSentences(t *testing.T) {
	tests := []struct {
		name      string
		sentences []string
		limit     int
		want      []string
	}{
		{
			name:      "empty input",
			sentences: nil,
			limit:     10,
			want:      nil,
		},
		{
			name:      "single short sentence",
			sentences: []string{"hi there"},
			limit:     512,
			want:      []string{"hi there"},
		},
		{
			name:      "packs until the limit",
			sentences: []string{"one two three four", "five six seven eight", "nine ten eleven twelve"},
			limit:     10,
			want:      []string{"one two three four five six seven eight", "nine ten eleven twelve"},
		},
		{
			name:      "limit is exclusive",
			sentences: []string{"a b", "c d"},
			limit:     4,
			want:      []string{"a b", "c d"},
		},
		{
			name:      "oversized sentence forms its own chunk",
			sentences: []string{"w1 w2 w3 w4 w5", "a b"},
			limit:     3,
			want:      []string{"w1 w2 w3 w4 w5", "a b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chunkSentences(tt.sentences, tt.limit))
		})
	}
}

func TestAnalyzeSentimentEmptyText(t *testing.T) {
	a := newTestAnalyzer(t)

	sentiment := a.AnalyzeSentiment("")
	assert.Equal(t, "NEUTRAL", sentiment.Label)
	assert.Equal(t, 0.5, sentiment.Score)
	assert.Nil(t, sentiment.PositiveRatio)
	assert.Nil(t, sentiment.NegativeRatio)
	assert.Empty(t, sentiment.Error)
}

func TestAnalyzeSentimentModelFailure(t *testing.T) {
	a := newTestAnalyzer(t)

	sentiment := a.AnalyzeSentiment("What a wonderful day this is.")
	assert.Equal(t, "NEUTRAL", sentiment.Label)
	assert.Equal(t, 0.5, sentiment.Score)
	assert.NotEmpty(t, sentiment.Error)
	assert.Nil(t, sentiment.PositiveRatio)
	assert.Nil(t, sentiment.NegativeRatio)
}

func TestAggregateSentiment(t *testing.T) {
	tests := []struct {
		name      string
		results   []inference.Sentiment
		wantLabel string
		wantScore float64
		wantPos   float64
		wantNeg   float64
	}{
		{
			name:      "single positive chunk",
			results:   []inference.Sentiment{{Label: "POSITIVE", Score: 0.9}},
			wantLabel: "POSITIVE",
			wantScore: 0.9,
			wantPos:   1,
			wantNeg:   0,
		},
		{
			name: "majority positive divides by all chunks",
			results: []inference.Sentiment{
				{Label: "POSITIVE", Score: 0.9},
				{Label: "NEGATIVE", Score: 0.8},
				{Label: "POSITIVE", Score: 0.6},
			},
			wantLabel: "POSITIVE",
			wantScore: 0.5,
			wantPos:   2.0 / 3.0,
			wantNeg:   1.0 / 3.0,
		},
		{
			name: "majority negative",
			results: []inference.Sentiment{
				{Label: "NEGATIVE", Score: 0.9},
				{Label: "NEGATIVE", Score: 0.7},
				{Label: "POSITIVE", Score: 0.95},
			},
			wantLabel: "NEGATIVE",
			wantScore: 1.6 / 3.0,
			wantPos:   1.0 / 3.0,
			wantNeg:   2.0 / 3.0,
		},
		{
			name: "vote tie broken by summed confidence",
			results: []inference.Sentiment{
				{Label: "POSITIVE", Score: 0.9},
				{Label: "NEGATIVE", Score: 0.95},
			},
			wantLabel: "NEGATIVE",
			wantScore: 0.475,
			wantPos:   0.5,
			wantNeg:   0.5,
		},
		{
			name: "exact tie goes positive",
			results: []inference.Sentiment{
				{Label: "POSITIVE", Score: 0.8},
				{Label: "NEGATIVE", Score: 0.8},
			},
			wantLabel: "POSITIVE",
			wantScore: 0.4,
			wantPos:   0.5,
			wantNeg:   0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := aggregateSentiment(tt.results)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			require.NotNil(t, got.PositiveRatio)
			require.NotNil(t, got.NegativeRatio)
			assert.InDelta(t, tt.wantPos, *got.PositiveRatio, 1e-9)
			assert.InDelta(t, tt.wantNeg, *got.NegativeRatio, 1e-9)
			assert.Empty(t, got.Error)
		})
	}
}
