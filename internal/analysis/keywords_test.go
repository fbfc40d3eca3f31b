package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	a := newTestAnalyzer(t)

	keywords := a.ExtractKeywords("Apple apple banana. Apple cherry.", 10)
	require.Len(t, keywords, 3)

	// "apple" appears three times and in both sentences, so its summed
	// weight times frequency dominates. "cherry" carries more weight than
	// "banana" because it shares its sentence with fewer terms.
	assert.Equal(t, "apple", keywords[0].Keyword)
	assert.Equal(t, "cherry", keywords[1].Keyword)
	assert.Equal(t, "banana", keywords[2].Keyword)
	assert.InDelta(t, 4.194, keywords[0].Score, 0.01)

	for i := 1; i < len(keywords); i++ {
		assert.GreaterOrEqual(t, keywords[i-1].Score, keywords[i].Score)
	}
}

func TestExtractKeywordsDropsStopwordsAndPunctuation(t *testing.T) {
	a := newTestAnalyzer(t)

	keywords := a.ExtractKeywords("The jaguar sat on the mat, and the jaguar slept.", 10)
	require.NotEmpty(t, keywords)
	assert.Equal(t, "jaguar", keywords[0].Keyword)
	for _, kw := range keywords {
		assert.False(t, isStopword(kw.Keyword), "stopword %q leaked into keywords", kw.Keyword)
		assert.True(t, isAlnum(kw.Keyword))
	}
}

func TestExtractKeywordsLemmatizes(t *testing.T) {
	a := newTestAnalyzer(t)

	keywords := a.ExtractKeywords("Turbines spin. Turbines hum.", 10)
	require.NotEmpty(t, keywords)
	assert.Equal(t, "turbine", keywords[0].Keyword)
}

func TestExtractKeywordsAllStopwords(t *testing.T) {
	a := newTestAnalyzer(t)

	keywords := a.ExtractKeywords("the and of or but.", 10)
	assert.NotNil(t, keywords)
	assert.Empty(t, keywords)
}

func TestExtractKeywordsTopN(t *testing.T) {
	a := newTestAnalyzer(t)

	keywords := a.ExtractKeywords("Copper wires carry current. Fiber cables carry light.", 2)
	assert.Len(t, keywords, 2)
}

func TestIsAlnum(t *testing.T) {
	assert.True(t, isAlnum("hello"))
	assert.True(t, isAlnum("abc123"))
	assert.True(t, isAlnum("café"))
	assert.False(t, isAlnum(""))
	assert.False(t, isAlnum("half-baked"))
	assert.False(t, isAlnum("."))
	assert.False(t, isAlnum("a b"))
}

func TestSentenceTFIDFSingleSentence(t *testing.T) {
	a := newTestAnalyzer(t)

	// One sentence means every term has df == N == 1, so IDF is
	// ln(2/2)+1 = 1 and the normalized weights form a unit vector.
	summed := a.sentenceTFIDF("Quartz clocks tick.")
	require.Len(t, summed, 3)
	var sumSquares float64
	for _, weight := range summed {
		sumSquares += weight * weight
	}
	assert.InDelta(t, 1.0, sumSquares, 1e-9)
}
