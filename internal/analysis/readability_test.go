package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"", 0},
		{"123", 0},
		{"?!", 0},
		{"the", 1},
		{"THE", 1},
		{"me", 1},
		{"she", 1},
		{"he", 1},
		{"be", 1},
		{"we", 1},
		{"cat", 1},
		{"dog", 1},
		{"go", 1},
		{"neat", 1},
		{"hello", 2},
		{"mate", 1},
		{"table", 2},
		{"apple", 2},
		{"little", 2},
		{"cycle", 2},
		{"people", 2},
		{"ale", 1},
		{"beautiful", 3},
		{"queue", 1},
		{"rhythm", 1},
		{"syzygy", 3},
		{"word123", 1},
		{"don't", 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, countSyllables(tt.word))
		})
	}
}

func TestCalculateReadability(t *testing.T) {
	a := newTestAnalyzer(t)

	// Six one-syllable words over two sentences: words/sentence = 3,
	// syllables/word = 1.
	r := a.CalculateReadability("Go is fun. Go is neat.")
	assert.Equal(t, 119.19, r.FleschReadingEase)
	assert.Equal(t, -2.62, r.FleschKincaidGrade)
	assert.Equal(t, 0.0, r.ComplexWordRatio)
	assert.Equal(t, 3.0, r.AvgWordsPerSentence)
	assert.Equal(t, 1.0, r.AvgSyllablesPerWord)
}

func TestCalculateReadabilityCountsComplexWords(t *testing.T) {
	a := newTestAnalyzer(t)

	// "beautiful" is the only word with three or more syllables.
	r := a.CalculateReadability("A beautiful bird sang.")
	assert.Equal(t, 0.25, r.ComplexWordRatio)
}

func TestCalculateReadabilityDegenerate(t *testing.T) {
	a := newTestAnalyzer(t)

	for _, text := range []string{"", "12345 67890", "... !!!"} {
		r := a.CalculateReadability(text)
		assert.Zero(t, r.FleschReadingEase)
		assert.Zero(t, r.FleschKincaidGrade)
		assert.Zero(t, r.ComplexWordRatio)
		assert.Zero(t, r.AvgWordsPerSentence)
		assert.Zero(t, r.AvgSyllablesPerWord)
	}
}

func TestHasLetter(t *testing.T) {
	assert.True(t, hasLetter("word"))
	assert.True(t, hasLetter("3rd"))
	assert.True(t, hasLetter("é"))
	assert.False(t, hasLetter("123"))
	assert.False(t, hasLetter("..."))
	assert.False(t, hasLetter(""))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 1.23, round2(1.2345))
	assert.Equal(t, 1.24, round2(1.236))
	assert.Equal(t, -2.62, round2(-2.6199999))
	assert.Equal(t, 0.123, round3(0.12345))
	assert.Equal(t, 0.0, round2(0))
}
