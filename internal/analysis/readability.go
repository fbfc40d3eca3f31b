package analysis

import (
	"math"
	"strings"
	"unicode"
)

// CalculateReadability computes Flesch-family metrics over the text. Words
// are tokens containing at least one letter. Degenerate input with no
// words or no sentences returns the zero metrics without dividing, and the
// two averages are omitted from its JSON form.
func (a *Analyzer) CalculateReadability(text string) Readability {
	sentences := splitSentences(text)

	var words []string
	for _, token := range tokenizeWords(text) {
		if hasLetter(token) {
			words = append(words, token)
		}
	}
	if len(words) == 0 || len(sentences) == 0 {
		return Readability{}
	}

	wordCount := float64(len(words))
	sentenceCount := float64(len(sentences))

	syllableTotal := 0
	complexWords := 0
	for _, word := range words {
		syllables := countSyllables(strings.ToLower(word))
		syllableTotal += syllables
		if syllables >= 3 {
			complexWords++
		}
	}
	syllablesPerWord := float64(syllableTotal) / wordCount
	wordsPerSentence := wordCount / sentenceCount

	return Readability{
		FleschReadingEase:   round2(206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord),
		FleschKincaidGrade:  round2(0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59),
		ComplexWordRatio:    round3(float64(complexWords) / wordCount),
		AvgWordsPerSentence: round2(wordsPerSentence),
		AvgSyllablesPerWord: round2(syllablesPerWord),
	}
}

// countSyllables estimates the syllable count of a word by counting vowel
// groups, with adjustments for a silent trailing "e" and a consonant-"le"
// ending. Non-letters are ignored; a word with letters always counts at
// least one syllable.
func countSyllables(word string) int {
	var letters strings.Builder
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			letters.WriteRune(r)
		}
	}
	w := letters.String()
	if w == "" {
		return 0
	}

	switch w {
	case "the", "me", "she", "he", "be", "we":
		return 1
	}

	count := 0
	previousVowel := false
	for _, r := range w {
		vowel := isVowel(r)
		if vowel && !previousVowel {
			count++
		}
		previousVowel = vowel
	}

	if strings.HasSuffix(w, "e") {
		count--
	}
	if strings.HasSuffix(w, "le") && len(w) > 2 && !isVowel(rune(w[len(w)-3])) {
		count++
	}

	if count < 1 {
		return 1
	}
	return count
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiouy", r)
}

func hasLetter(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
