package analysis

import (
	"github.com/jdkato/prose/v2"
)

// segment runs word tokenization and sentence segmentation in one pass.
// Tokens are Treebank style, so punctuation marks count as tokens.
func segment(text string) (words, sentences []string) {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, nil
	}

	tokens := doc.Tokens()
	words = make([]string, 0, len(tokens))
	for _, token := range tokens {
		words = append(words, token.Text)
	}

	sents := doc.Sentences()
	sentences = make([]string, 0, len(sents))
	for _, sentence := range sents {
		sentences = append(sentences, sentence.Text)
	}
	return words, sentences
}

// tokenizeWords returns the word tokens of text.
func tokenizeWords(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil
	}

	tokens := doc.Tokens()
	words := make([]string, 0, len(tokens))
	for _, token := range tokens {
		words = append(words, token.Text)
	}
	return words
}

// splitSentences segments text into sentences.
func splitSentences(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil
	}

	sents := doc.Sentences()
	sentences := make([]string, 0, len(sents))
	for _, sentence := range sents {
		sentences = append(sentences, sentence.Text)
	}
	return sentences
}
