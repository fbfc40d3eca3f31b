// Package analysis computes content insights over document text: keyword
// salience, named entities, abstractive or extractive summaries, zero-shot
// topics, chunked sentiment, and readability metrics. Section failures are
// isolated; every public operation returns a usable value instead of an
// error.
package analysis

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/docmill/docmill/internal/inference"
	"github.com/docmill/docmill/internal/models"
)

// Default section parameters.
const (
	defaultTopKeywords = 10
	defaultTopicCount  = 3

	// Model input is truncated to this many whitespace-separated words
	// before summarization or topic classification.
	maxModelInputWords = 1024
)

// Config holds analysis engine settings.
type Config struct {
	// ModelsDir overrides the default model directory resolution.
	ModelsDir string

	// Runtime configures the ONNX runtime shared by the model sessions.
	Runtime inference.RuntimeConfig

	// Logger receives structured analysis logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Analyzer runs the analysis sections over document text. The three model
// handles (summarizer, zero-shot classifier, sentiment classifier) load
// lazily on first use; exactly one load happens per handle and a load
// failure is remembered, so later calls take the documented fallback
// without retrying. Once constructed an Analyzer is safe for concurrent
// use.
type Analyzer struct {
	cfg    Config
	logger *slog.Logger

	lemmatizer *golem.Lemmatizer

	summarizerOnce sync.Once
	summarizer     *inference.Generator
	summarizerErr  error

	zeroShotOnce sync.Once
	zeroShot     *inference.ZeroShot
	zeroShotErr  error

	sentimentOnce sync.Once
	sentiment     *inference.TextClassifier
	sentimentErr  error
}

// New creates an analyzer. Model sessions are not opened here; they load on
// first use of the section that needs them.
func New(cfg Config) *Analyzer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	lemmatizer, err := golem.New(en.New())
	if err != nil {
		logger.Warn("lemmatizer unavailable, keeping surface forms", "error", err)
		lemmatizer = nil
	}

	return &Analyzer{
		cfg:        cfg,
		logger:     logger,
		lemmatizer: lemmatizer,
	}
}

// Close releases any model sessions that were loaded.
func (a *Analyzer) Close() {
	if a.summarizer != nil {
		a.summarizer.Close()
		a.summarizer = nil
	}
	if a.zeroShot != nil {
		a.zeroShot.Close()
		a.zeroShot = nil
	}
	if a.sentiment != nil {
		a.sentiment.Close()
		a.sentiment = nil
	}
}

// Analyze computes the enabled sections for the given text. Empty or
// whitespace-only input yields an error result; otherwise the three
// counters are always present and each enabled section is computed
// independently, with per-section fallbacks on failure.
func (a *Analyzer) Analyze(text string, opts Options) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Error: "Empty text provided for analysis"}
	}

	words, sentences := segment(text)
	result := Result{
		TextLength:    utf8.RuneCountInString(text),
		WordCount:     len(words),
		SentenceCount: len(sentences),
	}

	if opts.Keywords {
		result.Keywords = a.ExtractKeywords(text, defaultTopKeywords)
	}
	if opts.Entities {
		result.Entities = a.ExtractEntities(text)
	}
	if opts.Summary {
		result.Summary = a.Summarize(text)
	}
	if opts.Topics {
		result.Topics = a.ExtractTopics(text, defaultTopicCount)
	}
	if opts.Sentiment {
		sentiment := a.AnalyzeSentiment(text)
		result.Sentiment = &sentiment
	}
	if opts.Readability {
		readability := a.CalculateReadability(text)
		result.Readability = &readability
	}

	return result
}

// lemma reduces a token to its dictionary form, or returns it unchanged
// when no lemmatizer is available.
func (a *Analyzer) lemma(token string) string {
	if a.lemmatizer == nil {
		return token
	}
	return a.lemmatizer.Lemma(token)
}

// loadSummarizer opens the seq2seq summarization model once. The tokenizer
// files are read before any session is created, so a missing model fails
// fast without touching the ONNX runtime.
func (a *Analyzer) loadSummarizer() (*inference.Generator, error) {
	a.summarizerOnce.Do(func() {
		a.logger.Info("loading summarization model")
		dir := a.cfg.ModelsDir

		tokenizer, err := inference.NewBPETokenizer(
			models.GetVocabPath(dir, models.TypeSummarizer, models.VocabJSON),
			models.GetVocabPath(dir, models.TypeSummarizer, models.MergesTxt),
		)
		if err != nil {
			a.summarizerErr = fmt.Errorf("load summarizer vocabulary: %w", err)
			return
		}

		generator, err := inference.NewGenerator(
			models.GetSummarizerEncoderPath(dir),
			models.GetSummarizerDecoderPath(dir),
			tokenizer,
			inference.DefaultGenerateConfig(),
			a.cfg.Runtime,
		)
		if err != nil {
			a.summarizerErr = fmt.Errorf("load summarizer model: %w", err)
			return
		}
		a.summarizer = generator
	})
	return a.summarizer, a.summarizerErr
}

// loadZeroShot opens the zero-shot NLI classifier once.
func (a *Analyzer) loadZeroShot() (*inference.ZeroShot, error) {
	a.zeroShotOnce.Do(func() {
		a.logger.Info("loading zero-shot classification model")
		dir := a.cfg.ModelsDir

		tokenizer, err := inference.NewBPETokenizer(
			models.GetVocabPath(dir, models.TypeZeroShot, models.VocabJSON),
			models.GetVocabPath(dir, models.TypeZeroShot, models.MergesTxt),
		)
		if err != nil {
			a.zeroShotErr = fmt.Errorf("load zero-shot vocabulary: %w", err)
			return
		}

		classifier, err := inference.NewZeroShot(models.GetZeroShotModelPath(dir), tokenizer, a.cfg.Runtime)
		if err != nil {
			a.zeroShotErr = fmt.Errorf("load zero-shot model: %w", err)
			return
		}
		a.zeroShot = classifier
	})
	return a.zeroShot, a.zeroShotErr
}

// loadSentiment opens the sentiment classifier once.
func (a *Analyzer) loadSentiment() (*inference.TextClassifier, error) {
	a.sentimentOnce.Do(func() {
		a.logger.Info("loading sentiment model")
		dir := a.cfg.ModelsDir

		tokenizer, err := inference.NewWordPieceTokenizer(
			models.GetVocabPath(dir, models.TypeSentiment, models.VocabTxt),
		)
		if err != nil {
			a.sentimentErr = fmt.Errorf("load sentiment vocabulary: %w", err)
			return
		}

		classifier, err := inference.NewTextClassifier(models.GetSentimentModelPath(dir), tokenizer, a.cfg.Runtime)
		if err != nil {
			a.sentimentErr = fmt.Errorf("load sentiment model: %w", err)
			return
		}
		a.sentiment = classifier
	})
	return a.sentiment, a.sentimentErr
}
