package support

import (
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/docmill/docmill/internal/analysis"
)

// RegisterAnalysisSteps wires the content analysis steps.
func (testCtx *TestContext) RegisterAnalysisSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the analysis text "([^"]*)"$`, testCtx.theAnalysisText)
	sc.Step(`^the analysis text:$`, testCtx.theAnalysisTextBlock)

	sc.Step(`^I analyze the text$`, testCtx.iAnalyzeTheText)
	sc.Step(`^I analyze the text with sentiment enabled$`, testCtx.iAnalyzeTheTextWithSentiment)

	sc.Step(`^the analysis reports error "([^"]*)"$`, testCtx.theAnalysisReportsError)
	sc.Step(`^the analysis has no error$`, testCtx.theAnalysisHasNoError)
	sc.Step(`^the text length is (\d+)$`, testCtx.theTextLengthIs)
	sc.Step(`^the word count is (\d+)$`, testCtx.theWordCountIs)
	sc.Step(`^the sentence count is (\d+)$`, testCtx.theSentenceCountIs)
	sc.Step(`^the top keyword is "([^"]*)"$`, testCtx.theTopKeywordIs)
	sc.Step(`^the summary is "([^"]*)"$`, testCtx.theSummaryIs)
	sc.Step(`^the summary is:$`, testCtx.theSummaryIsBlock)
	sc.Step(`^the topics list is empty$`, testCtx.theTopicsListIsEmpty)
	sc.Step(`^the sentiment label is "([^"]*)" with score ([\d.]+)$`, testCtx.theSentimentLabelIs)
	sc.Step(`^the sentiment carries a model error$`, testCtx.theSentimentCarriesAModelError)
}

func (testCtx *TestContext) theAnalysisText(text string) error {
	testCtx.AnalysisText = text
	return nil
}

func (testCtx *TestContext) theAnalysisTextBlock(doc *godog.DocString) error {
	testCtx.AnalysisText = doc.Content
	return nil
}

func (testCtx *TestContext) iAnalyzeTheText() error {
	testCtx.AnalysisResult = testCtx.newAnalyzer().Analyze(testCtx.AnalysisText, analysis.DefaultOptions())
	return nil
}

func (testCtx *TestContext) iAnalyzeTheTextWithSentiment() error {
	opts := analysis.DefaultOptions()
	opts.Sentiment = true
	testCtx.AnalysisResult = testCtx.newAnalyzer().Analyze(testCtx.AnalysisText, opts)
	return nil
}

func (testCtx *TestContext) theAnalysisReportsError(message string) error {
	if testCtx.AnalysisResult.Error != message {
		return fmt.Errorf("analysis error %q, want %q", testCtx.AnalysisResult.Error, message)
	}
	return nil
}

func (testCtx *TestContext) theAnalysisHasNoError() error {
	if testCtx.AnalysisResult.Error != "" {
		return fmt.Errorf("unexpected analysis error: %s", testCtx.AnalysisResult.Error)
	}
	return nil
}

func (testCtx *TestContext) theTextLengthIs(count int) error {
	if got := testCtx.AnalysisResult.TextLength; got != count {
		return fmt.Errorf("text length %d, want %d", got, count)
	}
	return nil
}

func (testCtx *TestContext) theWordCountIs(count int) error {
	if got := testCtx.AnalysisResult.WordCount; got != count {
		return fmt.Errorf("word count %d, want %d", got, count)
	}
	return nil
}

func (testCtx *TestContext) theSentenceCountIs(count int) error {
	if got := testCtx.AnalysisResult.SentenceCount; got != count {
		return fmt.Errorf("sentence count %d, want %d", got, count)
	}
	return nil
}

func (testCtx *TestContext) theTopKeywordIs(keyword string) error {
	if len(testCtx.AnalysisResult.Keywords) == 0 {
		return errors.New("no keywords extracted")
	}
	if got := testCtx.AnalysisResult.Keywords[0].Keyword; got != keyword {
		return fmt.Errorf("top keyword %q, want %q", got, keyword)
	}
	return nil
}

func (testCtx *TestContext) theSummaryIs(expected string) error {
	if got := testCtx.AnalysisResult.Summary; got != expected {
		return fmt.Errorf("summary %q, want %q", got, expected)
	}
	return nil
}

func (testCtx *TestContext) theSummaryIsBlock(doc *godog.DocString) error {
	return testCtx.theSummaryIs(doc.Content)
}

func (testCtx *TestContext) theTopicsListIsEmpty() error {
	if testCtx.AnalysisResult.Topics == nil {
		return errors.New("topics section missing")
	}
	if got := len(testCtx.AnalysisResult.Topics); got != 0 {
		return fmt.Errorf("got %d topics, want none", got)
	}
	return nil
}

func (testCtx *TestContext) theSentimentLabelIs(label string, score float64) error {
	sentiment := testCtx.AnalysisResult.Sentiment
	if sentiment == nil {
		return errors.New("sentiment section missing")
	}
	if sentiment.Label != label {
		return fmt.Errorf("sentiment label %q, want %q", sentiment.Label, label)
	}
	if sentiment.Score != score {
		return fmt.Errorf("sentiment score %v, want %v", sentiment.Score, score)
	}
	return nil
}

func (testCtx *TestContext) theSentimentCarriesAModelError() error {
	sentiment := testCtx.AnalysisResult.Sentiment
	if sentiment == nil {
		return errors.New("sentiment section missing")
	}
	if sentiment.Error == "" {
		return errors.New("expected a model error on the sentiment section")
	}
	return nil
}
