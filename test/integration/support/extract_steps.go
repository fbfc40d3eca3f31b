package support

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cucumber/godog"
)

// RegisterExtractSteps wires the document extraction steps.
func (testCtx *TestContext) RegisterExtractSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a text document containing "([^"]*)"$`, testCtx.aTextDocumentContaining)
	sc.Step(`^a DOCX document with paragraphs:$`, testCtx.aDOCXDocumentWithParagraphs)
	sc.Step(`^a PDF document with pages:$`, testCtx.aPDFDocumentWithPages)
	sc.Step(`^a document path that does not exist$`, testCtx.aDocumentPathThatDoesNotExist)
	sc.Step(`^a file named "([^"]*)" containing "([^"]*)"$`, testCtx.aFileNamedContaining)

	sc.Step(`^I extract the document$`, testCtx.iExtractTheDocument)

	sc.Step(`^the extraction succeeds$`, testCtx.theExtractionSucceeds)
	sc.Step(`^the extraction fails with "([^"]*)"$`, testCtx.theExtractionFailsWith)
	sc.Step(`^the extracted text is "([^"]*)"$`, testCtx.theExtractedTextIs)
	sc.Step(`^the extracted text contains "([^"]*)"$`, testCtx.theExtractedTextContains)
	sc.Step(`^the result has (\d+) pages?$`, testCtx.theResultHasPages)
	sc.Step(`^the result has (\d+) paragraphs?$`, testCtx.theResultHasParagraphs)
	sc.Step(`^the result has (\d+) lines?$`, testCtx.theResultHasLines)
	sc.Step(`^the result metadata "([^"]*)" ends with "([^"]*)"$`, testCtx.theResultMetadataEndsWith)
}

func (testCtx *TestContext) aTextDocumentContaining(content string) error {
	testCtx.DocumentPath = testCtx.tempPath("document.txt")
	return os.WriteFile(testCtx.DocumentPath, []byte(content), 0o600)
}

func (testCtx *TestContext) aDOCXDocumentWithParagraphs(table *godog.Table) error {
	paragraphs := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		paragraphs = append(paragraphs, row.Cells[0].Value)
	}
	testCtx.DocumentPath = testCtx.tempPath("document.docx")
	return writeDOCXFixture(testCtx.DocumentPath, paragraphs)
}

func (testCtx *TestContext) aPDFDocumentWithPages(table *godog.Table) error {
	pages := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		pages = append(pages, row.Cells[0].Value)
	}
	testCtx.DocumentPath = testCtx.tempPath("document.pdf")
	return writePDFFixture(testCtx.DocumentPath, pages...)
}

func (testCtx *TestContext) aDocumentPathThatDoesNotExist() error {
	testCtx.DocumentPath = testCtx.tempPath("absent.pdf")
	return nil
}

func (testCtx *TestContext) aFileNamedContaining(name, content string) error {
	testCtx.DocumentPath = testCtx.tempPath(name)
	return os.WriteFile(testCtx.DocumentPath, []byte(content), 0o600)
}

func (testCtx *TestContext) iExtractTheDocument() error {
	testCtx.ExtractResult = testCtx.newExtractor().Extract(testCtx.DocumentPath)
	return nil
}

func (testCtx *TestContext) theExtractionSucceeds() error {
	if testCtx.ExtractResult.Error != "" {
		return fmt.Errorf("extraction failed: %s", testCtx.ExtractResult.Error)
	}
	if testCtx.ExtractResult.Text == "" {
		return errors.New("extraction produced no text")
	}
	return nil
}

func (testCtx *TestContext) theExtractionFailsWith(message string) error {
	if testCtx.ExtractResult.Error == "" {
		return errors.New("expected an extraction error, got none")
	}
	if !strings.Contains(testCtx.ExtractResult.Error, message) {
		return fmt.Errorf("error %q does not contain %q", testCtx.ExtractResult.Error, message)
	}
	return nil
}

func (testCtx *TestContext) theExtractedTextIs(expected string) error {
	if testCtx.ExtractResult.Text != expected {
		return fmt.Errorf("text %q, want %q", testCtx.ExtractResult.Text, expected)
	}
	return nil
}

func (testCtx *TestContext) theExtractedTextContains(fragment string) error {
	if !strings.Contains(testCtx.ExtractResult.Text, fragment) {
		return fmt.Errorf("text %q does not contain %q", testCtx.ExtractResult.Text, fragment)
	}
	return nil
}

func (testCtx *TestContext) theResultHasPages(count int) error {
	if got := len(testCtx.ExtractResult.Pages); got != count {
		return fmt.Errorf("got %d pages, want %d", got, count)
	}
	return nil
}

func (testCtx *TestContext) theResultHasParagraphs(count int) error {
	if got := len(testCtx.ExtractResult.Paragraphs); got != count {
		return fmt.Errorf("got %d paragraphs, want %d", got, count)
	}
	return nil
}

func (testCtx *TestContext) theResultHasLines(count int) error {
	if got := len(testCtx.ExtractResult.Lines); got != count {
		return fmt.Errorf("got %d lines, want %d", got, count)
	}
	return nil
}

func (testCtx *TestContext) theResultMetadataEndsWith(key, suffix string) error {
	value, ok := testCtx.ExtractResult.Metadata[key]
	if !ok {
		return fmt.Errorf("metadata has no %q key", key)
	}
	if !strings.HasSuffix(value, suffix) {
		return fmt.Errorf("metadata %q is %q, want suffix %q", key, value, suffix)
	}
	return nil
}
