package cmd

import (
	"errors"
	"log/slog"

	"github.com/docmill/docmill/internal/export"
	"github.com/docmill/docmill/internal/extract"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export [input] [output]",
	Short: "Export a document as JSONL training samples",
	Long: `Extract a document, including its embedded images, and write it as
JSON Lines training samples.

Each text chunk becomes a sample carrying its page or paragraph provenance,
followed by one sample per unicode symbol and math expression found in the
chunk; image samples with OCR text and perceptual hashes come last.

Examples:
  docmill export report.pdf dataset.jsonl
  docmill export thesis.docx thesis.jsonl --ocr=false`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	extractor := extract.New(cfg.ToExtractConfig())

	result := extractor.ExtractWithImages(args[0])
	if result.Error != "" {
		return errors.New(result.Error)
	}

	samples := export.BuildSamples(result)
	count, err := export.WriteFile(args[1], samples)
	if err != nil {
		return err
	}

	slog.Info("exported samples", "count", count, "path", args[1])
	return nil
}
