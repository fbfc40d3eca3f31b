package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/docmill/docmill/internal/extract"
	"github.com/spf13/cobra"
)

// extractCmd represents the extract command.
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract text and metadata from a document",
	Long: `Extract text, metadata and optionally embedded images from a document.

The extraction strategy follows the file extension (.pdf, .docx, .doc, .txt);
anything else goes through content sniffing with a plain-text fallback. The
result is printed as JSON. Failures are reported inside the result under an
"error" key rather than aborting the command.

Examples:
  docmill extract report.pdf
  docmill extract thesis.docx --images --json-indent
  docmill extract notes.txt`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().Bool("images", false, "extract embedded images (PDF, DOCX) with OCR text and perceptual hashes")
	extractCmd.Flags().Bool("json-indent", false, "indent the JSON output")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	extractor := extract.New(cfg.ToExtractConfig())

	withImages, _ := cmd.Flags().GetBool("images")
	var result extract.Result
	if withImages {
		result = extractor.ExtractWithImages(args[0])
	} else {
		result = extractor.Extract(args[0])
	}

	indent, _ := cmd.Flags().GetBool("json-indent")
	return writeJSON(cmd, result, indent)
}

// writeJSON prints v to the command's stdout, with HTML escaping off so
// extracted text stays literal.
func writeJSON(cmd *cobra.Command, v any, indent bool) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetEscapeHTML(false)
	if indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
