package cmd

import (
	"errors"

	"github.com/docmill/docmill/internal/analysis"
	"github.com/docmill/docmill/internal/extract"
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze document content",
	Long: `Analyze the text of a document, or a literal text, and print the
insights as JSON.

Sections are selectable per flag: keywords (TF-IDF ranked), named entities,
summary (model-backed with an extractive fallback), topic classification,
sentiment and readability metrics. Sentiment is off by default because it
runs model inference over every text chunk.

Examples:
  docmill analyze report.pdf
  docmill analyze report.pdf --sentiment --json-indent
  docmill analyze --text "The quick brown fox jumps over the lazy dog."
  docmill analyze paper.pdf --keywords=false --readability=false`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	defaults := analysis.DefaultOptions()
	analyzeCmd.Flags().String("text", "", "analyze this text instead of a file")
	analyzeCmd.Flags().Bool("keywords", defaults.Keywords, "extract top keywords")
	analyzeCmd.Flags().Bool("entities", defaults.Entities, "extract named entities")
	analyzeCmd.Flags().Bool("summary", defaults.Summary, "generate a summary")
	analyzeCmd.Flags().Bool("topics", defaults.Topics, "classify topics")
	analyzeCmd.Flags().Bool("sentiment", defaults.Sentiment, "analyze sentiment")
	analyzeCmd.Flags().Bool("readability", defaults.Readability, "compute readability metrics")
	analyzeCmd.Flags().Bool("json-indent", false, "indent the JSON output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	fromFlag := cmd.Flags().Changed("text")
	if !fromFlag && len(args) == 0 {
		return errors.New("provide a file argument or --text")
	}

	cfg := GetConfig()
	if !fromFlag {
		result := extract.New(cfg.ToExtractConfig()).Extract(args[0])
		if result.Error != "" {
			return errors.New(result.Error)
		}
		text = result.Text
	}

	analyzer := analysis.New(cfg.ToAnalysisConfig())
	defer analyzer.Close()

	indent, _ := cmd.Flags().GetBool("json-indent")
	return writeJSON(cmd, analyzer.Analyze(text, analysisOptions(cmd)), indent)
}

// analysisOptions collects the per-section flags into Options.
func analysisOptions(cmd *cobra.Command) analysis.Options {
	var opts analysis.Options
	opts.Keywords, _ = cmd.Flags().GetBool("keywords")
	opts.Entities, _ = cmd.Flags().GetBool("entities")
	opts.Summary, _ = cmd.Flags().GetBool("summary")
	opts.Topics, _ = cmd.Flags().GetBool("topics")
	opts.Sentiment, _ = cmd.Flags().GetBool("sentiment")
	opts.Readability, _ = cmd.Flags().GetBool("readability")
	return opts
}
