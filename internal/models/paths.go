package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Model file name constants to avoid typos and ensure consistency.
const (
	// Seq2seq summarizer export (encoder/decoder pair).
	SummarizerEncoder = "encoder_model.onnx"
	SummarizerDecoder = "decoder_model.onnx"

	// Single-graph classifier exports.
	ClassifierModel = "model.onnx"

	// Tokenizer files. BPE models carry vocab.json+merges.txt,
	// WordPiece models carry vocab.txt.
	VocabJSON = "vocab.json"
	MergesTxt = "merges.txt"
	VocabTxt  = "vocab.txt"
)

// Model type categories for the organized directory structure.
const (
	TypeSummarizer = "summarizer"
	TypeZeroShot   = "zeroshot"
	TypeSentiment  = "sentiment"
)

// Default models directory.
const DefaultModelsDir = "models"

// Environment variable for models directory override.
const EnvModelsDir = "DOCMILL_MODELS_DIR"

// findProjectRoot finds the project root by looking for go.mod.
func findProjectRoot() (string, error) {
	// Start from current working directory
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	// Walk up the directory tree looking for go.mod
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root without finding go.mod
			break
		}
		dir = parent
	}

	return "", errors.New("could not find project root (go.mod not found)")
}

// ModelInfo contains metadata about a model bundle.
type ModelInfo struct {
	Name        string
	Type        string
	Description string
	Files       []string
}

// GetModelsDir returns the models directory path from various sources
// Priority: 1. Explicit modelsDir parameter, 2. Environment variable, 3. Project root + default.
func GetModelsDir(modelsDir string) string {
	if modelsDir != "" {
		return modelsDir
	}

	if envDir := os.Getenv(EnvModelsDir); envDir != "" {
		return envDir
	}

	// Use project root + default models directory
	if projectRoot, err := findProjectRoot(); err == nil {
		return filepath.Join(projectRoot, DefaultModelsDir)
	}

	// Fallback to relative path if project root can't be found
	return DefaultModelsDir
}

// ResolveModelPath resolves a model filename to its full path
// Supports both the organized per-type structure and a legacy flat layout.
func ResolveModelPath(modelsDir, modelType, filename string) string {
	baseDir := GetModelsDir(modelsDir)

	// Try the organized structure first
	if modelType != "" {
		organizedPath := filepath.Join(baseDir, modelType, filename)
		if _, err := os.Stat(organizedPath); err == nil {
			return organizedPath
		}
	}

	// Fall back to the flat layout
	return filepath.Join(baseDir, filename)
}

// GetSummarizerEncoderPath returns the path for the summarizer encoder model.
func GetSummarizerEncoderPath(modelsDir string) string {
	return ResolveModelPath(modelsDir, TypeSummarizer, SummarizerEncoder)
}

// GetSummarizerDecoderPath returns the path for the summarizer decoder model.
func GetSummarizerDecoderPath(modelsDir string) string {
	return ResolveModelPath(modelsDir, TypeSummarizer, SummarizerDecoder)
}

// GetZeroShotModelPath returns the path for the zero-shot NLI model.
func GetZeroShotModelPath(modelsDir string) string {
	return ResolveModelPath(modelsDir, TypeZeroShot, ClassifierModel)
}

// GetSentimentModelPath returns the path for the sentiment classifier model.
func GetSentimentModelPath(modelsDir string) string {
	return ResolveModelPath(modelsDir, TypeSentiment, ClassifierModel)
}

// GetVocabPath returns the path for a tokenizer file of a given model type.
func GetVocabPath(modelsDir, modelType, filename string) string {
	return ResolveModelPath(modelsDir, modelType, filename)
}

// ValidateModelExists checks if a model file exists at the given path.
func ValidateModelExists(modelPath string) error {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file not found: %s", modelPath)
	}
	return nil
}

// ValidateModelFiles checks that every file of a model bundle is present.
func ValidateModelFiles(modelsDir, modelType string) error {
	var files []string
	switch modelType {
	case TypeSummarizer:
		files = []string{SummarizerEncoder, SummarizerDecoder, VocabJSON, MergesTxt}
	case TypeZeroShot:
		files = []string{ClassifierModel, VocabJSON, MergesTxt}
	case TypeSentiment:
		files = []string{ClassifierModel, VocabTxt}
	default:
		return fmt.Errorf("unknown model type: %s", modelType)
	}

	for _, f := range files {
		if err := ValidateModelExists(ResolveModelPath(modelsDir, modelType, f)); err != nil {
			return err
		}
	}
	return nil
}

// ListAvailableModels returns information about the model bundles the
// analysis engine can load.
func ListAvailableModels() []ModelInfo {
	return []ModelInfo{
		{
			Name:        "summarizer",
			Type:        TypeSummarizer,
			Description: "Abstractive summarization seq2seq model",
			Files:       []string{SummarizerEncoder, SummarizerDecoder, VocabJSON, MergesTxt},
		},
		{
			Name:        "zeroshot",
			Type:        TypeZeroShot,
			Description: "NLI model for zero-shot topic classification",
			Files:       []string{ClassifierModel, VocabJSON, MergesTxt},
		},
		{
			Name:        "sentiment",
			Type:        TypeSentiment,
			Description: "Binary sentiment classifier",
			Files:       []string{ClassifierModel, VocabTxt},
		},
	}
}
