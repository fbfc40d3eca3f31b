package config

import (
	"fmt"
	"strings"

	"github.com/docmill/docmill/internal/analysis"
	"github.com/docmill/docmill/internal/extract"
	"github.com/docmill/docmill/internal/inference"
	"github.com/docmill/docmill/internal/models"
	"github.com/docmill/docmill/internal/ocr"
)

// Config represents the complete configuration for the docmill application.
// It covers all commands (extract, analyze, export) and supports loading from
// configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	ModelsDir string `mapstructure:"models_dir" yaml:"models_dir" json:"models_dir"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" json:"log_format"`
	Verbose   bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Document extraction settings
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract" json:"extract"`

	// OCR settings for embedded images
	OCR OCRConfig `mapstructure:"ocr" yaml:"ocr" json:"ocr"`

	// ONNX Runtime settings for the analysis models
	ONNX ONNXConfig `mapstructure:"onnx" yaml:"onnx" json:"onnx"`
}

// ExtractConfig contains extraction engine settings.
type ExtractConfig struct {
	// MaxFileSize limits input size in bytes. Zero means unlimited.
	MaxFileSize int64 `mapstructure:"max_file_size" yaml:"max_file_size" json:"max_file_size"`
}

// OCRConfig contains settings for OCR over embedded images.
type OCRConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Languages string `mapstructure:"languages" yaml:"languages" json:"languages"`
}

// ONNXConfig contains ONNX Runtime settings.
type ONNXConfig struct {
	LibraryPath string `mapstructure:"library_path" yaml:"library_path" json:"library_path"`
	NumThreads  int    `mapstructure:"num_threads" yaml:"num_threads" json:"num_threads"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ModelsDir: models.DefaultModelsDir,
		LogLevel:  "info",
		LogFormat: "json",
		Verbose:   false,
		Extract: ExtractConfig{
			MaxFileSize: 0,
		},
		OCR: OCRConfig{
			Enabled:   true,
			Languages: "eng",
		},
		ONNX: ONNXConfig{
			LibraryPath: "",
			NumThreads:  0,
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if c.LogFormat != "" && !contains(validLogFormats, c.LogFormat) {
		return fmt.Errorf("invalid log format: %s (must be one of: %s)", c.LogFormat, strings.Join(validLogFormats, ", "))
	}

	if c.Extract.MaxFileSize < 0 {
		return fmt.Errorf("invalid max file size: %d (must not be negative)", c.Extract.MaxFileSize)
	}

	if c.OCR.Enabled && strings.TrimSpace(c.OCR.Languages) == "" {
		return fmt.Errorf("ocr languages must not be empty when OCR is enabled")
	}

	if c.ONNX.NumThreads < 0 {
		return fmt.Errorf("invalid onnx num threads: %d (must not be negative)", c.ONNX.NumThreads)
	}

	return nil
}

// ToExtractConfig converts the config to the extraction engine configuration.
func (c *Config) ToExtractConfig() extract.Config {
	return extract.Config{
		MaxFileSize: c.Extract.MaxFileSize,
		OCR: ocr.Config{
			Enabled:   c.OCR.Enabled,
			Languages: splitLanguages(c.OCR.Languages),
		},
	}
}

// ToAnalysisConfig converts the config to the analysis engine configuration.
func (c *Config) ToAnalysisConfig() analysis.Config {
	return analysis.Config{
		ModelsDir: c.ModelsDir,
		Runtime: inference.RuntimeConfig{
			LibraryPath: c.ONNX.LibraryPath,
			NumThreads:  c.ONNX.NumThreads,
		},
	}
}

// splitLanguages splits a comma-separated language list into clean codes.
func splitLanguages(s string) []string {
	parts := strings.Split(s, ",")
	langs := make([]string, 0, len(parts))
	for _, p := range parts {
		if lang := strings.TrimSpace(p); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
