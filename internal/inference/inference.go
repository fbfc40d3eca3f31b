// Package inference wraps ONNX Runtime sessions and the tokenizers the
// analysis models need: a byte-level BPE tokenizer for the seq2seq and NLI
// models and a WordPiece tokenizer for the sentiment classifier.
package inference

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	onnxrt "github.com/yalue/onnxruntime_go"
)

// RuntimeConfig holds ONNX Runtime settings shared by all sessions.
type RuntimeConfig struct {
	// LibraryPath points at the ONNX Runtime shared library. Empty means
	// discovery through the common system and project-relative locations.
	LibraryPath string
	// NumThreads caps intra-op parallelism. Zero keeps the runtime default.
	NumThreads int
}

// ensureRuntime makes the ONNX Runtime environment ready for session
// creation. Safe to call repeatedly; after the first successful
// initialization it is a no-op.
func ensureRuntime(cfg RuntimeConfig) error {
	if onnxrt.IsInitialized() {
		return nil
	}
	if err := setLibraryPath(cfg.LibraryPath); err != nil {
		return fmt.Errorf("onnx lib path: %w", err)
	}
	if err := onnxrt.InitializeEnvironment(); err != nil {
		return fmt.Errorf("init onnx: %w", err)
	}
	return nil
}

// setLibraryPath locates the ONNX Runtime shared library, preferring the
// configured path, then common system paths, then a project-relative
// onnxruntime/lib directory.
func setLibraryPath(configured string) error {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return err
		}
		onnxrt.SetSharedLibraryPath(configured)
		return nil
	}

	system := []string{
		"/usr/local/lib/libonnxruntime.so",
		"/usr/lib/libonnxruntime.so",
		"/opt/onnxruntime/cpu/lib/libonnxruntime.so",
	}
	for _, p := range system {
		if _, err := os.Stat(p); err == nil {
			onnxrt.SetSharedLibraryPath(p)
			return nil
		}
	}

	root, err := findProjectRoot()
	if err != nil {
		return err
	}
	libName, err := onnxLibName()
	if err != nil {
		return err
	}
	p := filepath.Join(root, "onnxruntime", "lib", libName)
	if _, err := os.Stat(p); err != nil {
		return fmt.Errorf("ONNX Runtime library not found at %s", p)
	}
	onnxrt.SetSharedLibraryPath(p)
	return nil
}

// onnxLibName returns the appropriate library filename for the current OS.
func onnxLibName() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return "libonnxruntime.so", nil
	case "darwin":
		return "libonnxruntime.dylib", nil
	case "windows":
		return "onnxruntime.dll", nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}

// findProjectRoot finds the project root directory by looking for go.mod.
func findProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root := cwd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root, nil
		}
		parent := filepath.Dir(root)
		if parent == root {
			return "", errors.New("could not find project root")
		}
		root = parent
	}
}
