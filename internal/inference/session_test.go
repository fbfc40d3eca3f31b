package inference

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionEmptyPath(t *testing.T) {
	_, err := NewSession("", RuntimeConfig{})
	assert.ErrorContains(t, err, "empty model path")
}

func TestNewSessionMissingModel(t *testing.T) {
	_, err := NewSession(filepath.Join(t.TempDir(), "missing.onnx"), RuntimeConfig{})
	assert.Error(t, err)
}

func TestNewGeneratorRequiresTokenizer(t *testing.T) {
	_, err := NewGenerator("enc.onnx", "dec.onnx", nil, DefaultGenerateConfig(), RuntimeConfig{})
	assert.ErrorContains(t, err, "nil tokenizer")
}

func TestNewGeneratorMissingModel(t *testing.T) {
	tok := newTestBPE(t)
	missing := filepath.Join(t.TempDir(), "encoder.onnx")

	_, err := NewGenerator(missing, missing, tok, DefaultGenerateConfig(), RuntimeConfig{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "encoder")
}

func TestNewZeroShotRequiresTokenizer(t *testing.T) {
	_, err := NewZeroShot("model.onnx", nil, RuntimeConfig{})
	assert.ErrorContains(t, err, "nil tokenizer")
}

func TestNewTextClassifierRequiresTokenizer(t *testing.T) {
	_, err := NewTextClassifier("model.onnx", nil, RuntimeConfig{})
	assert.ErrorContains(t, err, "nil tokenizer")
}

func TestDefaultGenerateConfig(t *testing.T) {
	cfg := DefaultGenerateConfig()
	assert.Equal(t, 150, cfg.MaxLength)
	assert.Equal(t, 40, cfg.MinLength)
	assert.Equal(t, 1024, cfg.MaxInputTokens)
}

func TestSoftmax(t *testing.T) {
	assert.Nil(t, softmax(nil))

	probs := softmax([]float32{0, 0})
	require.Len(t, probs, 2)
	assert.InDelta(t, 0.5, probs[0], 1e-9)
	assert.InDelta(t, 0.5, probs[1], 1e-9)

	probs = softmax([]float32{1, 2, 3})
	require.Len(t, probs, 3)
	var sum float64
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, probs[2], probs[1])
	assert.Greater(t, probs[1], probs[0])
}

func TestArgmax(t *testing.T) {
	assert.Equal(t, -1, argmax(nil))
	assert.Equal(t, 0, argmax([]float64{3, 1, 2}))
	assert.Equal(t, 2, argmax([]float64{1, 2, 5}))
}

func TestGreedyPick(t *testing.T) {
	logits := []float32{0.1, 5.0, 2.0}
	assert.Equal(t, int64(1), greedyPick(logits, -1))
	assert.Equal(t, int64(2), greedyPick(logits, 1))
}
