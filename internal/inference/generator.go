package inference

import (
	"errors"
	"fmt"
	"strings"

	onnxrt "github.com/yalue/onnxruntime_go"
)

// GenerateConfig bounds greedy sequence generation.
type GenerateConfig struct {
	// MaxLength caps the generated sequence, special tokens included.
	MaxLength int
	// MinLength keeps the end-of-sequence token suppressed until the
	// sequence reaches this many tokens.
	MinLength int
	// MaxInputTokens truncates the encoder input.
	MaxInputTokens int
}

// DefaultGenerateConfig returns the generation bounds used for
// summarization.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		MaxLength:      150,
		MinLength:      40,
		MaxInputTokens: 1024,
	}
}

// Generator runs greedy decoding over an encoder/decoder ONNX pair.
type Generator struct {
	encoder *Session
	decoder *Session
	tok     *BPETokenizer
	cfg     GenerateConfig
}

// NewGenerator loads the encoder and decoder models.
func NewGenerator(encoderPath, decoderPath string, tok *BPETokenizer, cfg GenerateConfig, rt RuntimeConfig) (*Generator, error) {
	if tok == nil {
		return nil, errors.New("nil tokenizer")
	}
	encoder, err := NewSession(encoderPath, rt)
	if err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}
	decoder, err := NewSession(decoderPath, rt)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("decoder: %w", err)
	}
	return &Generator{encoder: encoder, decoder: decoder, tok: tok, cfg: cfg}, nil
}

// Close releases both sessions.
func (g *Generator) Close() {
	if g.encoder != nil {
		g.encoder.Close()
		g.encoder = nil
	}
	if g.decoder != nil {
		g.decoder.Close()
		g.decoder = nil
	}
}

// Generate produces a greedy summary of the text. The decoder is re-run
// over the whole prefix each step, which the plain decoder export expects.
func (g *Generator) Generate(text string) (string, error) {
	ids, mask := g.tok.EncodeWithSpecials(text, g.cfg.MaxInputTokens)
	n := int64(len(ids))

	inputIDs, err := NewInt64Tensor(ids, 1, n)
	if err != nil {
		return "", err
	}
	defer destroyValue(inputIDs)
	attention, err := NewInt64Tensor(mask, 1, n)
	if err != nil {
		return "", err
	}
	defer destroyValue(attention)

	encOutputs, encCleanup, err := g.encoder.Run(map[string]onnxrt.Value{
		"input_ids":      inputIDs,
		"attention_mask": attention,
	})
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	defer encCleanup()

	hiddenData, hiddenShape, err := FloatOutput(encOutputs[0])
	if err != nil {
		return "", err
	}
	hidden, err := NewFloatTensor(hiddenData, hiddenShape...)
	if err != nil {
		return "", err
	}
	defer destroyValue(hidden)

	// The decoder sequence starts with eos then the forced bos, the
	// convention of BART-style summarizers.
	generated := []int64{g.tok.EOS(), g.tok.BOS()}
	for len(generated) < g.cfg.MaxLength {
		next, err := g.nextToken(generated, attention, hidden)
		if err != nil {
			return "", err
		}
		generated = append(generated, next)
		if next == g.tok.EOS() {
			break
		}
	}

	return strings.TrimSpace(g.tok.Decode(generated, true)), nil
}

// nextToken runs one decoder step over the generated prefix and picks the
// next token greedily.
func (g *Generator) nextToken(generated []int64, attention, hidden onnxrt.Value) (int64, error) {
	decoderIDs, err := NewInt64Tensor(generated, 1, int64(len(generated)))
	if err != nil {
		return 0, err
	}
	defer destroyValue(decoderIDs)

	outputs, cleanup, err := g.decoder.Run(map[string]onnxrt.Value{
		"input_ids":              decoderIDs,
		"encoder_attention_mask": attention,
		"encoder_hidden_states":  hidden,
	})
	if err != nil {
		return 0, fmt.Errorf("decode step %d: %w", len(generated), err)
	}
	defer cleanup()

	logits, shape, err := FloatOutput(outputs[0])
	if err != nil {
		return 0, err
	}
	vocab := int(shape[len(shape)-1])
	if vocab <= 0 || len(logits) < vocab {
		return 0, fmt.Errorf("unexpected logits shape %v", shape)
	}
	last := logits[len(logits)-vocab:]

	suppress := int64(-1)
	if len(generated) < g.cfg.MinLength {
		suppress = g.tok.EOS()
	}
	return greedyPick(last, suppress), nil
}

// greedyPick returns the index of the largest logit, skipping the
// suppressed token id when given.
func greedyPick(logits []float32, suppress int64) int64 {
	best := int64(-1)
	var bestVal float32
	for i, v := range logits {
		if int64(i) == suppress {
			continue
		}
		if best < 0 || v > bestVal {
			best = int64(i)
			bestVal = v
		}
	}
	return best
}
