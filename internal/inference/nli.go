package inference

import (
	"errors"
	"fmt"

	onnxrt "github.com/yalue/onnxruntime_go"
)

// Logit order of the NLI head: contradiction, neutral, entailment.
const entailmentIndex = 2

// Token budget of the NLI model.
const nliMaxTokens = 1024

// ZeroShot scores candidate labels against a text through natural language
// inference.
type ZeroShot struct {
	session *Session
	tok     *BPETokenizer
}

// NewZeroShot loads the NLI model.
func NewZeroShot(modelPath string, tok *BPETokenizer, rt RuntimeConfig) (*ZeroShot, error) {
	if tok == nil {
		return nil, errors.New("nil tokenizer")
	}
	session, err := NewSession(modelPath, rt)
	if err != nil {
		return nil, err
	}
	return &ZeroShot{session: session, tok: tok}, nil
}

// Close releases the session.
func (z *ZeroShot) Close() {
	if z.session != nil {
		z.session.Close()
		z.session = nil
	}
}

// Score returns one probability per label. Each label becomes the
// hypothesis "This example is {label}." and the entailment logits are
// softmaxed across all labels.
func (z *ZeroShot) Score(text string, labels []string) ([]float64, error) {
	if len(labels) == 0 {
		return nil, nil
	}

	entailments := make([]float32, len(labels))
	for i, label := range labels {
		hypothesis := fmt.Sprintf("This example is %s.", label)
		logit, err := z.entailmentLogit(text, hypothesis)
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", label, err)
		}
		entailments[i] = logit
	}
	return softmax(entailments), nil
}

func (z *ZeroShot) entailmentLogit(premise, hypothesis string) (float32, error) {
	ids, mask := z.tok.EncodePair(premise, hypothesis, nliMaxTokens)
	n := int64(len(ids))

	inputIDs, err := NewInt64Tensor(ids, 1, n)
	if err != nil {
		return 0, err
	}
	defer destroyValue(inputIDs)
	attention, err := NewInt64Tensor(mask, 1, n)
	if err != nil {
		return 0, err
	}
	defer destroyValue(attention)

	outputs, cleanup, err := z.session.Run(map[string]onnxrt.Value{
		"input_ids":      inputIDs,
		"attention_mask": attention,
	})
	if err != nil {
		return 0, err
	}
	defer cleanup()

	logits, shape, err := FloatOutput(outputs[0])
	if err != nil {
		return 0, err
	}
	if len(logits) <= entailmentIndex {
		return 0, fmt.Errorf("unexpected logits shape %v", shape)
	}
	return logits[entailmentIndex], nil
}
