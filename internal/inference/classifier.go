package inference

import (
	"errors"
	"fmt"

	onnxrt "github.com/yalue/onnxruntime_go"
)

// Output order of the binary sentiment head.
var sentimentLabels = []string{"NEGATIVE", "POSITIVE"}

// Token budget of the sentiment model.
const sentimentMaxTokens = 512

// Sentiment is one classified text with the winning label's probability.
type Sentiment struct {
	Label string
	Score float64
}

// TextClassifier scores text with the binary sentiment model.
type TextClassifier struct {
	session *Session
	tok     *WordPieceTokenizer
}

// NewTextClassifier loads the sentiment model.
func NewTextClassifier(modelPath string, tok *WordPieceTokenizer, rt RuntimeConfig) (*TextClassifier, error) {
	if tok == nil {
		return nil, errors.New("nil tokenizer")
	}
	session, err := NewSession(modelPath, rt)
	if err != nil {
		return nil, err
	}
	return &TextClassifier{session: session, tok: tok}, nil
}

// Close releases the session.
func (c *TextClassifier) Close() {
	if c.session != nil {
		c.session.Close()
		c.session = nil
	}
}

// Classify returns the winning sentiment label with its probability.
func (c *TextClassifier) Classify(text string) (Sentiment, error) {
	ids, mask := c.tok.EncodeWithSpecials(text, sentimentMaxTokens)
	n := int64(len(ids))

	inputIDs, err := NewInt64Tensor(ids, 1, n)
	if err != nil {
		return Sentiment{}, err
	}
	defer destroyValue(inputIDs)
	attention, err := NewInt64Tensor(mask, 1, n)
	if err != nil {
		return Sentiment{}, err
	}
	defer destroyValue(attention)

	outputs, cleanup, err := c.session.Run(map[string]onnxrt.Value{
		"input_ids":      inputIDs,
		"attention_mask": attention,
	})
	if err != nil {
		return Sentiment{}, err
	}
	defer cleanup()

	logits, shape, err := FloatOutput(outputs[0])
	if err != nil {
		return Sentiment{}, err
	}
	if len(logits) < len(sentimentLabels) {
		return Sentiment{}, fmt.Errorf("unexpected logits shape %v", shape)
	}

	probs := softmax(logits[:len(sentimentLabels)])
	idx := argmax(probs)
	return Sentiment{Label: sentimentLabels[idx], Score: probs[idx]}, nil
}
