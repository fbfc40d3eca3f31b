package inference

import (
	"errors"
	"fmt"
	"math"
	"os"

	onnxrt "github.com/yalue/onnxruntime_go"
)

// Session wraps a dynamic ONNX session together with the model's declared
// input and output order, so callers can feed tensors by name.
type Session struct {
	sess    *onnxrt.DynamicAdvancedSession
	inputs  []onnxrt.InputOutputInfo
	outputs []onnxrt.InputOutputInfo
}

// NewSession loads a model and prepares a session for it. The runtime
// environment is initialized on first use.
func NewSession(modelPath string, rt RuntimeConfig) (*Session, error) {
	if modelPath == "" {
		return nil, errors.New("empty model path")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, err
	}
	if err := ensureRuntime(rt); err != nil {
		return nil, err
	}

	inputs, outputs, err := onnxrt.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("io info: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, fmt.Errorf("unexpected io (in:%d out:%d)", len(inputs), len(outputs))
	}

	opts, err := onnxrt.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session opts: %w", err)
	}
	defer func() {
		if err := opts.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying session options: %v\n", err)
		}
	}()
	if rt.NumThreads > 0 {
		_ = opts.SetIntraOpNumThreads(rt.NumThreads)
	}

	inputNames := make([]string, len(inputs))
	for i, in := range inputs {
		inputNames[i] = in.Name
	}
	outputNames := make([]string, len(outputs))
	for i, out := range outputs {
		outputNames[i] = out.Name
	}

	sess, err := onnxrt.NewDynamicAdvancedSession(modelPath, inputNames, outputNames, opts)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	return &Session{sess: sess, inputs: inputs, outputs: outputs}, nil
}

// Run executes the model with the given named feeds. The returned cleanup
// releases the output tensors and must be called once the outputs have been
// read.
func (s *Session) Run(feeds map[string]onnxrt.Value) ([]onnxrt.Value, func(), error) {
	inputs := make([]onnxrt.Value, len(s.inputs))
	for i, info := range s.inputs {
		v, ok := feeds[info.Name]
		if !ok {
			return nil, nil, fmt.Errorf("missing model input %q", info.Name)
		}
		inputs[i] = v
	}

	outputs := make([]onnxrt.Value, len(s.outputs))
	if err := s.sess.Run(inputs, outputs); err != nil {
		return nil, nil, fmt.Errorf("run: %w", err)
	}

	cleanup := func() {
		for _, o := range outputs {
			if o != nil {
				if err := o.Destroy(); err != nil {
					fmt.Fprintf(os.Stderr, "Error destroying output tensor: %v\n", err)
				}
			}
		}
	}
	return outputs, cleanup, nil
}

// Close releases the session.
func (s *Session) Close() {
	if s.sess != nil {
		if err := s.sess.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying session: %v\n", err)
		}
		s.sess = nil
	}
}

// NewInt64Tensor builds an int64 tensor, the shape given as trailing
// dimensions.
func NewInt64Tensor(data []int64, shape ...int64) (*onnxrt.Tensor[int64], error) {
	t, err := onnxrt.NewTensor(onnxrt.NewShape(shape...), data)
	if err != nil {
		return nil, fmt.Errorf("tensor: %w", err)
	}
	return t, nil
}

// NewFloatTensor builds a float32 tensor, the shape given as trailing
// dimensions.
func NewFloatTensor(data []float32, shape ...int64) (*onnxrt.Tensor[float32], error) {
	t, err := onnxrt.NewTensor(onnxrt.NewShape(shape...), data)
	if err != nil {
		return nil, fmt.Errorf("tensor: %w", err)
	}
	return t, nil
}

// FloatOutput reads a float32 output value's data and shape.
func FloatOutput(v onnxrt.Value) ([]float32, []int64, error) {
	t, ok := v.(*onnxrt.Tensor[float32])
	if !ok {
		return nil, nil, fmt.Errorf("unexpected output type %T", v)
	}
	return t.GetData(), t.GetShape(), nil
}

// destroyValue releases one tensor, reporting failures to stderr.
func destroyValue(v onnxrt.Value) {
	if v == nil {
		return
	}
	if err := v.Destroy(); err != nil {
		fmt.Fprintf(os.Stderr, "Error destroying tensor: %v\n", err)
	}
}

func softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}

	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}

	var sum float64
	probs := make([]float64, len(logits))
	for i, v := range logits {
		exp := math.Exp(float64(v - maxLogit))
		probs[i] = exp
		sum += exp
	}

	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func argmax(values []float64) int {
	if len(values) == 0 {
		return -1
	}

	maxIdx := 0
	maxVal := values[0]
	for i, v := range values[1:] {
		if v > maxVal {
			maxVal = v
			maxIdx = i + 1
		}
	}
	return maxIdx
}
