package ocr

// Mock is a canned Engine for tests and for exercising the pipeline
// without a Tesseract installation.
type Mock struct {
	Tokens []Token
	Err    error
}

// Recognize returns the canned tokens or error regardless of input.
func (m *Mock) Recognize([]byte) ([]Token, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tokens, nil
}
