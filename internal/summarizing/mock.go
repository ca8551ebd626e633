package summarizing

import (
	"context"

	"github.com/hyperjump/suiron/internal/tokenizer"
)

// MockSummarizer is a deterministic summarizer for tests. It returns the
// leading words of the input, padded by cycling when the input is shorter
// than the minimum length, so results respect the same word-count bounds the
// real backend enforces on tokens.
type MockSummarizer struct {
	MinWords int
	MaxWords int
	// Err, when set, is returned by every Summarize call.
	Err error
}

// NewMockSummarizer returns a mock with the given word-count bounds.
func NewMockSummarizer(minWords, maxWords int) *MockSummarizer {
	if minWords <= 0 {
		minWords = 30
	}
	if maxWords <= minWords {
		maxWords = 150
	}
	return &MockSummarizer{MinWords: minWords, MaxWords: maxWords}
}

// Summarize returns a bounded extract of the input.
func (m *MockSummarizer) Summarize(ctx context.Context, input string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	words := tokenizer.SplitWords(input)
	if len(words) == 0 {
		words = []string{"empty"}
	}
	var out []string
	for len(out) < m.MinWords {
		out = append(out, words[len(out)%len(words)])
	}
	if len(words) > len(out) {
		out = words
	}
	if len(out) > m.MaxWords {
		out = out[:m.MaxWords]
	}
	var b []byte
	for i, w := range out {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, w...)
	}
	return string(b), nil
}

// Close is a no-op for MockSummarizer.
func (m *MockSummarizer) Close() error {
	return nil
}
