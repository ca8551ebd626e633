package summarizing

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMockSummarizerBounds(t *testing.T) {
	m := NewMockSummarizer(5, 10)

	short, err := m.Summarize(context.Background(), "tiny input")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Fields(short)); n < 5 {
		t.Errorf("short input should be padded to min length, got %d words", n)
	}

	long, err := m.Summarize(context.Background(), strings.Repeat("word ", 100))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Fields(long)); n > 10 {
		t.Errorf("long input should be capped at max length, got %d words", n)
	}
}

func TestMockSummarizerError(t *testing.T) {
	sentinel := errors.New("boom")
	m := &MockSummarizer{MinWords: 1, MaxWords: 2, Err: sentinel}
	if _, err := m.Summarize(context.Background(), "anything"); !errors.Is(err, sentinel) {
		t.Errorf("expected scripted error, got %v", err)
	}
}
