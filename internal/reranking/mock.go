package reranking

import (
	"context"
	"strings"

	"github.com/hyperjump/suiron/internal/tokenizer"
)

// MockReranker is a deterministic reranker for tests. It scores each document
// by the fraction of query words it contains, so documents that actually
// mention the query outrank unrelated ones.
type MockReranker struct {
	// Err, when set, is returned by every Score call.
	Err error
}

// Score returns lexical-overlap scores in [0, 1], index-aligned with documents.
func (m *MockReranker) Score(ctx context.Context, query string, documents []string) ([]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	queryWords := tokenizer.SplitWords(strings.ToLower(query))
	scores := make([]float64, len(documents))
	for i, doc := range documents {
		scores[i] = overlap(queryWords, strings.ToLower(doc))
	}
	return scores, nil
}

func overlap(queryWords []string, doc string) float64 {
	if len(queryWords) == 0 {
		return 0
	}
	hits := 0
	for _, w := range queryWords {
		if strings.Contains(doc, w) {
			hits++
		}
	}
	return float64(hits) / float64(len(queryWords))
}

// Close is a no-op for MockReranker.
func (m *MockReranker) Close() error {
	return nil
}
