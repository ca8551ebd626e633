// Package reranking provides cross-encoder relevance scoring backends for the
// inference service.
package reranking

import "context"

// Reranker scores (query, document) pairs with a learned relevance model.
// Score returns one score per document, index-aligned with documents; it does
// not reorder anything. Implementations are safe for concurrent use.
type Reranker interface {
	Score(ctx context.Context, query string, documents []string) ([]float64, error)
	Close() error
}
