// Package summarizing provides abstractive summarization backends for the
// inference service.
package summarizing

import "context"

// Summarizer produces a single summary for the given input text. The input is
// the fully assembled prompt (label, query, and source text); generation
// bounds are fixed at construction. Implementations are safe for concurrent use.
type Summarizer interface {
	Summarize(ctx context.Context, input string) (string, error)
	Close() error
}
