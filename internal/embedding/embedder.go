// Package embedding provides local text embedding backends for the inference
// service: an ONNX transformer (requires CGO) and a deterministic mock.
package embedding

import "context"

// Embedder produces vector embeddings for text. Implementations are safe for
// concurrent use and treat model weights as read-only after construction.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
