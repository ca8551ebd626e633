// Package models holds the request and response types of the HTTP API.
package models

import "fmt"

// EmbedRequest asks for one embedding per text.
type EmbedRequest struct {
	Texts []string `json:"texts"`
}

// Validate rejects a request with no texts; per-text validation (blank
// strings) is left to the inference service so API and library callers get
// identical errors.
func (r *EmbedRequest) Validate() error {
	if len(r.Texts) == 0 {
		return fmt.Errorf("texts cannot be empty")
	}
	return nil
}

// EmbedResponse carries index-aligned embeddings for the request's texts.
type EmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Dimensions int         `json:"dimensions"`
}

// RerankRequest asks for documents reordered by relevance to the query.
type RerankRequest struct {
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

// RerankResponse carries parallel slices: Documents[i] scored Scores[i],
// ordered by descending score. Both are empty when fewer than two documents
// were submitted.
type RerankResponse struct {
	Documents []string  `json:"documents"`
	Scores    []float64 `json:"scores"`
}

// SummarizeRequest asks for a query-conditioned summary of text.
type SummarizeRequest struct {
	Query string `json:"query"`
	Text  string `json:"text"`
}

// SummarizeResponse carries the single generated summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}
