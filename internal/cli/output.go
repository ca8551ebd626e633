package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/suiron/internal/models"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteEmbedResult writes an embed response to w in the given format. Text
// output shows dimensions and a short vector preview rather than full vectors.
func WriteEmbedResult(w io.Writer, resp *models.EmbedResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	fmt.Fprintf(w, "%d embeddings, %d dimensions\n", len(resp.Embeddings), resp.Dimensions)
	for i, vec := range resp.Embeddings {
		preview := vec
		if len(preview) > 4 {
			preview = preview[:4]
		}
		fmt.Fprintf(w, "[%d] %v...\n", i, preview)
	}
	return nil
}

// WriteRerankResult writes a rerank response to w in the given format.
func WriteRerankResult(w io.Writer, resp *models.RerankResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	if len(resp.Documents) == 0 {
		fmt.Fprintln(w, "No documents ranked (need at least two).")
		return nil
	}
	for i, doc := range resp.Documents {
		fmt.Fprintf(w, "%2d. %.4f  %s\n", i+1, resp.Scores[i], doc)
	}
	return nil
}

// WriteSummarizeResult writes a summarize response to w in the given format.
func WriteSummarizeResult(w io.Writer, resp *models.SummarizeResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	fmt.Fprintln(w, resp.Summary)
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
