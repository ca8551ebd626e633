// Package inference is the model-inference service: it owns the embedding,
// reranking, and summarization model handles, validates inputs, and keeps
// blocking model calls on a bounded worker pool.
package inference

import (
	"context"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hyperjump/suiron/internal/embedding"
	"github.com/hyperjump/suiron/internal/metrics"
	"github.com/hyperjump/suiron/internal/reranking"
	"github.com/hyperjump/suiron/internal/summarizing"
	"github.com/hyperjump/suiron/pkg/utils"
)

// MaxSummaryInputChars bounds the source text accepted by Summarize,
// measured in characters, not tokens.
const MaxSummaryInputChars = 4096

// summaryLabel prefixes the query when building the summarizer input.
const summaryLabel = "**Query: %s\n\n**%s"

// Service validates inputs and dispatches inference to the three model
// handles. All three handles are constructed once at startup and are
// read-only afterwards; Service itself is stateless across calls.
type Service struct {
	embedder   embedding.Embedder
	reranker   reranking.Reranker
	summarizer summarizing.Summarizer
	pool       *Pool
	logger     *zap.Logger
}

// NewService wires the three model handles and the worker pool together.
func NewService(
	embedder embedding.Embedder,
	reranker reranking.Reranker,
	summarizer summarizing.Summarizer,
	pool *Pool,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		embedder:   embedder,
		reranker:   reranker,
		summarizer: summarizer,
		pool:       pool,
		logger:     logger,
	}
}

// Embed produces one embedding vector per text, index-aligned with texts.
// The whole batch fails if any single text fails; there are no partial
// results.
func (s *Service) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	if len(texts) == 0 {
		metrics.Observe("embed", "invalid_input", time.Since(start).Seconds())
		return nil, invalidInputf("texts must be a non-empty list of non-empty strings")
	}
	for i, text := range texts {
		if utils.IsBlank(text) {
			metrics.Observe("embed", "invalid_input", time.Since(start).Seconds())
			return nil, invalidInputf("text at index %d is empty or whitespace-only", i)
		}
	}

	s.logger.Info("generating embeddings", zap.Int("count", len(texts)))
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		metrics.Observe("embed", "error", time.Since(start).Seconds())
		return nil, wrapInference("embed", err)
	}
	metrics.Observe("embed", "ok", time.Since(start).Seconds())
	return vectors, nil
}

// Rerank scores every (query, document) pair and returns the documents
// reordered by descending score together with the parallel score slice.
// Fewer than two documents yields an empty result and a warning, not an
// error; relative order of tied scores is unspecified.
func (s *Service) Rerank(ctx context.Context, query string, documents []string) ([]string, []float64, error) {
	start := time.Now()
	if utils.IsBlank(query) {
		metrics.Observe("rerank", "invalid_input", time.Since(start).Seconds())
		return nil, nil, invalidInputf("query must be a non-empty string")
	}
	if len(documents) == 0 {
		s.logger.Warn("received empty documents list for reranking")
		metrics.Observe("rerank", "empty", time.Since(start).Seconds())
		return []string{}, []float64{}, nil
	}
	if len(documents) < 2 {
		// A single document is treated as insufficient to rank and yields an
		// empty result rather than a trivial one-element ranking.
		s.logger.Warn("too few documents for reranking", zap.Int("count", len(documents)))
		metrics.Observe("rerank", "empty", time.Since(start).Seconds())
		return []string{}, []float64{}, nil
	}

	s.logger.Info("reranking documents",
		zap.Int("count", len(documents)),
		zap.String("query", utils.Truncate(query, 200)),
	)
	scores, err := s.reranker.Score(ctx, query, documents)
	if err != nil {
		metrics.Observe("rerank", "error", time.Since(start).Seconds())
		return nil, nil, wrapInference("rerank", err)
	}
	if len(scores) != len(documents) {
		metrics.Observe("rerank", "error", time.Since(start).Seconds())
		return nil, nil, wrapInference("rerank",
			fmt.Errorf("model returned %d scores for %d documents", len(scores), len(documents)))
	}

	order := make([]int, len(documents))
	for i := range order {
		order[i] = i
	}
	// sort.Slice is not stable; ties keep no particular order.
	sort.Slice(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	rankedDocs := make([]string, len(order))
	rankedScores := make([]float64, len(order))
	for i, idx := range order {
		rankedDocs[i] = documents[idx]
		rankedScores[i] = scores[idx]
	}
	metrics.Observe("rerank", "ok", time.Since(start).Seconds())
	return rankedDocs, rankedScores, nil
}

// Summarize produces a single query-conditioned summary of text.
// Preconditions are checked in order: text non-blank, query non-blank, text
// at most MaxSummaryInputChars characters.
func (s *Service) Summarize(ctx context.Context, query, text string) (string, error) {
	start := time.Now()
	if utils.IsBlank(text) {
		metrics.Observe("summarize", "invalid_input", time.Since(start).Seconds())
		return "", invalidInputf("input text must be a non-empty string")
	}
	if utils.IsBlank(query) {
		metrics.Observe("summarize", "invalid_input", time.Since(start).Seconds())
		return "", invalidInputf("query must be a non-empty string")
	}
	// The bound is measured in characters, not bytes, so multibyte text is
	// not penalized.
	textLen := utf8.RuneCountInString(text)
	if textLen > MaxSummaryInputChars {
		metrics.Observe("summarize", "invalid_input", time.Since(start).Seconds())
		return "", invalidInputf("input text exceeds the maximum length of %d characters", MaxSummaryInputChars)
	}

	s.logger.Info("summarizing text", zap.Int("length", textLen))
	summary, err := s.summarizer.Summarize(ctx, fmt.Sprintf(summaryLabel, query, text))
	if err != nil {
		metrics.Observe("summarize", "error", time.Since(start).Seconds())
		return "", wrapInference("summarize", err)
	}
	metrics.Observe("summarize", "ok", time.Since(start).Seconds())
	return summary, nil
}

// EmbedTexts runs Embed on the worker pool. It is safe to call from many
// goroutines; the caller blocks only on the pool, never on model code in its
// own goroutine.
func (s *Service) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	v, err := s.pool.Submit(ctx, "embed", func() (interface{}, error) {
		return s.Embed(ctx, texts)
	})
	if err != nil {
		return nil, err
	}
	return v.([][]float32), nil
}

// RerankDocuments runs Rerank on the worker pool.
func (s *Service) RerankDocuments(ctx context.Context, query string, documents []string) ([]string, []float64, error) {
	type rerankResult struct {
		docs   []string
		scores []float64
	}
	v, err := s.pool.Submit(ctx, "rerank", func() (interface{}, error) {
		docs, scores, err := s.Rerank(ctx, query, documents)
		if err != nil {
			return nil, err
		}
		return rerankResult{docs: docs, scores: scores}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	res := v.(rerankResult)
	return res.docs, res.scores, nil
}

// SummarizeText runs Summarize on the worker pool.
func (s *Service) SummarizeText(ctx context.Context, query, text string) (string, error) {
	v, err := s.pool.Submit(ctx, "summarize", func() (interface{}, error) {
		return s.Summarize(ctx, query, text)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Close releases the three model handles and stops the pool.
func (s *Service) Close() error {
	s.pool.Close()
	var firstErr error
	for _, c := range []interface{ Close() error }{s.embedder, s.reranker, s.summarizer} {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
