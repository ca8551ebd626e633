package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hyperjump/suiron/internal/inference"
	"github.com/hyperjump/suiron/internal/models"
)

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	var req models.EmbedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("embed request", zap.Int("count", len(req.Texts)))

	embeddings, err := s.service.EmbedTexts(r.Context(), req.Texts)
	if err != nil {
		s.respondServiceError(w, "embedding failed", err)
		return
	}
	dims := 0
	if len(embeddings) > 0 {
		dims = len(embeddings[0])
	}
	s.respondJSON(w, http.StatusOK, models.EmbedResponse{
		Embeddings: embeddings,
		Dimensions: dims,
	})
}

func (s *Server) handleRerank(w http.ResponseWriter, r *http.Request) {
	var req models.RerankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("rerank request", zap.Int("documents", len(req.Documents)))

	// Degenerate inputs (no documents, a single document) come back as an
	// empty 200 response, not an error.
	docs, scores, err := s.service.RerankDocuments(r.Context(), req.Query, req.Documents)
	if err != nil {
		s.respondServiceError(w, "reranking failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, models.RerankResponse{
		Documents: docs,
		Scores:    scores,
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("summarize request", zap.Int("text_length", len(req.Text)))

	summary, err := s.service.SummarizeText(r.Context(), req.Query, req.Text)
	if err != nil {
		s.respondServiceError(w, "summarization failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, models.SummarizeResponse{Summary: summary})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondServiceError maps service errors onto HTTP statuses: precondition
// violations are the client's fault, everything else is a server failure.
func (s *Server) respondServiceError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, inference.ErrInvalidInput) {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error(msg, zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
