package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/suiron/internal/config"
	"github.com/hyperjump/suiron/internal/embedding"
	"github.com/hyperjump/suiron/internal/inference"
	"github.com/hyperjump/suiron/internal/models"
	"github.com/hyperjump/suiron/internal/reranking"
	"github.com/hyperjump/suiron/internal/summarizing"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	pool := inference.NewPool(2, 8, nil)
	svc := inference.NewService(
		embedding.NewMockEmbedder(16),
		&reranking.MockReranker{},
		summarizing.NewMockSummarizer(30, 150),
		pool,
		nil,
	)
	t.Cleanup(func() { _ = svc.Close() })
	srv := NewServer(svc, &config.ServerConfig{Host: "localhost", Port: 0}, zap.NewNop())
	return srv.Router()
}

func doJSON(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleEmbed(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, "/api/v1/embed", models.EmbedRequest{Texts: []string{"hello world"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp models.EmbedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Embeddings) != 1 || resp.Dimensions != 16 {
		t.Errorf("got %d embeddings of dim %d", len(resp.Embeddings), resp.Dimensions)
	}
}

func TestHandleEmbedInvalidInput(t *testing.T) {
	h := newTestServer(t)
	if rec := doJSON(t, h, "/api/v1/embed", models.EmbedRequest{}); rec.Code != http.StatusBadRequest {
		t.Errorf("empty texts: status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, h, "/api/v1/embed", models.EmbedRequest{Texts: []string{"  "}}); rec.Code != http.StatusBadRequest {
		t.Errorf("blank text: status = %d, want 400", rec.Code)
	}
}

func TestHandleEmbedMalformedBody(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/embed", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleRerank(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, "/api/v1/rerank", models.RerankRequest{
		Query:     "capital of France",
		Documents: []string{"Bananas are yellow.", "Paris is the capital of France."},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp models.RerankResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Documents) != 2 || len(resp.Scores) != 2 {
		t.Fatalf("got %d/%d results", len(resp.Documents), len(resp.Scores))
	}
	if resp.Documents[0] != "Paris is the capital of France." {
		t.Errorf("top document = %q", resp.Documents[0])
	}
}

func TestHandleRerankDegenerateInputsAreNotErrors(t *testing.T) {
	h := newTestServer(t)
	for _, docs := range [][]string{nil, {"single document"}} {
		rec := doJSON(t, h, "/api/v1/rerank", models.RerankRequest{Query: "q", Documents: docs})
		if rec.Code != http.StatusOK {
			t.Fatalf("docs %v: status = %d, want 200", docs, rec.Code)
		}
		var resp models.RerankResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Documents) != 0 || len(resp.Scores) != 0 {
			t.Errorf("docs %v: expected empty result, got %v", docs, resp)
		}
	}
}

func TestHandleRerankBlankQuery(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, "/api/v1/rerank", models.RerankRequest{Query: " ", Documents: []string{"a", "b"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSummarize(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, "/api/v1/summarize", models.SummarizeRequest{
		Query: "What is RL?",
		Text:  "Reinforcement learning is a machine learning paradigm based on rewards.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp models.SummarizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Summary == "" {
		t.Error("summary should be non-empty")
	}
}

func TestHandleSummarizeInvalidInput(t *testing.T) {
	h := newTestServer(t)
	cases := []models.SummarizeRequest{
		{Query: "q", Text: ""},
		{Query: "", Text: "some text"},
		{Query: "q", Text: string(make([]byte, inference.MaxSummaryInputChars+1))},
	}
	for _, req := range cases {
		if rec := doJSON(t, h, "/api/v1/summarize", req); rec.Code != http.StatusBadRequest {
			t.Errorf("req %+v: status = %d, want 400", req, rec.Code)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
