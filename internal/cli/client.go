// Package cli provides the HTTP client and output helpers for the Suiron CLI.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hyperjump/suiron/internal/models"
)

// Client talks to a running Suiron server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL (e.g. "http://localhost:8080").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

// Embed requests embeddings for texts.
func (c *Client) Embed(texts []string) (*models.EmbedResponse, error) {
	var resp models.EmbedResponse
	if err := c.post("/api/v1/embed", models.EmbedRequest{Texts: texts}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Rerank requests documents reordered by relevance to query.
func (c *Client) Rerank(query string, documents []string) (*models.RerankResponse, error) {
	var resp models.RerankResponse
	if err := c.post("/api/v1/rerank", models.RerankRequest{Query: query, Documents: documents}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Summarize requests a query-conditioned summary of text.
func (c *Client) Summarize(query, text string) (*models.SummarizeResponse, error) {
	var resp models.SummarizeResponse
	if err := c.post("/api/v1/summarize", models.SummarizeRequest{Query: query, Text: text}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(path string, request, response interface{}) error {
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	httpResp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed (is the server running?): %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(httpResp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", httpResp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", httpResp.StatusCode)
	}
	if err := json.NewDecoder(httpResp.Body).Decode(response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
