//go:build !cgo
// +build !cgo

package summarizing

import (
	"context"
	"errors"

	"github.com/hyperjump/suiron/internal/tokenizer"
)

var errNoCGO = errors.New("ONNX summarizer requires CGO; build with CGO_ENABLED=1 and onnxruntime")

// ONNXSummarizer stub type when built without CGO (see onnx.go for the real implementation).
type ONNXSummarizer struct{}

// NewONNXSummarizer returns an error when built without CGO (ONNX not available).
func NewONNXSummarizer(_, _ string, _ *tokenizer.VocabTokenizer, _, _, _ int) (*ONNXSummarizer, error) {
	return nil, errNoCGO
}

func (s *ONNXSummarizer) Summarize(context.Context, string) (string, error) { return "", errNoCGO }

func (s *ONNXSummarizer) Close() error { return nil }
