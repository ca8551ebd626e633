//go:build !cgo
// +build !cgo

package reranking

import (
	"context"
	"errors"

	"github.com/hyperjump/suiron/internal/tokenizer"
)

var errNoCGO = errors.New("ONNX reranker requires CGO; build with CGO_ENABLED=1 and onnxruntime")

// ONNXReranker stub type when built without CGO (see onnx.go for the real implementation).
type ONNXReranker struct{}

// NewONNXReranker returns an error when built without CGO (ONNX not available).
func NewONNXReranker(_ string, _ tokenizer.Tokenizer, _ int) (*ONNXReranker, error) {
	return nil, errNoCGO
}

func (r *ONNXReranker) Score(context.Context, string, []string) ([]float64, error) {
	return nil, errNoCGO
}

func (r *ONNXReranker) Close() error { return nil }
