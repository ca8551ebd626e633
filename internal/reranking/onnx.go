//go:build cgo
// +build cgo

// ONNX cross-encoder reranking (requires CGO and the onnxruntime library).
package reranking

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/hyperjump/suiron/internal/tokenizer"
	"github.com/hyperjump/suiron/pkg/utils"
)

// ONNXReranker runs a sequence-classification cross-encoder through ONNX
// Runtime. Each (query, document) pair is encoded as a single sequence with
// BERT segment IDs and scored by the model's single output logit, squashed
// through a sigmoid into (0, 1).
type ONNXReranker struct {
	session   *ort.AdvancedSession
	tokenizer tokenizer.Tokenizer
	maxTokens int
	// Pre-allocated tensors; the session is serialized by mu, one pair per Run.
	inputIDsTensor      *ort.Tensor[int64]
	attentionMaskTensor *ort.Tensor[int64]
	tokenTypeIDsTensor  *ort.Tensor[int64]
	logitsTensor        *ort.Tensor[float32]
	mu                  sync.Mutex
}

// NewONNXReranker creates a cross-encoder reranker for the model at modelPath.
func NewONNXReranker(modelPath string, tok tokenizer.Tokenizer, maxTokens int) (*ONNXReranker, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
	}

	enc := tok.EncodePair("", "", maxTokens)

	inputIDsTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxTokens)), enc.InputIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create input_ids tensor: %w", err)
	}
	attentionMaskTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxTokens)), enc.AttentionMask)
	if err != nil {
		inputIDsTensor.Destroy()
		return nil, fmt.Errorf("failed to create attention_mask tensor: %w", err)
	}
	tokenTypeIDsTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxTokens)), enc.TokenTypeIDs)
	if err != nil {
		inputIDsTensor.Destroy()
		attentionMaskTensor.Destroy()
		return nil, fmt.Errorf("failed to create token_type_ids tensor: %w", err)
	}
	logitsTensor, err := ort.NewTensor(ort.NewShape(1, 1), make([]float32, 1))
	if err != nil {
		inputIDsTensor.Destroy()
		attentionMaskTensor.Destroy()
		tokenTypeIDsTensor.Destroy()
		return nil, fmt.Errorf("failed to create logits tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"logits"},
		[]ort.ArbitraryTensor{inputIDsTensor, attentionMaskTensor, tokenTypeIDsTensor},
		[]ort.ArbitraryTensor{logitsTensor},
		nil,
	)
	if err != nil {
		inputIDsTensor.Destroy()
		attentionMaskTensor.Destroy()
		tokenTypeIDsTensor.Destroy()
		logitsTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXReranker{
		session:             session,
		tokenizer:           tok,
		maxTokens:           maxTokens,
		inputIDsTensor:      inputIDsTensor,
		attentionMaskTensor: attentionMaskTensor,
		tokenTypeIDsTensor:  tokenTypeIDsTensor,
		logitsTensor:        logitsTensor,
	}, nil
}

// Score scores every (query, document) pair. Any pair failure fails the call.
func (r *ONNXReranker) Score(ctx context.Context, query string, documents []string) ([]float64, error) {
	scores := make([]float64, len(documents))
	for i, doc := range documents {
		score, err := r.scorePair(query, doc)
		if err != nil {
			return nil, err
		}
		scores[i] = score
	}
	return scores, nil
}

func (r *ONNXReranker) scorePair(query, document string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	enc := r.tokenizer.EncodePair(query, document, r.maxTokens)
	copy(r.inputIDsTensor.GetData(), enc.InputIDs)
	copy(r.attentionMaskTensor.GetData(), enc.AttentionMask)
	copy(r.tokenTypeIDsTensor.GetData(), enc.TokenTypeIDs)

	if err := r.session.Run(); err != nil {
		return 0, fmt.Errorf("reranking inference failed: %w", err)
	}
	return utils.Sigmoid(float64(r.logitsTensor.GetData()[0])), nil
}

// Close destroys the session and tensors.
func (r *ONNXReranker) Close() error {
	var err error
	if r.session != nil {
		err = r.session.Destroy()
		r.session = nil
	}
	for _, t := range []*ort.Tensor[int64]{r.inputIDsTensor, r.attentionMaskTensor, r.tokenTypeIDsTensor} {
		if t != nil {
			_ = t.Destroy()
		}
	}
	r.inputIDsTensor, r.attentionMaskTensor, r.tokenTypeIDsTensor = nil, nil, nil
	if r.logitsTensor != nil {
		_ = r.logitsTensor.Destroy()
		r.logitsTensor = nil
	}
	return err
}
