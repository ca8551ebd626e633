//go:build cgo
// +build cgo

// ONNX-based embedding (requires CGO and the onnxruntime shared library).
package embedding

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/hyperjump/suiron/internal/tokenizer"
	"github.com/hyperjump/suiron/pkg/utils"
)

// ONNXEmbedder runs a transformer encoder through ONNX Runtime and mean-pools
// the last hidden state into a single L2-normalized vector per text.
type ONNXEmbedder struct {
	session    *ort.AdvancedSession
	tokenizer  tokenizer.Tokenizer
	cache      *Cache
	dimensions int
	maxTokens  int
	// Pre-allocated tensors for Run(); input data is overwritten per call and
	// the session is serialized by mu.
	inputIDsTensor      *ort.Tensor[int64]
	attentionMaskTensor *ort.Tensor[int64]
	tokenTypeIDsTensor  *ort.Tensor[int64]
	hiddenStateTensor   *ort.Tensor[float32]
	mu                  sync.Mutex
}

// NewONNXEmbedder creates an ONNX embedder for the model at modelPath.
// InitializeEnvironment is called if not already done.
func NewONNXEmbedder(modelPath string, tok tokenizer.Tokenizer, dimensions, maxTokens, cacheSize int) (*ONNXEmbedder, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
	}

	enc := tok.Encode("", maxTokens)

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
	hiddenData := make([]float32, maxTokens*dimensions)
	hiddenStateTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxTokens), int64(dimensions)), hiddenData)
	if err != nil {
		inputIDsTensor.Destroy()
		attentionMaskTensor.Destroy()
		tokenTypeIDsTensor.Destroy()
		return nil, fmt.Errorf("failed to create hidden state tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"},
		[]ort.ArbitraryTensor{inputIDsTensor, attentionMaskTensor, tokenTypeIDsTensor},
		[]ort.ArbitraryTensor{hiddenStateTensor},
		nil,
	)
	if err != nil {
		inputIDsTensor.Destroy()
		attentionMaskTensor.Destroy()
		tokenTypeIDsTensor.Destroy()
		hiddenStateTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	cache, err := NewCache(cacheSize)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to create embedding cache: %w", err)
	}

	return &ONNXEmbedder{
		session:             session,
		tokenizer:           tok,
		cache:               cache,
		dimensions:          dimensions,
		maxTokens:           maxTokens,
		inputIDsTensor:      inputIDsTensor,
		attentionMaskTensor: attentionMaskTensor,
		tokenTypeIDsTensor:  tokenTypeIDsTensor,
		hiddenStateTensor:   hiddenStateTensor,
	}, nil
}

// Embed returns the embedding for text, using the cache when available.
func (e *ONNXEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if cached, ok := e.cache.Get(text); ok {
		return cached, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	enc := e.tokenizer.Encode(text, e.maxTokens)
	copy(e.inputIDsTensor.GetData(), enc.InputIDs)
	copy(e.attentionMaskTensor.GetData(), enc.AttentionMask)
	copy(e.tokenTypeIDsTensor.GetData(), enc.TokenTypeIDs)

	if err := e.session.Run(); err != nil {
		return nil, fmt.Errorf("embedding inference failed: %w", err)
	}

	vec := utils.MeanPool(e.hiddenStateTensor.GetData(), enc.AttentionMask, e.dimensions)
	utils.NormalizeL2(vec)
	e.cache.Add(text, vec)
	return vec, nil
}

// EmbedBatch embeds each text in order; the result is index-aligned with texts.
func (e *ONNXEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// Dimensions returns the embedding dimension.
func (e *ONNXEmbedder) Dimensions() int {
	return e.dimensions
}

// Close destroys the session and tensors.
func (e *ONNXEmbedder) Close() error {
	var err error
	if e.session != nil {
		err = e.session.Destroy()
		e.session = nil
	}
	for _, t := range []*ort.Tensor[int64]{e.inputIDsTensor, e.attentionMaskTensor, e.tokenTypeIDsTensor} {
		if t != nil {
			_ = t.Destroy()
		}
	}
	e.inputIDsTensor, e.attentionMaskTensor, e.tokenTypeIDsTensor = nil, nil, nil
	if e.hiddenStateTensor != nil {
		_ = e.hiddenStateTensor.Destroy()
		e.hiddenStateTensor = nil
	}
	return err
}
