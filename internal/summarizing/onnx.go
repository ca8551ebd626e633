//go:build cgo
// +build cgo

// ONNX encoder-decoder summarization (requires CGO and the onnxruntime library).
package summarizing

import (
	"context"
	"fmt"
	"math"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/hyperjump/suiron/internal/tokenizer"
	"github.com/hyperjump/suiron/pkg/utils"
)

// ONNXSummarizer runs a seq2seq model exported as two ONNX graphs: an encoder
// producing hidden states and a decoder producing next-token logits. Decoding
// is greedy (no sampling): the end-of-sequence token is suppressed until
// minLength tokens are generated and generation stops at maxLength.
//
// Decoder inputs grow every step, so both graphs run through dynamic sessions
// rather than the pre-allocated-tensor sessions the encoder-only backends use.
type ONNXSummarizer struct {
	encoder   *ort.DynamicAdvancedSession
	decoder   *ort.DynamicAdvancedSession
	vocab     *tokenizer.VocabTokenizer
	maxInput  int
	minLength int
	maxLength int
	mu        sync.Mutex
}

// NewONNXSummarizer creates a summarizer from an encoder and decoder model
// path plus the vocabulary used to decode generated IDs back into text.
func NewONNXSummarizer(encoderPath, decoderPath string, vocab *tokenizer.VocabTokenizer, maxInput, minLength, maxLength int) (*ONNXSummarizer, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
	}
	if minLength <= 0 || maxLength <= minLength {
		return nil, fmt.Errorf("invalid generation bounds: min %d, max %d", minLength, maxLength)
	}

	encoder, err := ort.NewDynamicAdvancedSession(
		encoderPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"last_hidden_state"},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder session: %w", err)
	}
	decoder, err := ort.NewDynamicAdvancedSession(
		decoderPath,
		[]string{"input_ids", "encoder_hidden_states", "encoder_attention_mask"},
		[]string{"logits"},
		nil,
	)
	if err != nil {
		_ = encoder.Destroy()
		return nil, fmt.Errorf("failed to create decoder session: %w", err)
	}

	return &ONNXSummarizer{
		encoder:   encoder,
		decoder:   decoder,
		vocab:     vocab,
		maxInput:  maxInput,
		minLength: minLength,
		maxLength: maxLength,
	}, nil
}

// Summarize encodes the input once and greedily decodes a single summary.
func (s *ONNXSummarizer) Summarize(ctx context.Context, input string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc := s.vocab.Encode(input, s.maxInput)
	hidden, mask, err := s.encode(enc)
	if err != nil {
		return "", err
	}
	defer hidden.Destroy()
	defer mask.Destroy()

	generated, err := s.decodeGreedy(hidden, mask)
	if err != nil {
		return "", err
	}
	return s.vocab.Decode(generated), nil
}

// encode runs the encoder and returns the hidden state tensor plus the
// attention mask tensor reused by every decoder step. The caller owns both.
func (s *ONNXSummarizer) encode(enc tokenizer.Encoding) (*ort.Tensor[float32], *ort.Tensor[int64], error) {
	seqLen := int64(len(enc.InputIDs))
	inputIDs, err := ort.NewTensor(ort.NewShape(1, seqLen), enc.InputIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create encoder input tensor: %w", err)
	}
	defer inputIDs.Destroy()
	mask, err := ort.NewTensor(ort.NewShape(1, seqLen), enc.AttentionMask)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create encoder mask tensor: %w", err)
	}

	outputs := []ort.Value{nil}
	if err := s.encoder.Run([]ort.Value{inputIDs, mask}, outputs); err != nil {
		mask.Destroy()
		return nil, nil, fmt.Errorf("summarization encoder failed: %w", err)
	}
	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		mask.Destroy()
		outputs[0].Destroy()
		return nil, nil, fmt.Errorf("encoder returned unexpected output type %T", outputs[0])
	}
	return hidden, mask, nil
}

// decodeGreedy generates token IDs one step at a time until end-of-sequence
// or maxLength. The returned slice excludes the decoder start token.
func (s *ONNXSummarizer) decodeGreedy(hidden *ort.Tensor[float32], mask *ort.Tensor[int64]) ([]int64, error) {
	decoded := []int64{tokenizer.ClsID}
	for step := 0; step < s.maxLength; step++ {
		next, err := s.nextToken(decoded, hidden, mask, step+1 >= s.minLength)
		if err != nil {
			return nil, err
		}
		if next == tokenizer.SepID {
			break
		}
		decoded = append(decoded, next)
	}
	return decoded[1:], nil
}

func (s *ONNXSummarizer) nextToken(decoded []int64, hidden *ort.Tensor[float32], mask *ort.Tensor[int64], allowEOS bool) (int64, error) {
	ids := make([]int64, len(decoded))
	copy(ids, decoded)
	decInput, err := ort.NewTensor(ort.NewShape(1, int64(len(ids))), ids)
	if err != nil {
		return 0, fmt.Errorf("failed to create decoder input tensor: %w", err)
	}
	defer decInput.Destroy()

	outputs := []ort.Value{nil}
	if err := s.decoder.Run([]ort.Value{decInput, hidden, mask}, outputs); err != nil {
		return 0, fmt.Errorf("summarization decoder failed: %w", err)
	}
	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		outputs[0].Destroy()
		return 0, fmt.Errorf("decoder returned unexpected output type %T", outputs[0])
	}
	defer logitsTensor.Destroy()

	// logits shape is [1, steps, vocab]; score the last step only.
	shape := logitsTensor.GetShape()
	vocabSize := int(shape[len(shape)-1])
	data := logitsTensor.GetData()
	if len(data) < vocabSize {
		return 0, fmt.Errorf("decoder logits too short: %d values for vocab %d", len(data), vocabSize)
	}
	last := make([]float32, vocabSize)
	copy(last, data[len(data)-vocabSize:])
	if !allowEOS && int(tokenizer.SepID) < vocabSize {
		last[tokenizer.SepID] = -math.MaxFloat32
	}
	return int64(utils.ArgMax(last)), nil
}

// Close destroys both sessions.
func (s *ONNXSummarizer) Close() error {
	var err error
	if s.encoder != nil {
		err = s.encoder.Destroy()
		s.encoder = nil
	}
	if s.decoder != nil {
		if derr := s.decoder.Destroy(); err == nil {
			err = derr
		}
		s.decoder = nil
	}
	return err
}
