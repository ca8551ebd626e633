// Package tokenizer produces token IDs for BERT-style models
// (input_ids, attention_mask, token_type_ids) shared by the embedding,
// reranking, and summarization backends.
package tokenizer

// Special token IDs following the BERT convention.
const (
	PadID int64 = 0
	UnkID int64 = 100
	ClsID int64 = 101
	SepID int64 = 102
)

// Encoding is a tokenized input padded to a fixed length.
// The three slices are always the same length.
type Encoding struct {
	InputIDs      []int64
	AttentionMask []int64
	TokenTypeIDs  []int64
}

// Tokenizer converts text into model-ready encodings.
type Tokenizer interface {
	// Encode tokenizes a single text as [CLS] text [SEP], padded to maxTokens.
	// Text beyond maxTokens is truncated.
	Encode(text string, maxTokens int) Encoding
	// EncodePair tokenizes (a, b) as [CLS] a [SEP] b [SEP] with token type 1
	// for the b segment, padded to maxTokens. Used by cross-encoders where a
	// is the query and b the document.
	EncodePair(a, b string, maxTokens int) Encoding
}

// SimpleTokenizer is a word-split tokenizer with hash-based token IDs.
// It has no vocabulary and cannot decode; it serves models that only consume
// IDs (embedding, reranking) and the tests.
type SimpleTokenizer struct{}

// Encode splits text into words and produces padded token IDs up to maxTokens.
func (t *SimpleTokenizer) Encode(text string, maxTokens int) Encoding {
	enc := newEncoding(maxTokens)
	pos := enc.appendSpecial(0, ClsID, 0)
	pos = enc.appendWords(pos, text, 0)
	enc.appendSpecial(pos, SepID, 0)
	return enc
}

// EncodePair encodes the two texts as one sequence with BERT segment IDs.
func (t *SimpleTokenizer) EncodePair(a, b string, maxTokens int) Encoding {
	enc := newEncoding(maxTokens)
	pos := enc.appendSpecial(0, ClsID, 0)
	pos = enc.appendWords(pos, a, 0)
	pos = enc.appendSpecial(pos, SepID, 0)
	pos = enc.appendWords(pos, b, 1)
	enc.appendSpecial(pos, SepID, 1)
	return enc
}

func newEncoding(maxTokens int) Encoding {
	if maxTokens <= 0 {
		maxTokens = 256
	}
	return Encoding{
		InputIDs:      make([]int64, maxTokens),
		AttentionMask: make([]int64, maxTokens),
		TokenTypeIDs:  make([]int64, maxTokens),
	}
}

// appendSpecial writes one special token at pos if room remains and returns
// the next position.
func (e *Encoding) appendSpecial(pos int, id, segment int64) int {
	if pos >= len(e.InputIDs) {
		return pos
	}
	e.InputIDs[pos] = id
	e.AttentionMask[pos] = 1
	e.TokenTypeIDs[pos] = segment
	return pos + 1
}

// appendWords writes hash-based IDs for the words of text starting at pos,
// reserving one slot for a trailing [SEP].
func (e *Encoding) appendWords(pos int, text string, segment int64) int {
	for _, word := range SplitWords(text) {
		if pos >= len(e.InputIDs)-1 {
			break
		}
		e.InputIDs[pos] = int64(HashString(word)%28996) + 1000
		e.AttentionMask[pos] = 1
		e.TokenTypeIDs[pos] = segment
		pos++
	}
	return pos
}

// SplitWords splits text on whitespace and returns non-empty words.
func SplitWords(text string) []string {
	var words []string
	word := ""
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
			if word != "" {
				words = append(words, word)
				word = ""
			}
		} else {
			word += string(r)
		}
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}

// HashString returns a deterministic non-negative hash for use as a token ID.
func HashString(s string) int {
	h := 0
	for _, c := range s {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
