package tokenizer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// VocabTokenizer is a WordPiece tokenizer backed by a vocab.txt file
// (one token per line, line number = token ID, "##" prefix marks a
// continuation piece). Unlike SimpleTokenizer it can Decode generated IDs
// back into text, which the summarizer requires.
type VocabTokenizer struct {
	ids    map[string]int64
	tokens []string
}

// LoadVocab reads a vocab file and returns a tokenizer over it.
func LoadVocab(path string) (*VocabTokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocab: %w", err)
	}
	defer f.Close()

	v := &VocabTokenizer{ids: make(map[string]int64)}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		token := strings.TrimRight(scanner.Text(), "\n\r")
		v.ids[token] = int64(len(v.tokens))
		v.tokens = append(v.tokens, token)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocab: %w", err)
	}
	if len(v.tokens) == 0 {
		return nil, fmt.Errorf("vocab at %s is empty", path)
	}
	return v, nil
}

// NewVocabTokenizer builds a tokenizer from an in-memory token list (tests).
func NewVocabTokenizer(tokens []string) *VocabTokenizer {
	v := &VocabTokenizer{ids: make(map[string]int64, len(tokens))}
	for _, token := range tokens {
		v.ids[token] = int64(len(v.tokens))
		v.tokens = append(v.tokens, token)
	}
	return v
}

// Size returns the vocabulary size.
func (v *VocabTokenizer) Size() int {
	return len(v.tokens)
}

// Encode tokenizes a single text as [CLS] text [SEP], padded to maxTokens.
func (v *VocabTokenizer) Encode(text string, maxTokens int) Encoding {
	enc := newEncoding(maxTokens)
	pos := enc.appendSpecial(0, ClsID, 0)
	pos = v.appendPieces(&enc, pos, text, 0)
	enc.appendSpecial(pos, SepID, 0)
	return enc
}

// EncodePair tokenizes (a, b) as [CLS] a [SEP] b [SEP] with segment IDs.
func (v *VocabTokenizer) EncodePair(a, b string, maxTokens int) Encoding {
	enc := newEncoding(maxTokens)
	pos := enc.appendSpecial(0, ClsID, 0)
	pos = v.appendPieces(&enc, pos, a, 0)
	pos = enc.appendSpecial(pos, SepID, 0)
	pos = v.appendPieces(&enc, pos, b, 1)
	enc.appendSpecial(pos, SepID, 1)
	return enc
}

func (v *VocabTokenizer) appendPieces(enc *Encoding, pos int, text string, segment int64) int {
	for _, word := range SplitWords(strings.ToLower(text)) {
		for _, id := range v.wordPieces(word) {
			if pos >= len(enc.InputIDs)-1 {
				return pos
			}
			enc.InputIDs[pos] = id
			enc.AttentionMask[pos] = 1
			enc.TokenTypeIDs[pos] = segment
			pos++
		}
	}
	return pos
}

// wordPieces splits a word into vocabulary pieces by greedy longest match.
// A word with no matching piece becomes a single [UNK].
func (v *VocabTokenizer) wordPieces(word string) []int64 {
	var pieces []int64
	runes := []rune(word)
	start := 0
	for start < len(runes) {
		end := len(runes)
		var matched int64 = -1
		for end > start {
			piece := string(runes[start:end])
			if start > 0 {
				piece = "##" + piece
			}
			if id, ok := v.ids[piece]; ok {
				matched = id
				break
			}
			end--
		}
		if matched < 0 {
			return []int64{UnkID}
		}
		pieces = append(pieces, matched)
		start = end
	}
	return pieces
}

// Decode converts generated token IDs back into text. Special tokens are
// skipped, "##" continuations are joined to the preceding piece, and the
// remaining pieces are space-separated.
func (v *VocabTokenizer) Decode(ids []int64) string {
	var b strings.Builder
	for _, id := range ids {
		if id < 0 || int(id) >= len(v.tokens) {
			continue
		}
		switch id {
		case PadID, ClsID, SepID, UnkID:
			continue
		}
		token := v.tokens[id]
		if cont, ok := strings.CutPrefix(token, "##"); ok {
			b.WriteString(cont)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(token)
	}
	return b.String()
}
