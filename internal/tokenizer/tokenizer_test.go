package tokenizer

import "testing"

func TestSimpleTokenizerEncode(t *testing.T) {
	tok := &SimpleTokenizer{}
	enc := tok.Encode("hello world", 8)

	if len(enc.InputIDs) != 8 || len(enc.AttentionMask) != 8 || len(enc.TokenTypeIDs) != 8 {
		t.Fatalf("expected padded length 8, got %d/%d/%d",
			len(enc.InputIDs), len(enc.AttentionMask), len(enc.TokenTypeIDs))
	}
	if enc.InputIDs[0] != ClsID {
		t.Errorf("position 0 should be [CLS], got %d", enc.InputIDs[0])
	}
	// [CLS] hello world [SEP] -> 4 attended positions.
	attended := 0
	for _, m := range enc.AttentionMask {
		attended += int(m)
	}
	if attended != 4 {
		t.Errorf("attended positions = %d, want 4", attended)
	}
	if enc.InputIDs[3] != SepID {
		t.Errorf("position 3 should be [SEP], got %d", enc.InputIDs[3])
	}
}

func TestSimpleTokenizerDeterministic(t *testing.T) {
	tok := &SimpleTokenizer{}
	a := tok.Encode("same text", 16)
	b := tok.Encode("same text", 16)
	for i := range a.InputIDs {
		if a.InputIDs[i] != b.InputIDs[i] {
			t.Fatalf("encoding not deterministic at %d", i)
		}
	}
}

func TestSimpleTokenizerTruncation(t *testing.T) {
	tok := &SimpleTokenizer{}
	enc := tok.Encode("a b c d e f g h i j", 4)
	if len(enc.InputIDs) != 4 {
		t.Fatalf("expected length 4, got %d", len(enc.InputIDs))
	}
	for _, m := range enc.AttentionMask {
		if m != 1 {
			t.Error("truncated encoding should be fully attended")
		}
	}
}

func TestSimpleTokenizerEncodePair(t *testing.T) {
	tok := &SimpleTokenizer{}
	enc := tok.EncodePair("the query", "the document text", 16)

	// [CLS] the query [SEP] -> segment 0, rest of attended -> segment 1.
	if enc.TokenTypeIDs[0] != 0 || enc.TokenTypeIDs[1] != 0 || enc.TokenTypeIDs[3] != 0 {
		t.Error("query segment should have token type 0")
	}
	sawSegmentOne := false
	for i, m := range enc.AttentionMask {
		if m == 1 && enc.TokenTypeIDs[i] == 1 {
			sawSegmentOne = true
		}
		if m == 0 && enc.InputIDs[i] != PadID {
			t.Errorf("padding at %d should be %d, got %d", i, PadID, enc.InputIDs[i])
		}
	}
	if !sawSegmentOne {
		t.Error("document segment should have token type 1")
	}
}

// testVocab builds a vocab where the BERT special IDs land on their
// conventional positions, followed by real pieces.
func testVocab(pieces ...string) *VocabTokenizer {
	tokens := make([]string, 103)
	for i := range tokens {
		tokens[i] = "[unused]"
	}
	tokens[PadID] = "[PAD]"
	tokens[UnkID] = "[UNK]"
	tokens[ClsID] = "[CLS]"
	tokens[SepID] = "[SEP]"
	return NewVocabTokenizer(append(tokens, pieces...))
}

func TestVocabTokenizerRoundTrip(t *testing.T) {
	v := testVocab("learning", "deep", "##ly")
	enc := v.Encode("deep learning", 8)

	if enc.InputIDs[0] != ClsID {
		t.Fatalf("expected [CLS] first, got %d", enc.InputIDs[0])
	}
	got := v.Decode(enc.InputIDs)
	if got != "deep learning" {
		t.Errorf("Decode = %q, want %q", got, "deep learning")
	}
}

func TestVocabTokenizerWordPieces(t *testing.T) {
	v := testVocab("deep", "##ly")
	ids := v.wordPieces("deeply")
	if len(ids) != 2 {
		t.Fatalf("expected 2 pieces, got %v", ids)
	}
	if v.Decode(ids) != "deeply" {
		t.Errorf("Decode = %q, want %q", v.Decode(ids), "deeply")
	}
}

func TestVocabTokenizerUnknownWord(t *testing.T) {
	v := testVocab("known")
	ids := v.wordPieces("zzz")
	if len(ids) != 1 || ids[0] != UnkID {
		t.Errorf("unknown word should map to [UNK], got %v", ids)
	}
}

func TestVocabTokenizerDecodeSkipsSpecials(t *testing.T) {
	v := testVocab("hello")
	got := v.Decode([]int64{ClsID, 103, SepID, PadID, PadID})
	if got != "hello" {
		t.Errorf("Decode = %q, want %q", got, "hello")
	}
}

func TestVocabTokenizerDecodeIgnoresOutOfRange(t *testing.T) {
	v := testVocab("hello")
	if got := v.Decode([]int64{-1, 9999, 103}); got != "hello" {
		t.Errorf("Decode = %q, want %q", got, "hello")
	}
}

func TestSplitWords(t *testing.T) {
	words := SplitWords("  one\ttwo\nthree  ")
	if len(words) != 3 || words[0] != "one" || words[2] != "three" {
		t.Errorf("got %v", words)
	}
	if len(SplitWords("   ")) != 0 {
		t.Error("whitespace-only input should yield no words")
	}
}
