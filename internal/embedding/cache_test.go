package embedding

import (
	"context"
	"testing"
)

func TestCacheGetAdd(t *testing.T) {
	c, err := NewCache(2)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := c.Get("a"); ok || v != nil {
		t.Fatal("expected miss")
	}
	c.Add("a", []float32{1, 2, 3})
	v, ok := c.Get("a")
	if !ok || len(v) != 3 || v[0] != 1 {
		t.Errorf("Get: got %v, %v", v, ok)
	}
	c.Add("b", []float32{4, 5})
	c.Add("c", []float32{6}) // evicts a
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be evicted")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("expected b to remain")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestCacheDisabled(t *testing.T) {
	c, err := NewCache(0)
	if err != nil {
		t.Fatal(err)
	}
	c.Add("a", []float32{1})
	if _, ok := c.Get("a"); ok {
		t.Error("disabled cache should never hit")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestMockEmbedderDeterministic(t *testing.T) {
	e := NewMockEmbedder(64)
	ctx := context.Background()

	a, err := e.Embed(ctx, "hello world")
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Embed(ctx, "hello world")
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 64 {
		t.Fatalf("dimensions = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same text should embed identically")
		}
	}

	other, _ := e.Embed(ctx, "different text")
	same := true
	for i := range a {
		if a[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts should not share an embedding")
	}
}

func TestMockEmbedderBatchAlignment(t *testing.T) {
	e := NewMockEmbedder(16)
	texts := []string{"one", "two", "three"}
	vectors, err := e.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != len(texts) {
		t.Fatalf("got %d vectors for %d texts", len(vectors), len(texts))
	}
	for i, text := range texts {
		single, _ := e.Embed(context.Background(), text)
		for d := range single {
			if vectors[i][d] != single[d] {
				t.Fatalf("batch result at %d not aligned with input", i)
			}
		}
	}
}
