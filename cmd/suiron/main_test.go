package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/suiron/internal/tokenizer"
)

func TestLoadConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestLoadTokenizer(t *testing.T) {
	tok, err := loadTokenizer("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tok.(*tokenizer.SimpleTokenizer); !ok {
		t.Errorf("empty vocab path should yield SimpleTokenizer, got %T", tok)
	}

	dir := t.TempDir()
	vocabPath := filepath.Join(dir, "vocab.txt")
	if err := os.WriteFile(vocabPath, []byte("[PAD]\nhello\nworld\n"), 0600); err != nil {
		t.Fatal(err)
	}
	tok, err = loadTokenizer(vocabPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tok.(*tokenizer.VocabTokenizer); !ok {
		t.Errorf("vocab path should yield VocabTokenizer, got %T", tok)
	}

	if _, err := loadTokenizer(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing vocab file")
	}
}

func TestOutputFormat(t *testing.T) {
	if outputFormat(true) != "json" {
		t.Error("expected json format")
	}
	if outputFormat(false) != "text" {
		t.Error("expected text format")
	}
}
