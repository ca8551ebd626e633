package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults: %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("embedding dimensions default = %d", cfg.Embedding.Dimensions)
	}
	if cfg.Summarizer.MinLength != 30 || cfg.Summarizer.MaxLength != 150 {
		t.Errorf("summarizer bounds default = %d/%d", cfg.Summarizer.MinLength, cfg.Summarizer.MaxLength)
	}
	if cfg.Pool.Workers != 2 || cfg.Pool.QueueSize != 64 {
		t.Errorf("pool defaults = %d/%d", cfg.Pool.Workers, cfg.Pool.QueueSize)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Embedding.Dimensions = 768
	cfg.Pool.Workers = 8
	ApplyDefaults(cfg)
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("explicit dimensions overwritten: %d", cfg.Embedding.Dimensions)
	}
	if cfg.Pool.Workers != 8 {
		t.Errorf("explicit workers overwritten: %d", cfg.Pool.Workers)
	}
}

func TestLoadExpandsRelativePaths(t *testing.T) {
	dir := t.TempDir()
	content := `
debug: true
embedding:
  model_path: ./models/embedder.onnx
  dimensions: 256
pool:
  workers: 4
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
	want := filepath.Join(dir, "models/embedder.onnx")
	if cfg.Embedding.ModelPath != want {
		t.Errorf("model path = %q, want %q", cfg.Embedding.ModelPath, want)
	}
	if cfg.Embedding.Dimensions != 256 {
		t.Errorf("dimensions = %d, want 256", cfg.Embedding.Dimensions)
	}
	if cfg.Pool.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Pool.Workers)
	}
	// Unset sections still get defaults.
	if cfg.Reranker.MaxTokens != 1024 {
		t.Errorf("reranker max tokens = %d, want default 1024", cfg.Reranker.MaxTokens)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}
