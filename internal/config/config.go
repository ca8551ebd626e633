// Package config provides configuration loading and structs for the Suiron server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Reranker   RerankerConfig   `yaml:"reranker"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Pool       PoolConfig       `yaml:"pool"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// EmbeddingConfig holds ONNX embedder settings. VocabPath is optional; when
// empty, a hash-based tokenizer is used instead of WordPiece.
type EmbeddingConfig struct {
	ModelPath  string `yaml:"model_path"`
	VocabPath  string `yaml:"vocab_path"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
}

// RerankerConfig holds ONNX cross-encoder settings. VocabPath is optional as
// for the embedder.
type RerankerConfig struct {
	ModelPath string `yaml:"model_path"`
	VocabPath string `yaml:"vocab_path"`
	MaxTokens int    `yaml:"max_tokens"`
}

// SummarizerConfig holds ONNX seq2seq settings and generation bounds.
type SummarizerConfig struct {
	EncoderPath    string `yaml:"encoder_path"`
	DecoderPath    string `yaml:"decoder_path"`
	VocabPath      string `yaml:"vocab_path"`
	MaxInputTokens int    `yaml:"max_input_tokens"`
	MinLength      int    `yaml:"min_length"`
	MaxLength      int    `yaml:"max_length"`
}

// PoolConfig holds worker pool settings for the inference offload.
type PoolConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

// Load reads and parses the config file at path, expands model paths, and
// applies defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)
	if cfg.Embedding.VocabPath != "" {
		cfg.Embedding.VocabPath = expandPath(cfg.Embedding.VocabPath, configDir)
	}
	cfg.Reranker.ModelPath = expandPath(cfg.Reranker.ModelPath, configDir)
	if cfg.Reranker.VocabPath != "" {
		cfg.Reranker.VocabPath = expandPath(cfg.Reranker.VocabPath, configDir)
	}
	cfg.Summarizer.EncoderPath = expandPath(cfg.Summarizer.EncoderPath, configDir)
	cfg.Summarizer.DecoderPath = expandPath(cfg.Summarizer.DecoderPath, configDir)
	cfg.Summarizer.VocabPath = expandPath(cfg.Summarizer.VocabPath, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
