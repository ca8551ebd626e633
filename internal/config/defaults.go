package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/suiron/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 512
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Reranker.ModelPath == "" {
		cfg.Reranker.ModelPath = "/usr/local/var/suiron/models/ms-marco-MiniLM-L-6-v2.onnx"
	}
	if cfg.Reranker.MaxTokens == 0 {
		cfg.Reranker.MaxTokens = 1024
	}
	if cfg.Summarizer.EncoderPath == "" {
		cfg.Summarizer.EncoderPath = "/usr/local/var/suiron/models/summarizer-encoder.onnx"
	}
	if cfg.Summarizer.DecoderPath == "" {
		cfg.Summarizer.DecoderPath = "/usr/local/var/suiron/models/summarizer-decoder.onnx"
	}
	if cfg.Summarizer.VocabPath == "" {
		cfg.Summarizer.VocabPath = "/usr/local/var/suiron/models/summarizer-vocab.txt"
	}
	if cfg.Summarizer.MaxInputTokens == 0 {
		cfg.Summarizer.MaxInputTokens = 1024
	}
	if cfg.Summarizer.MinLength == 0 {
		cfg.Summarizer.MinLength = 30
	}
	if cfg.Summarizer.MaxLength == 0 {
		cfg.Summarizer.MaxLength = 150
	}
	if cfg.Pool.Workers == 0 {
		cfg.Pool.Workers = 2
	}
	if cfg.Pool.QueueSize == 0 {
		cfg.Pool.QueueSize = 64
	}
}
