package utils

import "go.uber.org/zap"

// NewLogger returns a zap logger. When debug is true, uses development config
// (human-readable, debug level); otherwise uses production config (JSON, info level).
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// ComponentLogger returns a logger named after a component, so that lines from
// the embedder, reranker, and summarizer are distinguishable in mixed output.
// A nil base yields a no-op logger, which keeps tests quiet.
func ComponentLogger(base *zap.Logger, component string) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(component)
}
