// Package main is the Suiron CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/suiron/internal/cli"
	"github.com/hyperjump/suiron/internal/config"
	"github.com/hyperjump/suiron/internal/embedding"
	"github.com/hyperjump/suiron/internal/inference"
	"github.com/hyperjump/suiron/internal/metrics"
	"github.com/hyperjump/suiron/internal/reranking"
	"github.com/hyperjump/suiron/internal/server"
	"github.com/hyperjump/suiron/internal/summarizing"
	"github.com/hyperjump/suiron/internal/tokenizer"
	"github.com/hyperjump/suiron/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/suiron/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "suiron server" from the project dir uses the project's
// config. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "embed":
		runEmbed()
	case "rerank":
		runRerank()
	case "summarize":
		runSummarize()
	case "version", "--version", "-v":
		fmt.Printf("suiron version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	metrics.Register()

	// Model loading is eager; any failure here is fatal before serving.
	svc, err := initializeService(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load models", zap.Error(err))
	}
	defer svc.Close()

	srv := server.NewServer(svc, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// initializeService loads the three models and wires them into a Service.
func initializeService(cfg *config.Config, logger *zap.Logger) (*inference.Service, error) {
	embedTok, err := loadTokenizer(cfg.Embedding.VocabPath)
	if err != nil {
		return nil, fmt.Errorf("embedding tokenizer: %w", err)
	}
	logger.Info("loading embedding model", zap.String("path", cfg.Embedding.ModelPath))
	embedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		embedTok,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		return nil, fmt.Errorf("embedding model: %w", err)
	}

	rerankTok, err := loadTokenizer(cfg.Reranker.VocabPath)
	if err != nil {
		embedder.Close()
		return nil, fmt.Errorf("reranker tokenizer: %w", err)
	}
	logger.Info("loading reranker model", zap.String("path", cfg.Reranker.ModelPath))
	reranker, err := reranking.NewONNXReranker(cfg.Reranker.ModelPath, rerankTok, cfg.Reranker.MaxTokens)
	if err != nil {
		embedder.Close()
		return nil, fmt.Errorf("reranker model: %w", err)
	}

	logger.Info("loading summarizer model",
		zap.String("encoder", cfg.Summarizer.EncoderPath),
		zap.String("decoder", cfg.Summarizer.DecoderPath),
	)
	vocab, err := tokenizer.LoadVocab(cfg.Summarizer.VocabPath)
	if err != nil {
		embedder.Close()
		reranker.Close()
		return nil, fmt.Errorf("summarizer vocab: %w", err)
	}
	summarizer, err := summarizing.NewONNXSummarizer(
		cfg.Summarizer.EncoderPath,
		cfg.Summarizer.DecoderPath,
		vocab,
		cfg.Summarizer.MaxInputTokens,
		cfg.Summarizer.MinLength,
		cfg.Summarizer.MaxLength,
	)
	if err != nil {
		embedder.Close()
		reranker.Close()
		return nil, fmt.Errorf("summarizer model: %w", err)
	}

	pool := inference.NewPool(cfg.Pool.Workers, cfg.Pool.QueueSize, utils.ComponentLogger(logger, "pool"))
	return inference.NewService(embedder, reranker, summarizer,
		pool, utils.ComponentLogger(logger, "inference")), nil
}

func loadTokenizer(vocabPath string) (tokenizer.Tokenizer, error) {
	if vocabPath == "" {
		return &tokenizer.SimpleTokenizer{}, nil
	}
	return tokenizer.LoadVocab(vocabPath)
}

func runEmbed() {
	fs := flag.NewFlagSet("embed", flag.ExitOnError)
	addr := fs.String("addr", "http://localhost:8080", "server address")
	asJSON := fs.Bool("json", false, "output JSON")
	_ = fs.Parse(os.Args[2:])
	texts := fs.Args()
	if len(texts) == 0 {
		fmt.Println("Usage: suiron embed [flags] <text> [text...]")
		os.Exit(1)
	}

	resp, err := cli.NewClient(*addr).Embed(texts)
	if err != nil {
		fmt.Printf("Embed failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteEmbedResult(os.Stdout, resp, outputFormat(*asJSON)); err != nil {
		fmt.Printf("Failed to write output: %v\n", err)
		os.Exit(1)
	}
}

func runRerank() {
	fs := flag.NewFlagSet("rerank", flag.ExitOnError)
	addr := fs.String("addr", "http://localhost:8080", "server address")
	asJSON := fs.Bool("json", false, "output JSON")
	_ = fs.Parse(os.Args[2:])
	args := fs.Args()
	if len(args) < 2 {
		fmt.Println("Usage: suiron rerank [flags] <query> <document> [document...]")
		os.Exit(1)
	}

	resp, err := cli.NewClient(*addr).Rerank(args[0], args[1:])
	if err != nil {
		fmt.Printf("Rerank failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteRerankResult(os.Stdout, resp, outputFormat(*asJSON)); err != nil {
		fmt.Printf("Failed to write output: %v\n", err)
		os.Exit(1)
	}
}

func runSummarize() {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)
	addr := fs.String("addr", "http://localhost:8080", "server address")
	asJSON := fs.Bool("json", false, "output JSON")
	_ = fs.Parse(os.Args[2:])
	args := fs.Args()
	if len(args) < 1 {
		fmt.Println("Usage: suiron summarize [flags] <query> [text]")
		fmt.Println("When text is omitted it is read from stdin.")
		os.Exit(1)
	}

	query := args[0]
	var text string
	if len(args) > 1 {
		text = strings.Join(args[1:], " ")
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Printf("Failed to read stdin: %v\n", err)
			os.Exit(1)
		}
		text = string(data)
	}

	resp, err := cli.NewClient(*addr).Summarize(query, text)
	if err != nil {
		fmt.Printf("Summarize failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSummarizeResult(os.Stdout, resp, outputFormat(*asJSON)); err != nil {
		fmt.Printf("Failed to write output: %v\n", err)
		os.Exit(1)
	}
}

func outputFormat(asJSON bool) cli.OutputFormat {
	if asJSON {
		return cli.OutputJSON
	}
	return cli.OutputText
}

func printUsage() {
	fmt.Println(`suiron - local inference service (embedding, reranking, summarization)

Usage:
  suiron server [-config path] [-debug]       start the inference server
  suiron embed [flags] <text> [text...]       embed one or more texts
  suiron rerank [flags] <query> <doc> [doc..] rerank documents for a query
  suiron summarize [flags] <query> [text]     summarize text (or stdin) for a query
  suiron version                              print version
  suiron help                                 show this help

Client flags:
  -addr string   server address (default "http://localhost:8080")
  -json          output JSON instead of text`)
}
