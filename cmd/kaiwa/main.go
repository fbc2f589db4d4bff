// Package main is the kaiwa CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kaiwahq/kaiwa/internal/answer"
	"github.com/kaiwahq/kaiwa/internal/config"
	"github.com/kaiwahq/kaiwa/internal/extract"
	"github.com/kaiwahq/kaiwa/internal/retrieval"
	"github.com/kaiwahq/kaiwa/internal/server"
	"github.com/kaiwahq/kaiwa/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kaiwa/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development); if
// that exists it is used. Returns the config and the path actually loaded.
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
	// Pick up OPENAI_API_KEY and friends from a local .env if present.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "extract":
		runExtract()
	case "version", "--version", "-v":
		fmt.Printf("kaiwa version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// newCompletionClient builds the OpenAI client, or returns nil when the
// API key is not configured. A nil client routes every answer through
// the deterministic fallback instead of failing requests.
func newCompletionClient(cfg *config.Config, logger *zap.Logger) answer.CompletionClient {
	client, err := answer.NewOpenAIClient(&cfg.LLM)
	if err != nil {
		logger.Warn("completion provider not configured, answers will use the fallback path", zap.Error(err))
		return nil
	}
	return client
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

	retriever := retrieval.NewRetriever(&cfg.Retrieval)
	composer := answer.NewComposer(newCompletionClient(cfg, logger), cfg.Retrieval.ContextLimit, logger)
	extractor := extract.NewExtractor()

	srv := server.NewServer(retriever, composer, extractor, cfg, logger)
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

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	filePath := fs.String("file", "", "document file to answer from (PDF, DOC, DOCX, TXT)")
	limit := fs.Int("limit", 0, "maximum passages to retrieve (overrides config)")
	_ = fs.Parse(os.Args[2:])

	if *filePath == "" || fs.NArg() < 1 {
		fmt.Println("Usage: kaiwa ask -file <document> <question...>")
		os.Exit(1)
	}
	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if question == "" {
		fmt.Println("Usage: kaiwa ask -file <document> <question...>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *limit > 0 {
		cfg.Retrieval.SearchLimit = *limit
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	document, err := extractFile(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}

	retriever := retrieval.NewRetriever(&cfg.Retrieval)
	composer := answer.NewComposer(newCompletionClient(cfg, logger), cfg.Retrieval.ContextLimit, logger)

	chunks := retriever.Retrieve(document, question)
	answerText, fallback := composer.Compose(context.Background(), question, chunks)

	fmt.Println(answerText)
	if len(chunks) > 0 {
		fmt.Println()
		if fallback {
			fmt.Println("# answered without the completion provider")
		}
		fmt.Println("# ranked passages")
		for i, ch := range chunks {
			fmt.Printf("%d. [%.2f] chunk %d (%d chars)\n", i+1, ch.Score, ch.Index, ch.Length)
		}
	}
}

func runExtract() {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kaiwa extract <file>")
		os.Exit(1)
	}
	text, err := extractFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(text)
}

// extractFile reads path and extracts its plain text by extension.
func extractFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return extract.NewExtractor().Extract(content, path)
}

func printUsage() {
	fmt.Println(`kaiwa - document chat backend with lexical retrieval

Usage:
  kaiwa server [flags]                      Start the HTTP server
  kaiwa ask -file <doc> <question...>      Answer a question from a document
  kaiwa extract <file>                     Print extracted plain text
  kaiwa version                            Show version
  kaiwa help                               Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/kaiwa/config.yaml)
  --debug            Enable debug logging

Ask Flags:
  --config string    Config file path
  --file string      Document file to answer from (PDF, DOC, DOCX, TXT)
  --limit int        Maximum passages to retrieve (overrides config)

Examples:
  kaiwa server
  kaiwa ask -file report.pdf what were the quarterly results
  kaiwa extract notes.docx`)
}
