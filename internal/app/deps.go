package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"docask/internal/ask"
	"docask/internal/config"
	"docask/internal/llm"
	"docask/internal/logger"
)

// Deps bundles common runtime dependencies for the entry points.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	LLM      llm.Client
	Pipeline *ask.Service
}

// Build loads env, config, and shared components for the HTTP server.
func Build() (Deps, error) {
	return build(os.Stdout)
}

// BuildCLI is Build with logs routed to stderr, keeping stdout clean for the
// command-line caller.
func BuildCLI() (Deps, error) {
	return build(os.Stderr)
}

func build(logDst io.Writer) (Deps, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Deps{}, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return Deps{}, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.NewWithWriter(logDst, cfg.LogLevel)

	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return Deps{
		Config:   cfg,
		Log:      log,
		LLM:      llmClient,
		Pipeline: ask.NewService(llmClient, log, cfg.MaxUploadSize, cfg.LLMModel),
	}, nil
}

func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		client, err := llm.NewOpenAIClient(
			cfg.OpenAIKey,
			time.Duration(cfg.LLMTimeoutSeconds)*time.Second,
			cfg.LLMMaxRetries,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI LLM client", "model", cfg.LLMModel, "max_retries", cfg.LLMMaxRetries)
		return client, nil
	case "stub":
		log.Warn("using stub LLM client; answers are canned")
		return &llm.StubClient{}, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: openai, stub)", cfg.LLMProvider)
	}
}
