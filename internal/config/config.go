package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config holds minimal runtime configuration. Extend as needed.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"104857600" validate:"min=1"` // 100MB in bytes

	// Static UI
	StaticDir string `env:"STATIC_DIR" envDefault:"./web"`

	// LLM
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"openai" validate:"oneof=openai stub"` // "openai" (uses OpenAI API) or "stub" (canned answer, no credential needed)
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	LLMModel    string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	// Provider call policy. Zero values keep the transport defaults:
	// a single attempt, no per-request timeout override.
	LLMTimeoutSeconds int `env:"LLM_TIMEOUT_SECONDS" envDefault:"0" validate:"min=0"`
	LLMMaxRetries     int `env:"LLM_MAX_RETRIES" envDefault:"0" validate:"min=0"`
}

// Load reads configuration from environment variables with defaults and
// rejects values that cannot be served (bad port, zero upload ceiling,
// unknown provider).
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
