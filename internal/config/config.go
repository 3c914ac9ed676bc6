package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime configuration read once at startup.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"3000" validate:"gt=0,lt=65536"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760" validate:"gt=0"` // 10MB in bytes

	// Zero disables the per-request timeout.
	GenerateTimeout time.Duration `env:"GENERATE_TIMEOUT" envDefault:"0s" validate:"gte=0"`

	// LLM
	LLMProvider     string `env:"LLM_PROVIDER" envDefault:"gemini" validate:"oneof=gemini openai anthropic"`
	LLMModel        string `env:"LLM_MODEL"` // provider default when empty
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	OpenAIKey       string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`

	// Prompt
	WordsPerCard       int    `env:"WORDS_PER_CARD" envDefault:"60" validate:"gte=50,lte=75"`
	MaxCards           int    `env:"MAX_CARDS" envDefault:"40" validate:"gt=0"`
	PromptTemplatePath string `env:"PROMPT_TEMPLATE_PATH"`

	// Cache
	CacheProvider string        `env:"CACHE_PROVIDER" envDefault:"none" validate:"oneof=none redis"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// APIKey returns the credential for the selected LLM provider.
func (c Config) APIKey() string {
	switch c.LLMProvider {
	case "openai":
		return c.OpenAIKey
	case "anthropic":
		return c.AnthropicAPIKey
	default:
		return c.GeminiAPIKey
	}
}
