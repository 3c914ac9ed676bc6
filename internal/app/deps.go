package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"flashmind/internal/cache"
	"flashmind/internal/config"
	"flashmind/internal/flashcard"
	"flashmind/internal/llm"
	"flashmind/internal/logger"
	"flashmind/internal/pdftext"
	"flashmind/internal/textstats"
)

// Deps bundles the runtime dependencies built once at startup. Everything
// here is immutable after Build and shared by all requests.
type Deps struct {
	Config    config.Config
	Log       *slog.Logger
	Cache     cache.Cache
	Extractor pdftext.Extractor
	Generator *flashcard.Generator
}

// Build loads env, config, and shared components.
func Build(ctx context.Context) (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return Deps{}, fmt.Errorf("invalid configuration: %w", err)
	}

	client, model, err := buildLLM(ctx, cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	c, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	gen, err := buildGenerator(cfg, log, client, c, model)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize generator: %w", err)
	}
	return Deps{
		Config:    cfg,
		Log:       log,
		Cache:     c,
		Extractor: pdftext.NewPDFExtractor(),
		Generator: gen,
	}, nil
}

// Close releases connections held by the dependencies.
func (d Deps) Close() error {
	if d.Cache == nil {
		return nil
	}
	return d.Cache.Close()
}

func buildLLM(ctx context.Context, cfg config.Config, log *slog.Logger) (llm.Client, string, error) {
	if cfg.APIKey() == "" {
		return nil, "", fmt.Errorf("an API key is required when LLM_PROVIDER=%s", cfg.LLMProvider)
	}
	switch cfg.LLMProvider {
	case "gemini":
		model := cfg.LLMModel
		if model == "" {
			model = llm.DefaultGeminiModel
		}
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, model)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		log.Info("using Gemini LLM client", "model", model)
		return client, model, nil
	case "openai":
		model := cfg.LLMModel
		if model == "" {
			model = string(openai.ChatModelGPT4oMini)
		}
		client, err := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(model))
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI LLM client", "model", model)
		return client, model, nil
	case "anthropic":
		model := cfg.LLMModel
		if model == "" {
			model = llm.DefaultAnthropicModel
		}
		client, err := llm.NewAnthropicClient(cfg.AnthropicAPIKey, model)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize Anthropic client: %w", err)
		}
		log.Info("using Anthropic LLM client", "model", model)
		return client, model, nil
	default:
		return nil, "", fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: gemini, openai, anthropic)", cfg.LLMProvider)
	}
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "none", "":
		return cache.NewNoOpCache(), nil
	case "redis":
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		log.Info("using Redis flashcard cache", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
		return c, nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: none, redis)", cfg.CacheProvider)
	}
}

func buildGenerator(cfg config.Config, log *slog.Logger, client llm.Client, c cache.Cache, model string) (*flashcard.Generator, error) {
	prompts, err := flashcard.NewPromptBuilder(cfg.PromptTemplatePath, textstats.Density{
		WordsPerCard: cfg.WordsPerCard,
		MaxCards:     cfg.MaxCards,
	})
	if err != nil {
		return nil, err
	}
	return flashcard.NewGenerator(log, client, c, prompts, flashcard.Options{
		Model:    model,
		CacheTTL: cfg.CacheTTL,
	})
}
