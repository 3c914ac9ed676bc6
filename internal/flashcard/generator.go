package flashcard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"flashmind/internal/cache"
	"flashmind/internal/llm"
	"flashmind/internal/textstats"
)

// Options tunes a Generator.
type Options struct {
	// Model names the upstream model; it scopes cache keys and log lines.
	Model    string
	CacheTTL time.Duration
}

// Generator runs one text → prompt → completion → cards pipeline per call.
// It holds only dependencies fixed at startup and is safe for concurrent use.
type Generator struct {
	log     *slog.Logger
	llm     llm.Client
	cache   cache.Cache
	prompts *PromptBuilder
	opts    Options
}

// NewGenerator wires a Generator. A nil cache disables caching.
func NewGenerator(log *slog.Logger, client llm.Client, c cache.Cache, prompts *PromptBuilder, opts Options) (*Generator, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if client == nil {
		return nil, errors.New("llm client cannot be nil")
	}
	if prompts == nil {
		return nil, errors.New("prompt builder cannot be nil")
	}
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Generator{log: log, llm: client, cache: c, prompts: prompts, opts: opts}, nil
}

// Generate returns the flashcards the model produced for text.
func (g *Generator) Generate(ctx context.Context, text string) ([]Flashcard, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	log := g.log.With("generation_id", uuid.NewString(), "model", g.opts.Model)

	prompt, err := g.prompts.Build(text)
	if err != nil {
		return nil, err
	}

	key := cache.GenerateCacheKey(g.opts.Model, prompt)
	if cards, ok := g.cached(ctx, log, key); ok {
		return cards, nil
	}

	log.InfoContext(ctx, "requesting flashcards",
		"words", textstats.WordCount(text),
		"target_cards", g.prompts.TargetCards(text),
		"prompt_length", len(prompt))

	raw, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompletion, err)
	}
	log.InfoContext(ctx, "raw model output", "output", raw)

	cards, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "flashcards generated", "count", len(cards))

	g.store(ctx, log, key, cards)
	return cards, nil
}

func (g *Generator) cached(ctx context.Context, log *slog.Logger, key string) ([]Flashcard, bool) {
	data, err := g.cache.GetCards(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "cache read failed", "err", err)
		return nil, false
	}
	if data == nil {
		return nil, false
	}
	cards := []Flashcard{}
	if err := json.Unmarshal(data, &cards); err != nil {
		log.WarnContext(ctx, "failed to decode cached flashcards", "err", err)
		return nil, false
	}
	log.InfoContext(ctx, "cache hit", "count", len(cards))
	return cards, true
}

func (g *Generator) store(ctx context.Context, log *slog.Logger, key string, cards []Flashcard) {
	data, err := json.Marshal(cards)
	if err != nil {
		log.WarnContext(ctx, "failed to marshal flashcards, skipping cache", "err", err)
		return
	}
	if err := g.cache.SetCards(ctx, key, data, g.opts.CacheTTL); err != nil {
		log.WarnContext(ctx, "failed to cache flashcards", "err", err)
	}
}
