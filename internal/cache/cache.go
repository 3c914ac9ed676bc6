package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores generated flashcard sets as their JSON encoding.
type Cache interface {
	// GetCards retrieves a cached flashcard array by key.
	// Returns nil if not found.
	GetCards(ctx context.Context, key string) ([]byte, error)

	// SetCards stores a flashcard array with TTL.
	SetCards(ctx context.Context, key string, cards []byte, ttl time.Duration) error

	// Close closes the cache connection
	Close() error
}

// GenerateCacheKey derives a stable key from the model and the rendered
// prompt, so template and card-density settings scope the entry too.
func GenerateCacheKey(model, prompt string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}
