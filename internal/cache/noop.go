package cache

import (
	"context"
	"time"
)

// NoOpCache is a cache implementation that does nothing.
// Used when caching is disabled: all operations succeed
// but no actual caching occurs (always cache miss).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache instance
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// GetCards always returns nil (cache miss)
func (c *NoOpCache) GetCards(ctx context.Context, key string) ([]byte, error) {
	return nil, nil
}

// SetCards does nothing and always succeeds
func (c *NoOpCache) SetCards(ctx context.Context, key string, cards []byte, ttl time.Duration) error {
	return nil
}

// Close does nothing and always succeeds
func (c *NoOpCache) Close() error {
	return nil
}
