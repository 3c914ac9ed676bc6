// Package llm wraps the text completion providers behind one contract.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrEmptyResponse is returned when the provider answered without any text.
	ErrEmptyResponse = errors.New("llm: empty response")

	// ErrContentBlocked is returned when the provider refused the prompt.
	ErrContentBlocked = errors.New("llm: content blocked")
)

// Client is a single prompt in, free-form text out completion call.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
