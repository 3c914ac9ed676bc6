package client

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flashmind/internal/flashcard"
)

// MockGenerator is a mock implementation of Generator using testify/mock.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, in Input) ([]flashcard.Flashcard, error) {
	args := m.Called(ctx, in)
	cards, _ := args.Get(0).([]flashcard.Flashcard)
	return cards, args.Error(1)
}
