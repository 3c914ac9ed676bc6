package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr error
	}{
		{
			name: "joins text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: `[{"question":`}, {Text: `"q","answer":"a"}]`}}},
			}}},
			want: `[{"question":"q","answer":"a"}]`,
		},
		{name: "nil response", resp: nil, wantErr: ErrEmptyResponse},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: ErrEmptyResponse},
		{
			name:    "nil content",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			wantErr: ErrEmptyResponse,
		},
		{
			name: "blocked by safety filters",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				FinishReason: genai.FinishReasonSafety,
			}}},
			wantErr: ErrContentBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := geminiText(tt.resp)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenAIText(t *testing.T) {
	ok := &openai.ChatCompletion{Choices: []openai.ChatCompletionChoice{{
		Message: openai.ChatCompletionMessage{Content: "[]"},
	}}}
	got, err := openAIText(ok)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	_, err = openAIText(&openai.ChatCompletion{})
	assert.True(t, errors.Is(err, ErrEmptyResponse))

	_, err = openAIText(&openai.ChatCompletion{Choices: []openai.ChatCompletionChoice{{FinishReason: "content_filter"}}})
	assert.True(t, errors.Is(err, ErrContentBlocked))
}

func TestAnthropicText(t *testing.T) {
	msg := &anthropic.Message{Content: []anthropic.ContentBlockUnion{
		{Type: "thinking"},
		{Type: "text", Text: "Here you go: "},
		{Type: "text", Text: "[]"},
	}}
	got, err := anthropicText(msg)
	require.NoError(t, err)
	assert.Equal(t, "Here you go: []", got)

	_, err = anthropicText(&anthropic.Message{})
	assert.True(t, errors.Is(err, ErrEmptyResponse))
}

func TestConstructorsRequireAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "")
	assert.Error(t, err)

	_, err = NewOpenAIClient("", "")
	assert.Error(t, err)

	_, err = NewAnthropicClient("", "")
	assert.Error(t, err)
}

func TestNewAnthropicClientDefaultsModel(t *testing.T) {
	c, err := NewAnthropicClient("test-key", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultAnthropicModel, c.model)
}
