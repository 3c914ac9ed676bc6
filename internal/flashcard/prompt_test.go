package flashcard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashmind/internal/textstats"
)

func TestPromptBuilderDefaultTemplate(t *testing.T) {
	p, err := NewPromptBuilder("", textstats.Density{WordsPerCard: 60, MaxCards: 40})
	require.NoError(t, err)

	text := strings.Repeat("cells divide by mitosis ", 45) // 180 words
	prompt, err := p.Build(text)
	require.NoError(t, err)

	assert.Contains(t, prompt, "about 3 concise flashcards")
	assert.Contains(t, prompt, "one card for every 60 words")
	assert.Contains(t, prompt, `"question"`)
	assert.Contains(t, prompt, `"answer"`)
	assert.Contains(t, prompt, "no code fences")
	// Full text, no truncation.
	assert.Contains(t, prompt, text)
}

func TestPromptBuilderKeepsTextVerbatim(t *testing.T) {
	p, err := NewPromptBuilder("", textstats.Density{})
	require.NoError(t, err)

	text := `Use <b>tags</b> & "quotes" as-is`
	prompt, err := p.Build(text)
	require.NoError(t, err)
	assert.Contains(t, prompt, text)
}

func TestPromptBuilderCustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.Cards}}|{{.WordsPerCard}}|{{.Text}}"), 0o600))

	p, err := NewPromptBuilder(path, textstats.Density{WordsPerCard: 50, MaxCards: 2})
	require.NoError(t, err)

	prompt, err := p.Build(strings.Repeat("w ", 500))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, "2|50|w w"), "got %q", prompt[:20])
}

func TestPromptBuilderBadTemplate(t *testing.T) {
	_, err := NewPromptBuilder(filepath.Join(t.TempDir(), "missing.tmpl"), textstats.Density{})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.Text"), 0o600))
	_, err = NewPromptBuilder(path, textstats.Density{})
	assert.Error(t, err)
}
