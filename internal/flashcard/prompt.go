package flashcard

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"flashmind/internal/textstats"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

type promptData struct {
	Text         string
	Cards        int
	WordsPerCard int
}

// PromptBuilder embeds source text in the flashcard instruction template.
// The full text is always sent; the requested card count follows Density.
type PromptBuilder struct {
	tmpl    *template.Template
	density textstats.Density
}

// NewPromptBuilder parses the template at path, or the built-in template
// when path is empty.
func NewPromptBuilder(path string, density textstats.Density) (*PromptBuilder, error) {
	content := defaultPromptTemplate
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt template from %s: %w", path, err)
		}
		content = string(b)
	}
	tmpl, err := template.New("flashcards").Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}
	if density.WordsPerCard <= 0 {
		density.WordsPerCard = 60
	}
	return &PromptBuilder{tmpl: tmpl, density: density}, nil
}

// TargetCards is the card count requested for text.
func (p *PromptBuilder) TargetCards(text string) int {
	return p.density.Cards(text)
}

// Build renders the prompt for text.
func (p *PromptBuilder) Build(text string) (string, error) {
	var buf bytes.Buffer
	err := p.tmpl.Execute(&buf, promptData{
		Text:         text,
		Cards:        p.TargetCards(text),
		WordsPerCard: p.density.WordsPerCard,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
