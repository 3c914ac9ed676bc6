package flashcard

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const flashcardsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["question", "answer"],
    "properties": {
      "question": {"type": "string"},
      "answer": {"type": "string"}
    }
  }
}`

var cardsSchema = compileSchema()

func compileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("flashcards.json", strings.NewReader(flashcardsSchema)); err != nil {
		panic(fmt.Sprintf("add flashcards schema: %v", err))
	}
	return compiler.MustCompile("flashcards.json")
}

// validateCards checks a decoded JSON value against the flashcard schema.
func validateCards(doc any) error {
	if err := cardsSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return nil
}
