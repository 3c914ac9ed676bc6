package flashcard

import "errors"

// Errors returned by Generator.Generate. Callers classify with errors.Is.
var (
	// ErrEmptyInput is returned for blank text, before any upstream call.
	ErrEmptyInput = errors.New("no text to generate flashcards from")

	// ErrCompletion wraps failures of the completion call itself.
	ErrCompletion = errors.New("completion call failed")

	// ErrNoJSON is returned when the model output holds no bracketed array.
	ErrNoJSON = errors.New("no JSON found in model output")

	// ErrInvalidJSON is returned when the extracted array does not parse.
	ErrInvalidJSON = errors.New("invalid JSON in model output")

	// ErrSchemaMismatch is returned when the array parses but its elements
	// are not question/answer string objects.
	ErrSchemaMismatch = errors.New("flashcards do not match the expected schema")
)
