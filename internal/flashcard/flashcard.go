// Package flashcard turns source text into question/answer cards through a
// completion model.
package flashcard

// Flashcard is a question/answer pair. It has no identity beyond its
// position in a generated set.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
