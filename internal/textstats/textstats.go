package textstats

import (
	"strings"
)

// Density controls how many flashcards a text is worth.
type Density struct {
	WordsPerCard int
	MaxCards     int
}

// WordCount approximates words by whitespace-delimited fields.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Cards returns one card per WordsPerCard words, rounded up, at least one
// and at most MaxCards. Zero fields fall back to 60 words and no cap.
func (d Density) Cards(text string) int {
	per := d.WordsPerCard
	if per <= 0 {
		per = 60
	}
	n := (WordCount(text) + per - 1) / per
	if n < 1 {
		n = 1
	}
	if d.MaxCards > 0 && n > d.MaxCards {
		n = d.MaxCards
	}
	return n
}
