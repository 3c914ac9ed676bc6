package flashcard

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractArray returns the first bracketed JSON array in raw model output
// that holds flashcards, tolerating prose and code fences around it. Brackets
// inside JSON strings do not count toward nesting. Candidates are ranked:
// the first one that is a flashcard array, else the first valid JSON, else
// the first balanced one, so the caller reports the most specific error.
func ExtractArray(raw string) (string, error) {
	var firstValid, firstBalanced string
	for start := strings.IndexByte(raw, '['); start >= 0; {
		if end := matchingBracket(raw, start); end >= 0 {
			candidate := raw[start : end+1]
			var doc any
			if err := json.Unmarshal([]byte(candidate), &doc); err == nil {
				if validateCards(doc) == nil {
					return candidate, nil
				}
				if firstValid == "" {
					firstValid = candidate
				}
			} else if firstBalanced == "" {
				firstBalanced = candidate
			}
		}
		next := strings.IndexByte(raw[start+1:], '[')
		if next < 0 {
			break
		}
		start += next + 1
	}
	switch {
	case firstValid != "":
		return firstValid, nil
	case firstBalanced != "":
		return firstBalanced, nil
	default:
		return "", ErrNoJSON
	}
}

// matchingBracket returns the index of the ']' closing the '[' at open, or -1.
func matchingBracket(s string, open int) int {
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Parse extracts, decodes and validates the flashcard array in raw model
// output. It fails wholesale: no partial results.
func Parse(raw string) ([]Flashcard, error) {
	candidate, err := ExtractArray(raw)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := validateCards(doc); err != nil {
		return nil, err
	}

	cards := []Flashcard{}
	if err := json.Unmarshal([]byte(candidate), &cards); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return cards, nil
}
