package domain

import (
	"fmt"
	"strings"
	"time"
)

// Common validation errors for Example
var (
	ErrExampleWordID           = fmt.Errorf("%w: example word ID must be positive", ErrInvalidID)
	ErrEmptyExampleSentence    = fmt.Errorf("%w: example sentence cannot be empty", ErrEmptyContent)
	ErrEmptyExampleTranslation = fmt.Errorf("%w: example translation cannot be empty", ErrEmptyContent)
)

// Example is a generated sentence that uses a word, together with the
// sentence's translation. It is written once and never modified.
type Example struct {
	ID          int64     `json:"id"          db:"id"`
	WordID      int64     `json:"word_id"     db:"word_id"`
	Sentence    string    `json:"example"     db:"example"`
	Translation string    `json:"translation" db:"translation"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
}

// NewExample creates an Example for the given word.
func NewExample(wordID int64, sentence, translation string) (*Example, error) {
	ex := &Example{
		WordID:      wordID,
		Sentence:    sentence,
		Translation: translation,
		CreatedAt:   time.Now().UTC(),
	}

	if err := ex.Validate(); err != nil {
		return nil, err
	}

	return ex, nil
}

// Validate checks if the Example has valid data.
func (e *Example) Validate() error {
	if e.WordID <= 0 {
		return ErrExampleWordID
	}

	if strings.TrimSpace(e.Sentence) == "" {
		return ErrEmptyExampleSentence
	}

	if strings.TrimSpace(e.Translation) == "" {
		return ErrEmptyExampleTranslation
	}

	return nil
}
