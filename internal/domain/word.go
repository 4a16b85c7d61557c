package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxWordLength bounds both the word text and its translation.
const MaxWordLength = 200

// Common validation errors for Word
var (
	ErrEmptyWordText        = fmt.Errorf("%w: word text cannot be empty", ErrEmptyContent)
	ErrEmptyWordTranslation = fmt.Errorf("%w: word translation cannot be empty", ErrEmptyContent)
	ErrWordTextTooLong      = fmt.Errorf("%w: word text exceeds %d characters", ErrContentTooLong, MaxWordLength)
	ErrTranslationTooLong   = fmt.Errorf("%w: word translation exceeds %d characters", ErrContentTooLong, MaxWordLength)
)

// Word is a vocabulary entry added by the user: the original-language text
// and the translation the user chose for it. The ID is assigned by the store.
type Word struct {
	ID          int64     `json:"id"          db:"id"`
	Text        string    `json:"word"        db:"word"`
	Translation string    `json:"translation" db:"translation"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
}

// NewWord creates a Word that has not been persisted yet.
// Surrounding whitespace is removed from both fields.
func NewWord(text, translation string) (*Word, error) {
	w := &Word{
		Text:        strings.TrimSpace(text),
		Translation: strings.TrimSpace(translation),
		CreatedAt:   time.Now().UTC(),
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate checks the word's text fields. The ID is not checked because a
// word is validated before the store assigns it.
func (w *Word) Validate() error {
	if strings.TrimSpace(w.Text) == "" {
		return ErrEmptyWordText
	}

	if strings.TrimSpace(w.Translation) == "" {
		return ErrEmptyWordTranslation
	}

	if utf8.RuneCountInString(w.Text) > MaxWordLength {
		return ErrWordTextTooLong
	}

	if utf8.RuneCountInString(w.Translation) > MaxWordLength {
		return ErrTranslationTooLong
	}

	return nil
}
