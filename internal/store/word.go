package store

import (
	"context"

	"github.com/phrazzld/wordbank/internal/domain"
)

// Default and maximum page sizes for WordStore.List.
const (
	DefaultWordLimit = 50
	MaxWordLimit     = 200
)

// WordFilter narrows a word listing.
type WordFilter struct {
	Limit  int
	Offset int

	// PendingOnly restricts the listing to words still waiting for an example.
	PendingOnly bool
}

// EffectiveLimit returns Limit clamped to (0, MaxWordLimit], with
// DefaultWordLimit standing in for an unset limit.
func (f WordFilter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultWordLimit
	case f.Limit > MaxWordLimit:
		return MaxWordLimit
	default:
		return f.Limit
	}
}

// WordStore defines persistence for vocabulary words.
type WordStore interface {
	// CreateWithJob inserts word and its pending generation job in one
	// transaction and sets word.ID and word.CreatedAt on success.
	// Returns validation errors from the domain Word if data is invalid.
	CreateWithJob(ctx context.Context, word *domain.Word) error

	// GetByID retrieves a word by id.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Word, error)

	// List returns words ordered by id.
	List(ctx context.Context, filter WordFilter) ([]domain.Word, error)

	// IsPending reports whether the word still has a queued generation job.
	IsPending(ctx context.Context, wordID int64) (bool, error)
}

// ExampleStore defines read access to generated examples.
type ExampleStore interface {
	// ListByWord returns the examples of a word, oldest first.
	ListByWord(ctx context.Context, wordID int64) ([]domain.Example, error)
}
