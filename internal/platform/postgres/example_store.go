package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/phrazzld/wordbank/internal/domain"
	"github.com/phrazzld/wordbank/internal/store"
)

const listExamplesByWordQuery = `
	SELECT id, word_id, example, translation, created_at
	FROM examples
	WHERE word_id = $1
	ORDER BY id`

// ExampleStore implements store.ExampleStore using PostgreSQL.
type ExampleStore struct {
	db store.DBTX
}

var _ store.ExampleStore = (*ExampleStore)(nil)

// NewExampleStore creates an ExampleStore on db.
func NewExampleStore(db *sql.DB) *ExampleStore {
	return &ExampleStore{db: db}
}

// ListByWord returns the examples of one word, oldest first.
func (s *ExampleStore) ListByWord(ctx context.Context, wordID int64) ([]domain.Example, error) {
	examples := []domain.Example{}
	if err := sqlscan.Select(ctx, s.db, &examples, listExamplesByWordQuery, wordID); err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", MapError(err))
	}
	return examples, nil
}
