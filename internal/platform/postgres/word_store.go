package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/phrazzld/wordbank/internal/domain"
	"github.com/phrazzld/wordbank/internal/platform/logger"
	"github.com/phrazzld/wordbank/internal/redact"
	"github.com/phrazzld/wordbank/internal/store"
)

const (
	insertWordQuery = `
		INSERT INTO words (word, translation)
		VALUES ($1, $2)
		RETURNING id, created_at`

	enqueueWordQuery = `INSERT INTO example_generation_queue (word_id) VALUES ($1)`

	getWordQuery = `
		SELECT id, word, translation, created_at
		FROM words
		WHERE id = $1`

	isPendingQuery = `SELECT EXISTS (SELECT 1 FROM example_generation_queue WHERE word_id = $1)`
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// WordStore implements store.WordStore using PostgreSQL.
type WordStore struct {
	db *sql.DB
}

var _ store.WordStore = (*WordStore)(nil)

// NewWordStore creates a WordStore on db.
func NewWordStore(db *sql.DB) *WordStore {
	return &WordStore{db: db}
}

// CreateWithJob inserts the word and queues it for example generation in
// one transaction.
func (s *WordStore) CreateWithJob(ctx context.Context, word *domain.Word) error {
	if err := word.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	log := logger.FromContextOrDefault(ctx)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, insertWordQuery, word.Text, word.Translation).
			Scan(&word.ID, &word.CreatedAt); err != nil {
			return store.NewStoreError("word", "create", "failed to insert word", MapError(err))
		}

		if _, err := tx.ExecContext(ctx, enqueueWordQuery, word.ID); err != nil {
			return store.NewStoreError("word", "create", "failed to enqueue word", MapError(err))
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create word", redact.ErrorAttr(err))
		word.ID = 0
		return err
	}

	log.Debug("word created and queued", "word_id", word.ID)
	return nil
}

// GetByID retrieves a word by id.
func (s *WordStore) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	var word domain.Word
	if err := sqlscan.Get(ctx, s.db, &word, getWordQuery, id); err != nil {
		if sqlscan.NotFound(err) {
			return nil, fmt.Errorf("%w: id %d", store.ErrWordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get word: %w", MapError(err))
	}
	return &word, nil
}

// List returns a page of words ordered by id.
func (s *WordStore) List(ctx context.Context, filter store.WordFilter) ([]domain.Word, error) {
	query, args, err := listWordsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build word query: %w", err)
	}

	words := []domain.Word{}
	if err := sqlscan.Select(ctx, s.db, &words, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list words: %w", MapError(err))
	}
	return words, nil
}

// IsPending reports whether the word still has a queued job.
func (s *WordStore) IsPending(ctx context.Context, wordID int64) (bool, error) {
	var pending bool
	if err := s.db.QueryRowContext(ctx, isPendingQuery, wordID).Scan(&pending); err != nil {
		return false, fmt.Errorf("failed to check pending job: %w", MapError(err))
	}
	return pending, nil
}

func listWordsQuery(filter store.WordFilter) (string, []any, error) {
	limit := filter.EffectiveLimit()

	q := psql.Select("w.id", "w.word", "w.translation", "w.created_at").
		From("words w").
		OrderBy("w.id").
		Limit(uint64(limit))

	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	if filter.PendingOnly {
		q = q.Where("EXISTS (SELECT 1 FROM example_generation_queue q WHERE q.word_id = w.id)")
	}

	return q.ToSql()
}
