package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/phrazzld/wordbank/internal/domain"
	"github.com/phrazzld/wordbank/internal/platform/logger"
	"github.com/phrazzld/wordbank/internal/redact"
	"github.com/phrazzld/wordbank/internal/store"
)

const (
	fetchPendingJobsQuery = `
		SELECT q.id, w.id, w.word, w.translation, w.created_at
		FROM example_generation_queue q
		JOIN words w ON w.id = q.word_id
		ORDER BY q.id`

	countPendingQuery = `SELECT count(*) FROM example_generation_queue`

	insertExampleQuery = `
		INSERT INTO examples (word_id, example, translation)
		VALUES ($1, $2, $3)`

	deletePendingJobQuery = `DELETE FROM example_generation_queue WHERE word_id = $1`
)

// QueueStore implements store.QueueStore using PostgreSQL.
type QueueStore struct {
	db *sql.DB
}

var _ store.QueueStore = (*QueueStore)(nil)

// NewQueueStore creates a QueueStore on db.
func NewQueueStore(db *sql.DB) *QueueStore {
	return &QueueStore{db: db}
}

// FetchPendingJobs returns the queued jobs joined with their words, ordered by job id.
func (s *QueueStore) FetchPendingJobs(ctx context.Context) ([]domain.PendingJob, error) {
	rows, err := s.db.QueryContext(ctx, fetchPendingJobsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending jobs: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	jobs := []domain.PendingJob{}
	for rows.Next() {
		var job domain.PendingJob
		if err := rows.Scan(
			&job.ID,
			&job.Word.ID,
			&job.Word.Text,
			&job.Word.Translation,
			&job.Word.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pending job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending jobs: %w", err)
	}

	return jobs, nil
}

// CountPending returns the number of queued jobs.
func (s *QueueStore) CountPending(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countPendingQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending jobs: %w", MapError(err))
	}
	return n, nil
}

// BeginTx starts a transaction for recording one job's result.
func (s *QueueStore) BeginTx(ctx context.Context) (store.QueueTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrTransactionFailed, err)
	}
	return &queueTx{tx: tx}, nil
}

// queueTx implements store.QueueTx on a *sql.Tx.
type queueTx struct {
	tx *sql.Tx
}

func (t *queueTx) InsertExample(ctx context.Context, example domain.Example) error {
	if err := example.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if _, err := t.tx.ExecContext(ctx, insertExampleQuery,
		example.WordID,
		example.Sentence,
		example.Translation,
	); err != nil {
		logger.FromContextOrDefault(ctx).Error("failed to insert example",
			"word_id", example.WordID,
			redact.ErrorAttr(err))
		return fmt.Errorf("failed to insert example: %w", MapError(err))
	}
	return nil
}

func (t *queueTx) DeletePendingJob(ctx context.Context, wordID int64) error {
	if _, err := t.tx.ExecContext(ctx, deletePendingJobQuery, wordID); err != nil {
		return fmt.Errorf("failed to delete pending job: %w", MapError(err))
	}
	return nil
}

func (t *queueTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrTransactionFailed, err)
	}
	return nil
}

// Rollback is a no-op once the transaction has been committed or rolled back.
func (t *queueTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
