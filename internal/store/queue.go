package store

import (
	"context"

	"github.com/phrazzld/wordbank/internal/domain"
)

// QueueStore gives the example generation worker access to pending jobs.
type QueueStore interface {
	// FetchPendingJobs returns every pending job joined with its word,
	// ordered by job id. Returns an empty slice when the queue is empty.
	FetchPendingJobs(ctx context.Context) ([]domain.PendingJob, error)

	// BeginTx starts the transaction in which one job's result is recorded.
	BeginTx(ctx context.Context) (QueueTx, error)

	// CountPending returns the number of jobs waiting in the queue.
	CountPending(ctx context.Context) (int, error)
}

// QueueTx records a generated example and removes its job atomically.
// Nothing is visible to other readers until Commit succeeds.
// Rollback after a successful Commit is a no-op.
type QueueTx interface {
	InsertExample(ctx context.Context, example domain.Example) error

	// DeletePendingJob removes the queue row for wordID.
	// Deleting a job that is already gone is not an error.
	DeletePendingJob(ctx context.Context, wordID int64) error

	Commit() error
	Rollback() error
}
