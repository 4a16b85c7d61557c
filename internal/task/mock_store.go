package task

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/wordbank/internal/domain"
	"github.com/phrazzld/wordbank/internal/store"
)

// errTxClosed is returned by a MockQueueTx used after Commit or Rollback.
var errTxClosed = errors.New("transaction already closed")

// MockQueueStore is an in-memory store.QueueStore for tests. Transactions
// stage their writes and apply them only when Commit succeeds.
type MockQueueStore struct {
	mu        sync.Mutex
	nextJobID int64
	nextExID  int64
	jobs      []domain.PendingJob
	examples  []domain.Example

	openTx    int
	maxOpenTx int
	commits   int

	// FetchPendingJobsFn, if set, runs before the default fetch. A non-nil
	// error is returned as the fetch result.
	FetchPendingJobsFn func(ctx context.Context) error

	// BeginTxErr is returned by BeginTx when set.
	BeginTxErr error

	// CommitFn, if set, decides whether a commit of the given example fails.
	CommitFn func(example domain.Example) error
}

var _ store.QueueStore = (*MockQueueStore)(nil)

// NewMockQueueStore creates an empty MockQueueStore.
func NewMockQueueStore() *MockQueueStore {
	return &MockQueueStore{}
}

// Enqueue adds a pending job for word and returns it.
func (s *MockQueueStore) Enqueue(word domain.Word) domain.PendingJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextJobID++
	job := domain.PendingJob{ID: s.nextJobID, Word: word}
	s.jobs = append(s.jobs, job)
	return job
}

// FetchPendingJobs returns the queued jobs ordered by job id.
func (s *MockQueueStore) FetchPendingJobs(ctx context.Context) ([]domain.PendingJob, error) {
	if s.FetchPendingJobsFn != nil {
		if err := s.FetchPendingJobsFn(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]domain.PendingJob, len(s.jobs))
	copy(jobs, s.jobs)
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}

// CountPending returns the number of queued jobs.
func (s *MockQueueStore) CountPending(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs), nil
}

// BeginTx opens a staged transaction.
func (s *MockQueueStore) BeginTx(context.Context) (store.QueueTx, error) {
	if s.BeginTxErr != nil {
		return nil, s.BeginTxErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.openTx++
	if s.openTx > s.maxOpenTx {
		s.maxOpenTx = s.openTx
	}
	return &MockQueueTx{store: s}, nil
}

// Examples returns a copy of the committed examples.
func (s *MockQueueStore) Examples() []domain.Example {
	s.mu.Lock()
	defer s.mu.Unlock()

	examples := make([]domain.Example, len(s.examples))
	copy(examples, s.examples)
	return examples
}

// ExamplesFor returns the committed examples of one word.
func (s *MockQueueStore) ExamplesFor(wordID int64) []domain.Example {
	var out []domain.Example
	for _, e := range s.Examples() {
		if e.WordID == wordID {
			out = append(out, e)
		}
	}
	return out
}

// HasJob reports whether a job for wordID is still queued.
func (s *MockQueueStore) HasJob(wordID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if j.WordID() == wordID {
			return true
		}
	}
	return false
}

// MaxOpenTx returns the largest number of transactions that were open at once.
func (s *MockQueueStore) MaxOpenTx() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxOpenTx
}

// OpenTx returns the number of transactions not yet committed or rolled back.
func (s *MockQueueStore) OpenTx() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openTx
}

// Commits returns the number of successful commits.
func (s *MockQueueStore) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// MockQueueTx is the transaction returned by MockQueueStore.BeginTx.
type MockQueueTx struct {
	store    *MockQueueStore
	examples []domain.Example
	deletes  []int64
	closed   bool
}

// InsertExample stages an example.
func (tx *MockQueueTx) InsertExample(_ context.Context, example domain.Example) error {
	if tx.closed {
		return errTxClosed
	}
	tx.examples = append(tx.examples, example)
	return nil
}

// DeletePendingJob stages the removal of the job for wordID.
func (tx *MockQueueTx) DeletePendingJob(_ context.Context, wordID int64) error {
	if tx.closed {
		return errTxClosed
	}
	tx.deletes = append(tx.deletes, wordID)
	return nil
}

// Commit applies the staged writes unless CommitFn rejects one of the examples.
// A failed commit discards the staged writes.
func (tx *MockQueueTx) Commit() error {
	if tx.closed {
		return errTxClosed
	}

	s := tx.store
	if s.CommitFn != nil {
		for _, e := range tx.examples {
			if err := s.CommitFn(e); err != nil {
				tx.close()
				return err
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range tx.examples {
		s.nextExID++
		e.ID = s.nextExID
		e.CreatedAt = time.Now().UTC()
		s.examples = append(s.examples, e)
	}

	for _, wordID := range tx.deletes {
		kept := s.jobs[:0]
		for _, j := range s.jobs {
			if j.WordID() != wordID {
				kept = append(kept, j)
			}
		}
		s.jobs = kept
	}

	s.commits++
	s.openTx--
	tx.closed = true
	return nil
}

// Rollback discards the staged writes. It is a no-op on a closed transaction.
func (tx *MockQueueTx) Rollback() error {
	if tx.closed {
		return nil
	}
	tx.close()
	return nil
}

func (tx *MockQueueTx) close() {
	tx.store.mu.Lock()
	tx.store.openTx--
	tx.store.mu.Unlock()
	tx.closed = true
	tx.examples = nil
	tx.deletes = nil
}
