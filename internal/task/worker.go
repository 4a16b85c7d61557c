package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/wordbank/internal/domain"
	"github.com/phrazzld/wordbank/internal/redact"
	"github.com/phrazzld/wordbank/internal/store"
)

// DefaultPollInterval is the pause between poll cycles.
const DefaultPollInterval = time.Second

// ExampleGenerator produces an example sentence and its translation for a word.
type ExampleGenerator interface {
	GenerateExample(ctx context.Context, word domain.Word) (sentence, translation string, err error)
}

// WorkerConfig holds the worker's tunables.
type WorkerConfig struct {
	// PollInterval is the sleep between cycles. Zero or negative means DefaultPollInterval.
	PollInterval time.Duration
}

// WorkerOption customizes a Worker.
type WorkerOption func(*Worker)

// WithRetryPolicy replaces the default PollingRetryPolicy.
func WithRetryPolicy(policy RetryPolicy) WorkerOption {
	return func(w *Worker) {
		if policy != nil {
			w.retry = policy
		}
	}
}

// Worker drains the example generation queue.
type Worker struct {
	queue        store.QueueStore
	generator    ExampleGenerator
	token        *CancellationToken
	retry        RetryPolicy
	pollInterval time.Duration
	stats        Stats
	logger       *slog.Logger
	now          func() time.Time
}

// NewWorker creates a worker that stops once token is cancelled.
func NewWorker(
	queue store.QueueStore,
	generator ExampleGenerator,
	token *CancellationToken,
	cfg WorkerConfig,
	logger *slog.Logger,
	opts ...WorkerOption,
) (*Worker, error) {
	if queue == nil {
		return nil, errors.New("queue store cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("example generator cannot be nil")
	}
	if token == nil {
		return nil, errors.New("cancellation token cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	w := &Worker{
		queue:        queue,
		generator:    generator,
		token:        token,
		retry:        PollingRetryPolicy{},
		pollInterval: interval,
		logger:       logger.With("component", "example_worker"),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Stats returns a snapshot of the worker's counters.
func (w *Worker) Stats() StatsSnapshot {
	return w.stats.Snapshot()
}

// Run polls the queue until the token is cancelled and returns nil once it
// stops. ctx supplies values such as the logger; its cancellation is ignored
// so that a job in progress always runs to completion.
func (w *Worker) Run(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)

	w.logger.InfoContext(ctx, "example worker started", "poll_interval", w.pollInterval.String())

	for {
		if w.token.IsCancelled() {
			w.logger.InfoContext(ctx, "example worker stopped", "cycles", w.stats.cycles.Load())
			return nil
		}

		w.runCycle(ctx)
		w.sleep()
	}
}

// sleep waits for the poll interval or until the token is cancelled.
func (w *Worker) sleep() {
	timer := time.NewTimer(w.pollInterval)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-w.token.Done():
	}
}

// runCycle fetches the pending jobs and processes them in order.
// Cancellation is not checked between jobs: a started batch is finished.
func (w *Worker) runCycle(ctx context.Context) {
	w.stats.cycleStarted(w.now())

	jobs, err := w.queue.FetchPendingJobs(ctx)
	if err != nil {
		w.stats.fetchErrors.Add(1)
		w.logger.ErrorContext(ctx, "failed to fetch pending jobs", redact.ErrorAttr(err))
		return
	}

	if len(jobs) > 0 {
		w.logger.DebugContext(ctx, "processing pending jobs", "count", len(jobs))
	}

	for _, job := range jobs {
		log := w.logger.With("job_id", job.ID, "word_id", job.WordID())

		if !w.retry.Allow(job) {
			w.stats.skipped.Add(1)
			log.DebugContext(ctx, "retry policy skipped job")
			continue
		}

		if err := w.processJob(ctx, job); err != nil {
			w.stats.failed.Add(1)
			w.retry.Failed(job, err)
			log.ErrorContext(ctx, "failed to process job, leaving it queued", redact.ErrorAttr(err))
			continue
		}

		w.stats.processed.Add(1)
		w.retry.Succeeded(job)
		log.InfoContext(ctx, "example generated")
	}
}

func (w *Worker) processJob(ctx context.Context, job domain.PendingJob) error {
	sentence, translation, err := w.generator.GenerateExample(ctx, job.Word)
	if err != nil {
		return fmt.Errorf("generate example: %w", err)
	}

	example, err := domain.NewExample(job.WordID(), sentence, translation)
	if err != nil {
		return fmt.Errorf("build example: %w", err)
	}

	return w.commit(ctx, job, *example)
}

// commit stores the example and removes the job in one transaction. On any
// failure the transaction is rolled back and the job stays queued.
func (w *Worker) commit(ctx context.Context, job domain.PendingJob, example domain.Example) error {
	tx, err := w.queue.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			w.logger.WarnContext(ctx, "failed to roll back job transaction",
				"job_id", job.ID,
				"word_id", job.WordID(),
				redact.ErrorAttr(rbErr))
		}
	}()

	if err := tx.InsertExample(ctx, example); err != nil {
		return fmt.Errorf("insert example: %w", err)
	}

	if err := tx.DeletePendingJob(ctx, job.WordID()); err != nil {
		return fmt.Errorf("delete pending job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true

	return nil
}
