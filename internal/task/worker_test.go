package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/wordbank/internal/domain"
	"github.com/phrazzld/wordbank/internal/generation"
	"github.com/phrazzld/wordbank/internal/mocks"
	"github.com/phrazzld/wordbank/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	wordA = domain.Word{ID: 1, Text: "apple", Translation: "jabłko"}
	wordB = domain.Word{ID: 2, Text: "pear", Translation: "gruszka"}
	wordC = domain.Word{ID: 3, Text: "plum", Translation: "śliwka"}
)

type workerFixture struct {
	store     *MockQueueStore
	generator *mocks.MockExampleGenerator
	token     *CancellationToken
	logs      *logger.TestLogBuffer
	worker    *Worker
}

func newWorkerFixture(t *testing.T, fn func(ctx context.Context, word domain.Word) (string, string, error), opts ...WorkerOption) *workerFixture {
	t.Helper()

	f := &workerFixture{
		store:     NewMockQueueStore(),
		generator: &mocks.MockExampleGenerator{GenerateExampleFn: fn},
		token:     NewCancellationToken(),
	}

	log, buf := logger.NewTestLogger()
	f.logs = buf

	w, err := NewWorker(f.store, f.generator, f.token, WorkerConfig{PollInterval: time.Millisecond}, log, opts...)
	require.NoError(t, err)
	f.worker = w
	return f
}

func (f *workerFixture) run(t *testing.T) {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- f.worker.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		f.token.Cancel()
		t.Fatal("worker did not stop")
	}
}

func exampleFor(word domain.Word) (string, string) {
	return "sentence for " + word.Text, "translation for " + word.Translation
}

func TestNewWorker_Validation(t *testing.T) {
	t.Parallel()

	log, _ := logger.NewTestLogger()
	queue := NewMockQueueStore()
	gen := mocks.NewMockExampleGenerator("s", "t")
	token := NewCancellationToken()

	_, err := NewWorker(nil, gen, token, WorkerConfig{}, log)
	assert.Error(t, err)
	_, err = NewWorker(queue, nil, token, WorkerConfig{}, log)
	assert.Error(t, err)
	_, err = NewWorker(queue, gen, nil, WorkerConfig{}, log)
	assert.Error(t, err)
	_, err = NewWorker(queue, gen, token, WorkerConfig{}, nil)
	assert.Error(t, err)

	w, err := NewWorker(queue, gen, token, WorkerConfig{}, log)
	require.NoError(t, err)
	assert.Equal(t, DefaultPollInterval, w.pollInterval)
}

func TestWorker_CancelledBeforeStart(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	f := newWorkerFixture(t, nil)
	f.store.FetchPendingJobsFn = func(context.Context) error {
		fetches.Add(1)
		return nil
	}
	f.store.Enqueue(wordA)
	f.token.Cancel()

	f.run(t)

	assert.Equal(t, int32(0), fetches.Load(), "no cycle may start after cancellation")
	assert.Equal(t, 0, f.generator.CallCount())
	assert.True(t, f.store.HasJob(wordA.ID))
}

func TestWorker_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	const failures = 3
	var calls atomic.Int32
	var f *workerFixture
	f = newWorkerFixture(t, func(_ context.Context, word domain.Word) (string, string, error) {
		n := calls.Add(1)
		if n <= failures {
			return "", "", generation.ErrGenerationFailed
		}
		f.token.Cancel()
		s, tr := exampleFor(word)
		return s, tr, nil
	})
	f.store.Enqueue(wordA)

	f.run(t)

	examples := f.store.ExamplesFor(wordA.ID)
	require.Len(t, examples, 1, "exactly one example after repeated failures")
	assert.Equal(t, "sentence for apple", examples[0].Sentence)
	assert.Equal(t, "translation for jabłko", examples[0].Translation)
	assert.False(t, f.store.HasJob(wordA.ID))

	stats := f.worker.Stats()
	assert.Equal(t, int64(failures+1), stats.Cycles)
	assert.Equal(t, int64(failures), stats.Failed)
	assert.Equal(t, int64(1), stats.Processed)
	assert.False(t, stats.LastCycleAt.IsZero())
}

func TestWorker_CommitFailureLeavesJobQueued(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var f *workerFixture
	f = newWorkerFixture(t, func(_ context.Context, word domain.Word) (string, string, error) {
		if calls.Add(1) == 1 {
			f.token.Cancel()
		}
		s, tr := exampleFor(word)
		return s, tr, nil
	})
	commitErr := errors.New("could not serialize access")
	f.store.CommitFn = func(domain.Example) error { return commitErr }
	f.store.Enqueue(wordA)

	f.run(t)

	assert.Empty(t, f.store.Examples(), "failed commit must not leave an example")
	assert.True(t, f.store.HasJob(wordA.ID), "failed commit must keep the job")
	assert.Equal(t, 0, f.store.OpenTx(), "transaction must be closed")
	assert.Equal(t, int64(1), f.worker.Stats().Failed)

	entries := f.logs.EntriesWithMessage("failed to process job, leaving it queued")
	require.Len(t, entries, 1)
	assert.Equal(t, float64(wordA.ID), entries[0]["word_id"])
	assert.Contains(t, entries[0]["error"], "could not serialize access")
}

func TestWorker_CommitFailureThenSuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var f *workerFixture
	f = newWorkerFixture(t, func(_ context.Context, word domain.Word) (string, string, error) {
		if calls.Add(1) == 2 {
			f.token.Cancel()
		}
		s, tr := exampleFor(word)
		return s, tr, nil
	})
	var commits atomic.Int32
	f.store.CommitFn = func(domain.Example) error {
		if commits.Add(1) == 1 {
			return errors.New("connection reset")
		}
		return nil
	}
	f.store.Enqueue(wordA)

	f.run(t)

	assert.Len(t, f.store.ExamplesFor(wordA.ID), 1)
	assert.False(t, f.store.HasJob(wordA.ID))
}

func TestWorker_BatchContinuesPastFailure(t *testing.T) {
	t.Parallel()

	var f *workerFixture
	f = newWorkerFixture(t, func(_ context.Context, word domain.Word) (string, string, error) {
		f.token.Cancel()
		if word.ID == wordB.ID {
			return "", "", &generation.InvalidResponseShapeError{LineCount: 3}
		}
		s, tr := exampleFor(word)
		return s, tr, nil
	})
	f.store.Enqueue(wordA)
	f.store.Enqueue(wordB)
	f.store.Enqueue(wordC)

	f.run(t)

	assert.Len(t, f.store.ExamplesFor(wordA.ID), 1)
	assert.Empty(t, f.store.ExamplesFor(wordB.ID))
	assert.Len(t, f.store.ExamplesFor(wordC.ID), 1)

	assert.False(t, f.store.HasJob(wordA.ID))
	assert.True(t, f.store.HasJob(wordB.ID))
	assert.False(t, f.store.HasJob(wordC.ID))

	words := f.generator.Words()
	require.Len(t, words, 3, "the started batch must complete after cancellation")
	assert.Equal(t, []int64{wordA.ID, wordB.ID, wordC.ID}, []int64{words[0].ID, words[1].ID, words[2].ID})
	assert.Equal(t, int64(1), f.worker.Stats().Cycles)
}

func TestWorker_NoConcurrentTransactions(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var f *workerFixture
	f = newWorkerFixture(t, func(_ context.Context, word domain.Word) (string, string, error) {
		if calls.Add(1) == 5 {
			f.token.Cancel()
		}
		s, tr := exampleFor(word)
		return s, tr, nil
	})
	for i := int64(1); i <= 5; i++ {
		f.store.Enqueue(domain.Word{ID: i, Text: "w", Translation: "t"})
	}

	f.run(t)

	assert.Equal(t, 5, f.store.Commits())
	assert.Equal(t, 1, f.store.MaxOpenTx())
	for i := int64(1); i <= 5; i++ {
		assert.Len(t, f.store.ExamplesFor(i), 1)
	}
}

func TestWorker_FetchErrorIsRetried(t *testing.T) {
	t.Parallel()

	var f *workerFixture
	f = newWorkerFixture(t, func(_ context.Context, word domain.Word) (string, string, error) {
		f.token.Cancel()
		s, tr := exampleFor(word)
		return s, tr, nil
	})
	var fetches atomic.Int32
	f.store.FetchPendingJobsFn = func(context.Context) error {
		if fetches.Add(1) <= 2 {
			return errors.New("dial postgres://wordbank:hunter22@db:5432/wordbank: connection refused")
		}
		return nil
	}
	f.store.Enqueue(wordA)

	f.run(t)

	stats := f.worker.Stats()
	assert.Equal(t, int64(2), stats.FetchErrors)
	assert.Equal(t, int64(3), stats.Cycles)
	assert.Len(t, f.store.ExamplesFor(wordA.ID), 1)

	entries := f.logs.EntriesWithMessage("failed to fetch pending jobs")
	require.Len(t, entries, 2)
	assert.NotContains(t, entries[0]["error"], "hunter22", "credentials must be redacted")
}

func TestWorker_BeginTxFailure(t *testing.T) {
	t.Parallel()

	var f *workerFixture
	f = newWorkerFixture(t, func(_ context.Context, word domain.Word) (string, string, error) {
		f.token.Cancel()
		s, tr := exampleFor(word)
		return s, tr, nil
	})
	f.store.BeginTxErr = errors.New("too many connections")
	f.store.Enqueue(wordA)

	f.run(t)

	assert.Empty(t, f.store.Examples())
	assert.True(t, f.store.HasJob(wordA.ID))
	assert.Equal(t, int64(1), f.worker.Stats().Failed)
}

func TestWorker_InvalidGeneratedExample(t *testing.T) {
	t.Parallel()

	var f *workerFixture
	f = newWorkerFixture(t, func(context.Context, domain.Word) (string, string, error) {
		f.token.Cancel()
		return "   ", "translation", nil
	})
	f.store.Enqueue(wordA)

	f.run(t)

	assert.Empty(t, f.store.Examples())
	assert.True(t, f.store.HasJob(wordA.ID))
	assert.Equal(t, 0, f.store.Commits())
}

// skipWordPolicy denies one word and records outcomes for the rest.
type skipWordPolicy struct {
	skip      int64
	failed    atomic.Int32
	succeeded atomic.Int32
}

func (p *skipWordPolicy) Allow(job domain.PendingJob) bool { return job.WordID() != p.skip }
func (p *skipWordPolicy) Failed(domain.PendingJob, error) { p.failed.Add(1) }
func (p *skipWordPolicy) Succeeded(domain.PendingJob) { p.succeeded.Add(1) }

func TestWorker_ConsultsRetryPolicy(t *testing.T) {
	t.Parallel()

	policy := &skipWordPolicy{skip: wordB.ID}
	var f *workerFixture
	f = newWorkerFixture(t, func(_ context.Context, word domain.Word) (string, string, error) {
		f.token.Cancel()
		if word.ID == wordC.ID {
			return "", "", generation.ErrGenerationFailed
		}
		s, tr := exampleFor(word)
		return s, tr, nil
	}, WithRetryPolicy(policy))
	f.store.Enqueue(wordA)
	f.store.Enqueue(wordB)
	f.store.Enqueue(wordC)

	f.run(t)

	for _, w := range f.generator.Words() {
		assert.NotEqual(t, wordB.ID, w.ID, "denied job must not reach the generator")
	}
	assert.True(t, f.store.HasJob(wordB.ID))
	assert.Equal(t, int32(1), policy.succeeded.Load())
	assert.Equal(t, int32(1), policy.failed.Load())
	assert.Equal(t, int64(1), f.worker.Stats().Skipped)
}

func TestWorker_SleepEndsOnCancel(t *testing.T) {
	t.Parallel()

	log, _ := logger.NewTestLogger()
	queue := NewMockQueueStore()
	token := NewCancellationToken()

	fetched := make(chan struct{}, 1)
	queue.FetchPendingJobsFn = func(context.Context) error {
		select {
		case fetched <- struct{}{}:
		default:
		}
		return nil
	}

	w, err := NewWorker(queue, mocks.NewMockExampleGenerator("s", "t"), token, WorkerConfig{PollInterval: time.Hour}, log)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()

	<-fetched
	token.Cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker kept sleeping after cancellation")
	}
	assert.Equal(t, int64(1), w.Stats().Cycles)
}

func TestWorker_IgnoresContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	var jobCtxErr atomic.Value
	var f *workerFixture
	f = newWorkerFixture(t, func(jobCtx context.Context, word domain.Word) (string, string, error) {
		cancel()
		jobCtxErr.Store(jobCtx.Err() == nil)
		f.token.Cancel()
		s, tr := exampleFor(word)
		return s, tr, nil
	})
	f.store.Enqueue(wordA)

	require.NoError(t, f.worker.Run(ctx))

	assert.Equal(t, true, jobCtxErr.Load(), "job context must not inherit cancellation")
	assert.Len(t, f.store.ExamplesFor(wordA.ID), 1)
}
