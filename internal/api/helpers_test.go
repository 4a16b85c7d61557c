package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/wordbank/internal/domain"
	"github.com/phrazzld/wordbank/internal/store"
	"github.com/phrazzld/wordbank/internal/task"
)

type fakeWordStore struct {
	CreateWithJobFn func(ctx context.Context, word *domain.Word) error
	GetByIDFn       func(ctx context.Context, id int64) (*domain.Word, error)
	ListFn          func(ctx context.Context, filter store.WordFilter) ([]domain.Word, error)
	IsPendingFn     func(ctx context.Context, wordID int64) (bool, error)
}

func (f *fakeWordStore) CreateWithJob(ctx context.Context, word *domain.Word) error {
	if f.CreateWithJobFn != nil {
		return f.CreateWithJobFn(ctx, word)
	}
	return nil
}

func (f *fakeWordStore) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	return nil, store.ErrWordNotFound
}

func (f *fakeWordStore) List(ctx context.Context, filter store.WordFilter) ([]domain.Word, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeWordStore) IsPending(ctx context.Context, wordID int64) (bool, error) {
	if f.IsPendingFn != nil {
		return f.IsPendingFn(ctx, wordID)
	}
	return false, nil
}

type fakeExampleStore struct {
	ListByWordFn func(ctx context.Context, wordID int64) ([]domain.Example, error)
}

func (f *fakeExampleStore) ListByWord(ctx context.Context, wordID int64) ([]domain.Example, error) {
	if f.ListByWordFn != nil {
		return f.ListByWordFn(ctx, wordID)
	}
	return nil, nil
}

type fakeQueueStore struct {
	store.QueueStore
	pending int
	err     error
}

func (f *fakeQueueStore) CountPending(context.Context) (int, error) {
	return f.pending, f.err
}

type fixedStats task.StatsSnapshot

func (s fixedStats) Stats() task.StatsSnapshot { return task.StatsSnapshot(s) }

// newTestRouter mounts the handlers the same way the server does.
func newTestRouter(words *WordHandler, queue *QueueHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		if words != nil {
			r.Post("/words", words.CreateWord)
			r.Get("/words", words.ListWords)
			r.Get("/words/{id}", words.GetWord)
		}
		if queue != nil {
			r.Get("/queue", queue.GetStatus)
		}
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
