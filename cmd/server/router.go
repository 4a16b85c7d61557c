package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/wordbank/internal/api"
	apiMiddleware "github.com/phrazzld/wordbank/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	wordHandler := api.NewWordHandler(app.words, app.examples)

	// A nil *task.Worker must not reach the handler as a non-nil interface.
	var stats api.StatsSource
	if app.worker != nil {
		stats = app.worker
	}
	queueHandler := api.NewQueueHandler(app.queue, stats)

	r.Route("/api", func(r chi.Router) {
		r.Post("/words", wordHandler.CreateWord)
		r.Get("/words", wordHandler.ListWords)
		r.Get("/words/{id}", wordHandler.GetWord)

		r.Get("/queue", queueHandler.GetStatus)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
