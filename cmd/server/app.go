package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/phrazzld/wordbank/internal/chat"
	"github.com/phrazzld/wordbank/internal/config"
	"github.com/phrazzld/wordbank/internal/generation"
	"github.com/phrazzld/wordbank/internal/platform/anthropic"
	"github.com/phrazzld/wordbank/internal/platform/gemini"
	"github.com/phrazzld/wordbank/internal/platform/postgres"
	"github.com/phrazzld/wordbank/internal/store"
	"github.com/phrazzld/wordbank/internal/task"
	"golang.org/x/sync/errgroup"
)

// application holds the wired dependencies of a running server.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	words    store.WordStore
	examples store.ExampleStore
	queue    store.QueueStore

	// worker and token are nil when the worker is disabled.
	worker *task.Worker
	token  *task.CancellationToken
}

// newCompleter builds the chat client for the configured provider. It returns
// nil when the worker is disabled, since nothing else talks to the model.
func newCompleter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (chat.Completer, error) {
	if !cfg.Worker.Enabled {
		return nil, nil
	}

	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		c, err := gemini.NewCompleter(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderAnthropic:
		c, err := anthropic.NewCompleter(logger, cfg.LLM)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q", generation.ErrInvalidConfig, cfg.LLM.Provider)
	}
}

// newApplication wires the postgres stores, the synthesizer and the worker.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, completer chat.Completer) (*application, error) {
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}

	queue := postgres.NewQueueStore(db)
	app := &application{
		config:   cfg,
		logger:   logger,
		words:    postgres.NewWordStore(db),
		examples: postgres.NewExampleStore(db),
		queue:    queue,
	}

	if !cfg.Worker.Enabled {
		logger.Warn("example worker disabled; queued words will not receive examples")
		return app, nil
	}

	synth, err := generation.NewSynthesizer(completer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create example synthesizer: %w", err)
	}

	if err := app.attachWorker(synth); err != nil {
		return nil, err
	}
	return app, nil
}

func (app *application) attachWorker(generator task.ExampleGenerator) error {
	token := task.NewCancellationToken()
	worker, err := task.NewWorker(
		app.queue,
		generator,
		token,
		task.WorkerConfig{PollInterval: app.config.Worker.PollInterval},
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create example worker: %w", err)
	}

	app.worker = worker
	app.token = token
	return nil
}

// Run serves HTTP on ln and runs the worker until ctx is cancelled or the
// server fails. Either way the worker is signalled to stop, the server is
// drained within the shutdown timeout, and Run waits for both to finish.
func (app *application) Run(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.serveHTTP(gctx, server, ln)
	})

	if app.worker != nil {
		g.Go(func() error {
			return app.worker.Run(ctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			app.logger.Info("stopping example worker")
			app.token.Cancel()
			return nil
		})
	}

	err := g.Wait()
	app.logger.Info("server shutdown completed")
	return err
}

func (app *application) serveHTTP(ctx context.Context, server *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "addr", ln.Addr().String())
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		app.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
