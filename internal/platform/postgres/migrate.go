package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrations returns the embedded SQL migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		// ALLOW-PANIC: the embedded directory is fixed at build time
		panic(err)
	}
	return sub
}

// MigrationStatus describes one migration and whether it has been applied.
type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

// Migrator applies the embedded migrations with goose.
type Migrator struct {
	provider *goose.Provider
	logger   *slog.Logger
}

// NewMigrator creates a Migrator for db.
func NewMigrator(db *sql.DB, logger *slog.Logger) (*Migrator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, Migrations())
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	return &Migrator{
		provider: provider,
		logger:   logger.With("component", "migrations"),
	}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	for _, r := range results {
		m.logResult(ctx, r)
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	m.logger.InfoContext(ctx, "migrations applied", "count", len(results))
	return nil
}

// Down rolls back the most recently applied migration.
func (m *Migrator) Down(ctx context.Context) error {
	result, err := m.provider.Down(ctx)
	if result != nil {
		m.logResult(ctx, result)
	}
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Status reports every known migration in version order.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

func (m *Migrator) logResult(ctx context.Context, r *goose.MigrationResult) {
	if r == nil || r.Source == nil {
		return
	}
	attrs := []any{
		"version", r.Source.Version,
		"path", r.Source.Path,
		"direction", r.Direction,
		"duration", r.Duration.String(),
	}
	if r.Error != nil {
		m.logger.ErrorContext(ctx, "migration failed", append(attrs, "error", r.Error.Error())...)
		return
	}
	m.logger.InfoContext(ctx, "migration applied", attrs...)
}
