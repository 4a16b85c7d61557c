package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"text/tabwriter"

	"github.com/phrazzld/wordbank/internal/config"
	"github.com/phrazzld/wordbank/internal/platform/logger"
	"github.com/phrazzld/wordbank/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "wordbank",
		Short:         "Vocabulary API with LLM-generated usage examples",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations, then run the HTTP API and the example worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), opts, func(m *postgres.Migrator) error {
				return m.Up(cmd.Context())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), opts, func(m *postgres.Migrator) error {
				return m.Down(cmd.Context())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), opts, func(m *postgres.Migrator) error {
				statuses, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				return printMigrationStatus(cmd, statuses)
			})
		},
	})

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "wordbank", version)
			return err
		},
	}
}

func printMigrationStatus(cmd *cobra.Command, statuses []postgres.MigrationStatus) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tMIGRATION")
	for _, s := range statuses {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, state, s.Path)
	}
	return tw.Flush()
}

// bootstrap loads configuration and installs the default logger.
func bootstrap(opts *rootOptions) (*config.Config, *slog.Logger, error) {
	load := config.Load
	if opts.configPath != "" {
		load = func() (*config.Config, error) { return config.LoadFrom(opts.configPath) }
	}

	cfg, err := load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider,
		"worker_enabled", cfg.Worker.Enabled)

	return cfg, log, nil
}

func withMigrator(ctx context.Context, opts *rootOptions, fn func(*postgres.Migrator) error) error {
	cfg, log, err := bootstrap(opts)
	if err != nil {
		return err
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	m, err := postgres.NewMigrator(db, log)
	if err != nil {
		return err
	}
	return fn(m)
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, log, err := bootstrap(opts)
	if err != nil {
		return err
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	m, err := postgres.NewMigrator(db, log)
	if err != nil {
		return err
	}
	if err := m.Up(ctx); err != nil {
		return err
	}

	completer, err := newCompleter(ctx, cfg, log)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, log, db, completer)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", cfg.Server.Port, err)
	}

	return app.Run(ctx, ln)
}

func closeDB(db *sql.DB, log *slog.Logger) {
	if err := db.Close(); err != nil {
		log.Error("failed to close database", "error", err)
	}
}
