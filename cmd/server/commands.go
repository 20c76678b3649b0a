package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Olprog59/go-fromagerie/internal/app"
	"github.com/Olprog59/go-fromagerie/internal/config"
	"github.com/Olprog59/go-fromagerie/internal/transport/web"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func (c *cli) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context())
		},
	}
}

// serve initializes and starts the HTTP server / Initialise et démarre le serveur HTTP
func (c *cli) serve(parent context.Context) error {
	logStartupInfo(c.cfg)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := app.NewContainer(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	srv := &http.Server{
		Addr:         ":" + c.cfg.Server.Port,
		Handler:      web.NewMux(ctx, web.NewHandler(container)),
		ReadTimeout:  c.cfg.Server.ReadTimeout,
		WriteTimeout: c.cfg.Server.WriteTimeout,
		IdleTimeout:  c.cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("shutting down server gracefully")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}

func (c *cli) newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMigrator(cmd.Context(), func(mg migrator) error {
				return mg.Down(steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back (0 rolls back all)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withMigrator(cmd.Context(), func(mg migrator) error {
					return mg.Up()
				})
			},
		},
		down,
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withMigrator(cmd.Context(), func(mg migrator) error {
					version, dirty, err := mg.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}

type migrator interface {
	Up() error
	Down(steps int) error
	Version() (uint, bool, error)
}

// withMigrator opens the database without applying migrations and runs fn
func (c *cli) withMigrator(ctx context.Context, fn func(migrator) error) error {
	cfg := *c.cfg
	cfg.Database.AutoMigrate = false

	container, err := app.NewContainer(ctx, &cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	mg, err := container.Migrator()
	if err != nil {
		return err
	}
	return fn(mg)
}

func (c *cli) newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the SQLite database into backup.path",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.NewContainer(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			defer container.Close()

			path, err := container.Backup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// logStartupInfo displays startup information / Affiche les informations de démarrage
func logStartupInfo(conf *config.Config) {
	slog.Info("starting application",
		"environment", conf.Environment,
		"port", conf.Server.Port,
		"database", conf.Database.Type,
		"metrics", conf.Metrics.Enabled,
	)

	if conf.RateLimiter.Enabled {
		slog.Info("rate limiter enabled",
			"rps", conf.RateLimiter.RPS,
			"burst", conf.RateLimiter.Burst,
		)
	} else {
		slog.Warn("rate limiter is disabled")
	}
}
