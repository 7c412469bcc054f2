package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rendezvous-lab/rendezvous/internal/core/config"
	"github.com/rendezvous-lab/rendezvous/internal/core/logging"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage/memory"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage/postgres"
	"github.com/rendezvous-lab/rendezvous/internal/events"
	"github.com/rendezvous-lab/rendezvous/internal/lifecycle"
	"github.com/rendezvous-lab/rendezvous/internal/metrics"
	"github.com/rendezvous-lab/rendezvous/internal/migrations"
	"github.com/rendezvous-lab/rendezvous/internal/remote"
	"github.com/rendezvous-lab/rendezvous/internal/server"
	"github.com/spf13/pflag"
)

// statsApp is the application name under which hits are recorded.
const statsApp = "rendezvous"

func main() {
	if err := run(); err != nil {
		slog.Error("event-service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := pflag.NewFlagSet("eventsvc", pflag.ContinueOnError)
	configPath := flagSet.String("config", "", "path to YAML configuration file")
	printConfig := flagSet.Bool("print-config", false, "print the effective configuration and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	// 1. Load configuration and install the logger
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(logging.New(cfg.Log, os.Stdout))

	if *printConfig {
		out, err := cfg.Dump()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}

	if err := cfg.RequireCollaborators(config.Stats, config.Users, config.Requests); err != nil {
		return err
	}

	// 2. Initialize storage
	var (
		store  storage.EventStore
		health server.HealthChecker
	)
	switch cfg.Database.Type {
	case "memory":
		slog.Warn("Using in-memory event store; data is lost on restart")
		store = memory.NewEventStore()
	default:
		db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		if err := migrations.RunMigrations(db, migrations.Events, cfg.Database.AutoMigrate); err != nil {
			db.Close()
			return fmt.Errorf("run database migrations: %w", err)
		}
		adapter, err := postgres.NewAdapterFromDB(db)
		if err != nil {
			db.Close()
			return fmt.Errorf("initialize event store: %w", err)
		}
		defer adapter.Close()
		store, health = adapter, adapter
	}

	// 3. Collaborators
	timeout := cfg.Collaborators.TimeoutDuration()
	stats := remote.NewStatsClient(cfg.Collaborators.StatsURL, statsApp, timeout)
	users := remote.NewUserClient(cfg.Collaborators.UsersURL, timeout, cfg.Collaborators.UserCacheSize)
	requests := remote.NewRequestClient(cfg.Collaborators.RequestsURL, timeout)

	// 4. Services
	lc := lifecycle.NewService(store, users)
	agg := metrics.NewAggregator(users, requests, stats, metrics.Config{
		Strict:             cfg.Metrics.Strict,
		LastKnownCacheSize: cfg.Metrics.LastKnownCacheSize,
	})
	svc := events.NewService(store, lc, agg, stats, cfg.Server.MaxBodySizeMB)

	// 5. HTTP server
	engine := server.NewGin(cfg.Server.Mode, health)
	svc.RegisterRoutes(engine)
	srv := server.New(cfg.Server.Addr(), engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("event-service starting",
		"address", srv.Addr,
		"database", cfg.Database.Type,
		"metrics_strict", cfg.Metrics.Strict)

	if err := srv.Run(ctx); err != nil {
		return err
	}
	slog.Info("Shutdown complete")
	return nil
}
