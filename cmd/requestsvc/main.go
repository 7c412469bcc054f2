package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rendezvous-lab/rendezvous/internal/admission"
	"github.com/rendezvous-lab/rendezvous/internal/core/config"
	"github.com/rendezvous-lab/rendezvous/internal/core/logging"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage/memory"
	pgxstore "github.com/rendezvous-lab/rendezvous/internal/core/storage/pgx"
	"github.com/rendezvous-lab/rendezvous/internal/migrations"
	"github.com/rendezvous-lab/rendezvous/internal/remote"
	"github.com/rendezvous-lab/rendezvous/internal/server"
	"github.com/spf13/pflag"
)

const minPoolConns = 2

func main() {
	if err := run(); err != nil {
		slog.Error("request-service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := pflag.NewFlagSet("requestsvc", pflag.ContinueOnError)
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

	if err := cfg.RequireCollaborators(config.Users, config.Events); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize storage
	var (
		store  storage.RequestStore
		health server.HealthChecker
	)
	switch cfg.Database.Type {
	case "memory":
		slog.Warn("Using in-memory request store; data is lost on restart")
		store = memory.NewRequestStore()
	default:
		pool, err := pgxstore.NewPool(ctx, pgxstore.PoolConfig{
			DSN:      cfg.Database.DSN,
			MaxConns: int32(cfg.Database.MaxOpenConns),
			MinConns: minPoolConns,
		})
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		defer pool.Close()

		db := pgxstore.SQLDB(pool)
		err = migrations.RunMigrations(db, migrations.Requests, cfg.Database.AutoMigrate)
		db.Close()
		if err != nil {
			return fmt.Errorf("run database migrations: %w", err)
		}

		requests := pgxstore.NewRequestStore(pool)
		store, health = requests, requests
	}

	// 3. Collaborators
	timeout := cfg.Collaborators.TimeoutDuration()
	eventsClient := remote.NewEventClient(cfg.Collaborators.EventsURL, timeout)
	users := remote.NewUserClient(cfg.Collaborators.UsersURL, timeout, cfg.Collaborators.UserCacheSize)

	// 4. Services and routes
	ctrl := admission.NewController(store, eventsClient, users)
	router := server.NewChi(health)
	admission.NewHandler(ctrl).RegisterRoutes(router)
	srv := server.New(cfg.Server.Addr(), router)

	slog.Info("request-service starting", "address", srv.Addr, "database", cfg.Database.Type)

	if err := srv.Run(ctx); err != nil {
		return err
	}
	slog.Info("Shutdown complete")
	return nil
}
