package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	electionservice "pericles/contexts/election-mediator/election-service"
	electionpostgres "pericles/contexts/election-mediator/election-service/adapters/postgres"
	electionworkers "pericles/contexts/election-mediator/election-service/application/workers"
	tallyservice "pericles/contexts/election-mediator/tally-service"
	tallypostgres "pericles/contexts/election-mediator/tally-service/adapters/postgres"
	"pericles/internal/platform/config"
	"pericles/internal/platform/db"
	"pericles/internal/platform/httpserver"
	"pericles/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  electionworkers.OutboxRelay
	relayEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	electionRepo := electionpostgres.NewRepository(pg.DB, logger)
	electionModule := electionservice.NewModule(electionservice.Dependencies{
		Elections: electionRepo,
		Manifests: electionRepo,
		Outbox:    electionRepo,
		Clock:     electionpostgres.SystemClock{},
		IDGen:     electionpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	tallyRepo := tallypostgres.NewRepository(pg.DB, logger)
	tallyModule := tallyservice.NewModule(tallyservice.Dependencies{
		Tallies: tallyRepo,
		Clock:   tallypostgres.SystemClock{},
		IDGen:   tallypostgres.UUIDGenerator{},
		Logger:  logger,
	})

	server := httpserver.New(electionModule, tallyModule, logger, normalizeAddr(cfg.HTTPPort))
	server.SetHealthCheck(func(r *http.Request) error {
		return pg.Ping(r.Context())
	})
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := electionpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: electionworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     electionpostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		relayEnabled: cfg.OutboxRelayEnabled,
		pollInterval: cfg.OutboxRelayInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"relay_enabled", w.relayEnabled,
		"poll_interval", w.pollInterval.String(),
	)
	if !w.relayEnabled {
		<-ctx.Done()
		return nil
	}
	return w.outboxRelay.Run(ctx, w.pollInterval)
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
