// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

// Command api is the entry point for the showcase HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the remote store clients (projects, leads).
//  4. Connect to Redis when sessions are stored there.
//  5. Connect to PostgreSQL and run migrations when the audit trail is enabled.
//  6. Connect to object storage when report archiving is enabled.
//  7. Wire services, session workspaces and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanchalalytcs/showcase/internal/api"
	"github.com/aanchalalytcs/showcase/internal/core/audit"
	"github.com/aanchalalytcs/showcase/internal/core/contact"
	"github.com/aanchalalytcs/showcase/internal/core/lead"
	"github.com/aanchalalytcs/showcase/internal/core/project"
	"github.com/aanchalalytcs/showcase/internal/platform/config"
	"github.com/aanchalalytcs/showcase/internal/platform/constants"
	"github.com/aanchalalytcs/showcase/internal/platform/metrics"
	"github.com/aanchalalytcs/showcase/internal/platform/migration"
	"github.com/aanchalalytcs/showcase/internal/platform/objectstore"
	pgstore "github.com/aanchalalytcs/showcase/internal/platform/postgres"
	redisstore "github.com/aanchalalytcs/showcase/internal/platform/redis"
	"github.com/aanchalalytcs/showcase/internal/platform/session"
	"github.com/aanchalalytcs/showcase/internal/platform/sheets"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("session_backend", cfg.SessionBackend),
		slog.Bool("audit", cfg.AuditEnabled()),
		slog.Bool("archive", cfg.ArchiveEnabled()),
	)

	// Root context for background workers; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	m := metrics.New()

	// ── 3. Remote Record Store ────────────────────────────────────────────
	clientOpts := []sheets.Option{
		sheets.WithTimeout(cfg.RemoteTimeout),
		sheets.WithLogger(log),
		sheets.WithMetrics(m),
	}
	projectClient := sheets.New(sheets.Dataset{
		Name:       constants.DatasetProjects,
		Endpoint:   cfg.ProjectsEndpoint,
		Style:      sheets.FormPost,
		Convention: sheets.StatusField,
	}, clientOpts...)
	leadClient := sheets.New(sheets.Dataset{
		Name:       constants.DatasetLeads,
		Endpoint:   cfg.LeadsEndpoint,
		Style:      sheets.QueryGet,
		Convention: sheets.SuccessFlag,
	}, clientOpts...)

	var health api.HealthDependencies

	// ── 4. Session Storage ────────────────────────────────────────────────
	var backend session.Backend = session.MemoryBackend{}
	if cfg.SessionBackend == config.SessionBackendRedis {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()
		backend = session.NewRedisBackend(rdb, cfg.SessionIdleTTL)
		health.CheckCache = redisstore.Check(rdb)
	}

	// ── 5. Audit Trail ────────────────────────────────────────────────────
	var auditRepository audit.Repository
	if cfg.AuditEnabled() {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()
		auditRepository = audit.NewPostgresRepository(pool)
		health.CheckDatabase = pgstore.Check(pool)
	}
	auditService := audit.NewService(auditRepository, log)

	// ── 6. Report Archive ─────────────────────────────────────────────────
	projectOpts := []project.Option{
		project.WithAuditor(auditService),
		project.WithMetrics(m),
		project.WithPageSize(cfg.PageSize),
		project.WithRefreshTimeout(cfg.RefreshTimeout),
	}
	if cfg.ArchiveEnabled() {
		archive, err := objectstore.New(startupCtx, objectstore.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			PathStyle:       cfg.S3PathStyle,
		})
		must(log, err, "configure report archive")
		log.Info("report_archive_configured", slog.String("bucket", archive.Bucket()))
		projectOpts = append(projectOpts, project.WithArchive(archive))
	}

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	projectService := project.NewService(project.NewSheetStore(projectClient), log, projectOpts...)
	leadService := lead.NewService(lead.NewSheetStore(leadClient), lead.Brand(cfg.Brand), log,
		lead.WithAuditor(auditService),
		lead.WithMetrics(m),
		lead.WithPageSize(cfg.PageSize),
		lead.WithRefreshTimeout(cfg.RefreshTimeout),
	)
	contactService := contact.NewService(cfg.ContactRelayURL, cfg.RemoteTimeout, log, contact.WithMetrics(m))

	sessions := api.NewSessions(session.ManagerConfig[*api.Workspace]{
		Backend: backend,
		IdleTTL: cfg.SessionIdleTTL,
		Logger:  log,
	}, projectService, leadService)
	go sessions.Janitor(rootCtx)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Sessions:  sessions,
		Projects:  project.NewHandler(projectService, sessions.Projects),
		Leads:     lead.NewHandler(leadService, sessions.Leads),
		Contact:   contact.NewHandler(contactService),
		Audit:     audit.NewHandler(auditService),
	}

	server := api.NewServer(rootCtx, cfg, log, m, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	shutdownErr := server.Shutdown(shutdownTimeout)

	// Sessions are cleared after the last request so Redis does not keep
	// orphaned snapshots around.
	sessionCtx, sessionCancel := context.WithTimeout(context.Background(), 5*time.Second)
	sessions.Shutdown(sessionCtx)
	sessionCancel()
	rootCancel()

	if shutdownErr != nil {
		log.Error("shutdown_failed", slog.Any("error", shutdownErr))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
