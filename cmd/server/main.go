// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/reelhouse/internal/api"
	"github.com/tomtom215/reelhouse/internal/auth"
	"github.com/tomtom215/reelhouse/internal/authz"
	"github.com/tomtom215/reelhouse/internal/cache"
	"github.com/tomtom215/reelhouse/internal/config"
	"github.com/tomtom215/reelhouse/internal/database"
	"github.com/tomtom215/reelhouse/internal/logging"
	"github.com/tomtom215/reelhouse/internal/metrics"
	"github.com/tomtom215/reelhouse/internal/supervisor"
	"github.com/tomtom215/reelhouse/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

// run wires the server and blocks until shutdown. Deferred cleanup runs
// before main exits because the exit code is returned rather than passed to
// os.Exit here.
//
//nolint:gocyclo // sequential setup steps
func run() int {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := cfg.Validate(); err != nil {
		logging.Error().Err(err).Msg("Invalid configuration")
		return 1
	}
	generated, err := cfg.EnsureJWTSecret()
	if err != nil {
		logging.Error().Err(err).Msg("Invalid configuration")
		return 1
	}
	if generated {
		logging.Warn().Msg("JWT_SECRET is not set; using a random secret, tokens will not survive a restart")
	}

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Str("cache_backend", cfg.Cache.Backend).
		Str("version", version).
		Msg("Starting Reelhouse")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === DATA ===

	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize database")
		return 1
	}
	defer db.Close()

	backend, err := initCacheBackend(ctx, &cfg.Cache)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize cache")
		return 1
	}
	if backend != nil {
		defer func() {
			if err := backend.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing cache")
			}
		}()
		logging.Info().Str("backend", backend.Name()).Msg("Response cache enabled")
	} else {
		logging.Info().Msg("Response cache disabled (CACHE_BACKEND=none)")
	}
	rc := cache.NewResponseCache(backend, cfg.Cache.Timeout)

	// === AUTH ===

	tokens, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize JWT manager")
		return 1
	}
	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize authorization")
		return 1
	}
	defer enforcer.Close()

	authn := auth.NewMiddleware(tokens)
	guard := authz.NewGuard(authn, enforcer, db)

	// === HTTP ===

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	for _, origin := range cfg.Security.CORSOrigins {
		if origin == "*" {
			logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
			break
		}
	}

	handler := api.NewHandler(db, rc, tokens, auth.NewPasswordHasher(cfg.Security.BcryptCost), cfg)
	router := api.NewRouter(handler, guard, authn, rc, api.NewChiMiddlewareFromConfig(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// === SUPERVISOR TREE ===

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.Timeout,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return 1
	}
	tree.AddDataService(services.NewCacheStatsService(rc, db, cfg.Cache.StatsInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	exitCode := 0
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
			exitCode = 1
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
	return exitCode
}
