package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/Bossforge_Go/internal/auth"
	"github.com/osse101/Bossforge_Go/internal/bootstrap"
	"github.com/osse101/Bossforge_Go/internal/catalog"
	"github.com/osse101/Bossforge_Go/internal/config"
	"github.com/osse101/Bossforge_Go/internal/handler"
	"github.com/osse101/Bossforge_Go/internal/player"
	"github.com/osse101/Bossforge_Go/internal/reward"
	"github.com/osse101/Bossforge_Go/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		repos.Pool.Close()
		return err
	}

	integrations, err := bootstrap.InitializeIntegrations(ctx, cfg)
	if err != nil {
		repos.Pool.Close()
		return err
	}
	if err := bootstrap.RegisterEventHandlers(eventBus, integrations); err != nil {
		repos.Pool.Close()
		return err
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, cfg.TokenCacheSize)
	if err != nil {
		repos.Pool.Close()
		return err
	}

	handler.InitValidator()

	authService := auth.NewService(repos.Players, tokens)
	catalogService := catalog.NewService(repos.Catalog)
	playerService := player.NewService(
		repos.Players,
		repos.Progress,
		reward.NewApplier(repos.Progress, cfg.ApplyMaxAttempts),
		publisher,
	)

	if cfg.SeedFile != "" {
		if _, err := bootstrap.SyncCatalog(ctx, cfg.SeedFile, catalogService, playerService); err != nil {
			repos.Pool.Close()
			return err
		}
	}

	srv := server.NewServer(cfg.Port, server.Dependencies{
		DBPool:         repos.Pool,
		Version:        cfg.Version,
		TrustedProxies: cfg.TrustedProxies,
		Auth:           authService,
		Players:        playerService,
		Catalog:        catalogService,
		Board:          integrations.Board,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		ResilientPublisher: publisher,
		Integrations:       integrations,
		Store:              repos.Pool,
	})
	return runErr
}
