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

	"github.com/osse101/QRHunt_Go/internal/bootstrap"
	"github.com/osse101/QRHunt_Go/internal/config"
	"github.com/osse101/QRHunt_Go/internal/server"
)

const shutdownTimeout = 15 * time.Second

// @title QRHunt API
// @version 1.0
// @description Scavenger-hunt badge redemption service.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open collection store", "error", err)
		os.Exit(1)
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		_ = store.Close()
		os.Exit(1)
	}

	svcs, err := bootstrap.InitializeServices(ctx, cfg, store, events.Bus)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		_ = store.Close()
		os.Exit(1)
	}

	hub := bootstrap.StartEventStream(events.Bus)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Deps{
		Store:      store,
		Redemption: svcs.Redemption,
		Profiles:   svcs.Profiles,
		Members:    svcs.Members,
		Events:     hub,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server: srv,
		Events: hub,
		Bus:    events,
		Store:  store,
	})
}
