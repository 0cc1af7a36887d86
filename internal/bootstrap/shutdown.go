package bootstrap

import (
	"context"
	"io"
	"log/slog"
)

// Stopper is anything that drains in-flight work before returning.
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server Stopper
	Events interface{ Stop() }
	Bus    interface {
		Shutdown(ctx context.Context) error
	}
	Store io.Closer
}

// GracefulShutdown ends open event streams, which the HTTP server would
// otherwise wait on, then stops the server, drains event redeliveries and
// closes the store. Errors are
// logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Events != nil {
		slog.Info(LogMsgClosingEventStreams)
		components.Events.Stop()
	}

	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Bus != nil {
		slog.Info(LogMsgDrainingEvents)
		if err := components.Bus.Shutdown(ctx); err != nil {
			slog.Error(LogMsgEventDrainFailed, "error", err)
		}
	}

	if components.Store != nil {
		slog.Info(LogMsgClosingStore)
		if err := components.Store.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
