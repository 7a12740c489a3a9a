package bootstrap

import (
	"context"
	"io"
	"log/slog"

	"github.com/osse101/Bossforge_Go/internal/database"
	"github.com/osse101/Bossforge_Go/internal/event"
	"github.com/osse101/Bossforge_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	ResilientPublisher *event.ResilientPublisher
	Integrations       *Integrations
	Store              database.Pool
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server (stop accepting new requests)
// 2. Event publisher (flush pending events to the subscribers)
// 3. Subscribers' external connections
// 4. Store
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	// Flush pending events before their subscribers go away
	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if in := components.Integrations; in != nil {
		if in.Sink != nil {
			closeComponent(ComponentNameSink, in.Sink)
		}
		if in.Redis != nil {
			closeComponent(ComponentNameRedis, in.Redis)
		}
	}

	if components.Store != nil {
		components.Store.Close()
	}

	slog.Info(LogMsgServerStopped)
}

func closeComponent(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Error(name+LogMsgComponentCloseFailed, "error", err)
	}
}
