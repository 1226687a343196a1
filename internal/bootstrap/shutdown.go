package bootstrap

import (
	"context"
	"log/slog"

	"github.com/tervalon/delveforge/internal/database"
	"github.com/tervalon/delveforge/internal/server"
	"github.com/tervalon/delveforge/internal/worker"
)

// ShutdownComponents holds the components that need graceful shutdown.
type ShutdownComponents struct {
	Server     *server.Server
	WorkerPool *worker.Pool
	DBPool     database.Pool
}

// GracefulShutdown stops the application in dependency order: the HTTP
// server first so no new work arrives, then the worker pool once in-flight
// jobs finish, then the database pool.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
		slog.Info(LogMsgWorkerPoolStopped)
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgShutdownComplete)
}
