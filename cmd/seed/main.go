// Command seed loads the item catalog and affix configs and syncs them into
// the database without starting the HTTP server. Run it after editing the
// config files, or from CI to prime a fresh database.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/tervalon/delveforge/internal/bootstrap"
	"github.com/tervalon/delveforge/internal/config"
	"github.com/tervalon/delveforge/internal/database"
	"github.com/tervalon/delveforge/internal/database/postgres"
)

const (
	dbMaxConns    = 4
	dbMaxIdleTime = 5 * time.Minute
	dbMaxLifetime = 30 * time.Minute
	syncTimeout   = 2 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	bootstrap.SetupLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	repo := postgres.NewCatalogRepository(dbPool)

	if _, err := bootstrap.SyncCatalog(ctx, cfg.BaseItemsPath, repo); err != nil {
		slog.Error("Item catalog sync failed", "error", err)
		os.Exit(1)
	}

	if _, err := bootstrap.SyncAffixes(ctx, cfg.AffixesPath, repo); err != nil {
		slog.Error("Affix sync failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Seed complete")
}
