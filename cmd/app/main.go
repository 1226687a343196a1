package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tervalon/delveforge/internal/bootstrap"
	"github.com/tervalon/delveforge/internal/config"
	"github.com/tervalon/delveforge/internal/database"
	"github.com/tervalon/delveforge/internal/database/postgres"
	"github.com/tervalon/delveforge/internal/dungeon"
	"github.com/tervalon/delveforge/internal/event"
	"github.com/tervalon/delveforge/internal/loot"
	"github.com/tervalon/delveforge/internal/metrics"
	"github.com/tervalon/delveforge/internal/server"
	"github.com/tervalon/delveforge/internal/worker"
)

const (
	dbMaxConns      = 20
	dbMaxIdleTime   = 30 * time.Minute
	dbMaxLifetime   = time.Hour
	shutdownTimeout = 15 * time.Second
	mapCacheTTL     = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	bootstrap.SetupLogger(cfg)

	dbPool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	catalogRepo := postgres.NewCatalogRepository(dbPool)
	mapRepo := postgres.NewMapRepository(dbPool)

	index, err := bootstrap.SyncCatalog(ctx, cfg.BaseItemsPath, catalogRepo)
	if err != nil {
		log.Fatalf("Failed to sync item catalog: %v", err)
	}

	affixes, err := bootstrap.SyncAffixes(ctx, cfg.AffixesPath, catalogRepo)
	if err != nil {
		log.Fatalf("Failed to sync affix database: %v", err)
	}

	// Event bus with prometheus counters on every published event
	eventBus := event.NewMemoryBus()
	metrics.NewEventMetricsCollector().Register(eventBus)

	// Worker pool for async map population
	pool := worker.NewPool(cfg.PopulateWorkers, cfg.PopulateQueue)
	pool.Start()

	lootService := loot.NewService(index, affixes, eventBus)
	dungeonService := dungeon.NewService(mapRepo, eventBus, dungeon.Config{
		CacheSize: cfg.MapCacheSize,
		CacheTTL:  mapCacheTTL,
		Pool:      pool,
		NewRng: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	})

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, dbPool, lootService, dungeonService, index, affixes)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:     srv,
		WorkerPool: pool,
		DBPool:     dbPool,
	})
}
