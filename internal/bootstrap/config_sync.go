package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tervalon/delveforge/internal/affix"
	"github.com/tervalon/delveforge/internal/catalog"
	"github.com/tervalon/delveforge/internal/repository"
)

// SyncCatalog loads, validates, and syncs the base item catalog to the
// database, then builds the runtime index. Hash-based change detection
// skips the database writes when the file is unchanged.
func SyncCatalog(ctx context.Context, path string, repo repository.Catalog) (*catalog.Index, error) {
	slog.Info(LogMsgSyncingCatalog)
	loader := catalog.NewLoader()

	cfg, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load item catalog config: %w", err)
	}

	if err := loader.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid item catalog config: %w", err)
	}

	result, err := loader.SyncToDatabase(ctx, cfg, repo, path)
	if err != nil {
		return nil, fmt.Errorf("failed to sync item catalog to database: %w", err)
	}

	if result.TemplatesInserted > 0 || result.TemplatesUpdated > 0 {
		slog.Info(LogMsgCatalogSynced,
			"inserted", result.TemplatesInserted,
			"updated", result.TemplatesUpdated,
			"skipped", result.TemplatesSkipped)
	} else {
		slog.Info(LogMsgCatalogUnchanged)
	}

	return catalog.NewIndex(cfg)
}

// SyncAffixes loads, validates, and syncs the affix config to the database,
// then builds the runtime rolling database.
func SyncAffixes(ctx context.Context, path string, repo repository.Catalog) (*affix.Database, error) {
	slog.Info(LogMsgSyncingAffixes)
	loader := affix.NewLoader()

	cfg, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load affix config: %w", err)
	}

	if err := loader.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid affix config: %w", err)
	}

	synced, err := loader.SyncToDatabase(ctx, cfg, repo, path)
	if err != nil {
		return nil, fmt.Errorf("failed to sync affixes to database: %w", err)
	}

	if synced > 0 {
		slog.Info(LogMsgAffixesSynced, "synced", synced)
	} else {
		slog.Info(LogMsgAffixesUnchanged)
	}

	return affix.NewDatabase(cfg)
}
