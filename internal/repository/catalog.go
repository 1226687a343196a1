package repository

import (
	"context"

	"github.com/tervalon/delveforge/internal/domain"
)

// Catalog defines the interface for base item template and affix persistence
type Catalog interface {
	// Template operations
	GetAllTemplates(ctx context.Context) ([]domain.BaseItemTemplate, error)
	GetTemplateByName(ctx context.Context, internalName string) (*domain.BaseItemTemplate, error)
	InsertTemplate(ctx context.Context, tmpl *domain.BaseItemTemplate) error
	UpdateTemplate(ctx context.Context, tmpl *domain.BaseItemTemplate) error

	// Affix operations
	GetAllAffixes(ctx context.Context) ([]AffixRecord, error)
	UpsertAffix(ctx context.Context, affix *AffixRecord) error

	// Sync metadata operations
	GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error)
	UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error
}

// AffixRecord is the persisted form of an affix definition.
type AffixRecord struct {
	Key          string
	Kind         domain.AffixKind
	Name         string
	Stat         string
	Slots        []string
	MinItemLevel int
	MaxItemLevel int
	MagnitudeMin float64
	MagnitudeMax float64
	Weight       int
	Group        string
	Tier         int
}
