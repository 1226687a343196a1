package repository

import (
	"context"

	"github.com/tervalon/delveforge/internal/domain"
)

// MapSummary is a lightweight listing row for stored maps.
type MapSummary struct {
	ID         string
	Name       string
	Width      int
	Depth      int
	RoomCount  int
	EnemyCount int
}

// MapStore defines the interface for parsed map persistence
type MapStore interface {
	SaveMap(ctx context.Context, m *domain.MapDefinition) error
	GetMapByID(ctx context.Context, id string) (*domain.MapDefinition, error)
	GetMapByName(ctx context.Context, name string) (*domain.MapDefinition, error)
	ListMaps(ctx context.Context) ([]MapSummary, error)
	UpdatePlacements(ctx context.Context, id string, enemies []domain.EnemyPlacement, props []domain.PlacedProp) error
	DeleteMap(ctx context.Context, id string) error
}
