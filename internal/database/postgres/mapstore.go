package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/repository"
)

// MapRepository implements repository.MapStore for PostgreSQL
type MapRepository struct {
	db *pgxpool.Pool
}

// NewMapRepository creates a new MapRepository
func NewMapRepository(db *pgxpool.Pool) *MapRepository {
	return &MapRepository{db: db}
}

// SaveMap inserts a parsed map. Rooms, corridors and placements are stored
// as jsonb; the tile grid travels as its encoded string form.
func (r *MapRepository) SaveMap(ctx context.Context, m *domain.MapDefinition) error {
	rooms, err := json.Marshal(m.Rooms)
	if err != nil {
		return fmt.Errorf("failed to marshal rooms: %w", err)
	}
	corridors, err := json.Marshal(m.Corridors)
	if err != nil {
		return fmt.Errorf("failed to marshal corridors: %w", err)
	}
	enemies, err := json.Marshal(m.Enemies)
	if err != nil {
		return fmt.Errorf("failed to marshal enemies: %w", err)
	}
	props, err := json.Marshal(m.PlacedProps)
	if err != nil {
		return fmt.Errorf("failed to marshal props: %w", err)
	}

	query := `
		INSERT INTO maps (id, name, width, depth, spawn_x, spawn_z, tile_data,
			rooms, corridors, enemies, placed_props, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query,
		m.ID, m.Name, m.Width, m.Depth, m.SpawnPosition.X, m.SpawnPosition.Z,
		m.TileData, rooms, corridors, enemies, props)
	if err != nil {
		return fmt.Errorf("failed to insert map: %w", err)
	}
	return nil
}

// GetMapByID returns a stored map. The tile grid is not decoded here;
// callers decode TileData when they need walkability.
func (r *MapRepository) GetMapByID(ctx context.Context, id string) (*domain.MapDefinition, error) {
	return r.getMap(ctx, "id = $1", id)
}

// GetMapByName returns the most recently created map with the given name
func (r *MapRepository) GetMapByName(ctx context.Context, name string) (*domain.MapDefinition, error) {
	return r.getMap(ctx, "name = $1", name)
}

func (r *MapRepository) getMap(ctx context.Context, where string, arg any) (*domain.MapDefinition, error) {
	query := fmt.Sprintf(`
		SELECT id, name, width, depth, spawn_x, spawn_z, tile_data,
		       rooms, corridors, enemies, placed_props
		FROM maps
		WHERE %s
		ORDER BY created_at DESC
		LIMIT 1
	`, where)

	var m domain.MapDefinition
	var rooms, corridors, enemies, props []byte

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.Name, &m.Width, &m.Depth,
		&m.SpawnPosition.X, &m.SpawnPosition.Z, &m.TileData,
		&rooms, &corridors, &enemies, &props)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %v", domain.ErrMapNotFound, arg)
		}
		return nil, fmt.Errorf("failed to get map: %w", err)
	}

	for _, field := range []struct {
		data []byte
		dst  any
	}{
		{rooms, &m.Rooms},
		{corridors, &m.Corridors},
		{enemies, &m.Enemies},
		{props, &m.PlacedProps},
	} {
		if len(field.data) == 0 {
			continue
		}
		if err := json.Unmarshal(field.data, field.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal map field: %w", err)
		}
	}

	return &m, nil
}

// ListMaps returns lightweight summaries for all stored maps
func (r *MapRepository) ListMaps(ctx context.Context) ([]repository.MapSummary, error) {
	query := `
		SELECT id, name, width, depth,
		       jsonb_array_length(COALESCE(rooms, '[]'::jsonb)),
		       jsonb_array_length(COALESCE(enemies, '[]'::jsonb))
		FROM maps
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list maps: %w", err)
	}
	defer rows.Close()

	var summaries []repository.MapSummary
	for rows.Next() {
		var s repository.MapSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Width, &s.Depth, &s.RoomCount, &s.EnemyCount); err != nil {
			return nil, fmt.Errorf("failed to scan map summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// UpdatePlacements replaces a map's enemies and props
func (r *MapRepository) UpdatePlacements(ctx context.Context, id string, enemies []domain.EnemyPlacement, props []domain.PlacedProp) error {
	enemiesJSON, err := json.Marshal(enemies)
	if err != nil {
		return fmt.Errorf("failed to marshal enemies: %w", err)
	}
	propsJSON, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("failed to marshal props: %w", err)
	}

	query := `
		UPDATE maps
		SET enemies = $2, placed_props = $3, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, enemiesJSON, propsJSON)
	if err != nil {
		return fmt.Errorf("failed to update placements: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrMapNotFound, id)
	}
	return nil
}

// DeleteMap removes a stored map
func (r *MapRepository) DeleteMap(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM maps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete map: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrMapNotFound, id)
	}
	return nil
}
