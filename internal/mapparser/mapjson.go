package mapparser

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/validation"
)

// LoadMapFile reads a map JSON file, validates it against the map schema
// and decodes the tile grid.
func LoadMapFile(path string) (*domain.MapDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadMapFileFailed, err)
	}

	validator := validation.NewSchemaValidator()
	if err := validator.ValidateBytes(data, MapSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var m domain.MapDefinition
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf(ErrMsgParseMapFileFailed, err)
	}

	tiles, err := DecodeTileData(m.TileData, m.Width, m.Depth)
	if err != nil {
		return nil, err
	}
	m.Tiles = tiles

	return &m, nil
}

// SaveMapFile writes a map as indented JSON. The tile grid is re-encoded
// so callers may mutate Tiles without keeping TileData in sync.
func SaveMapFile(m *domain.MapDefinition, path string) error {
	if len(m.Tiles) > 0 {
		encoded, err := EncodeTileData(m.Tiles)
		if err != nil {
			return err
		}
		m.TileData = encoded
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf(ErrMsgWriteMapFailed, err)
	}
	return nil
}
