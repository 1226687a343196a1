package mapparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tervalon/delveforge/internal/domain"
)

func testMapDefinition(t *testing.T) *domain.MapDefinition {
	t.Helper()

	tiles := make([][]byte, 6)
	for x := range tiles {
		tiles[x] = make([]byte, 6)
	}
	for x := 1; x < 5; x++ {
		for z := 1; z < 5; z++ {
			tiles[x][z] = domain.TileFloor
		}
	}

	return &domain.MapDefinition{
		Name:          "crypt_b1",
		Width:         6,
		Depth:         6,
		SpawnPosition: domain.Position{X: 2, Z: 2},
		Tiles:         tiles,
		Rooms: []domain.Room{
			{
				ID:     0,
				Kind:   domain.RoomSpawn,
				Bounds: domain.Bounds{MinX: 1, MinZ: 1, MaxX: 4, MaxZ: 4},
				Center: domain.Position{X: 2, Z: 2},
				Area:   16,
			},
		},
		Enemies: []domain.EnemyPlacement{
			{Type: "skeleton", RoomID: 0, Position: domain.Position{X: 3, Z: 3}, Level: 5},
		},
		PlacedProps: []domain.PlacedProp{
			{Type: "barrel", X: 1.4, Y: 0, Z: 4.2, RotationY: 1.2, Scale: 1.0},
		},
	}
}

func TestMapFile_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crypt_b1.json")

	original := testMapDefinition(t)
	require.NoError(t, SaveMapFile(original, path))

	loaded, err := LoadMapFile(path)
	require.NoError(t, err)

	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.Width, loaded.Width)
	assert.Equal(t, original.Depth, loaded.Depth)
	assert.Equal(t, original.SpawnPosition, loaded.SpawnPosition)
	assert.Equal(t, original.Tiles, loaded.Tiles)
	assert.Equal(t, original.Rooms, loaded.Rooms)
	assert.Equal(t, original.Enemies, loaded.Enemies)
	assert.Equal(t, original.PlacedProps, loaded.PlacedProps)
}

func TestLoadMapFile_NotFound(t *testing.T) {
	_, err := LoadMapFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadMapFile_SchemaViolation(t *testing.T) {
	// Missing required tileData.
	path := filepath.Join(t.TempDir(), "bad.json")
	content := `{
		"name": "broken",
		"width": 4,
		"depth": 4,
		"spawnPosition": {"x": 1, "z": 1}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadMapFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestLoadMapFile_CorruptTileData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	content := `{
		"name": "corrupt",
		"width": 4,
		"depth": 4,
		"spawnPosition": {"x": 1, "z": 1},
		"tileData": "bm90LWd6aXA="
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadMapFile(path)
	assert.ErrorIs(t, err, domain.ErrCorruptedTile)
}
