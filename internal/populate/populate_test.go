package populate

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tervalon/delveforge/internal/domain"
)

// bigMap builds a fully open map large enough for every distance band.
func bigMap(width, depth int) *domain.MapDefinition {
	tiles := make([][]byte, width)
	for x := range tiles {
		tiles[x] = make([]byte, depth)
		for z := range tiles[x] {
			tiles[x][z] = domain.TileFloor
		}
	}
	return &domain.MapDefinition{
		Name:          "arena",
		Width:         width,
		Depth:         depth,
		SpawnPosition: domain.Position{X: 2, Z: 2},
		Tiles:         tiles,
		Rooms: []domain.Room{{
			ID:     0,
			Kind:   domain.RoomSpawn,
			Bounds: domain.Bounds{MinX: 0, MinZ: 0, MaxX: width - 1, MaxZ: depth - 1},
			Center: domain.Position{X: 2, Z: 2},
			Area:   width * depth,
		}},
	}
}

func newRng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic test randomness
}

func TestPopulate_Densities(t *testing.T) {
	m := bigMap(100, 100)

	result, err := Populate(context.Background(), m, Options{SkipClusters: true}, newRng(1))
	require.NoError(t, err)

	// 10000 floor tiles: about 100 monsters and 200 props, but spacing
	// and safe zone shave some off.
	assert.Equal(t, result.MonstersPlaced, len(m.Enemies))
	assert.Equal(t, result.PropsPlaced, len(m.PlacedProps))
	assert.LessOrEqual(t, result.MonstersPlaced, 100)
	assert.Greater(t, result.MonstersPlaced, 50)
	assert.LessOrEqual(t, result.PropsPlaced, 200)
	assert.Greater(t, result.PropsPlaced, 100)
}

func TestPopulate_SafeZone(t *testing.T) {
	m := bigMap(100, 100)

	_, err := Populate(context.Background(), m, Options{}, newRng(2))
	require.NoError(t, err)

	for _, e := range m.Enemies {
		assert.GreaterOrEqual(t, distance(e.Position, m.SpawnPosition), SafeZoneRadius,
			"monster %s inside the safe zone", e.Type)
	}
}

func TestPopulate_TierRisesWithDistance(t *testing.T) {
	m := bigMap(200, 200)

	_, err := Populate(context.Background(), m, Options{SkipClusters: true}, newRng(3))
	require.NoError(t, err)

	for _, e := range m.Enemies {
		if e.IsBoss {
			continue
		}
		expected := tierForDistance(distance(e.Position, m.SpawnPosition))
		assert.Equal(t, expected, e.Level, "monster %s at %v", e.Type, e.Position)
		assert.Contains(t, monstersForTier(expected), e.Type)
	}
}

func TestPopulate_MonsterSpacing(t *testing.T) {
	m := bigMap(100, 100)

	_, err := Populate(context.Background(), m, Options{SkipClusters: true}, newRng(4))
	require.NoError(t, err)

	for i := 0; i < len(m.Enemies); i++ {
		for j := i + 1; j < len(m.Enemies); j++ {
			assert.GreaterOrEqual(t, distance(m.Enemies[i].Position, m.Enemies[j].Position), MonsterSpacing)
		}
	}
}

func TestPopulate_BossesOnlyFarOut(t *testing.T) {
	m := bigMap(250, 250)

	_, err := Populate(context.Background(), m, Options{SkipClusters: true}, newRng(5))
	require.NoError(t, err)

	for _, e := range m.Enemies {
		if !e.IsBoss {
			continue
		}
		assert.Greater(t, distance(e.Position, m.SpawnPosition), BossDistance)
		assert.Contains(t, Bosses, e.Type)
	}
}

func TestPopulate_PropsOnlyOnFloor(t *testing.T) {
	m := bigMap(100, 100)
	// Wall off the right half.
	for x := 50; x < 100; x++ {
		for z := 0; z < 100; z++ {
			m.Tiles[x][z] = domain.TileWall
		}
	}

	_, err := Populate(context.Background(), m, Options{}, newRng(6))
	require.NoError(t, err)

	for _, prop := range m.PlacedProps {
		// Jitter stays within half a tile of the anchor.
		assert.Less(t, prop.X, 49.5)
		assert.GreaterOrEqual(t, prop.Scale, PropScaleMin)
		assert.LessOrEqual(t, prop.Scale, PropScaleMax)
		assert.GreaterOrEqual(t, prop.RotationY, 0.0)
		assert.LessOrEqual(t, prop.RotationY, MaxRotation)
	}
}

func TestPopulate_ClustersBeyondMinDistance(t *testing.T) {
	m := bigMap(200, 200)

	// Suppress the single-monster and prop passes so the cluster pass
	// runs on an open map. At default densities the earlier passes leave
	// no tile clear of every placement, and zero clusters is correct.
	opts := Options{
		MonsterDensityDivisor: 1_000_000,
		PropDensityDivisor:    1_000_000,
	}

	result, err := Populate(context.Background(), m, opts, newRng(7))
	require.NoError(t, err)
	require.Greater(t, result.ClustersPlaced, 0)

	for _, e := range m.Enemies {
		assert.True(t, m.IsFloor(e.Position.X, e.Position.Z),
			"enemy %s off the floor at %v", e.Type, e.Position)
		// Anchors sit at least ClusterMinDistance out; members jitter by
		// up to ClusterOffsetRange on each axis.
		assert.GreaterOrEqual(t, distance(e.Position, m.SpawnPosition), ClusterMinDistance-2*ClusterOffsetRange,
			"cluster member too close to spawn")
	}
}

func TestPopulate_Deterministic(t *testing.T) {
	a := bigMap(150, 150)
	b := bigMap(150, 150)

	_, err := Populate(context.Background(), a, Options{}, newRng(42))
	require.NoError(t, err)
	_, err = Populate(context.Background(), b, Options{}, newRng(42))
	require.NoError(t, err)

	assert.Equal(t, a.Enemies, b.Enemies)
	assert.Equal(t, a.PlacedProps, b.PlacedProps)
}

func TestPopulate_MergesWithExisting(t *testing.T) {
	m := bigMap(100, 100)
	existing := domain.EnemyPlacement{
		Type:     "goblin",
		RoomID:   0,
		Position: domain.Position{X: 50, Z: 50},
		Level:    1,
	}
	m.Enemies = []domain.EnemyPlacement{existing}

	_, err := Populate(context.Background(), m, Options{SkipClusters: true}, newRng(8))
	require.NoError(t, err)

	assert.Equal(t, existing, m.Enemies[0], "existing placements survive")
	for _, e := range m.Enemies[1:] {
		assert.GreaterOrEqual(t, distance(e.Position, existing.Position), MonsterSpacing)
	}
}

func TestPopulate_AssignsRoomIDs(t *testing.T) {
	m := bigMap(100, 100)

	_, err := Populate(context.Background(), m, Options{}, newRng(9))
	require.NoError(t, err)

	for _, e := range m.Enemies {
		assert.Equal(t, 0, e.RoomID, "the whole arena is one room")
	}
}

func TestPopulate_NoTiles(t *testing.T) {
	m := &domain.MapDefinition{Name: "hollow", Width: 10, Depth: 10}

	_, err := Populate(context.Background(), m, Options{}, newRng(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPopulate_NoFloor(t *testing.T) {
	m := bigMap(10, 10)
	for x := range m.Tiles {
		for z := range m.Tiles[x] {
			m.Tiles[x][z] = domain.TileWall
		}
	}

	_, err := Populate(context.Background(), m, Options{}, newRng(11))
	assert.ErrorIs(t, err, domain.ErrNoFloorTiles)
}

func TestTierForDistance(t *testing.T) {
	assert.Equal(t, 1, tierForDistance(0))
	assert.Equal(t, 1, tierForDistance(29.9))
	assert.Equal(t, 2, tierForDistance(30))
	assert.Equal(t, 3, tierForDistance(60))
	assert.Equal(t, 4, tierForDistance(100))
	assert.Equal(t, 5, tierForDistance(150))
	assert.Equal(t, 5, tierForDistance(500))
}
