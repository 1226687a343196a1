// Package populate fills a parsed map with monsters and props. Placement is
// distance-driven: harder monsters and richer props appear farther from
// spawn, and a safe zone around spawn stays empty.
package populate

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/logger"
)

// Result summarizes one population pass.
type Result struct {
	MonstersPlaced int `json:"monsters_placed"`
	PropsPlaced    int `json:"props_placed"`
	ClustersPlaced int `json:"clusters_placed"`
}

// Options tunes a population pass. Zero values use the package defaults.
type Options struct {
	// MonsterDensityDivisor overrides tiles-per-monster.
	MonsterDensityDivisor int

	// PropDensityDivisor overrides tiles-per-prop.
	PropDensityDivisor int

	// SkipClusters disables monster cluster placement.
	SkipClusters bool
}

func (o Options) monsterDivisor() int {
	if o.MonsterDensityDivisor > 0 {
		return o.MonsterDensityDivisor
	}
	return MonsterDensityDivisor
}

func (o Options) propDivisor() int {
	if o.PropDensityDivisor > 0 {
		return o.PropDensityDivisor
	}
	return PropDensityDivisor
}

// Populate places monsters and props onto the map, merging with whatever is
// already there. The same rng seed over the same map yields identical
// placements.
func Populate(ctx context.Context, m *domain.MapDefinition, opts Options, rng *rand.Rand) (*Result, error) {
	if len(m.Tiles) == 0 {
		return nil, fmt.Errorf("%w: map has no decoded tiles", domain.ErrInvalidInput)
	}

	floors := floorPositions(m)
	if len(floors) == 0 {
		return nil, domain.ErrNoFloorTiles
	}

	p := &populator{
		m:      m,
		rng:    rng,
		spawn:  m.SpawnPosition,
		placed: existingPositions(m),
	}

	rng.Shuffle(len(floors), func(i, j int) {
		floors[i], floors[j] = floors[j], floors[i]
	})

	result := &Result{}
	result.MonstersPlaced = p.placeMonsters(floors, len(floors)/opts.monsterDivisor())
	result.PropsPlaced = p.placeProps(floors, len(floors)/opts.propDivisor())
	if !opts.SkipClusters {
		result.ClustersPlaced = p.placeClusters(floors)
	}

	logger.FromContext(ctx).Info(LogMsgMapPopulated,
		"map", m.Name,
		"monsters", result.MonstersPlaced,
		"props", result.PropsPlaced,
		"clusters", result.ClustersPlaced)

	return result, nil
}

type populator struct {
	m      *domain.MapDefinition
	rng    *rand.Rand
	spawn  domain.Position
	placed []domain.Position
}

func (p *populator) placeMonsters(floors []domain.Position, target int) int {
	placed := 0
	for _, pos := range floors {
		if placed >= target {
			break
		}

		dist := p.distanceFromSpawn(pos)
		if dist < SafeZoneRadius {
			continue
		}
		if !p.positionClear(pos, MonsterSpacing) {
			continue
		}

		tier := tierForDistance(dist)
		monsterType := p.choice(monstersForTier(tier))

		isBoss := false
		if dist > BossDistance && p.rng.Float64() < BossChance {
			monsterType = p.choice(Bosses)
			isBoss = true
		}

		p.m.Enemies = append(p.m.Enemies, domain.EnemyPlacement{
			Type:      monsterType,
			RoomID:    p.roomAt(pos),
			Position:  pos,
			Level:     tier,
			IsBoss:    isBoss,
			RotationY: p.rng.Float64() * MaxRotation,
		})

		p.placed = append(p.placed, pos)
		placed++
	}
	return placed
}

func (p *populator) placeProps(floors []domain.Position, target int) int {
	placed := 0
	for _, pos := range floors {
		if placed >= target {
			break
		}

		if !p.positionClear(pos, PropSpacing) {
			continue
		}

		pool := propsForDistance(p.distanceFromSpawn(pos))

		p.m.PlacedProps = append(p.m.PlacedProps, domain.PlacedProp{
			Type:      p.choice(pool),
			X:         float64(pos.X) + p.jitter(),
			Y:         0,
			Z:         float64(pos.Z) + p.jitter(),
			RotationY: p.rng.Float64() * MaxRotation,
			Scale:     PropScaleMin + p.rng.Float64()*(PropScaleMax-PropScaleMin),
		})

		p.placed = append(p.placed, pos)
		placed++
	}
	return placed
}

// placeClusters drops small packs of related monsters in far areas. Cluster
// anchors are sampled from every ClusterSampleStride-th shuffled floor tile.
func (p *populator) placeClusters(floors []domain.Position) int {
	target := len(floors) / ClusterDensityDivisor
	if target > MaxClusters {
		target = MaxClusters
	}

	placed := 0
	for i := 0; i < len(floors) && placed < target; i += ClusterSampleStride {
		pos := floors[i]

		dist := p.distanceFromSpawn(pos)
		if dist < ClusterMinDistance || !p.positionClear(pos, ClusterSpacing) {
			continue
		}

		size := ClusterMinSize + p.rng.Intn(ClusterMaxSize-ClusterMinSize+1)
		pool := clusterPool(tierForDistance(dist))

		for j := 0; j < size; j++ {
			member := domain.Position{
				X: pos.X + int(p.rng.Float64()*2*ClusterOffsetRange-ClusterOffsetRange),
				Z: pos.Z + int(p.rng.Float64()*2*ClusterOffsetRange-ClusterOffsetRange),
			}
			if !p.m.IsFloor(member.X, member.Z) {
				continue
			}

			p.m.Enemies = append(p.m.Enemies, domain.EnemyPlacement{
				Type:      p.choice(pool),
				RoomID:    p.roomAt(member),
				Position:  member,
				Level:     tierForDistance(dist),
				IsBoss:    false,
				RotationY: p.rng.Float64() * MaxRotation,
			})
		}

		p.placed = append(p.placed, pos)
		placed++
	}
	return placed
}

func (p *populator) distanceFromSpawn(pos domain.Position) float64 {
	return distance(pos, p.spawn)
}

func (p *populator) positionClear(pos domain.Position, minDist float64) bool {
	for _, existing := range p.placed {
		if distance(pos, existing) < minDist {
			return false
		}
	}
	return true
}

// roomAt maps a tile to the room whose bounds contain it, or -1.
func (p *populator) roomAt(pos domain.Position) int {
	for i := range p.m.Rooms {
		b := p.m.Rooms[i].Bounds
		if pos.X >= b.MinX && pos.X <= b.MaxX && pos.Z >= b.MinZ && pos.Z <= b.MaxZ {
			return p.m.Rooms[i].ID
		}
	}
	return -1
}

func (p *populator) choice(pool []string) string {
	return pool[p.rng.Intn(len(pool))]
}

func (p *populator) jitter() float64 {
	return p.rng.Float64()*2*PropJitter - PropJitter
}

func tierForDistance(dist float64) int {
	switch {
	case dist < Tier2Distance:
		return 1
	case dist < Tier3Distance:
		return 2
	case dist < Tier4Distance:
		return 3
	case dist < Tier5Distance:
		return 4
	default:
		return 5
	}
}

func monstersForTier(tier int) []string {
	switch tier {
	case 1:
		return Tier1Monsters
	case 2:
		return Tier2Monsters
	case 3:
		return Tier3Monsters
	case 4:
		return Tier4Monsters
	default:
		return Tier5Monsters
	}
}

// clusterPool mixes two neighboring tiers so packs feel varied.
func clusterPool(tier int) []string {
	switch {
	case tier <= 2:
		return concat(Tier1Monsters, Tier2Monsters)
	case tier == 3:
		return concat(Tier2Monsters, Tier3Monsters)
	default:
		return concat(Tier3Monsters, Tier4Monsters)
	}
}

// propsForDistance picks the theme band: homely near spawn, treasure and
// spooky far out.
func propsForDistance(dist float64) []string {
	switch {
	case dist < PropBandNear:
		return concat(DungeonProps, CampProps)
	case dist < PropBandMid:
		return concat(DungeonProps, NatureProps)
	case dist < PropBandFar:
		return concat(DungeonProps, SpookyProps, TreasureProps)
	default:
		return concat(SpookyProps, TreasureProps)
	}
}

func concat(pools ...[]string) []string {
	var out []string
	for _, pool := range pools {
		out = append(out, pool...)
	}
	return out
}

func floorPositions(m *domain.MapDefinition) []domain.Position {
	var floors []domain.Position
	for x := 0; x < m.Width; x++ {
		for z := 0; z < m.Depth; z++ {
			if m.Tiles[x][z] == domain.TileFloor {
				floors = append(floors, domain.Position{X: x, Z: z})
			}
		}
	}
	return floors
}

// existingPositions seeds the spacing check with spawn and everything the
// map already carries, so repeated passes do not stack placements.
func existingPositions(m *domain.MapDefinition) []domain.Position {
	placed := []domain.Position{m.SpawnPosition}
	for _, e := range m.Enemies {
		placed = append(placed, e.Position)
	}
	for _, prop := range m.PlacedProps {
		placed = append(placed, domain.Position{X: int(prop.X), Z: int(prop.Z)})
	}
	return placed
}

func distance(a, b domain.Position) float64 {
	dx := float64(a.X - b.X)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dz*dz)
}
