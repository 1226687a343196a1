package domain

// Tile values stored in a map's grid.
const (
	TileWall  = 0
	TileFloor = 1
)

// Position is a tile coordinate. Maps use x (width) and z (depth) axes to
// match the on-disk map format.
type Position struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// RoomKind classifies a detected room.
type RoomKind string

const (
	RoomNormal   RoomKind = "normal"
	RoomSpawn    RoomKind = "spawn"
	RoomBoss     RoomKind = "boss"
	RoomTreasure RoomKind = "treasure"
)

// Bounds is an inclusive axis-aligned rectangle in tile coordinates.
type Bounds struct {
	MinX int `json:"min_x"`
	MinZ int `json:"min_z"`
	MaxX int `json:"max_x"`
	MaxZ int `json:"max_z"`
}

// Width returns the horizontal extent of the bounds in tiles.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Depth returns the vertical extent of the bounds in tiles.
func (b Bounds) Depth() int { return b.MaxZ - b.MinZ + 1 }

// Room is a contiguous floor region detected by flood fill.
type Room struct {
	ID       int      `json:"id"`
	Kind     RoomKind `json:"kind"`
	Bounds   Bounds   `json:"bounds"`
	Center   Position `json:"center"`
	Area     int      `json:"area"`
	Adjacent []int    `json:"adjacent,omitempty"` // ids of connected rooms
}

// Corridor is a thin connecting region between two detected rooms.
type Corridor struct {
	ID    int        `json:"id"`
	RoomA int        `json:"room_a"`
	RoomB int        `json:"room_b"`
	Tiles []Position `json:"tiles,omitempty"`
}

// EnemyPlacement positions one enemy on the map.
type EnemyPlacement struct {
	Type      string   `json:"type"`
	RoomID    int      `json:"roomId"`
	Position  Position `json:"position"`
	Level     int      `json:"level"`
	IsBoss    bool     `json:"isBoss"`
	RotationY float64  `json:"rotationY"`
}

// PlacedProp positions one decorative prop on the map. Props use float
// coordinates because they jitter off the tile grid.
type PlacedProp struct {
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	RotationY float64 `json:"rotationY"`
	Scale     float64 `json:"scale"`
}

// MapDefinition is a fully parsed dungeon map, owned by the session that
// loaded it. Tiles are indexed [x][z]. The JSON form stores the grid as
// base64(gzip(RLE)) in TileData; Tiles itself is never serialized.
type MapDefinition struct {
	ID            string           `json:"id,omitempty"`
	Name          string           `json:"name"`
	Width         int              `json:"width"`
	Depth         int              `json:"depth"`
	SpawnPosition Position         `json:"spawnPosition"`
	TileData      string           `json:"tileData"`
	Tiles         [][]byte         `json:"-"`
	Rooms         []Room           `json:"rooms,omitempty"`
	Corridors     []Corridor       `json:"corridors,omitempty"`
	Enemies       []EnemyPlacement `json:"enemies,omitempty"`
	PlacedProps   []PlacedProp     `json:"placedProps,omitempty"`
}

// FloorCount returns the number of walkable tiles in the decoded grid.
func (m *MapDefinition) FloorCount() int {
	count := 0
	for x := range m.Tiles {
		for z := range m.Tiles[x] {
			if m.Tiles[x][z] == TileFloor {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy. Callers that mutate placements on a shared
// map must clone first.
func (m *MapDefinition) Clone() *MapDefinition {
	if m == nil {
		return nil
	}

	out := *m

	if m.Tiles != nil {
		out.Tiles = make([][]byte, len(m.Tiles))
		for x := range m.Tiles {
			out.Tiles[x] = append([]byte(nil), m.Tiles[x]...)
		}
	}

	if m.Rooms != nil {
		out.Rooms = make([]Room, len(m.Rooms))
		for i, r := range m.Rooms {
			r.Adjacent = append([]int(nil), r.Adjacent...)
			out.Rooms[i] = r
		}
	}

	if m.Corridors != nil {
		out.Corridors = make([]Corridor, len(m.Corridors))
		for i, c := range m.Corridors {
			c.Tiles = append([]Position(nil), c.Tiles...)
			out.Corridors[i] = c
		}
	}

	out.Enemies = append([]EnemyPlacement(nil), m.Enemies...)
	out.PlacedProps = append([]PlacedProp(nil), m.PlacedProps...)

	return &out
}

// InBounds reports whether the coordinate is inside the map grid.
func (m *MapDefinition) InBounds(x, z int) bool {
	return x >= 0 && x < m.Width && z >= 0 && z < m.Depth
}

// IsFloor reports whether the tile at (x, z) is walkable.
func (m *MapDefinition) IsFloor(x, z int) bool {
	return m.InBounds(x, z) && m.Tiles[x][z] == TileFloor
}
