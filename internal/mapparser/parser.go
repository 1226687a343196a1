package mapparser

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/tervalon/delveforge/internal/domain"
	"github.com/tervalon/delveforge/internal/logger"
)

// Options tunes map parsing. Zero values fall back to the package defaults.
type Options struct {
	// LuminanceThreshold overrides the wall/floor pixel split point.
	LuminanceThreshold int

	// MinRoomArea overrides the smallest region counted as a room.
	MinRoomArea int

	// SpawnOverride pins the spawn room to the room containing this tile
	// instead of the largest room.
	SpawnOverride *domain.Position
}

func (o Options) threshold() int {
	if o.LuminanceThreshold > 0 {
		return o.LuminanceThreshold
	}
	return LuminanceThreshold
}

func (o Options) minRoomArea() int {
	if o.MinRoomArea > 0 {
		return o.MinRoomArea
	}
	return MinRoomArea
}

// ParseImage decodes a bitmap into a dungeon map: dark pixels are walls,
// bright pixels floor. See ParseGrid for the detection pass.
func ParseImage(ctx context.Context, r io.Reader, name string, opts Options) (*domain.MapDefinition, error) {
	tiles, err := decodeGrid(r, opts.threshold())
	if err != nil {
		return nil, err
	}
	return ParseGrid(ctx, tiles, name, opts)
}

// ParseGrid detects rooms and corridors in a tile grid. Open floor areas
// (tiles covered by a 2x2 floor block) flood fill into room regions; thin
// tiles and undersized regions become corridor segments. Adjacency comes
// from corridors plus straight-line floor continuity between room centers.
func ParseGrid(ctx context.Context, tiles [][]byte, name string, opts Options) (*domain.MapDefinition, error) {
	width := len(tiles)
	depth := 0
	if width > 0 {
		depth = len(tiles[0])
	}

	m := &domain.MapDefinition{
		Name:  name,
		Width: width,
		Depth: depth,
		Tiles: tiles,
	}

	if m.FloorCount() == 0 {
		return nil, domain.ErrNoFloorTiles
	}

	d := newDetector(m, opts.minRoomArea())
	d.detectRooms()
	d.detectCorridors()
	d.lineOfSightAdjacency()
	d.finishAdjacency()
	d.classifyRooms(opts.SpawnOverride)

	m.Rooms = d.rooms
	m.Corridors = d.corridors
	m.SpawnPosition = d.spawnPosition

	if unreachable := d.unreachableRooms(); len(unreachable) > 0 {
		logger.FromContext(ctx).Warn(LogMsgUnreachableRooms, "map", name, "room_ids", unreachable)
	}

	encoded, err := EncodeTileData(tiles)
	if err != nil {
		return nil, fmt.Errorf("encode tile data: %w", err)
	}
	m.TileData = encoded

	logger.FromContext(ctx).Debug(LogMsgMapParsed,
		"map", name,
		"size", fmt.Sprintf("%dx%d", width, depth),
		"rooms", len(m.Rooms),
		"corridors", len(m.Corridors))

	return m, nil
}

// detector holds the working state of one detection pass.
type detector struct {
	m           *domain.MapDefinition
	minRoomArea int

	// roomLabel[x][z] is the room id owning the tile, or -1.
	roomLabel [][]int

	rooms         []domain.Room
	corridors     []domain.Corridor
	adjacency     map[int]map[int]bool
	spawnRoom     int
	spawnPosition domain.Position
}

func newDetector(m *domain.MapDefinition, minRoomArea int) *detector {
	labels := make([][]int, m.Width)
	for x := range labels {
		labels[x] = make([]int, m.Depth)
		for z := range labels[x] {
			labels[x][z] = -1
		}
	}
	return &detector{
		m:           m,
		minRoomArea: minRoomArea,
		roomLabel:   labels,
		adjacency:   make(map[int]map[int]bool),
		spawnRoom:   -1,
	}
}

// openTile reports whether (x, z) lies inside some 2x2 all-floor block.
// Tiles that do not are too thin to be part of a room.
func (d *detector) openTile(x, z int) bool {
	for dx := -1; dx <= 0; dx++ {
		for dz := -1; dz <= 0; dz++ {
			if d.blockIsFloor(x+dx, z+dz) {
				return true
			}
		}
	}
	return false
}

func (d *detector) blockIsFloor(x, z int) bool {
	return d.m.IsFloor(x, z) && d.m.IsFloor(x+1, z) &&
		d.m.IsFloor(x, z+1) && d.m.IsFloor(x+1, z+1)
}

// detectRooms flood fills open floor tiles into regions and keeps those
// large and square enough to be rooms. Rejected regions stay unlabeled and
// fall through to corridor detection. When nothing qualifies, the largest
// floor component is promoted so every walkable map has at least one room.
func (d *detector) detectRooms() {
	visited := newVisitGrid(d.m.Width, d.m.Depth)

	var regions [][]domain.Position
	for x := 0; x < d.m.Width; x++ {
		for z := 0; z < d.m.Depth; z++ {
			if visited[x][z] || !d.m.IsFloor(x, z) || !d.openTile(x, z) {
				continue
			}
			regions = append(regions, d.floodFill(x, z, visited, d.openTile))
		}
	}

	for _, region := range regions {
		if !d.regionIsRoom(region) {
			continue
		}
		d.addRoom(region)
	}

	if len(d.rooms) == 0 {
		d.promoteLargestComponent()
	}
}

func (d *detector) regionIsRoom(region []domain.Position) bool {
	if len(region) < d.minRoomArea {
		return false
	}
	b := boundsOf(region)
	squareness := float64(len(region)) / float64(b.Width()*b.Depth())
	return squareness >= MinRoomSquareness
}

func (d *detector) addRoom(region []domain.Position) {
	id := len(d.rooms)
	b := boundsOf(region)

	room := domain.Room{
		ID:     id,
		Kind:   domain.RoomNormal,
		Bounds: b,
		Center: centerOf(region, b),
		Area:   len(region),
	}

	for _, p := range region {
		d.roomLabel[p.X][p.Z] = id
	}
	d.rooms = append(d.rooms, room)
}

func (d *detector) promoteLargestComponent() {
	visited := newVisitGrid(d.m.Width, d.m.Depth)

	var largest []domain.Position
	for x := 0; x < d.m.Width; x++ {
		for z := 0; z < d.m.Depth; z++ {
			if visited[x][z] || !d.m.IsFloor(x, z) {
				continue
			}
			region := d.floodFill(x, z, visited, nil)
			if len(region) > len(largest) {
				largest = region
			}
		}
	}

	if len(largest) > 0 {
		d.addRoom(largest)
	}
}

// floodFill grows a 4-connected region from (x, z) over floor tiles that
// pass the optional accept filter. Iterative so deep maps cannot blow the
// stack.
func (d *detector) floodFill(x, z int, visited [][]bool, accept func(x, z int) bool) []domain.Position {
	var region []domain.Position
	stack := []domain.Position{{X: x, Z: z}}
	visited[x][z] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		region = append(region, p)

		for _, n := range [4]domain.Position{
			{X: p.X + 1, Z: p.Z},
			{X: p.X - 1, Z: p.Z},
			{X: p.X, Z: p.Z + 1},
			{X: p.X, Z: p.Z - 1},
		} {
			if !d.m.IsFloor(n.X, n.Z) || visited[n.X][n.Z] {
				continue
			}
			if accept != nil && !accept(n.X, n.Z) {
				continue
			}
			visited[n.X][n.Z] = true
			stack = append(stack, n)
		}
	}

	return region
}

// detectCorridors flood fills the floor tiles no room claimed. A segment
// touching exactly two rooms becomes a corridor; every touched room pair
// gains an adjacency edge regardless.
func (d *detector) detectCorridors() {
	visited := newVisitGrid(d.m.Width, d.m.Depth)

	unclaimed := func(x, z int) bool { return d.roomLabel[x][z] < 0 }

	for x := 0; x < d.m.Width; x++ {
		for z := 0; z < d.m.Depth; z++ {
			if visited[x][z] || !d.m.IsFloor(x, z) || !unclaimed(x, z) {
				continue
			}

			segment := d.floodFill(x, z, visited, unclaimed)
			touched := d.touchedRooms(segment)

			for i := 0; i < len(touched); i++ {
				for j := i + 1; j < len(touched); j++ {
					d.addEdge(touched[i], touched[j])
				}
			}

			if len(touched) == 2 {
				d.corridors = append(d.corridors, domain.Corridor{
					ID:    len(d.corridors),
					RoomA: touched[0],
					RoomB: touched[1],
					Tiles: segment,
				})
			}
		}
	}
}

// touchedRooms returns the sorted ids of rooms 4-adjacent to the segment.
func (d *detector) touchedRooms(segment []domain.Position) []int {
	seen := make(map[int]bool)
	for _, p := range segment {
		for _, n := range [4]domain.Position{
			{X: p.X + 1, Z: p.Z},
			{X: p.X - 1, Z: p.Z},
			{X: p.X, Z: p.Z + 1},
			{X: p.X, Z: p.Z - 1},
		} {
			if !d.m.InBounds(n.X, n.Z) {
				continue
			}
			if id := d.roomLabel[n.X][n.Z]; id >= 0 {
				seen[id] = true
			}
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// lineOfSightAdjacency adds an edge between rooms whose centers share a row
// or column with unbroken floor between them.
func (d *detector) lineOfSightAdjacency() {
	for i := 0; i < len(d.rooms); i++ {
		for j := i + 1; j < len(d.rooms); j++ {
			a, b := d.rooms[i].Center, d.rooms[j].Center
			if a.X == b.X && d.floorRunZ(a.X, a.Z, b.Z) {
				d.addEdge(i, j)
			}
			if a.Z == b.Z && d.floorRunX(a.Z, a.X, b.X) {
				d.addEdge(i, j)
			}
		}
	}
}

func (d *detector) floorRunZ(x, z1, z2 int) bool {
	if z1 > z2 {
		z1, z2 = z2, z1
	}
	for z := z1; z <= z2; z++ {
		if !d.m.IsFloor(x, z) {
			return false
		}
	}
	return true
}

func (d *detector) floorRunX(z, x1, x2 int) bool {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if !d.m.IsFloor(x, z) {
			return false
		}
	}
	return true
}

func (d *detector) addEdge(a, b int) {
	if a == b {
		return
	}
	if d.adjacency[a] == nil {
		d.adjacency[a] = make(map[int]bool)
	}
	if d.adjacency[b] == nil {
		d.adjacency[b] = make(map[int]bool)
	}
	d.adjacency[a][b] = true
	d.adjacency[b][a] = true
}

func (d *detector) finishAdjacency() {
	for i := range d.rooms {
		ids := make([]int, 0, len(d.adjacency[i]))
		for id := range d.adjacency[i] {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		d.rooms[i].Adjacent = ids
	}
}

// classifyRooms tags the spawn, boss and treasure rooms. Spawn defaults to
// the largest room; boss is the room whose center is farthest from spawn;
// treasure rooms are far dead ends.
func (d *detector) classifyRooms(spawnOverride *domain.Position) {
	if len(d.rooms) == 0 {
		return
	}

	d.spawnRoom = d.pickSpawnRoom(spawnOverride)
	d.rooms[d.spawnRoom].Kind = domain.RoomSpawn
	d.spawnPosition = d.rooms[d.spawnRoom].Center

	if bossRoom := d.pickBossRoom(); bossRoom >= 0 {
		d.rooms[bossRoom].Kind = domain.RoomBoss
	}

	for i := range d.rooms {
		if d.rooms[i].Kind != domain.RoomNormal {
			continue
		}
		if len(d.rooms[i].Adjacent) == 1 && d.distanceFromSpawn(d.rooms[i].Center) >= TreasureRoomMinDistance {
			d.rooms[i].Kind = domain.RoomTreasure
		}
	}
}

func (d *detector) pickSpawnRoom(spawnOverride *domain.Position) int {
	if spawnOverride != nil && d.m.InBounds(spawnOverride.X, spawnOverride.Z) {
		if id := d.roomLabel[spawnOverride.X][spawnOverride.Z]; id >= 0 {
			return id
		}
	}

	largest := 0
	for i := range d.rooms {
		if d.rooms[i].Area > d.rooms[largest].Area {
			largest = i
		}
	}
	return largest
}

func (d *detector) pickBossRoom() int {
	bossRoom := -1
	bossDist := 0.0
	for i := range d.rooms {
		if i == d.spawnRoom {
			continue
		}
		if dist := d.distanceFromSpawn(d.rooms[i].Center); dist > bossDist {
			bossRoom = i
			bossDist = dist
		}
	}
	return bossRoom
}

func (d *detector) distanceFromSpawn(p domain.Position) float64 {
	dx := float64(p.X - d.spawnPosition.X)
	dz := float64(p.Z - d.spawnPosition.Z)
	return math.Sqrt(dx*dx + dz*dz)
}

// unreachableRooms walks the adjacency graph from the spawn room and
// returns the ids it never reaches.
func (d *detector) unreachableRooms() []int {
	if d.spawnRoom < 0 {
		return nil
	}

	reached := make(map[int]bool, len(d.rooms))
	queue := []int{d.spawnRoom}
	reached[d.spawnRoom] = true

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range d.rooms[id].Adjacent {
			if !reached[next] {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}

	var unreachable []int
	for i := range d.rooms {
		if !reached[i] {
			unreachable = append(unreachable, i)
		}
	}
	return unreachable
}

func newVisitGrid(width, depth int) [][]bool {
	visited := make([][]bool, width)
	for x := range visited {
		visited[x] = make([]bool, depth)
	}
	return visited
}

func boundsOf(region []domain.Position) domain.Bounds {
	b := domain.Bounds{
		MinX: region[0].X, MaxX: region[0].X,
		MinZ: region[0].Z, MaxZ: region[0].Z,
	}
	for _, p := range region[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Z < b.MinZ {
			b.MinZ = p.Z
		}
		if p.Z > b.MaxZ {
			b.MaxZ = p.Z
		}
	}
	return b
}

// centerOf returns the room tile nearest the bounds midpoint, so the center
// is always walkable even for L-shaped regions.
func centerOf(region []domain.Position, b domain.Bounds) domain.Position {
	mid := domain.Position{X: (b.MinX + b.MaxX) / 2, Z: (b.MinZ + b.MaxZ) / 2}

	best := region[0]
	bestDist := math.MaxFloat64
	for _, p := range region {
		dx := float64(p.X - mid.X)
		dz := float64(p.Z - mid.Z)
		if dist := dx*dx + dz*dz; dist < bestDist {
			best = p
			bestDist = dist
		}
	}
	return best
}
