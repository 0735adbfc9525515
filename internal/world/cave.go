package world

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/cavegen/internal/telemetry"
	"github.com/samdwyer/cavegen/internal/vmath"
)

const (
	// Default cave dimensions
	DefaultWidth       = 128
	DefaultHeight      = 80
	DefaultFillPercent = 50

	WallThresholdSize = 50 // Wall regions below this become open
	RoomThresholdSize = 50 // Open regions below this become wall
	PassageRadius     = 2  // Brush radius used when carving passages
	BorderSize        = 1  // Solid ring added before meshing
)

// ErrNoRooms is returned when no open region is large enough to be a room.
var ErrNoRooms = errors.New("no room survived pruning")

// Options controls cave generation.
type Options struct {
	Width       int
	Height      int
	FillPercent int
	Seed        string
	FillMode    FillMode
	Logger      logr.Logger
}

// Passage records a tunnel carved between two rooms.
type Passage struct {
	From, To     Coord // Edge tiles the tunnel runs between
	RoomA, RoomB int   // Indexes into Cave.Rooms
}

// Cave is a generated cave map: the final tile grid and its connected rooms.
type Cave struct {
	Width    int
	Height   int
	Seed     string
	Grid     *Grid
	Rooms    []*Room // Sorted largest first; Rooms[0] is the main room
	Passages []Passage

	roomIndex []int
	log       logr.Logger
}

// Generate fills, smooths and processes a new cave.
func Generate(ctx context.Context, opts Options) (*Cave, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "cave.generate")
	defer span.End()

	startTime := time.Now()

	if opts.Width <= 0 || opts.Height <= 0 {
		err := fmt.Errorf("cave dimensions must be positive, got %dx%d", opts.Width, opts.Height)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	grid := RandomFill(opts.Width, opts.Height, opts.FillPercent, opts.Seed, opts.FillMode)
	grid = SmoothN(grid, SmoothIterations)

	c := &Cave{
		Width:  opts.Width,
		Height: opts.Height,
		Seed:   opts.Seed,
		Grid:   grid,
		log:    opts.Logger,
	}
	if err := c.process(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("cave.width", c.Width),
		attribute.Int("cave.height", c.Height),
		attribute.String("cave.seed", c.Seed),
		attribute.Int("cave.room_count", len(c.Rooms)),
		attribute.Int("cave.passage_count", len(c.Passages)),
		attribute.Int64("cave.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return c, nil
}

// process prunes small regions, builds rooms and connects them. It runs on
// c.Grid in place.
func (c *Cave) process(ctx context.Context) error {
	_, span := telemetry.Tracer("world").Start(ctx, "cave.process")
	defer span.End()

	rooms := c.pruneRegions()
	if len(rooms) == 0 {
		return ErrNoRooms
	}

	slices.SortStableFunc(rooms, func(a, b *Room) int {
		return cmp.Compare(b.Size, a.Size)
	})
	rooms[0].IsMainRoom = true
	rooms[0].IsAccessibleFromMainRoom = true
	c.Rooms = rooms

	c.connectClosestRooms()
	c.indexRooms()

	span.SetAttributes(
		attribute.Int("cave.main_room_size", rooms[0].Size),
		attribute.Int("cave.passage_count", len(c.Passages)),
	)
	return nil
}

// pruneRegions turns small wall regions open and small open regions to wall,
// then builds a room from every open region that is left.
func (c *Cave) pruneRegions() []*Room {
	opened := 0
	for _, region := range FindRegions(c.Grid, TileWall) {
		// The outer ring stays solid however small the map is
		if len(region) >= WallThresholdSize || region.touchesEdge(c.Grid) {
			continue
		}
		for _, tile := range region {
			c.Grid.Tiles[tile.Y][tile.X] = TileOpen
		}
		opened += len(region)
	}

	var survivors []Region
	filled := 0
	for _, region := range FindRegions(c.Grid, TileOpen) {
		if len(region) < RoomThresholdSize {
			for _, tile := range region {
				c.Grid.Tiles[tile.Y][tile.X] = TileWall
			}
			filled += len(region)
			continue
		}
		survivors = append(survivors, region)
	}

	// Edge tiles are only meaningful once every region has been pruned
	rooms := make([]*Room, 0, len(survivors))
	for _, region := range survivors {
		rooms = append(rooms, NewRoom(region, c.Grid))
	}

	c.log.V(1).Info("pruned regions", "wallTilesOpened", opened, "openTilesFilled", filled, "rooms", len(rooms))
	return rooms
}

// connection is a candidate passage between two rooms.
type connection struct {
	roomA, roomB *Room
	tileA, tileB Coord
	distance     int
}

// consider updates best if some edge tile pair of a and b is strictly closer.
// Ties keep whichever pair was found first.
func (best *connection) consider(a, b *Room) {
	for _, tileA := range a.EdgeTiles {
		for _, tileB := range b.EdgeTiles {
			d := tileA.DistSq(tileB)
			if best.roomA == nil || d < best.distance {
				*best = connection{roomA: a, roomB: b, tileA: tileA, tileB: tileB, distance: d}
			}
		}
	}
}

// connectClosestRooms joins every room to the main room. First each room with
// no connection is linked to its nearest neighbor; then the closest pair
// between the accessible and isolated sets is carved until no room is isolated.
func (c *Cave) connectClosestRooms() {
	for _, roomA := range c.Rooms {
		if len(roomA.connected) > 0 {
			continue
		}
		var best connection
		for _, roomB := range c.Rooms {
			if roomA == roomB || roomA.IsConnected(roomB) {
				continue
			}
			best.consider(roomA, roomB)
		}
		if best.roomA != nil {
			c.createPassage(best)
		}
	}

	for {
		var accessible, isolated []*Room
		for _, room := range c.Rooms {
			if room.IsAccessibleFromMainRoom {
				accessible = append(accessible, room)
			} else {
				isolated = append(isolated, room)
			}
		}
		if len(isolated) == 0 {
			return
		}

		var best connection
		for _, roomA := range isolated {
			for _, roomB := range accessible {
				if roomA.IsConnected(roomB) {
					continue
				}
				best.consider(roomA, roomB)
			}
		}
		if best.roomA == nil {
			panic(fmt.Sprintf("world: %d isolated rooms but no edge tile pair to connect them", len(isolated)))
		}
		c.createPassage(best)
	}
}

// createPassage connects two rooms and carves a tunnel between their edge tiles.
func (c *Cave) createPassage(conn connection) {
	connectRooms(conn.roomA, conn.roomB)
	for _, p := range Line(conn.tileA, conn.tileB) {
		c.carveCircle(p, PassageRadius)
	}

	c.Passages = append(c.Passages, Passage{
		From:  conn.tileA,
		To:    conn.tileB,
		RoomA: slices.Index(c.Rooms, conn.roomA),
		RoomB: slices.Index(c.Rooms, conn.roomB),
	})
	c.log.V(1).Info("carved passage", "from", conn.tileA, "to", conn.tileB, "distanceSq", conn.distance)
}

// carveCircle opens every tile within r of center, leaving the outer ring solid.
func (c *Cave) carveCircle(center Coord, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			x, y := center.X+dx, center.Y+dy
			if x > 0 && x < c.Width-1 && y > 0 && y < c.Height-1 {
				c.Grid.Tiles[y][x] = TileOpen
			}
		}
	}
}

// Line rasterizes the segment from -> to with integer steps along the longer
// axis, including both endpoints.
func Line(from, to Coord) []Coord {
	x, y := from.X, from.Y
	dx, dy := to.X-from.X, to.Y-from.Y

	inverted := false
	step, gradientStep := sign(dx), sign(dy)
	longest, shortest := abs(dx), abs(dy)
	if longest < shortest {
		inverted = true
		longest, shortest = shortest, longest
		step, gradientStep = gradientStep, step
	}

	line := make([]Coord, 0, longest+1)
	accumulation := longest / 2
	for i := 0; i < longest; i++ {
		line = append(line, Coord{x, y})
		if inverted {
			y += step
		} else {
			x += step
		}

		accumulation += shortest
		if accumulation >= longest {
			if inverted {
				x += gradientStep
			} else {
				y += gradientStep
			}
			accumulation -= longest
		}
	}
	return append(line, Coord{x, y})
}

// indexRooms builds the tile -> room lookup used by RoomIndexAt.
func (c *Cave) indexRooms() {
	c.roomIndex = make([]int, c.Width*c.Height)
	for i := range c.roomIndex {
		c.roomIndex[i] = -1
	}
	for i, room := range c.Rooms {
		for _, t := range room.Tiles {
			c.roomIndex[t.Y*c.Width+t.X] = i
		}
	}
}

// RoomIndexAt returns the index of the room containing the position, or -1 if
// the tile is wall, passage or out of bounds.
func (c *Cave) RoomIndexAt(x, y int) int {
	if !c.Grid.InBounds(x, y) || c.roomIndex == nil {
		return -1
	}
	return c.roomIndex[y*c.Width+x]
}

// MainRoom returns the room the player starts in.
func (c *Cave) MainRoom() *Room {
	for _, room := range c.Rooms {
		if room.IsMainRoom {
			return room
		}
	}
	return nil
}

// Bordered returns the final grid wrapped in a solid border, ready for meshing.
func (c *Cave) Bordered() *Grid {
	return c.Grid.Bordered(BorderSize)
}

// CoordToWorldPoint maps a tile to the world-space center of that tile at the
// given height. The map is centered on the origin with tile Y running along +Z.
func (c *Cave) CoordToWorldPoint(tile Coord, tileSize, height float64) vmath.Vec3 {
	return vmath.Vec3{
		X: (-float64(c.Width)/2 + 0.5 + float64(tile.X)) * tileSize,
		Y: height,
		Z: (-float64(c.Height)/2 + 0.5 + float64(tile.Y)) * tileSize,
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
