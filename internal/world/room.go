package world

import "github.com/zyedidia/generic/mapset"

// Room is an open region that survived pruning.
type Room struct {
	Tiles     []Coord // Member tiles in flood-fill order
	EdgeTiles []Coord // Member tiles touching a wall; a tile repeats once per wall side
	Size      int

	IsMainRoom               bool
	IsAccessibleFromMainRoom bool

	connected    []*Room
	connectedSet mapset.Set[*Room]
}

// NewRoom builds a room from an open region of g and collects its edge tiles.
func NewRoom(region Region, g *Grid) *Room {
	r := &Room{
		Tiles:        region,
		Size:         len(region),
		connectedSet: mapset.New[*Room](),
	}
	for _, tile := range region {
		for _, d := range orthogonal {
			nx, ny := tile.X+d.X, tile.Y+d.Y
			if g.InBounds(nx, ny) && g.Tiles[ny][nx] == TileWall {
				r.EdgeTiles = append(r.EdgeTiles, tile)
			}
		}
	}
	return r
}

// ConnectedRooms returns the rooms joined to r by a passage, in connection order.
func (r *Room) ConnectedRooms() []*Room {
	return r.connected
}

// IsConnected reports whether a passage joins r and other.
func (r *Room) IsConnected(other *Room) bool {
	return r.connectedSet.Has(other)
}

// Contains reports whether the tile belongs to the room.
func (r *Room) Contains(c Coord) bool {
	for _, t := range r.Tiles {
		if t == c {
			return true
		}
	}
	return false
}

// markAccessibleFromMainRoom flags r and everything reachable through its
// connections as accessible.
func (r *Room) markAccessibleFromMainRoom() {
	if r.IsAccessibleFromMainRoom {
		return
	}
	r.IsAccessibleFromMainRoom = true
	stack := []*Room{r}
	for len(stack) > 0 {
		room := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range room.connected {
			if !next.IsAccessibleFromMainRoom {
				next.IsAccessibleFromMainRoom = true
				stack = append(stack, next)
			}
		}
	}
}

// connectRooms records a symmetric connection and spreads main-room accessibility.
func connectRooms(a, b *Room) {
	if a.IsAccessibleFromMainRoom {
		b.markAccessibleFromMainRoom()
	} else if b.IsAccessibleFromMainRoom {
		a.markAccessibleFromMainRoom()
	}
	a.connected = append(a.connected, b)
	a.connectedSet.Put(b)
	b.connected = append(b.connected, a)
	b.connectedSet.Put(a)
}
