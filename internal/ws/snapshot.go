package ws

import (
	"github.com/samdwyer/cavegen/internal/game"
	"github.com/samdwyer/cavegen/internal/protocol"
	"github.com/samdwyer/cavegen/internal/world"
)

// BuildSnapshot captures the session's current level for clients.
func BuildSnapshot(s *game.Session) protocol.Snapshot {
	lvl := s.Level
	g := lvl.Cave.Grid

	rows := make([]string, 0, g.Height)
	for y := g.Height - 1; y >= 0; y-- {
		row := make([]rune, g.Width)
		for x := range row {
			row[x] = g.Tiles[y][x].Rune()
		}
		rows = append(rows, string(row))
	}

	entities := []protocol.EntityLite{{
		ID:    s.Player.ID.String(),
		Kind:  "player",
		Glyph: string(s.Player.Symbol),
		Tile:  tile(s.Player.Pos),
		World: protocol.Point{X: s.Player.World.X, Y: s.Player.World.Y, Z: s.Player.World.Z},
		HP:    &protocol.HP{Current: s.Player.HP, Max: s.Player.MaxHP},
	}}
	for _, e := range s.Enemies {
		if !e.IsAlive() {
			continue
		}
		entities = append(entities, protocol.EntityLite{
			ID:    e.ID.String(),
			Kind:  e.Def.ID,
			Glyph: string(e.Symbol),
			Tile:  tile(e.Pos),
			World: protocol.Point{X: e.World.X, Y: e.World.Y, Z: e.World.Z},
			HP:    &protocol.HP{Current: e.HP, Max: e.MaxHP},
		})
	}

	return protocol.Snapshot{
		LevelID:   lvl.ID.String(),
		Seed:      lvl.Seed,
		Depth:     s.Depth,
		State:     s.State.String(),
		MapWidth:  g.Width,
		MapHeight: g.Height,
		Rows:      rows,
		RoomCount: len(lvl.Cave.Rooms),
		Entities:  entities,
		Mesh: protocol.MeshStats{
			FloorVertices:  len(lvl.Mesh.Floor.Vertices),
			FloorTriangles: lvl.Mesh.Floor.TriangleCount(),
			WallVertices:   len(lvl.Mesh.Walls.Vertices),
			WallTriangles:  lvl.Mesh.Walls.TriangleCount(),
			Outlines:       len(lvl.Mesh.Outlines),
		},
		Message:         s.Message,
		ProtocolVersion: protocol.Version,
	}
}

func tile(c world.Coord) protocol.Tile {
	return protocol.Tile{X: c.X, Y: c.Y}
}
