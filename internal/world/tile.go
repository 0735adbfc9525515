// Package world provides cave grid generation, smoothing, region analysis and room connection.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents solid rock.
	TileWall Tile = '#'
	// TileOpen represents walkable cave floor.
	TileOpen Tile = '.'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileOpen
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileOpen:
		return "open"
	default:
		return "unknown"
	}
}
