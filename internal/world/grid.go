package world

import "strings"

// Coord is a tile coordinate. X grows to the right, Y grows "up" the map
// (towards +Z in world space).
type Coord struct {
	X, Y int
}

// DistSq returns the squared euclidean distance between two tiles.
func (c Coord) DistSq(o Coord) int {
	dx := c.X - o.X
	dy := c.Y - o.Y
	return dx*dx + dy*dy
}

// Orthogonal neighbor offsets, in the order regions are expanded.
var orthogonal = [4]Coord{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}

// Grid is a width×height array of tiles indexed as Tiles[y][x].
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewGrid creates a grid filled with walls.
func NewGrid(width, height int) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}
	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  tiles,
	}
}

// ParseGrid builds a grid from rows of '#' and '.' characters. The first row is
// the top of the map (highest Y). Any other character is read as a wall.
func ParseGrid(rows ...string) *Grid {
	height := len(rows)
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	g := NewGrid(width, height)
	for i, row := range rows {
		y := height - 1 - i
		for x, ch := range row {
			if Tile(ch) == TileOpen {
				g.Tiles[y][x] = TileOpen
			}
		}
	}
	return g
}

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at (x, y). Out-of-bounds positions read as walls.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[y][x]
}

// Set changes the tile at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if g.InBounds(x, y) {
		g.Tiles[y][x] = t
	}
}

// IsPassable returns true if the given position can be walked on.
func (g *Grid) IsPassable(x, y int) bool {
	return g.At(x, y).IsPassable()
}

// IsEdge reports whether (x, y) lies on the outer ring of the grid.
func (g *Grid) IsEdge(x, y int) bool {
	return x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Tiles: make([][]Tile, g.Height)}
	for y := range g.Tiles {
		c.Tiles[y] = append([]Tile(nil), g.Tiles[y]...)
	}
	return c
}

// Count returns how many tiles equal t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for y := range g.Tiles {
		for _, tile := range g.Tiles[y] {
			if tile == t {
				n++
			}
		}
	}
	return n
}

// Equal reports whether two grids have the same size and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			if g.Tiles[y][x] != o.Tiles[y][x] {
				return false
			}
		}
	}
	return true
}

// WallNeighborCount counts walls among the 8 tiles surrounding (x, y).
// Neighbors outside the grid count as walls.
func (g *Grid) WallNeighborCount(x, y int) int {
	count := 0
	for ny := y - 1; ny <= y+1; ny++ {
		for nx := x - 1; nx <= x+1; nx++ {
			if nx == x && ny == y {
				continue
			}
			if g.At(nx, ny) == TileWall {
				count++
			}
		}
	}
	return count
}

// Bordered returns a copy of the grid wrapped in a solid ring of the given size.
func (g *Grid) Bordered(size int) *Grid {
	b := NewGrid(g.Width+size*2, g.Height+size*2)
	for y := 0; y < g.Height; y++ {
		copy(b.Tiles[y+size][size:size+g.Width], g.Tiles[y])
	}
	return b
}

// String renders the grid with the top row (highest Y) first.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := g.Height - 1; y >= 0; y-- {
		for _, t := range g.Tiles[y] {
			sb.WriteRune(t.Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
