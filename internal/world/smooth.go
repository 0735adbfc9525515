package world

// SmoothIterations is the number of cellular automaton passes applied to a fresh grid.
const SmoothIterations = 5

// wallBirthLimit is the neighbor count around which tiles flip. More walls than
// this turns a tile to wall, fewer turns it open, exactly this leaves it alone.
const wallBirthLimit = 4

// Smooth runs one cellular automaton pass and returns the new grid. Every tile
// is computed from the input grid, which is left untouched.
func Smooth(g *Grid) *Grid {
	next := g.Clone()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			walls := g.WallNeighborCount(x, y)
			if walls > wallBirthLimit {
				next.Tiles[y][x] = TileWall
			} else if walls < wallBirthLimit {
				next.Tiles[y][x] = TileOpen
			}
		}
	}
	return next
}

// SmoothN applies n smoothing passes.
func SmoothN(g *Grid, n int) *Grid {
	for i := 0; i < n; i++ {
		g = Smooth(g)
	}
	return g
}
