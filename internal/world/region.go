package world

// Region is a maximal 4-connected set of tiles sharing one state, in the order
// the flood fill reached them.
type Region []Coord

// FindRegions returns every region of tiles equal to t. The grid is scanned
// row by row from y=0 so discovery order is reproducible, and each tile is
// visited at most once.
func FindRegions(g *Grid, t Tile) []Region {
	var regions []Region
	visited := make([]bool, g.Width*g.Height)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if visited[y*g.Width+x] || g.Tiles[y][x] != t {
				continue
			}
			regions = append(regions, floodFill(g, Coord{x, y}, visited))
		}
	}
	return regions
}

// floodFill collects the region containing start with a breadth-first search.
func floodFill(g *Grid, start Coord, visited []bool) Region {
	t := g.Tiles[start.Y][start.X]
	region := Region{}

	visited[start.Y*g.Width+start.X] = true
	queue := []Coord{start}
	for len(queue) > 0 {
		tile := queue[0]
		queue = queue[1:]
		region = append(region, tile)

		for _, d := range orthogonal {
			nx, ny := tile.X+d.X, tile.Y+d.Y
			if !g.InBounds(nx, ny) {
				continue
			}
			idx := ny*g.Width + nx
			if !visited[idx] && g.Tiles[ny][nx] == t {
				visited[idx] = true
				queue = append(queue, Coord{nx, ny})
			}
		}
	}
	return region
}

// touchesEdge reports whether any tile of the region lies on the grid's outer ring.
func (r Region) touchesEdge(g *Grid) bool {
	for _, c := range r {
		if g.IsEdge(c.X, c.Y) {
			return true
		}
	}
	return false
}
