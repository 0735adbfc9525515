package mesh

import "github.com/samdwyer/cavegen/internal/vmath"

// BuildWalls extrudes every outline segment into a quad rising wallHeight
// above the floor. Triangles wind opposite to the floor so walls face into
// the cave.
func BuildWalls(floor []vmath.Vec3, outlines [][]int, wallHeight float64) Mesh {
	var m Mesh
	up := vmath.Up.Scale(wallHeight)

	for _, outline := range outlines {
		for i := 0; i < len(outline)-1; i++ {
			start := len(m.Vertices)
			left, right := floor[outline[i]], floor[outline[i+1]]
			m.Vertices = append(m.Vertices,
				left.Add(up),  // top left
				right.Add(up), // top right
				left,          // bottom left
				right,         // bottom right
			)
			m.Triangles = append(m.Triangles,
				start+3, start+2, start+0,
				start+0, start+1, start+3,
			)
		}
	}

	m.UVs = wallUVs(m.Vertices)
	return m
}

// wallUVs maps u along X and v up the wall. When a vertex and both of its
// buffer neighbors share X (a wall running along Z), u falls back to Z so the
// texture does not smear.
func wallUVs(vertices []vmath.Vec3) []vmath.Vec2 {
	uvs := make([]vmath.Vec2, len(vertices))
	for i, v := range vertices {
		u := v.X
		if i+1 < len(vertices) && i > 1 && vertices[i+1].X == u && vertices[i-1].X == u {
			u = v.Z
		}
		uvs[i] = vmath.Vec2{X: u, Y: v.Y * 0.5}
	}
	return uvs
}

// FloorUVs tiles the floor texture across the map. width and height are the
// grid dimensions in tiles.
func FloorUVs(vertices []vmath.Vec3, width, height int, squareSize, tiling float64) []vmath.Vec2 {
	halfX := float64(width) / 2 * squareSize
	halfZ := float64(height) / 2 * squareSize

	uvs := make([]vmath.Vec2, len(vertices))
	for i, v := range vertices {
		uvs[i] = vmath.Vec2{
			X: vmath.InverseLerp(-halfX, halfX, v.X) * tiling,
			Y: vmath.InverseLerp(-halfZ, halfZ, v.Z) * tiling,
		}
	}
	return uvs
}
