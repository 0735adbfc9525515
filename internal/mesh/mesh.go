package mesh

import "github.com/samdwyer/cavegen/internal/vmath"

// Mesh holds vertex and index buffers ready for a renderer or physics engine.
type Mesh struct {
	Vertices  []vmath.Vec3
	Triangles []int // Three vertex indexes per triangle
	UVs       []vmath.Vec2
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Triangle returns the vertex indexes of triangle i.
func (m *Mesh) Triangle(i int) Triangle {
	return Triangle{m.Triangles[i*3], m.Triangles[i*3+1], m.Triangles[i*3+2]}
}

// Triangle is three vertex indexes.
type Triangle [3]int

// Contains reports whether v is one of the triangle's vertices.
func (t Triangle) Contains(v int) bool {
	return t[0] == v || t[1] == v || t[2] == v
}

// Edge is an undirected edge between two vertex indexes, stored low index first.
type Edge struct {
	A, B int
}

// NewEdge normalizes the vertex order of an edge.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// EdgeCounts returns how many triangles share each edge of the mesh.
func (m *Mesh) EdgeCounts() map[Edge]int {
	counts := make(map[Edge]int, len(m.Triangles))
	for i := 0; i < m.TriangleCount(); i++ {
		t := m.Triangle(i)
		counts[NewEdge(t[0], t[1])]++
		counts[NewEdge(t[1], t[2])]++
		counts[NewEdge(t[2], t[0])]++
	}
	return counts
}
