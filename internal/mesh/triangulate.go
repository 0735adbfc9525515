package mesh

import "github.com/zyedidia/generic/mapset"

// point names one of the eight sample nodes of a square.
type point int

const (
	topLeft point = iota
	topRight
	bottomRight
	bottomLeft
	centerTop
	centerRight
	centerBottom
	centerLeft
)

// fans lists, per configuration, the boundary of the floor polygon inside a
// square in winding order. Each polygon is triangulated as a fan from its
// first point.
var fans = [16][]point{
	0: nil,

	// 1 point
	1: {centerLeft, centerBottom, bottomLeft},
	2: {bottomRight, centerBottom, centerRight},
	4: {topRight, centerRight, centerTop},
	8: {topLeft, centerTop, centerLeft},

	// 2 points
	3:  {centerRight, bottomRight, bottomLeft, centerLeft},
	6:  {centerTop, topRight, bottomRight, centerBottom},
	9:  {topLeft, centerTop, centerBottom, bottomLeft},
	12: {topLeft, topRight, centerRight, centerLeft},
	5:  {centerTop, topRight, centerRight, centerBottom, bottomLeft, centerLeft},
	10: {topLeft, centerTop, centerRight, bottomRight, centerBottom, centerLeft},

	// 3 points
	7:  {centerTop, topRight, bottomRight, bottomLeft, centerLeft},
	11: {topLeft, centerTop, centerRight, bottomRight, bottomLeft},
	13: {topLeft, topRight, centerRight, centerBottom, bottomLeft},
	14: {topLeft, topRight, bottomRight, centerBottom, centerLeft},

	// 4 points
	15: {topLeft, topRight, bottomRight, bottomLeft},
}

func (s *Square) node(p point) *Node {
	switch p {
	case topLeft:
		return &s.TopLeft.Node
	case topRight:
		return &s.TopRight.Node
	case bottomRight:
		return &s.BottomRight.Node
	case bottomLeft:
		return &s.BottomLeft.Node
	case centerTop:
		return s.CenterTop
	case centerRight:
		return s.CenterRight
	case centerBottom:
		return s.CenterBottom
	case centerLeft:
		return s.CenterLeft
	default:
		panic("mesh: unknown square point")
	}
}

// Triangulation is the floor mesh plus the per-vertex triangle index used to
// trace outlines.
type Triangulation struct {
	Mesh

	byVertex [][]Triangle
	interior mapset.Set[int] // Corners of fully active squares; never on an outline
}

// TrianglesAt returns every triangle that uses vertex v.
func (t *Triangulation) TrianglesAt(v int) []Triangle {
	if v < 0 || v >= len(t.byVertex) {
		panic("mesh: vertex index out of range")
	}
	return t.byVertex[v]
}

// IsInterior reports whether v is a corner of a fully active square.
func (t *Triangulation) IsInterior(v int) bool {
	return t.interior.Has(v)
}

// Triangulate emits the floor triangles for every square in sg. Vertices are
// created the first time a node is used and shared afterwards. The nodes of
// sg are marked with their vertex indexes, so a SquareGrid is triangulated
// only once.
func Triangulate(sg *SquareGrid) *Triangulation {
	t := &Triangulation{interior: mapset.New[int]()}
	for x := 0; x < sg.Width; x++ {
		for y := 0; y < sg.Height; y++ {
			t.triangulateSquare(sg.Squares[x][y])
		}
	}
	return t
}

func (t *Triangulation) triangulateSquare(s *Square) {
	fan := fans[s.Configuration]
	if len(fan) == 0 {
		return
	}

	nodes := make([]*Node, len(fan))
	for i, p := range fan {
		nodes[i] = s.node(p)
		t.assignVertex(nodes[i])
	}
	for i := 2; i < len(nodes); i++ {
		t.addTriangle(nodes[0].VertexIndex, nodes[i-1].VertexIndex, nodes[i].VertexIndex)
	}

	if s.Configuration == 15 {
		for _, n := range nodes {
			t.interior.Put(n.VertexIndex)
		}
	}
}

func (t *Triangulation) assignVertex(n *Node) {
	if n.VertexIndex != unassigned {
		return
	}
	n.VertexIndex = len(t.Vertices)
	t.Vertices = append(t.Vertices, n.Position)
	t.byVertex = append(t.byVertex, nil)
}

func (t *Triangulation) addTriangle(a, b, c int) {
	t.Triangles = append(t.Triangles, a, b, c)
	tri := Triangle{a, b, c}
	t.byVertex[a] = append(t.byVertex[a], tri)
	t.byVertex[b] = append(t.byVertex[b], tri)
	t.byVertex[c] = append(t.byVertex[c], tri)
}
