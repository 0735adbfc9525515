package mesh

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Outlines traces the boundary of the floor mesh. An edge is on the boundary
// when exactly one triangle uses it. Each outline is a loop of vertex indexes
// whose last entry repeats the first.
func Outlines(t *Triangulation) [][]int {
	tracer := outlineTracer{t: t, visited: mapset.New[int]()}

	var outlines [][]int
	for v := range t.Vertices {
		if tracer.excluded(v) {
			continue
		}
		next, ok := tracer.nextOutlineVertex(v)
		if !ok {
			continue
		}

		tracer.visited.Put(v)
		outline := []int{v}
		for ok {
			if tracer.visited.Has(next) {
				panic(fmt.Sprintf("mesh: outline revisits vertex %d", next))
			}
			outline = append(outline, next)
			tracer.visited.Put(next)
			next, ok = tracer.nextOutlineVertex(next)
		}
		outlines = append(outlines, append(outline, v))
	}
	return outlines
}

type outlineTracer struct {
	t       *Triangulation
	visited mapset.Set[int]
}

func (o *outlineTracer) excluded(v int) bool {
	return o.t.IsInterior(v) || o.visited.Has(v)
}

// nextOutlineVertex finds an unvisited vertex joined to v by a boundary edge.
func (o *outlineTracer) nextOutlineVertex(v int) (int, bool) {
	for _, tri := range o.t.TrianglesAt(v) {
		for _, b := range tri {
			if b != v && !o.excluded(b) && o.isOutlineEdge(v, b) {
				return b, true
			}
		}
	}
	return 0, false
}

// isOutlineEdge reports whether exactly one triangle uses the edge a-b.
func (o *outlineTracer) isOutlineEdge(a, b int) bool {
	shared := 0
	for _, tri := range o.t.TrianglesAt(a) {
		if tri.Contains(b) {
			shared++
			if shared > 1 {
				return false
			}
		}
	}
	return shared == 1
}
