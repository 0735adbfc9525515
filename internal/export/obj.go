// Package export writes cave meshes to Wavefront OBJ.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/samdwyer/cavegen/internal/mesh"
)

// WriteOBJ writes the floor and wall meshes as two OBJ objects. Face indexes
// are 1-based and shared between positions and texture coordinates.
func WriteOBJ(w io.Writer, name string, res *mesh.Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n", name)

	offset := 0
	for _, part := range []struct {
		name string
		m    *mesh.Mesh
	}{
		{"floor", &res.Floor},
		{"walls", &res.Walls},
	} {
		if err := writeObject(bw, part.name, part.m, offset); err != nil {
			return fmt.Errorf("write %s: %w", part.name, err)
		}
		offset += len(part.m.Vertices)
	}
	return bw.Flush()
}

func writeObject(w *bufio.Writer, name string, m *mesh.Mesh, offset int) error {
	if len(m.UVs) != 0 && len(m.UVs) != len(m.Vertices) {
		return fmt.Errorf("%d uvs for %d vertices", len(m.UVs), len(m.Vertices))
	}

	fmt.Fprintf(w, "o %s\n", name)
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "v %s %s %s\n", num(v.X), num(v.Y), num(v.Z))
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(w, "vt %s %s\n", num(uv.X), num(uv.Y))
	}

	hasUV := len(m.UVs) > 0
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		w.WriteString("f")
		for _, idx := range tri {
			n := idx + offset + 1
			if hasUV {
				fmt.Fprintf(w, " %d/%d", n, n)
			} else {
				fmt.Fprintf(w, " %d", n)
			}
		}
		w.WriteByte('\n')
	}
	return nil
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
