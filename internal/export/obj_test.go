package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/samdwyer/cavegen/internal/mesh"
	"github.com/samdwyer/cavegen/internal/vmath"
	"github.com/samdwyer/cavegen/internal/world"
)

func TestWriteOBJ(t *testing.T) {
	res := &mesh.Result{
		Floor: mesh.Mesh{
			Vertices:  []vmath.Vec3{{X: 0}, {X: 1}, {Z: 1}},
			Triangles: []int{0, 1, 2},
			UVs:       []vmath.Vec2{{X: 0}, {X: 0.5}, {Y: 1.5}},
		},
		Walls: mesh.Mesh{
			Vertices:  []vmath.Vec3{{X: 2}, {X: 3}, {X: 2, Y: -2}},
			Triangles: []int{2, 1, 0},
		},
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, "cave", res); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	want := strings.Join([]string{
		"# cave",
		"o floor",
		"v 0 0 0",
		"v 1 0 0",
		"v 0 0 1",
		"vt 0 0",
		"vt 0.5 0",
		"vt 0 1.5",
		"f 1/1 2/2 3/3",
		"o walls",
		"v 2 0 0",
		"v 3 0 0",
		"v 2 -2 0",
		"f 6 5 4",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("WriteOBJ output:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteOBJRejectsMismatchedUVs(t *testing.T) {
	res := &mesh.Result{
		Floor: mesh.Mesh{
			Vertices: []vmath.Vec3{{}, {}},
			UVs:      []vmath.Vec2{{}},
		},
	}
	if err := WriteOBJ(&bytes.Buffer{}, "bad", res); err == nil {
		t.Error("expected error for mismatched uvs")
	}
}

func TestWriteOBJBuiltCave(t *testing.T) {
	g := world.ParseGrid(
		"#####",
		"#...#",
		"#...#",
		"#####",
	)
	res := mesh.Build(context.Background(), g, mesh.Params{SquareSize: 1, WallHeight: 2, TextureTiling: 1})

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, "room", res); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	var verts, faces int
	for _, line := range strings.Split(buf.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "v "):
			verts++
		case strings.HasPrefix(line, "f "):
			faces++
		}
	}
	if want := len(res.Floor.Vertices) + len(res.Walls.Vertices); verts != want {
		t.Errorf("wrote %d vertices, want %d", verts, want)
	}
	if want := res.Floor.TriangleCount() + res.Walls.TriangleCount(); faces != want {
		t.Errorf("wrote %d faces, want %d", faces, want)
	}
}
