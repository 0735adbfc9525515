package mesh

import (
	"testing"

	"github.com/samdwyer/cavegen/internal/vmath"
	"github.com/samdwyer/cavegen/internal/world"
)

func TestSquareConfigurations(t *testing.T) {
	g := world.ParseGrid(
		"#..",
		"...",
		"##.",
	)
	sg := NewSquareGrid(g, 1)

	if sg.Width != 2 || sg.Height != 2 {
		t.Fatalf("square grid = %dx%d, want 2x2", sg.Width, sg.Height)
	}

	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 12}, // top two corners open
		{1, 0, 14}, // bottom-left is wall
		{0, 1, 7},  // top-left is wall
		{1, 1, 15}, // all open
	}
	for _, tt := range tests {
		if got := sg.Squares[tt.x][tt.y].Configuration; got != tt.want {
			t.Errorf("square (%d,%d) configuration = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSquaresShareNodes(t *testing.T) {
	g := world.ParseGrid("...", "...", "...")
	sg := NewSquareGrid(g, 1)

	s00, s10, s01 := sg.Squares[0][0], sg.Squares[1][0], sg.Squares[0][1]

	if s00.TopRight != s10.TopLeft || s00.TopRight != s01.BottomRight {
		t.Error("corner nodes should be shared between neighboring squares")
	}
	if s00.CenterRight != s10.CenterLeft {
		t.Error("horizontally adjacent squares should share their edge midpoint")
	}
	if s00.CenterTop != s01.CenterBottom {
		t.Error("vertically adjacent squares should share their edge midpoint")
	}
}

func TestSquareGridPositions(t *testing.T) {
	g := world.ParseGrid("...", "...", "...")
	sg := NewSquareGrid(g, 2)
	s := sg.Squares[0][0]

	// A 3x3 grid of size-2 tiles spans -3..3, tile centers at -2, 0, 2
	if got, want := s.BottomLeft.Position, (vmath.Vec3{X: -2, Z: -2}); got != want {
		t.Errorf("bottom-left = %+v, want %+v", got, want)
	}
	if got, want := s.CenterTop.Position, (vmath.Vec3{X: -1, Z: 0}); got != want {
		t.Errorf("center-top = %+v, want %+v", got, want)
	}
	if got, want := s.CenterRight.Position, (vmath.Vec3{X: 0, Z: -1}); got != want {
		t.Errorf("center-right = %+v, want %+v", got, want)
	}
}
