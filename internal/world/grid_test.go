package world

import "testing"

func TestParseGridOrientation(t *testing.T) {
	g := ParseGrid(
		"#.#",
		"...",
		"###",
	)

	if g.Width != 3 || g.Height != 3 {
		t.Fatalf("size = %dx%d, want 3x3", g.Width, g.Height)
	}
	// First row is the top of the map
	if g.At(1, 2) != TileOpen {
		t.Errorf("(1,2) = %v, want open", g.At(1, 2))
	}
	if g.At(1, 0) != TileWall {
		t.Errorf("(1,0) = %v, want wall", g.At(1, 0))
	}
	if got := g.String(); got != "#.#\n...\n###\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestOutOfBoundsReadsAsWall(t *testing.T) {
	g := ParseGrid("...", "...", "...")

	for _, c := range []Coord{{-1, 0}, {0, -1}, {3, 1}, {1, 3}} {
		if g.At(c.X, c.Y) != TileWall {
			t.Errorf("At(%d,%d) should read as wall", c.X, c.Y)
		}
	}
	if got := g.WallNeighborCount(0, 0); got != 5 {
		t.Errorf("corner wall neighbors = %d, want 5", got)
	}
	if got := g.WallNeighborCount(1, 1); got != 0 {
		t.Errorf("center wall neighbors = %d, want 0", got)
	}
}

func TestBordered(t *testing.T) {
	g := ParseGrid("..", "..")
	b := g.Bordered(BorderSize)

	if b.Width != 4 || b.Height != 4 {
		t.Fatalf("bordered size = %dx%d, want 4x4", b.Width, b.Height)
	}
	want := "####\n#..#\n#..#\n####\n"
	if got := b.String(); got != want {
		t.Errorf("bordered grid =\n%s\nwant\n%s", got, want)
	}
	// Source grid is untouched
	if g.Count(TileOpen) != 4 {
		t.Error("Bordered modified the source grid")
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := ParseGrid("...", "...")
	c := g.Clone()
	c.Set(1, 1, TileWall)

	if g.At(1, 1) != TileOpen {
		t.Error("mutating the clone changed the original")
	}
	if g.Equal(c) {
		t.Error("grids should differ after mutation")
	}
}
