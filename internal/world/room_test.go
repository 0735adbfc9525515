package world

import "testing"

func TestNewRoomEdgeTiles(t *testing.T) {
	g := ParseGrid(
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	)
	regions := FindRegions(g, TileOpen)
	room := NewRoom(regions[0], g)

	if room.Size != 9 {
		t.Errorf("Size = %d, want 9", room.Size)
	}
	// Corner tiles touch two walls and are listed twice
	if got := len(room.EdgeTiles); got != 12 {
		t.Errorf("edge tiles = %d, want 12", got)
	}
	for _, e := range room.EdgeTiles {
		if e == (Coord{2, 2}) {
			t.Error("center tile should not be an edge tile")
		}
	}
	counts := make(map[Coord]int)
	for _, e := range room.EdgeTiles {
		counts[e]++
	}
	if counts[Coord{1, 1}] != 2 || counts[Coord{2, 1}] != 1 {
		t.Errorf("edge multiplicity: corner %d, side %d; want 2, 1", counts[Coord{1, 1}], counts[Coord{2, 1}])
	}
}

func TestConnectRoomsSpreadsAccessibility(t *testing.T) {
	g := ParseGrid("...", "...")
	newRoom := func() *Room { return NewRoom(Region{{0, 0}}, g) }

	main, a, b, c := newRoom(), newRoom(), newRoom(), newRoom()
	main.IsMainRoom = true
	main.IsAccessibleFromMainRoom = true

	connectRooms(a, b)
	connectRooms(b, c)
	if a.IsAccessibleFromMainRoom || b.IsAccessibleFromMainRoom || c.IsAccessibleFromMainRoom {
		t.Fatal("rooms should not be accessible before touching the main room")
	}

	connectRooms(c, main)
	for i, r := range []*Room{a, b, c} {
		if !r.IsAccessibleFromMainRoom {
			t.Errorf("room %d not accessible after its component joined the main room", i)
		}
	}

	if !a.IsConnected(b) || !b.IsConnected(a) {
		t.Error("connection should be symmetric")
	}
	if a.IsConnected(c) {
		t.Error("a and c are only connected through b")
	}
	if got := len(b.ConnectedRooms()); got != 2 {
		t.Errorf("b has %d connections, want 2", got)
	}
}
