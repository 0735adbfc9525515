package game

import (
	"context"
	"testing"

	"github.com/go-logr/logr"

	"github.com/samdwyer/cavegen/internal/gamedata"
	"github.com/samdwyer/cavegen/internal/level"
	"github.com/samdwyer/cavegen/internal/spawn"
	"github.com/samdwyer/cavegen/internal/world"
)

func newTestSession(t *testing.T) (*Session, *level.Runner) {
	t.Helper()
	cfg := level.DefaultConfig()
	cfg.Width = 64
	cfg.Height = 48
	cfg.FillPercent = 47
	cfg.Seed = "session"

	runner := level.NewRunner(cfg, logr.Discard())
	spawner := spawn.NewSpawner(gamedata.MustLoadEnemyRegistry(), logr.Discard())
	s, err := NewSession(context.Background(), runner, spawner, logr.Discard())
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s, runner
}

func TestNewSessionPlacesPlayerInMainRoom(t *testing.T) {
	s, _ := newTestSession(t)
	if !s.Level.Cave.MainRoom().Contains(s.Player.Pos) {
		t.Errorf("player at %+v is not in the main room", s.Player.Pos)
	}
	if s.Depth != 1 || s.State != StateExplore {
		t.Errorf("Depth = %d State = %v, want 1 explore", s.Depth, s.State)
	}
}

func TestTryMoveBlockedByWall(t *testing.T) {
	s, _ := newTestSession(t)
	s.Enemies = nil
	g := s.Level.Cave.Grid

	// Stand next to a wall on the left.
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			if g.IsPassable(x, y) && !g.IsPassable(x-1, y) {
				s.Player.Pos = world.Coord{X: x, Y: y}
				s.TryMove(-1, 0)
				if s.Player.Pos != (world.Coord{X: x, Y: y}) {
					t.Fatalf("player walked into a wall: %+v", s.Player.Pos)
				}
				return
			}
		}
	}
	t.Fatal("no open tile beside a wall")
}

func TestTryMoveOntoOpenTile(t *testing.T) {
	s, _ := newTestSession(t)
	s.Enemies = nil
	g := s.Level.Cave.Grid

	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-2; x++ {
			if g.IsPassable(x, y) && g.IsPassable(x+1, y) {
				s.Player.Pos = world.Coord{X: x, Y: y}
				s.TryMove(1, 0)
				want := world.Coord{X: x + 1, Y: y}
				if s.Player.Pos != want {
					t.Fatalf("player at %+v, want %+v", s.Player.Pos, want)
				}
				if s.Player.World != s.Level.TileToWorld(want, spawn.SpawnHeight) {
					t.Errorf("world position not updated: %+v", s.Player.World)
				}
				return
			}
		}
	}
	t.Fatal("no pair of open tiles")
}

func TestClearingLevelAdvances(t *testing.T) {
	s, runner := newTestSession(t)
	if len(s.Enemies) == 0 {
		t.Skip("cave has a single room")
	}
	first := s.Level.ID
	s.Player.HP = 1 << 20

	for _, e := range s.Enemies {
		for e.IsAlive() {
			s.Player.Pos = world.Coord{X: e.Pos.X - 1, Y: e.Pos.Y}
			s.TryMove(1, 0)
		}
	}
	if s.Alive() != 0 {
		t.Fatalf("%d enemies still alive", s.Alive())
	}

	advanced, err := s.Advance(context.Background())
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if !advanced {
		t.Fatal("Advance did not enter a new level after clearing")
	}
	if s.Level.ID == first || runner.Count() != 2 || s.Depth != 2 {
		t.Errorf("level not replaced: id changed %v, count %d, depth %d", s.Level.ID != first, runner.Count(), s.Depth)
	}
	if !s.Level.Cave.MainRoom().Contains(s.Player.Pos) {
		t.Error("player not moved into the new main room")
	}

	if advanced, _ := s.Advance(context.Background()); advanced {
		t.Error("second Advance entered another level without a clear")
	}
}

func TestPlayerDeath(t *testing.T) {
	s, _ := newTestSession(t)
	if len(s.Enemies) == 0 {
		t.Skip("cave has a single room")
	}
	e := s.Enemies[0]
	s.Enemies = s.Enemies[:1]
	e.HP = 1 << 20
	s.Player.HP = 1

	// Attack from the left; the creature answers with a lethal blow.
	s.Player.Pos = world.Coord{X: e.Pos.X - 1, Y: e.Pos.Y}
	s.TryMove(1, 0)
	if s.State != StateDead {
		t.Fatalf("State = %v, want dead", s.State)
	}

	before := s.Player.Pos
	s.TryMove(0, 1)
	if s.Player.Pos != before {
		t.Error("dead player moved")
	}

	if err := s.NextLevel(context.Background()); err != nil {
		t.Fatalf("NextLevel failed: %v", err)
	}
	if s.State != StateExplore || s.Depth != 1 || !s.Player.IsAlive() {
		t.Errorf("restart gave state %v depth %d hp %d", s.State, s.Depth, s.Player.HP)
	}
}

func TestStepTowardAvoidsWalls(t *testing.T) {
	s, _ := newTestSession(t)
	if len(s.Enemies) == 0 {
		t.Skip("cave has a single room")
	}
	e := s.Enemies[0]
	s.Enemies = s.Enemies[:1]
	start := e.Pos

	s.stepToward(e, world.Coord{X: start.X + 5, Y: start.Y})
	if !s.Level.Cave.Grid.IsPassable(e.Pos.X, e.Pos.Y) {
		t.Errorf("enemy stepped onto a wall at %+v", e.Pos)
	}
	if d := e.Pos.DistSq(start); d > 1 {
		t.Errorf("enemy moved %d tiles squared, want at most 1", d)
	}
}
