package game

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavegen/internal/combat"
	"github.com/samdwyer/cavegen/internal/entity"
	"github.com/samdwyer/cavegen/internal/level"
	"github.com/samdwyer/cavegen/internal/spawn"
	"github.com/samdwyer/cavegen/internal/telemetry"
	"github.com/samdwyer/cavegen/internal/world"
)

// ChaseDistSq is how close, squared in tiles, a creature must be to chase
// the player.
const ChaseDistSq = 100

// Session is one run through a sequence of caves. It has no terminal
// dependency, so both the interactive game and the web server drive it.
type Session struct {
	Level   *level.Level
	Player  *entity.Player
	Enemies []*entity.Enemy
	State   State
	Depth   int    // Number of levels entered
	Message string // Result of the last action

	runner  *level.Runner
	spawner *spawn.Spawner
	log     logr.Logger
}

// NewSession generates the first level and spawns its inhabitants.
func NewSession(ctx context.Context, runner *level.Runner, spawner *spawn.Spawner, log logr.Logger) (*Session, error) {
	s := &Session{
		runner:  runner,
		spawner: spawner,
		log:     log,
	}
	if err := s.NextLevel(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NextLevel replaces the current cave with a fresh one. The player keeps
// their stats and is moved into the new main room; a dead player starts over
// with a new character at depth 1.
func (s *Session) NextLevel(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.next_level")
	defer span.End()

	lvl, err := s.runner.NewLevel(ctx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("generate level: %w", err)
	}

	if s.State == StateDead {
		s.Player = nil
		s.Depth = 0
		s.State = StateExplore
	}
	s.Level = lvl
	s.Player = s.spawner.SpawnPlayer(lvl, s.Player)
	s.Enemies = s.spawner.SpawnEnemies(lvl)
	s.Depth++
	s.Message = fmt.Sprintf("You descend to depth %d.", s.Depth)

	span.SetAttributes(
		attribute.String("level.id", lvl.ID.String()),
		attribute.Int("game.depth", s.Depth),
		attribute.Int("game.enemies", len(s.Enemies)),
	)
	return nil
}

// Advance handles pending spawner events. It never blocks; it reports
// whether a new level was entered.
func (s *Session) Advance(ctx context.Context) (bool, error) {
	select {
	case ev := <-s.spawner.Events():
		if ev.Kind != spawn.LevelCleared {
			return false, nil
		}
		if ev.LevelID != s.Level.ID.String() {
			s.log.V(1).Info("ignoring stale level event", "event", ev.LevelID, "current", s.Level.ID)
			return false, nil
		}
		if err := s.NextLevel(ctx); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, nil
	}
}

// TryMove moves the player one tile, or attacks the creature standing there.
// Walls block movement. Every action gives nearby creatures a turn.
func (s *Session) TryMove(dx, dy int) {
	if s.State == StateDead {
		return
	}

	target := world.Coord{X: s.Player.Pos.X + dx, Y: s.Player.Pos.Y + dy}
	if e := s.EnemyAt(target); e != nil {
		res := combat.Strike(s.Player, e)
		s.Message = res.Message
		if res.Killed {
			s.spawner.EnemyKilled()
		}
	} else if s.Level.Cave.Grid.IsPassable(target.X, target.Y) {
		s.Player.Place(target, s.Level.TileToWorld(target, spawn.SpawnHeight))
	} else {
		return
	}

	s.enemiesAct()
}

// EnemyAt returns the living creature on tile c, if any.
func (s *Session) EnemyAt(c world.Coord) *entity.Enemy {
	for _, e := range s.Enemies {
		if e.IsAlive() && e.Pos == c {
			return e
		}
	}
	return nil
}

// Alive returns the number of creatures still alive on this level.
func (s *Session) Alive() int {
	n := 0
	for _, e := range s.Enemies {
		if e.IsAlive() {
			n++
		}
	}
	return n
}

// enemiesAct lets each creature attack an adjacent player or step toward a
// nearby one.
func (s *Session) enemiesAct() {
	for _, e := range s.Enemies {
		if !e.IsAlive() {
			continue
		}
		d := e.Pos.DistSq(s.Player.Pos)
		switch {
		case d == 1:
			res := combat.Strike(e, s.Player)
			if res.Damage > 0 {
				s.Message = res.Message
			}
			if res.Killed {
				s.State = StateDead
				s.Message = fmt.Sprintf("%s killed you.", e.Name)
				s.log.Info("player died", "depth", s.Depth, "killer", e.Def.ID)
				return
			}
		case d <= ChaseDistSq:
			s.stepToward(e, s.Player.Pos)
		}
	}
}

// stepToward moves e one tile along its longer axis to the goal, falling back
// to the shorter axis when that tile is blocked.
func (s *Session) stepToward(e *entity.Enemy, goal world.Coord) {
	dx, dy := goal.X-e.Pos.X, goal.Y-e.Pos.Y
	steps := []world.Coord{{X: sign(dx)}, {Y: sign(dy)}}
	if abs(dy) > abs(dx) {
		steps[0], steps[1] = steps[1], steps[0]
	}

	for _, step := range steps {
		if step == (world.Coord{}) {
			continue
		}
		next := world.Coord{X: e.Pos.X + step.X, Y: e.Pos.Y + step.Y}
		if !s.Level.Cave.Grid.IsPassable(next.X, next.Y) || next == s.Player.Pos || s.EnemyAt(next) != nil {
			continue
		}
		e.Pos = next
		e.World = s.Level.TileToWorld(next, spawn.SpawnHeight)
		e.RoomIndex = s.Level.Cave.RoomIndexAt(next.X, next.Y)
		return
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
