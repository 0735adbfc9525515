// Package spawn places the player and enemies in a generated level and
// reports when a level has been cleared.
package spawn

import (
	"math/rand"

	"github.com/go-logr/logr"

	"github.com/samdwyer/cavegen/internal/entity"
	"github.com/samdwyer/cavegen/internal/gamedata"
	"github.com/samdwyer/cavegen/internal/level"
)

const (
	// SpawnSeed seeds every placement, so a given cave always spawns the same way.
	SpawnSeed = 1234
	// SpawnHeight is the world Y entities are placed at.
	SpawnHeight = 1.0
	// TilesPerEnemy is how much room area earns one enemy.
	TilesPerEnemy = 100
)

// EventKind identifies a spawner event.
type EventKind int

const (
	// LevelCleared fires when the last enemy of a level dies.
	LevelCleared EventKind = iota
)

func (k EventKind) String() string {
	switch k {
	case LevelCleared:
		return "LevelCleared"
	default:
		return "Unknown"
	}
}

// Event is sent on the spawner's event channel.
type Event struct {
	Kind    EventKind
	LevelID string
}

// Spawner populates levels and tracks the enemies left alive.
type Spawner struct {
	registry  *gamedata.EnemyRegistry
	events    chan Event
	remaining int
	levelID   string
	log       logr.Logger
}

// NewSpawner creates a spawner drawing enemy types from registry.
func NewSpawner(registry *gamedata.EnemyRegistry, log logr.Logger) *Spawner {
	return &Spawner{
		registry: registry,
		events:   make(chan Event, 1),
		log:      log,
	}
}

// Events returns the channel LevelCleared is delivered on. The consumer
// should generate the next level before reading again.
func (s *Spawner) Events() <-chan Event {
	return s.events
}

// Remaining returns how many enemies of the current level are alive.
func (s *Spawner) Remaining() int {
	return s.remaining
}

// EnemyCount returns how many enemies a room of the given size gets.
func EnemyCount(roomSize int) int {
	if roomSize <= 0 {
		return 0
	}
	return (roomSize + TilesPerEnemy - 1) / TilesPerEnemy
}

// SpawnPlayer places the player on a tile of the main room. A nil player is
// created; an existing one is moved.
func (s *Spawner) SpawnPlayer(lvl *level.Level, p *entity.Player) *entity.Player {
	main := lvl.Cave.MainRoom()
	if main == nil {
		panic("spawn: level has no main room")
	}

	rng := rand.New(rand.NewSource(SpawnSeed))
	tile := main.Tiles[rng.Intn(len(main.Tiles))]
	pos := lvl.TileToWorld(tile, SpawnHeight)

	if p == nil {
		p = entity.NewPlayer(tile, pos)
	} else {
		p.Place(tile, pos)
	}
	s.log.V(1).Info("spawned player", "tile", tile, "world", pos)
	return p
}

// SpawnEnemies fills every room except the main room with enemies and resets
// the remaining count to the number spawned.
func (s *Spawner) SpawnEnemies(lvl *level.Level) []*entity.Enemy {
	rng := rand.New(rand.NewSource(SpawnSeed))

	var enemies []*entity.Enemy
	for i, room := range lvl.Cave.Rooms {
		if room.IsMainRoom {
			continue
		}
		for n := EnemyCount(room.Size); n > 0; n-- {
			tile := room.Tiles[rng.Intn(len(room.Tiles))]
			def := s.registry.SpawnRandom(rng)
			if def == nil {
				continue
			}
			enemies = append(enemies, entity.NewEnemy(def, tile, lvl.TileToWorld(tile, SpawnHeight), i))
		}
	}

	s.remaining = len(enemies)
	s.levelID = lvl.ID.String()
	s.log.Info("spawned enemies", "level", s.levelID, "count", len(enemies))
	return enemies
}

// EnemyKilled records a death. When the count reaches zero a LevelCleared
// event is queued.
func (s *Spawner) EnemyKilled() {
	if s.remaining <= 0 {
		return
	}
	s.remaining--
	if s.remaining > 0 {
		return
	}

	ev := Event{Kind: LevelCleared, LevelID: s.levelID}
	select {
	case s.events <- ev:
		s.log.Info("level cleared", "level", s.levelID)
	default:
		s.log.V(1).Info("dropping level cleared event, one is already pending", "level", s.levelID)
	}
}
