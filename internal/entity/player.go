// Package entity provides the player and the creatures that roam the cave.
package entity

import (
	"github.com/google/uuid"

	"github.com/samdwyer/cavegen/internal/vmath"
	"github.com/samdwyer/cavegen/internal/world"
)

const (
	PlayerMaxHP  = 30
	PlayerAttack = 4
)

// Player is the explorer the user controls.
type Player struct {
	ID     uuid.UUID
	Pos    world.Coord // Tile position in the cave grid
	World  vmath.Vec3  // World-space position the player was placed at
	Symbol rune
	HP     int
	MaxHP  int
	Attack int
}

// NewPlayer creates a player standing on tile pos.
func NewPlayer(pos world.Coord, worldPos vmath.Vec3) *Player {
	return &Player{
		ID:     uuid.New(),
		Pos:    pos,
		World:  worldPos,
		Symbol: '@',
		HP:     PlayerMaxHP,
		MaxHP:  PlayerMaxHP,
		Attack: PlayerAttack,
	}
}

// Move shifts the player by the given tile delta.
func (p *Player) Move(dx, dy int) {
	p.Pos.X += dx
	p.Pos.Y += dy
}

// Place puts the player on a new tile, e.g. when a fresh level starts.
func (p *Player) Place(pos world.Coord, worldPos vmath.Vec3) {
	p.Pos = pos
	p.World = worldPos
}

// GetName returns the display name.
func (p *Player) GetName() string {
	return "You"
}

// GetAttack returns the damage the player deals per hit.
func (p *Player) GetAttack() int {
	return p.Attack
}

// TakeDamage reduces HP, clamped at zero, and reports whether this hit killed
// the player.
func (p *Player) TakeDamage(amount int) bool {
	if !p.IsAlive() {
		return false
	}
	p.HP = max(p.HP-amount, 0)
	return p.HP == 0
}

// IsAlive reports whether the player has HP left.
func (p *Player) IsAlive() bool {
	return p.HP > 0
}
