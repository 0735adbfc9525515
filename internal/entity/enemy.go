package entity

import (
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/cavegen/internal/gamedata"
	"github.com/samdwyer/cavegen/internal/vmath"
	"github.com/samdwyer/cavegen/internal/world"
)

// Enemy is a hostile creature spawned in one of the cave's rooms.
type Enemy struct {
	ID        uuid.UUID
	Def       *gamedata.EnemyDef
	Name      string
	Symbol    rune
	Pos       world.Coord
	World     vmath.Vec3
	RoomIndex int // Index into Cave.Rooms, -1 if outside any room
	HP        int
	MaxHP     int
}

// NewEnemy creates a creature from its definition.
func NewEnemy(def *gamedata.EnemyDef, pos world.Coord, worldPos vmath.Vec3, roomIndex int) *Enemy {
	return &Enemy{
		ID:        uuid.New(),
		Def:       def,
		Name:      def.Name,
		Symbol:    def.GlyphRune(),
		Pos:       pos,
		World:     worldPos,
		RoomIndex: roomIndex,
		HP:        def.HP,
		MaxHP:     def.HP,
	}
}

// Color returns the display color for this enemy.
func (e *Enemy) Color() tcell.Color {
	if e.Def != nil {
		return e.Def.TCellColor()
	}
	return tcell.ColorRed
}

// GetName returns the display name.
func (e *Enemy) GetName() string {
	return e.Name
}

// GetAttack returns the damage this enemy deals per hit.
func (e *Enemy) GetAttack() int {
	if e.Def != nil {
		return e.Def.Attack
	}
	return 1
}

// IsAlive reports whether the enemy has HP left.
func (e *Enemy) IsAlive() bool {
	return e.HP > 0
}

// TakeDamage reduces HP, clamped at zero, and reports whether this hit killed
// the enemy.
func (e *Enemy) TakeDamage(amount int) bool {
	if !e.IsAlive() {
		return false
	}
	e.HP = max(e.HP-amount, 0)
	return e.HP == 0
}
