// Package combat resolves bump attacks between the player and cave creatures.
package combat

import "fmt"

// Combatant is anything that can strike or be struck.
type Combatant interface {
	GetName() string
	GetAttack() int
	IsAlive() bool
	TakeDamage(amount int) bool // Reports whether the hit was lethal
}

// Result is the outcome of one strike.
type Result struct {
	Damage  int
	Killed  bool
	Message string
}

// Strike applies attacker's damage to target. Every landed blow deals at
// least 1 damage; dead combatants neither strike nor take hits.
func Strike(attacker, target Combatant) Result {
	if !attacker.IsAlive() || !target.IsAlive() {
		return Result{}
	}

	damage := max(attacker.GetAttack(), 1)
	killed := target.TakeDamage(damage)

	msg := fmt.Sprintf("%s hit %s for %d", attacker.GetName(), target.GetName(), damage)
	if killed {
		msg = fmt.Sprintf("%s killed %s", attacker.GetName(), target.GetName())
	}
	return Result{Damage: damage, Killed: killed, Message: msg}
}
