// Package game runs cave exploration: movement, bump combat and level
// progression.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is normal play.
	StateExplore State = iota
	// StateDead means the player has died; only quitting or restarting is possible.
	StateDead
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}
