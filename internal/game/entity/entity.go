// Package entity defines the weak combatant handle and the faction tag shared
// by the action, roster, and turn packages.
package entity

import "fmt"

// Handle is a weak reference into a combatant table: a slot index plus the
// generation the slot had when the handle was issued. A handle whose generation
// no longer matches its slot is stale and resolves to not-found.
type Handle struct {
	Index      uint32
	Generation uint32
}

// Nil is the zero Handle. Tables never issue generation 0, so Nil is always stale.
var Nil = Handle{}

// IsNil reports whether h is the zero handle.
func (h Handle) IsNil() bool { return h == Nil }

// String returns "index#generation".
func (h Handle) String() string {
	return fmt.Sprintf("%d#%d", h.Index, h.Generation)
}

// Faction separates player-controlled from AI-controlled combatants.
type Faction int

const (
	Player Faction = iota
	Enemy
)

// String returns "player" or "enemy".
func (f Faction) String() string {
	switch f {
	case Player:
		return "player"
	case Enemy:
		return "enemy"
	default:
		return "unknown"
	}
}
