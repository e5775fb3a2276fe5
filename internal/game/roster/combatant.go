// Package roster holds the combatants of a round in a spawn-ordered table.
//
// Combatants are addressed by entity.Handle. Position and health change only
// through Table.Relocate and Table.ApplyDamage, which the turn resolver calls;
// everything else writes pending actions and nothing more.
package roster

import (
	"fmt"

	"github.com/cory-johannsen/tactics/internal/game/action"
	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
)

// Role distinguishes the two player characters from enemies.
type Role int

const (
	RoleEnemy Role = iota
	RoleWizard
	RoleWarrior
)

// String returns the lower-case role name.
func (r Role) String() string {
	switch r {
	case RoleWizard:
		return "wizard"
	case RoleWarrior:
		return "warrior"
	case RoleEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Behavior selects an enemy's AI policy. It is fixed for the whole round.
type Behavior int

const (
	AttackClosest Behavior = iota
	StayPut
	AttackUntilWeak
	AttackWeakest
	RunAway
)

var behaviorNames = map[Behavior]string{
	AttackClosest:   "attack_closest",
	StayPut:         "stay_put",
	AttackUntilWeak: "attack_until_weak",
	AttackWeakest:   "attack_weakest",
	RunAway:         "run_away",
}

// String returns the snake_case behavior name used in content files.
func (b Behavior) String() string {
	if s, ok := behaviorNames[b]; ok {
		return s
	}
	return "unknown"
}

// ParseBehavior maps a snake_case name to a Behavior.
//
// Postcondition: Returns an error for unknown names.
func ParseBehavior(s string) (Behavior, error) {
	for b, name := range behaviorNames {
		if name == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown behavior %q", s)
}

// Spec describes a combatant to spawn.
type Spec struct {
	Name      string
	Faction   entity.Faction
	Role      Role
	Pos       grid.Pos
	MaxHealth float64
	// Magika is the optional secondary resource pool; nil when the combatant has none.
	Magika   *float64
	Speed    int
	Behavior Behavior
}

// Combatant is one participant in turn resolution.
//
// Invariant: health >= 0.
type Combatant struct {
	handle    entity.Handle
	name      string
	faction   entity.Faction
	role      Role
	pos       grid.Pos
	health    float64
	maxHealth float64
	magika    *float64
	speed     int
	behavior  Behavior
	pending   action.Pending
}

func (c *Combatant) Handle() entity.Handle   { return c.handle }
func (c *Combatant) Name() string            { return c.name }
func (c *Combatant) Faction() entity.Faction { return c.faction }
func (c *Combatant) Role() Role              { return c.role }
func (c *Combatant) Pos() grid.Pos           { return c.pos }
func (c *Combatant) Health() float64         { return c.health }
func (c *Combatant) MaxHealth() float64      { return c.maxHealth }
func (c *Combatant) Speed() int              { return c.speed }
func (c *Combatant) Behavior() Behavior      { return c.behavior }
func (c *Combatant) Action() action.Pending  { return c.pending }

// Magika returns the secondary resource, if the combatant has one.
func (c *Combatant) Magika() (float64, bool) {
	if c.magika == nil {
		return 0, false
	}
	return *c.magika, true
}

// IsPlayer reports whether c is player-controlled.
func (c *Combatant) IsPlayer() bool { return c.faction == entity.Player }

// Defeated reports whether c's health has reached zero.
func (c *Combatant) Defeated() bool { return c.health <= 0 }

// String renders c for logs.
func (c *Combatant) String() string {
	return fmt.Sprintf("%s[%s %s %s hp=%.0f]", c.name, c.handle, c.role, c.pos, c.health)
}
