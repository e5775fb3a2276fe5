// Package action implements the pending-action record each combatant carries:
// what it will do when the current phase resolves.
//
// A Pending value is immutable. Changing a combatant's intent means replacing
// the whole value; there are no partial updates.
package action

import (
	"fmt"

	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
)

// Kind tags the Pending variant.
type Kind int

const (
	KindWait Kind = iota
	KindMove
	KindAttack
	KindCast
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindWait:
		return "wait"
	case KindMove:
		return "move"
	case KindAttack:
		return "attack"
	case KindCast:
		return "cast"
	default:
		return "unknown"
	}
}

// Move is the payload of a move intent.
type Move struct {
	// From is the mover's position when the action was proposed.
	From grid.Pos
	// To is the destination.
	To grid.Pos
}

// Attack is the payload of an attack intent. The attacker may step to
// Destination before striking, so both positions travel with the action and the
// resolver can move-then-strike in one commit.
type Attack struct {
	Target      entity.Handle
	TargetPos   grid.Pos
	Destination grid.Pos
	Origin      grid.Pos
}

// Pending is a combatant's queued intent.
//
// Invariant: the zero value is a ready Wait.
type Pending struct {
	kind    Kind
	move    Move
	attack  Attack
	ability string
	// unready inverts readiness so the zero value is ready.
	unready bool
}

// Wait returns the ready no-op action.
func Wait() Pending { return Pending{} }

// MoveTo returns a ready move from -> to.
func MoveTo(from, to grid.Pos) Pending {
	return Pending{kind: KindMove, move: Move{From: from, To: to}}
}

// MoveDraft returns a move whose destination has not been chosen yet.
//
// Postcondition: IsReady() is false.
func MoveDraft(from grid.Pos) Pending {
	return Pending{kind: KindMove, move: Move{From: from, To: from}, unready: true}
}

// AttackOn returns a ready attack.
func AttackOn(a Attack) Pending {
	return Pending{kind: KindAttack, attack: a}
}

// AttackDraft returns an attack whose target has not been chosen yet.
//
// Postcondition: IsReady() is false.
func AttackDraft(origin grid.Pos) Pending {
	return Pending{kind: KindAttack, attack: Attack{Origin: origin, Destination: origin}, unready: true}
}

// Cast returns a cast of the named ability. An empty name is not a concrete
// selection, so the result is not ready.
func Cast(ability string) Pending {
	return Pending{kind: KindCast, ability: ability, unready: ability == ""}
}

// Kind returns the variant tag.
func (p Pending) Kind() Kind { return p.kind }

// IsReady reports whether p fully specifies its effect.
func (p Pending) IsReady() bool { return !p.unready }

// IsWait reports whether p is a Wait.
func (p Pending) IsWait() bool { return p.kind == KindWait }

// IsMove reports whether p is a Move.
func (p Pending) IsMove() bool { return p.kind == KindMove }

// IsAttack reports whether p is an Attack.
func (p Pending) IsAttack() bool { return p.kind == KindAttack }

// IsCast reports whether p is a Cast.
func (p Pending) IsCast() bool { return p.kind == KindCast }

// MovePayload returns the move payload when p is a Move.
func (p Pending) MovePayload() (Move, bool) {
	return p.move, p.kind == KindMove
}

// AttackPayload returns the attack payload when p is an Attack.
func (p Pending) AttackPayload() (Attack, bool) {
	return p.attack, p.kind == KindAttack
}

// Spell returns the referenced ability name when p is a Cast.
func (p Pending) Spell() (string, bool) {
	return p.ability, p.kind == KindCast
}

// Effective is what resolution acts on: p itself when ready, otherwise Wait.
func (p Pending) Effective() Pending {
	if p.unready {
		return Wait()
	}
	return p
}

// String renders p for logs.
func (p Pending) String() string {
	var s string
	switch p.kind {
	case KindMove:
		s = fmt.Sprintf("move %s->%s", p.move.From, p.move.To)
	case KindAttack:
		s = fmt.Sprintf("attack %s at %s from %s", p.attack.Target, p.attack.TargetPos, p.attack.Destination)
	case KindCast:
		s = fmt.Sprintf("cast %q", p.ability)
	default:
		s = "wait"
	}
	if p.unready {
		s += " (not ready)"
	}
	return s
}
