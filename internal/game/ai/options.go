package ai

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/tactics/internal/game/action"
	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
	"github.com/cory-johannsen/tactics/internal/game/roster"
)

// MoveOptions lists the tiles player h may choose as a move destination: Floor
// tiles within its speed that no other living combatant stands on or another
// player has already claimed with a move.
//
// Postcondition: Returns roster.ErrNotFound for a stale handle.
func MoveOptions(tbl *roster.Table, g *grid.Grid, h entity.Handle) ([]grid.Pos, error) {
	self, err := tbl.Get(h)
	if err != nil {
		return nil, err
	}
	occ := grid.BuildOccupancy(nil, tbl.Positions(h))
	for _, other := range tbl.Living(entity.Player) {
		if other.Handle() == h {
			continue
		}
		if mv, ok := other.Action().MovePayload(); ok && other.Action().IsReady() {
			occ.Add(mv.To)
		}
	}
	return grid.MoveRange(self.Pos(), self.Speed(), g, occ), nil
}

// ErrOutOfReach is returned by AttackIntent when the attacker cannot reach any
// side of the target this turn.
var ErrOutOfReach = errors.New("ai: target out of reach")

// AttackIntent builds the ready attack a player issues by picking a target.
// The attacker ends on the side of the target nearest its current tile, chosen
// from the tiles MoveOptions offers plus the tile it already stands on.
//
// Postcondition: Returns roster.ErrNotFound for stale handles, an error when
// attacker and target belong to the same faction, and ErrOutOfReach when no
// side of the target is in the attacker's move choices.
func AttackIntent(tbl *roster.Table, g *grid.Grid, attacker, target entity.Handle) (action.Pending, error) {
	a, err := tbl.Get(attacker)
	if err != nil {
		return action.Pending{}, err
	}
	t, err := tbl.Get(target)
	if err != nil {
		return action.Pending{}, err
	}
	if a.Faction() == t.Faction() {
		return action.Pending{}, fmt.Errorf("ai: %s cannot attack ally %s", a.Name(), t.Name())
	}
	opts, err := MoveOptions(tbl, g, attacker)
	if err != nil {
		return action.Pending{}, err
	}
	dest, ok := grid.ApproachTile(t.Pos(), a.Pos(), append(opts, a.Pos()))
	if !ok {
		return action.Pending{}, fmt.Errorf("%w: %s cannot reach %s", ErrOutOfReach, a.Name(), t.Name())
	}
	return strikeFrom(a.Pos(), dest, t), nil
}
