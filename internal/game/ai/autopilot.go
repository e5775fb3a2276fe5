package ai

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/tactics/internal/game/action"
	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
	"github.com/cory-johannsen/tactics/internal/game/roster"
)

// Autopilot chooses player actions with the attack-closest policy. It is what
// the headless runner uses in place of a human.
type Autopilot struct {
	logger *zap.Logger
}

// NewAutopilot returns an Autopilot.
//
// Precondition: logger must not be nil.
func NewAutopilot(logger *zap.Logger) *Autopilot {
	return &Autopilot{logger: logger}
}

// Plan returns a ready action for every living player, in spawn order, without
// storing them. Callers submit them through the turn machine.
func (a *Autopilot) Plan(tbl *roster.Table, g *grid.Grid) []Decision {
	ps := newPass(tbl, g)
	enemies := tbl.Faction(entity.Enemy)
	var out []Decision
	for _, pl := range tbl.Living(entity.Player) {
		d := Decision{Actor: pl.Handle(), Behavior: roster.AttackClosest, Action: action.Wait()}
		if target := Closest(pl.Pos(), enemies); target != nil {
			d.Target = target.Handle()
			if grid.Adjacent(pl.Pos(), target.Pos()) {
				d.Action = strikeFrom(pl.Pos(), pl.Pos(), target)
			} else {
				d.Action = approach(pl, target, ps)
			}
		}
		ps.claim(pl.Pos(), d.Action)
		a.logger.Debug("autopilot decision",
			zap.String("player", pl.Name()),
			zap.Stringer("action", d.Action),
		)
		out = append(out, d)
	}
	return out
}
