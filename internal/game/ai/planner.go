// Package ai decides enemy actions at the start of each enemy phase, and
// offers the same targeting logic to players as an autopilot.
//
// Decisions are made one combatant at a time in spawn order. Each decision
// updates the pass-local occupancy set, so earlier deciders' destinations block
// later ones. Pathfinding failures fall back to Wait and are never returned as
// errors.
package ai

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/tactics/internal/game/action"
	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
	"github.com/cory-johannsen/tactics/internal/game/pathfind"
	"github.com/cory-johannsen/tactics/internal/game/roster"
)

// DefaultRetreatThreshold is the health below which AttackUntilWeak retreats.
const DefaultRetreatThreshold = 20.0

// Decision records one planned action.
type Decision struct {
	Actor entity.Handle
	// Behavior is the effective policy after AttackUntilWeak is collapsed.
	Behavior roster.Behavior
	// Target is the chosen opponent; entity.Nil when none was available.
	Target entity.Handle
	Action action.Pending
}

// Planner produces pending actions for AI-controlled combatants.
type Planner struct {
	logger           *zap.Logger
	retreatThreshold float64
}

// NewPlanner returns a Planner.
//
// Precondition: logger must not be nil.
func NewPlanner(logger *zap.Logger, retreatThreshold float64) *Planner {
	return &Planner{logger: logger, retreatThreshold: retreatThreshold}
}

// Effective collapses AttackUntilWeak into RunAway (health below the retreat
// threshold) or AttackClosest. Other behaviors pass through.
func (p *Planner) Effective(b roster.Behavior, health float64) roster.Behavior {
	if b != roster.AttackUntilWeak {
		return b
	}
	if health < p.retreatThreshold {
		return roster.RunAway
	}
	return roster.AttackClosest
}

// pass carries the state threaded through one planning pass.
type pass struct {
	occ    grid.Occupancy
	bounds grid.Bounds
}

func newPass(tbl *roster.Table, g *grid.Grid) *pass {
	return &pass{
		occ:    grid.BuildOccupancy(g.StaticBlockers(), tbl.Positions(entity.Nil)),
		bounds: g.Bounds(),
	}
}

// claim records where actor will stand after its action resolves.
func (ps *pass) claim(from grid.Pos, a action.Pending) {
	var to grid.Pos
	switch {
	case a.IsMove():
		mv, _ := a.MovePayload()
		to = mv.To
	case a.IsAttack():
		atk, _ := a.AttackPayload()
		to = atk.Destination
	default:
		return
	}
	if to == from {
		return
	}
	ps.occ.Remove(from)
	ps.occ.Add(to)
}

// PlanEnemies decides and stores a ready action for every living enemy.
//
// Precondition: tbl and g must not be nil; g is the map the combatants stand on.
// Postcondition: every living enemy has a ready pending action; the returned
// decisions are in spawn order. Positions and health are untouched.
func (p *Planner) PlanEnemies(tbl *roster.Table, g *grid.Grid) []Decision {
	ps := newPass(tbl, g)
	players := tbl.Faction(entity.Player)
	var out []Decision
	for _, e := range tbl.Living(entity.Enemy) {
		d := p.decideEnemy(e, players, ps)
		ps.claim(e.Pos(), d.Action)
		if err := tbl.SetAction(e.Handle(), d.Action); err != nil {
			p.logger.Error("storing enemy action", zap.Stringer("enemy", e.Handle()), zap.Error(err))
			continue
		}
		p.logger.Debug("enemy decision",
			zap.String("enemy", e.Name()),
			zap.Stringer("behavior", d.Behavior),
			zap.Stringer("target", d.Target),
			zap.Stringer("action", d.Action),
		)
		out = append(out, d)
	}
	return out
}

func (p *Planner) decideEnemy(self *roster.Combatant, players []*roster.Combatant, ps *pass) Decision {
	behavior := p.Effective(self.Behavior(), self.Health())
	d := Decision{Actor: self.Handle(), Behavior: behavior, Action: action.Wait()}

	var target *roster.Combatant
	if behavior == roster.AttackWeakest {
		target = Weakest(players)
	} else {
		target = Closest(self.Pos(), players)
	}
	if target == nil {
		return d
	}
	d.Target = target.Handle()

	// Adjacency overrides every policy, StayPut included.
	if grid.Adjacent(self.Pos(), target.Pos()) {
		d.Action = strikeFrom(self.Pos(), self.Pos(), target)
		return d
	}

	switch behavior {
	case roster.AttackClosest, roster.AttackWeakest:
		d.Action = approach(self, target, ps)
	case roster.RunAway:
		if anchor := Anchor(players); anchor != nil {
			d.Action = runAway(self.Pos(), anchor.Pos(), self.Speed(), ps.occ, ps.bounds)
		}
	}
	return d
}

// approach paths toward target: attack if the budget reaches an adjacent tile,
// otherwise move as far as the budget allows, otherwise wait.
func approach(self, target *roster.Combatant, ps *pass) action.Pending {
	mv, ok := pathfind.Plan(self.Pos(), target.Pos(), self.Speed(), ps.occ, ps.bounds)
	if !ok {
		return action.Wait()
	}
	if mv.Reached {
		return strikeFrom(self.Pos(), mv.Dest, target)
	}
	return action.MoveTo(self.Pos(), mv.Dest)
}

func strikeFrom(origin, dest grid.Pos, target *roster.Combatant) action.Pending {
	return action.AttackOn(action.Attack{
		Target:      target.Handle(),
		TargetPos:   target.Pos(),
		Destination: dest,
		Origin:      origin,
	})
}
