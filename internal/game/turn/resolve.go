package turn

import (
	"errors"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tactics/internal/game/action"
	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
	"github.com/cory-johannsen/tactics/internal/game/roster"
)

// Damage is the fixed damage dealt per successful attack, by attacker faction.
type Damage struct {
	Player float64
	Enemy  float64
}

// By returns the damage an attacker of faction f deals.
func (d Damage) By(f entity.Faction) float64 {
	if f == entity.Enemy {
		return d.Enemy
	}
	return d.Player
}

// Resolution records the committed effect of one combatant's action.
type Resolution struct {
	Actor  entity.Handle
	Action action.Pending
	From   grid.Pos
	To     grid.Pos
	// Target is set for attacks.
	Target entity.Handle
	// Damage dealt; zero when the attack missed.
	Damage float64
	// TargetHealth is the target's health after the attack.
	TargetHealth float64
	// Missed is true for an attack that ended non-adjacent to its target, or
	// whose target no longer exists.
	Missed bool
}

// Resolve commits the pending actions of every combatant of faction f, one at a
// time in spawn order; each commit sees the effects of the ones before it.
//
//   - Move: the combatant moves to the destination.
//   - Attack: if the destination is adjacent to the target's current position,
//     the target loses the attacker faction's damage (floored at zero). The
//     attacker moves to the destination either way. The payload's TargetPos
//     is informational: adjacency is checked against where the target stands
//     now, which equals TargetPos because the target's faction never moves
//     while this faction commits.
//   - Wait, Cast, and any action that is not ready: no effect.
//
// Every resolved combatant's action is reset to a ready Wait afterwards.
// Defeated combatants are skipped but still reset.
//
// Precondition: tbl must not be nil.
// Postcondition: only combatants of faction f move; only attack targets lose health.
func Resolve(tbl *roster.Table, f entity.Faction, dmg Damage, logger *zap.Logger) []Resolution {
	var out []Resolution
	for _, c := range tbl.Faction(f) {
		h := c.Handle()
		eff := c.Action().Effective()
		if c.Defeated() {
			_ = tbl.SetAction(h, action.Wait())
			continue
		}
		r := Resolution{Actor: h, Action: eff, From: c.Pos(), To: c.Pos()}

		switch eff.Kind() {
		case action.KindMove:
			mv, _ := eff.MovePayload()
			r.To = mv.To
		case action.KindAttack:
			atk, _ := eff.AttackPayload()
			r.To = atk.Destination
			r.Target = atk.Target
			strike(tbl, c, atk, dmg.By(f), &r, logger)
		}

		if r.To != r.From {
			if err := tbl.Relocate(h, r.To); err != nil {
				logger.Error("relocating combatant", zap.Stringer("actor", h), zap.Error(err))
			}
		}
		_ = tbl.SetAction(h, action.Wait())

		logger.Debug("action committed",
			zap.String("actor", c.Name()),
			zap.Stringer("action", eff),
			zap.Stringer("from", r.From),
			zap.Stringer("to", r.To),
			zap.Float64("damage", r.Damage),
			zap.Bool("missed", r.Missed),
		)
		out = append(out, r)
	}
	return out
}

func strike(tbl *roster.Table, attacker *roster.Combatant, atk action.Attack, amount float64, r *Resolution, logger *zap.Logger) {
	target, err := tbl.Get(atk.Target)
	if err != nil {
		if !errors.Is(err, roster.ErrNotFound) {
			logger.Error("looking up attack target", zap.Error(err))
		}
		r.Missed = true
		return
	}
	if !grid.Adjacent(atk.Destination, target.Pos()) {
		r.Missed = true
		r.TargetHealth = target.Health()
		return
	}
	hp, err := tbl.ApplyDamage(atk.Target, amount)
	if err != nil {
		r.Missed = true
		return
	}
	r.Damage = amount
	r.TargetHealth = hp
	logger.Debug("attack landed",
		zap.String("attacker", attacker.Name()),
		zap.String("target", target.Name()),
		zap.Float64("damage", amount),
		zap.Float64("target_health", hp),
	)
}

// Evaluate applies the round-end rule to the current table: any player at zero
// health is a Defeat; otherwise, when at least one enemy exists and every enemy
// is at zero health, a Victory. Defeat takes precedence.
func Evaluate(tbl *roster.Table) Outcome {
	for _, p := range tbl.Faction(entity.Player) {
		if p.Defeated() {
			return Defeat
		}
	}
	enemies := tbl.Faction(entity.Enemy)
	if len(enemies) == 0 {
		return Undecided
	}
	for _, e := range enemies {
		if !e.Defeated() {
			return Undecided
		}
	}
	return Victory
}
