package level

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
	"github.com/cory-johannsen/tactics/internal/game/roster"
)

// Defaults are the stats used for spawns without a template.
type Defaults struct {
	PlayerMaxHealth float64
	PlayerMaxMagika float64
	PlayerMoveSpeed int
	EnemyMaxHealth  float64
	EnemyMoveSpeed  int
}

// Skipped records a spawn marker that produced no combatant.
type Skipped struct {
	Spawn  Spawn
	Reason string
}

// Populate spawns one combatant per usable marker, in marker order, into a new
// table. A marker is usable only when it sits on a Floor tile not already taken
// by an earlier marker. Unusable markers are logged and reported, not fatal.
//
// Precondition: logger and lvl must not be nil.
// Postcondition: Returns an error only when an enemy names an unknown template.
func Populate(logger *zap.Logger, lvl *Level, templates Templates, d Defaults) (*roster.Table, []Skipped, error) {
	tbl := roster.NewTable()
	taken := map[grid.Pos]bool{}
	var skipped []Skipped
	enemies := 0

	for _, s := range lvl.Spawns {
		reason := ""
		switch {
		case !lvl.Grid.IsFloor(s.Pos):
			reason = "not on a floor tile"
		case taken[s.Pos]:
			reason = "tile already has a combatant"
		}
		if reason != "" {
			logger.Warn("spawn skipped",
				zap.String("level", lvl.ID),
				zap.Stringer("marker", s.Marker),
				zap.Stringer("pos", s.Pos),
				zap.String("reason", reason),
			)
			skipped = append(skipped, Skipped{Spawn: s, Reason: reason})
			continue
		}

		var spec roster.Spec
		switch s.Marker {
		case Player1Start:
			magika := d.PlayerMaxMagika
			spec = roster.Spec{Name: "Wizard", Faction: entity.Player, Role: roster.RoleWizard, MaxHealth: d.PlayerMaxHealth, Magika: &magika, Speed: d.PlayerMoveSpeed}
		case Player2Start:
			spec = roster.Spec{Name: "Warrior", Faction: entity.Player, Role: roster.RoleWarrior, MaxHealth: d.PlayerMaxHealth, Speed: d.PlayerMoveSpeed}
		case EnemyStart:
			enemies++
			var err error
			spec, err = enemySpec(s, templates, d, enemies)
			if err != nil {
				return nil, nil, fmt.Errorf("level %q: %w", lvl.ID, err)
			}
		}
		spec.Pos = s.Pos
		h := tbl.Spawn(spec)
		taken[s.Pos] = true
		logger.Debug("combatant spawned",
			zap.String("name", spec.Name),
			zap.Stringer("handle", h),
			zap.Stringer("pos", s.Pos),
		)
	}
	return tbl, skipped, nil
}

func enemySpec(s Spawn, templates Templates, d Defaults, n int) (roster.Spec, error) {
	spec := roster.Spec{
		Name:      fmt.Sprintf("Enemy %d", n),
		Faction:   entity.Enemy,
		Role:      roster.RoleEnemy,
		MaxHealth: d.EnemyMaxHealth,
		Speed:     d.EnemyMoveSpeed,
		Behavior:  roster.AttackClosest,
	}
	if s.Template == "" {
		return spec, nil
	}
	tmpl, ok := templates[s.Template]
	if !ok {
		return roster.Spec{}, fmt.Errorf("enemy spawn at %s: unknown template %q", s.Pos, s.Template)
	}
	b, err := roster.ParseBehavior(tmpl.Behavior)
	if err != nil {
		return roster.Spec{}, err
	}
	spec.Name = fmt.Sprintf("%s %d", tmpl.Name, n)
	spec.MaxHealth = tmpl.MaxHealth
	spec.Speed = tmpl.Speed
	spec.Behavior = b
	return spec, nil
}
