package ai

import (
	"github.com/cory-johannsen/tactics/internal/game/grid"
	"github.com/cory-johannsen/tactics/internal/game/roster"
)

// Closest returns the living candidate nearest (Manhattan) to from, or nil.
//
// Postcondition: ties go to the candidate listed later, so with the standard
// wizard-then-warrior spawn order an equidistant warrior is preferred.
func Closest(from grid.Pos, candidates []*roster.Combatant) *roster.Combatant {
	var best *roster.Combatant
	bestDist := 0
	for _, c := range candidates {
		if c.Defeated() {
			continue
		}
		d := grid.TileDistance(from, c.Pos())
		if best == nil || d <= bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Weakest returns the living candidate with the lowest health, or nil.
//
// Postcondition: ties go to the candidate listed first.
func Weakest(candidates []*roster.Combatant) *roster.Combatant {
	var best *roster.Combatant
	for _, c := range candidates {
		if c.Defeated() {
			continue
		}
		if best == nil || c.Health() < best.Health() {
			best = c
		}
	}
	return best
}

// Anchor returns the combatant enemies flee from: the first living warrior,
// falling back to the first living candidate.
func Anchor(candidates []*roster.Combatant) *roster.Combatant {
	var fallback *roster.Combatant
	for _, c := range candidates {
		if c.Defeated() {
			continue
		}
		if c.Role() == roster.RoleWarrior {
			return c
		}
		if fallback == nil {
			fallback = c
		}
	}
	return fallback
}
