package ai

import (
	"github.com/cory-johannsen/tactics/internal/game/action"
	"github.com/cory-johannsen/tactics/internal/game/grid"
)

// fleeDirection returns the unit step that moves pos away from anchor along the
// axis with the larger separation. Equal separations use the x axis.
// ok is false when pos and anchor coincide.
func fleeDirection(pos, anchor grid.Pos) (dir grid.Pos, ok bool) {
	dx := pos.X - anchor.X
	dy := pos.Y - anchor.Y
	switch {
	case dx == 0 && dy == 0:
		return grid.Pos{}, false
	case abs(dx) >= abs(dy):
		return grid.Pos{X: sign(dx)}, true
	default:
		return grid.Pos{Y: sign(dy)}, true
	}
}

// runAway walks from pos one tile at a time in the flee direction, up to speed
// tiles, stopping before the first tile that is off the map or blocked.
//
// Postcondition: Returns Wait when no step is possible.
func runAway(pos, anchor grid.Pos, speed int, occ grid.Occupancy, bounds grid.Bounds) action.Pending {
	dir, ok := fleeDirection(pos, anchor)
	if !ok {
		return action.Wait()
	}
	cur := pos
	for i := 0; i < speed; i++ {
		next := cur.Add(dir)
		if !bounds.Contains(next) || occ.Blocked(next) {
			break
		}
		cur = next
	}
	if cur == pos {
		return action.Wait()
	}
	return action.MoveTo(pos, cur)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
