package pathfind

import "github.com/cory-johannsen/tactics/internal/game/grid"

// Budget picks how far along path a mover with the given speed gets this turn.
//
// Precondition: speed >= 1 and len(path) >= 1; otherwise ok is false.
// Postcondition: when speed >= len(path), dest is the last step and reached is
// true; otherwise dest is path[speed-1] and reached is false.
func Budget(path []grid.Pos, speed int) (dest grid.Pos, reached bool, ok bool) {
	if speed < 1 || len(path) == 0 {
		return grid.Pos{}, false, false
	}
	if speed >= len(path) {
		return path[len(path)-1], true, true
	}
	return path[speed-1], false, true
}

// Move is a budgeted step toward a goal.
type Move struct {
	// Dest is where the mover stands at the end of this turn.
	Dest grid.Pos
	// Reached is true when Dest is adjacent to the goal, so an attack can follow.
	Reached bool
}

// Plan searches toward goal and applies the movement budget.
//
// Postcondition: Returns (Move{Dest: start, Reached: true}, true) when start is
// already adjacent to goal; (Move{}, false) when no path exists, start == goal,
// or speed < 1.
func Plan(start, goal grid.Pos, speed int, occ grid.Occupancy, bounds grid.Bounds) (Move, bool) {
	path, ok := Find(start, goal, occ, bounds)
	if !ok {
		return Move{}, false
	}
	if path.AlreadyAdjacent {
		return Move{Dest: start, Reached: true}, true
	}
	dest, reached, ok := Budget(path.Steps, speed)
	if !ok {
		return Move{}, false
	}
	return Move{Dest: dest, Reached: reached}, true
}
