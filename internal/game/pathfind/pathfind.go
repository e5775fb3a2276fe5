// Package pathfind implements the single-target grid search used by the enemy
// AI, and the movement budgeting applied to its result.
//
// The search does not walk onto the goal. It stops at the first tile found that
// is orthogonally adjacent to the goal, because the goal is normally occupied by
// the combatant being approached.
package pathfind

import "github.com/cory-johannsen/tactics/internal/game/grid"

// Path is the result of a successful search.
type Path struct {
	// Steps runs from the first tile after start to the first goal-adjacent tile found.
	// Empty when AlreadyAdjacent is true.
	Steps []grid.Pos
	// AlreadyAdjacent is true when start was adjacent to goal and no search ran.
	AlreadyAdjacent bool
}

type node struct {
	pos     grid.Pos
	parent  grid.Pos
	g       int
	h       int
	seq     int
	visited bool
}

func (n *node) weight() int { return n.g + n.h }

// better reports whether a should replace b: lower g+h, then lower h.
func better(a, b *node) bool {
	return a.weight() < b.weight() || (a.weight() == b.weight() && a.h < b.h)
}

// Find searches from start toward a tile adjacent to goal.
//
// Nodes are expanded best-first by g+h (g = steps travelled, h = Manhattan
// distance to goal), ties broken by lower h and then discovery order, with a
// visited set preventing re-expansion. Only tiles passing bounds.IsOnMap and
// absent from occ are entered. The search ends as soon as any discovered tile
// has h == 1.
//
// The g cost differs on purpose from the shipped game, which scored nodes by
// their distance from start rather than by steps travelled.
//
// Precondition: occ should not contain start; it may contain goal.
// Postcondition: Returns (path, true) with every step orthogonally adjacent to the
// previous and the last step adjacent to goal, or (Path{}, false) when no
// goal-adjacent tile is reachable or start == goal. Always terminates.
func Find(start, goal grid.Pos, occ grid.Occupancy, bounds grid.Bounds) (Path, bool) {
	if start == goal {
		return Path{}, false
	}
	if grid.Adjacent(start, goal) {
		return Path{AlreadyAdjacent: true}, true
	}

	seq := 0
	open := map[grid.Pos]*node{
		start: {pos: start, parent: start, h: grid.TileDistance(start, goal), visited: true},
	}
	cur := start

search:
	for {
		curNode := open[cur]
		for _, next := range cur.Neighbors() {
			if !bounds.IsOnMap(next) || occ.Blocked(next) {
				continue
			}
			cand := &node{
				pos:    next,
				parent: cur,
				g:      curNode.g + 1,
				h:      grid.TileDistance(next, goal),
			}
			if cand.h == 1 {
				seq++
				cand.seq = seq
				open[next] = cand
				cur = next
				break search
			}
			old, seen := open[next]
			if !seen {
				seq++
				cand.seq = seq
				open[next] = cand
				continue
			}
			if better(cand, old) {
				cand.visited = old.visited
				cand.seq = old.seq
				open[next] = cand
			}
		}

		var best *node
		for _, n := range open {
			if n.visited {
				continue
			}
			if best == nil || better(n, best) || (!better(best, n) && n.seq < best.seq) {
				best = n
			}
		}
		if best == nil {
			return Path{}, false
		}
		best.visited = true
		cur = best.pos
	}

	var steps []grid.Pos
	for p := cur; p != start; p = open[p].parent {
		steps = append(steps, p)
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return Path{Steps: steps}, true
}
