package grid

// MoveRange returns every Floor tile within speed orthogonal steps (Manhattan
// distance 1..speed) of origin that is not in occ, ordered by row then column.
// Reachability through obstacles is not checked; this is the choice set offered
// to a player, matching the diamond the game highlights.
//
// Precondition: g must not be nil.
// Postcondition: origin is never included; result is empty when speed < 1.
func MoveRange(origin Pos, speed int, g *Grid, occ Occupancy) []Pos {
	var out []Pos
	for dy := -speed; dy <= speed; dy++ {
		rem := speed - abs(dy)
		for dx := -rem; dx <= rem; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := Pos{X: origin.X + dx, Y: origin.Y + dy}
			if !g.IsFloor(p) || occ.Blocked(p) {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// ApproachTile returns the orthogonal neighbour of target that appears in
// allowed and is closest (Euclidean) to origin. Ties keep the earlier neighbour
// in Offsets order.
//
// Postcondition: ok is false when no neighbour of target is in allowed.
func ApproachTile(target, origin Pos, allowed []Pos) (best Pos, ok bool) {
	in := make(map[Pos]bool, len(allowed))
	for _, p := range allowed {
		in[p] = true
	}
	bestDist := 0.0
	for _, n := range target.Neighbors() {
		if !in[n] {
			continue
		}
		if d := EuclideanDistance(n, origin); !ok || d < bestDist {
			best, bestDist, ok = n, d, true
		}
	}
	return best, ok
}
