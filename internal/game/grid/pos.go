// Package grid provides the tile grid, distance metrics, and the per-pass
// occupancy set used by pathfinding and move-range computation.
package grid

import (
	"fmt"
	"math"
)

// Pos is an integer (column, row) tile coordinate.
type Pos struct {
	X int
	Y int
}

// String returns "(x,y)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the component-wise sum of p and o.
func (p Pos) Add(o Pos) Pos {
	return Pos{X: p.X + o.X, Y: p.Y + o.Y}
}

// Offsets are the four orthogonal unit steps in expansion order: +y, -y, +x, -x.
var Offsets = [4]Pos{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// Neighbors returns the four orthogonal neighbours of p in Offsets order.
// Neighbours may lie off the map; callers filter with Bounds.
func (p Pos) Neighbors() [4]Pos {
	var out [4]Pos
	for i, o := range Offsets {
		out[i] = p.Add(o)
	}
	return out
}

// TileDistance returns the Manhattan distance |dx| + |dy| between a and b.
//
// Postcondition: result >= 0; TileDistance(a, a) == 0; symmetric.
func TileDistance(a, b Pos) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Adjacent reports whether a and b are exactly one orthogonal step apart.
func Adjacent(a, b Pos) bool {
	return TileDistance(a, b) == 1
}

// EuclideanDistance returns the straight-line distance between a and b.
// Only used for tie-breaking among equally valid tiles, never for traversal.
func EuclideanDistance(a, b Pos) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
