package pathfind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tactics/internal/game/grid"
	"github.com/cory-johannsen/tactics/internal/game/pathfind"
)

var open10 = grid.Bounds{Width: 10, Height: 10}

func TestFind_StraightLine(t *testing.T) {
	path, ok := pathfind.Find(grid.Pos{X: 5, Y: 5}, grid.Pos{X: 5, Y: 1}, grid.Occupancy{}, open10)
	require.True(t, ok)
	assert.False(t, path.AlreadyAdjacent)
	assert.Equal(t, []grid.Pos{{X: 5, Y: 4}, {X: 5, Y: 3}, {X: 5, Y: 2}}, path.Steps)
}

func TestFind_AlreadyAdjacent(t *testing.T) {
	path, ok := pathfind.Find(grid.Pos{X: 3, Y: 3}, grid.Pos{X: 3, Y: 4}, grid.Occupancy{}, open10)
	require.True(t, ok)
	assert.True(t, path.AlreadyAdjacent)
	assert.Empty(t, path.Steps)
}

func TestFind_SameTileIsNoPath(t *testing.T) {
	_, ok := pathfind.Find(grid.Pos{X: 3, Y: 3}, grid.Pos{X: 3, Y: 3}, grid.Occupancy{}, open10)
	assert.False(t, ok)
}

func TestFind_GoalEnclosedByWalls(t *testing.T) {
	goal := grid.Pos{X: 6, Y: 6}
	occ := grid.Occupancy{}
	occ.Add(goal)
	for _, n := range goal.Neighbors() {
		occ.Add(n)
	}
	_, ok := pathfind.Find(grid.Pos{X: 2, Y: 3}, goal, occ, open10)
	assert.False(t, ok)
}

func TestFind_DetoursAroundWall(t *testing.T) {
	// Wall across x=5 for rows 2..7, leaving row 8 and 9 open.
	occ := grid.Occupancy{}
	for y := 2; y <= 7; y++ {
		occ.Add(grid.Pos{X: 5, Y: y})
	}
	start := grid.Pos{X: 3, Y: 4}
	goal := grid.Pos{X: 8, Y: 4}
	path, ok := pathfind.Find(start, goal, occ, open10)
	require.True(t, ok)
	assertValidPath(t, start, goal, occ, open10, path.Steps)
	for _, p := range path.Steps {
		assert.False(t, occ.Blocked(p), "step %s is blocked", p)
	}
}

func TestFind_NeverEntersUnreachableBoundary(t *testing.T) {
	// The only gap is on row 1, which the reachability check excludes.
	occ := grid.Occupancy{}
	for y := 2; y < 10; y++ {
		occ.Add(grid.Pos{X: 4, Y: y})
	}
	_, ok := pathfind.Find(grid.Pos{X: 2, Y: 5}, grid.Pos{X: 7, Y: 5}, occ, open10)
	assert.False(t, ok)
}

func assertValidPath(t *testing.T, start, goal grid.Pos, occ grid.Occupancy, b grid.Bounds, steps []grid.Pos) {
	t.Helper()
	require.NotEmpty(t, steps)
	prev := start
	for _, p := range steps {
		assert.Equal(t, 1, grid.TileDistance(prev, p), "non-orthogonal step %s -> %s", prev, p)
		assert.True(t, b.IsOnMap(p), "step %s off map", p)
		prev = p
	}
	assert.Equal(t, 1, grid.TileDistance(prev, goal))
}

func TestFind_TerminatesWithValidPathOrNone(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(3, 12).Draw(rt, "w")
		h := rapid.IntRange(4, 12).Draw(rt, "h")
		b := grid.Bounds{Width: w, Height: h}
		occ := grid.Occupancy{}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if rapid.IntRange(0, 3).Draw(rt, "wall") == 0 {
					occ.Add(grid.Pos{X: x, Y: y})
				}
			}
		}
		start := grid.Pos{X: rapid.IntRange(0, w-1).Draw(rt, "sx"), Y: rapid.IntRange(0, h-1).Draw(rt, "sy")}
		goal := grid.Pos{X: rapid.IntRange(0, w-1).Draw(rt, "gx"), Y: rapid.IntRange(0, h-1).Draw(rt, "gy")}
		occ.Remove(start)

		path, ok := pathfind.Find(start, goal, occ, b)
		if !ok || path.AlreadyAdjacent {
			return
		}
		if len(path.Steps) == 0 {
			rt.Fatalf("found path with no steps")
		}
		prev := start
		seen := map[grid.Pos]bool{}
		for _, p := range path.Steps {
			if grid.TileDistance(prev, p) != 1 {
				rt.Fatalf("non-orthogonal step %s -> %s", prev, p)
			}
			if occ.Blocked(p) || !b.IsOnMap(p) {
				rt.Fatalf("step %s not enterable", p)
			}
			if seen[p] {
				rt.Fatalf("path revisits %s", p)
			}
			seen[p] = true
			prev = p
		}
		if grid.TileDistance(prev, goal) != 1 {
			rt.Fatalf("path ends at %s, not adjacent to %s", prev, goal)
		}
	})
}

func TestBudget(t *testing.T) {
	path := []grid.Pos{{X: 1, Y: 2}, {X: 1, Y: 3}, {X: 1, Y: 4}}

	dest, reached, ok := pathfind.Budget(path, 2)
	require.True(t, ok)
	assert.Equal(t, grid.Pos{X: 1, Y: 3}, dest)
	assert.False(t, reached)

	dest, reached, ok = pathfind.Budget(path, 3)
	require.True(t, ok)
	assert.Equal(t, grid.Pos{X: 1, Y: 4}, dest)
	assert.True(t, reached)

	_, _, ok = pathfind.Budget(nil, 3)
	assert.False(t, ok)
	_, _, ok = pathfind.Budget(path, 0)
	assert.False(t, ok)
}

func TestBudget_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(rt, "len")
		path := make([]grid.Pos, n)
		for i := range path {
			path[i] = grid.Pos{X: i, Y: 0}
		}
		speed := rapid.IntRange(1, 25).Draw(rt, "speed")
		dest, reached, ok := pathfind.Budget(path, speed)
		if !ok {
			rt.Fatalf("budget rejected valid input")
		}
		if speed >= n {
			if dest != path[n-1] || !reached {
				rt.Fatalf("speed %d >= len %d: got %s reached=%v", speed, n, dest, reached)
			}
		} else if dest != path[speed-1] || reached {
			rt.Fatalf("speed %d < len %d: got %s reached=%v", speed, n, dest, reached)
		}
	})
}

func TestPlan_ReachesAdjacentWithinSpeed(t *testing.T) {
	mv, ok := pathfind.Plan(grid.Pos{X: 5, Y: 5}, grid.Pos{X: 5, Y: 1}, 3, grid.Occupancy{}, open10)
	require.True(t, ok)
	assert.Equal(t, grid.Pos{X: 5, Y: 2}, mv.Dest)
	assert.True(t, mv.Reached)
}

func TestPlan_PartialMove(t *testing.T) {
	mv, ok := pathfind.Plan(grid.Pos{X: 5, Y: 8}, grid.Pos{X: 5, Y: 2}, 2, grid.Occupancy{}, open10)
	require.True(t, ok)
	assert.Equal(t, grid.Pos{X: 5, Y: 6}, mv.Dest)
	assert.False(t, mv.Reached)
}

func TestPlan_AdjacentStaysPut(t *testing.T) {
	mv, ok := pathfind.Plan(grid.Pos{X: 5, Y: 5}, grid.Pos{X: 6, Y: 5}, 3, grid.Occupancy{}, open10)
	require.True(t, ok)
	assert.Equal(t, grid.Pos{X: 5, Y: 5}, mv.Dest)
	assert.True(t, mv.Reached)
}
