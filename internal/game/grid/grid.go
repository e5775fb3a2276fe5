package grid

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a position lies outside the grid.
var ErrOutOfRange = errors.New("grid: position out of range")

// Bounds holds a map's tile dimensions.
type Bounds struct {
	Width  int
	Height int
}

// Contains reports whether p addresses a tile of the map (0 <= x < Width, 0 <= y < Height).
func (b Bounds) Contains(p Pos) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// IsOnMap is the reachability check used by the pathfinder.
// It excludes column 0 and rows 0 and 1: 0 < x < Width and 1 < y < Height.
// This mirrors the shipped game's behaviour and is pinned by tests rather than
// widened to Contains.
func (b Bounds) IsOnMap(p Pos) bool {
	return 0 < p.X && p.X < b.Width && 1 < p.Y && p.Y < b.Height
}

// Grid is a read-only snapshot of classified tiles.
//
// Invariant: len(tiles) == Width * Height.
type Grid struct {
	bounds Bounds
	tiles  []TileKind
}

// New returns a Width x Height grid filled with Floor.
//
// Precondition: width >= 1 and height >= 1.
// Postcondition: Returns a grid or an error for non-positive dimensions.
func New(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("grid: dimensions must be positive, got %dx%d", width, height)
	}
	return &Grid{
		bounds: Bounds{Width: width, Height: height},
		tiles:  make([]TileKind, width*height),
	}, nil
}

// Bounds returns the grid dimensions.
func (g *Grid) Bounds() Bounds { return g.bounds }

// At returns the kind of tile at p.
//
// Postcondition: Returns ErrOutOfRange if p is not inside Bounds.
func (g *Grid) At(p Pos) (TileKind, error) {
	if !g.bounds.Contains(p) {
		return 0, fmt.Errorf("%w: %s not in %dx%d", ErrOutOfRange, p, g.bounds.Width, g.bounds.Height)
	}
	return g.tiles[p.Y*g.bounds.Width+p.X], nil
}

// Set classifies the tile at p. Used only while a level is being built.
//
// Postcondition: Returns ErrOutOfRange if p is not inside Bounds; grid unchanged on error.
func (g *Grid) Set(p Pos, kind TileKind) error {
	if !g.bounds.Contains(p) {
		return fmt.Errorf("%w: %s not in %dx%d", ErrOutOfRange, p, g.bounds.Width, g.bounds.Height)
	}
	g.tiles[p.Y*g.bounds.Width+p.X] = kind
	return nil
}

// IsFloor reports whether p is inside the grid and classified Floor.
func (g *Grid) IsFloor(p Pos) bool {
	k, err := g.At(p)
	return err == nil && k == Floor
}

// StaticBlockers returns every non-Floor tile in row-major order.
func (g *Grid) StaticBlockers() []Pos {
	var out []Pos
	for y := 0; y < g.bounds.Height; y++ {
		for x := 0; x < g.bounds.Width; x++ {
			if g.tiles[y*g.bounds.Width+x].Blocks() {
				out = append(out, Pos{X: x, Y: y})
			}
		}
	}
	return out
}
