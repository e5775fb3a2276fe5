// Package level loads maps, spawn markers and enemy templates from YAML and
// turns them into a grid and a populated combatant table.
package level

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/tactics/internal/game/grid"
)

// ErrInvalidLevel wraps every level validation failure.
var ErrInvalidLevel = errors.New("invalid level")

// Marker is a spawn point kind placed on the map.
type Marker int

const (
	// Player1Start spawns the wizard.
	Player1Start Marker = iota
	// Player2Start spawns the warrior.
	Player2Start
	EnemyStart
)

var markerNames = map[string]Marker{
	"player1_start": Player1Start,
	"player2_start": Player2Start,
	"enemy_start":   EnemyStart,
}

// String returns the marker name used in level files.
func (m Marker) String() string {
	for name, v := range markerNames {
		if v == m {
			return name
		}
	}
	return "unknown"
}

// ParseMarker maps a level-file marker name to a Marker.
func ParseMarker(s string) (Marker, error) {
	m, ok := markerNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown spawn marker %q", s)
	}
	return m, nil
}

// Spawn is one spawn marker.
type Spawn struct {
	Marker Marker
	Pos    grid.Pos
	// Template names an enemy template; empty uses the configured defaults.
	Template string
}

// Level is a loaded map plus its spawn markers in file order.
type Level struct {
	ID     string
	Name   string
	Grid   *grid.Grid
	Spawns []Spawn
}

type yamlLevelFile struct {
	Level yamlLevel `yaml:"level"`
}

type yamlLevel struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Tiles  [][]int     `yaml:"tiles"`
	Spawns []yamlSpawn `yaml:"spawns"`
}

type yamlSpawn struct {
	Marker   string `yaml:"marker"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Template string `yaml:"template"`
}

// LoadFromFile reads and validates one level file.
//
// Precondition: path must point to a level YAML file.
// Postcondition: Returns a validated Level or a non-nil error.
func LoadFromFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses and validates a level. Tile rows run top to bottom, so
// tiles[y][x] is the code of tile (x, y); codes map through
// grid.TileKindFromCode.
//
// Postcondition: Returns a validated Level or an error wrapping ErrInvalidLevel
// for schema violations.
func LoadFromBytes(data []byte) (*Level, error) {
	var file yamlLevelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing level YAML: %w", err)
	}
	yl := file.Level
	if yl.ID == "" {
		return nil, fmt.Errorf("%w: id must not be empty", ErrInvalidLevel)
	}
	if len(yl.Tiles) == 0 || len(yl.Tiles[0]) == 0 {
		return nil, fmt.Errorf("%w %q: tiles must not be empty", ErrInvalidLevel, yl.ID)
	}

	width, height := len(yl.Tiles[0]), len(yl.Tiles)
	g, err := grid.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidLevel, yl.ID, err)
	}
	for y, row := range yl.Tiles {
		if len(row) != width {
			return nil, fmt.Errorf("%w %q: row %d has %d tiles, want %d", ErrInvalidLevel, yl.ID, y, len(row), width)
		}
		for x, code := range row {
			if err := g.Set(grid.Pos{X: x, Y: y}, grid.TileKindFromCode(code)); err != nil {
				return nil, fmt.Errorf("setting tile: %w", err)
			}
		}
	}

	lvl := &Level{ID: yl.ID, Name: yl.Name, Grid: g}
	seen := make(map[Marker]bool, 2)
	for i, ys := range yl.Spawns {
		m, err := ParseMarker(ys.Marker)
		if err != nil {
			return nil, fmt.Errorf("%w %q: spawn %d: %v", ErrInvalidLevel, yl.ID, i, err)
		}
		p := grid.Pos{X: ys.X, Y: ys.Y}
		if !g.Bounds().Contains(p) {
			return nil, fmt.Errorf("%w %q: spawn %d at %s is outside the %dx%d map", ErrInvalidLevel, yl.ID, i, p, width, height)
		}
		if ys.Template != "" && m != EnemyStart {
			return nil, fmt.Errorf("%w %q: spawn %d: only enemy_start takes a template", ErrInvalidLevel, yl.ID, i)
		}
		if m != EnemyStart {
			if seen[m] {
				return nil, fmt.Errorf("%w %q: spawn %d: duplicate %s", ErrInvalidLevel, yl.ID, i, ys.Marker)
			}
			seen[m] = true
		}
		lvl.Spawns = append(lvl.Spawns, Spawn{Marker: m, Pos: p, Template: ys.Template})
	}
	return lvl, nil
}
