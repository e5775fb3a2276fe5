package level_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
	"github.com/cory-johannsen/tactics/internal/game/level"
	"github.com/cory-johannsen/tactics/internal/game/roster"
)

const smallLevel = `
level:
  id: small
  name: Small
  tiles:
    - [2, 2, 2, 2, 2]
    - [2, 3, 3, 3, 2]
    - [2, 3, 1, 3, 2]
    - [2, 3, 3, 9, 2]
    - [2, 2, 2, 2, 2]
  spawns:
    - { marker: player1_start, x: 1, y: 1 }
    - { marker: player2_start, x: 3, y: 1 }
    - { marker: enemy_start, x: 2, y: 2 }
    - { marker: enemy_start, x: 3, y: 3, template: sentry }
    - { marker: enemy_start, x: 1, y: 3 }
    - { marker: enemy_start, x: 1, y: 3 }
`

var defaults = level.Defaults{
	PlayerMaxHealth: 100,
	PlayerMaxMagika: 100,
	PlayerMoveSpeed: 4,
	EnemyMaxHealth:  100,
	EnemyMoveSpeed:  3,
}

func sentry() level.Templates {
	return level.Templates{"sentry": {ID: "sentry", Name: "Sentry", Behavior: "stay_put", Speed: 1, MaxHealth: 80}}
}

func TestLoadFromBytes_TilesAndSpawns(t *testing.T) {
	lvl, err := level.LoadFromBytes([]byte(smallLevel))
	require.NoError(t, err)

	assert.Equal(t, "small", lvl.ID)
	assert.Equal(t, grid.Bounds{Width: 5, Height: 5}, lvl.Grid.Bounds())

	kind, err := lvl.Grid.At(grid.Pos{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, grid.Wall, kind)
	kind, err = lvl.Grid.At(grid.Pos{X: 2, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, grid.Open, kind)
	assert.True(t, lvl.Grid.IsFloor(grid.Pos{X: 3, Y: 3}), "unknown codes are floor")

	require.Len(t, lvl.Spawns, 6)
	assert.Equal(t, level.Player1Start, lvl.Spawns[0].Marker)
	assert.Equal(t, "sentry", lvl.Spawns[3].Template)
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	cases := map[string]string{
		"no id":        "level:\n  tiles: [[3]]\n",
		"no tiles":     "level:\n  id: x\n",
		"ragged":       "level:\n  id: x\n  tiles: [[3, 3], [3]]\n",
		"bad marker":   "level:\n  id: x\n  tiles: [[3]]\n  spawns: [{marker: boss, x: 0, y: 0}]\n",
		"off map":      "level:\n  id: x\n  tiles: [[3]]\n  spawns: [{marker: enemy_start, x: 4, y: 0}]\n",
		"player templ": "level:\n  id: x\n  tiles: [[3]]\n  spawns: [{marker: player1_start, x: 0, y: 0, template: t}]\n",
		"dup player 1": "level:\n  id: x\n  tiles: [[3, 3]]\n  spawns: [{marker: player1_start, x: 0, y: 0}, {marker: player1_start, x: 1, y: 0}]\n",
		"dup player 2": "level:\n  id: x\n  tiles: [[3, 3]]\n  spawns: [{marker: player2_start, x: 0, y: 0}, {marker: player2_start, x: 1, y: 0}]\n",
	}
	for name, doc := range cases {
		doc := doc
		t.Run(name, func(t *testing.T) {
			_, err := level.LoadFromBytes([]byte(doc))
			assert.ErrorIs(t, err, level.ErrInvalidLevel)
		})
	}

	_, err := level.LoadFromBytes([]byte(":::"))
	assert.Error(t, err)
}

func TestPopulate(t *testing.T) {
	lvl, err := level.LoadFromBytes([]byte(smallLevel))
	require.NoError(t, err)

	tbl, skipped, err := level.Populate(zaptest.NewLogger(t), lvl, sentry(), defaults)
	require.NoError(t, err)

	require.Len(t, skipped, 2)
	assert.Equal(t, grid.Pos{X: 2, Y: 2}, skipped[0].Spawn.Pos)
	assert.Equal(t, grid.Pos{X: 1, Y: 3}, skipped[1].Spawn.Pos)

	players := tbl.Faction(entity.Player)
	require.Len(t, players, 2)
	assert.Equal(t, roster.RoleWizard, players[0].Role())
	m, ok := players[0].Magika()
	assert.True(t, ok)
	assert.Equal(t, 100.0, m)
	assert.Equal(t, roster.RoleWarrior, players[1].Role())
	_, ok = players[1].Magika()
	assert.False(t, ok)

	enemies := tbl.Faction(entity.Enemy)
	require.Len(t, enemies, 2)
	assert.Equal(t, roster.StayPut, enemies[0].Behavior())
	assert.Equal(t, 80.0, enemies[0].MaxHealth())
	assert.Equal(t, 1, enemies[0].Speed())
	assert.Equal(t, roster.AttackClosest, enemies[1].Behavior())
	assert.Equal(t, 3, enemies[1].Speed())
	assert.Equal(t, 100.0, enemies[1].Health())
}

func TestPopulate_UnknownTemplate(t *testing.T) {
	lvl, err := level.LoadFromBytes([]byte(smallLevel))
	require.NoError(t, err)
	_, _, err = level.Populate(zaptest.NewLogger(t), lvl, level.Templates{}, defaults)
	assert.ErrorContains(t, err, "sentry")
}

func TestLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coward.yaml"), []byte("id: coward\nname: Coward\nbehavior: run_away\nspeed: 3\nmax_health: 40\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	tmpls, err := level.LoadTemplates(dir)
	require.NoError(t, err)
	require.Len(t, tmpls, 1)
	assert.Equal(t, "run_away", tmpls["coward"].Behavior)
}

func TestLoadTemplates_Errors(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		_, err := level.LoadTemplates(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
	t.Run("bad behavior", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "x.yaml"), []byte("id: x\nname: X\nbehavior: dance\nspeed: 1\nmax_health: 1\n"), 0644))
		_, err := level.LoadTemplates(dir)
		assert.ErrorContains(t, err, "dance")
	})
	t.Run("duplicate id", func(t *testing.T) {
		dir := t.TempDir()
		doc := []byte("id: x\nname: X\nbehavior: stay_put\nspeed: 1\nmax_health: 1\n")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), doc, 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), doc, 0644))
		_, err := level.LoadTemplates(dir)
		assert.ErrorContains(t, err, "duplicate")
	})
}

func TestTemplateValidate(t *testing.T) {
	base := level.EnemyTemplate{ID: "a", Name: "A", Behavior: "attack_closest", Speed: 2, MaxHealth: 10}
	require.NoError(t, base.Validate())

	noName := base
	noName.Name = ""
	assert.Error(t, noName.Validate())

	slow := base
	slow.Speed = 0
	assert.Error(t, slow.Validate())

	dead := base
	dead.MaxHealth = 0
	assert.Error(t, dead.Validate())
}

func TestShippedContentLoads(t *testing.T) {
	tmpls, err := level.LoadTemplates(filepath.Join("..", "..", "..", "content", "enemies"))
	require.NoError(t, err)

	lvl, err := level.LoadFromFile(filepath.Join("..", "..", "..", "content", "levels", "courtyard.yaml"))
	require.NoError(t, err)

	tbl, skipped, err := level.Populate(zaptest.NewLogger(t), lvl, tmpls, defaults)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Len(t, tbl.Faction(entity.Player), 2)
	assert.NotEmpty(t, tbl.Faction(entity.Enemy))
}
