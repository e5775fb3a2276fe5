package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/tactics/internal/game/action"
	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
)

func TestZeroValueIsReadyWait(t *testing.T) {
	var p action.Pending
	assert.True(t, p.IsWait())
	assert.True(t, p.IsReady())
	assert.Equal(t, action.Wait(), p)
}

func TestMoveTo(t *testing.T) {
	p := action.MoveTo(grid.Pos{X: 1, Y: 2}, grid.Pos{X: 1, Y: 4})
	assert.True(t, p.IsMove())
	assert.True(t, p.IsReady())
	mv, ok := p.MovePayload()
	assert.True(t, ok)
	assert.Equal(t, grid.Pos{X: 1, Y: 4}, mv.To)
	_, ok = p.AttackPayload()
	assert.False(t, ok)
}

func TestDraftsAreNotReady(t *testing.T) {
	assert.False(t, action.MoveDraft(grid.Pos{X: 1, Y: 1}).IsReady())
	assert.False(t, action.AttackDraft(grid.Pos{X: 1, Y: 1}).IsReady())
	assert.True(t, action.MoveDraft(grid.Pos{}).IsMove())
}

func TestCastReadinessNeedsAbility(t *testing.T) {
	assert.False(t, action.Cast("").IsReady())
	p := action.Cast("fireball")
	assert.True(t, p.IsReady())
	spell, ok := p.Spell()
	assert.True(t, ok)
	assert.Equal(t, "fireball", spell)
	_, ok = action.Wait().Spell()
	assert.False(t, ok)
}

func TestEffectiveTreatsUnreadyAsWait(t *testing.T) {
	assert.True(t, action.MoveDraft(grid.Pos{X: 2, Y: 2}).Effective().IsWait())
	ready := action.MoveTo(grid.Pos{X: 2, Y: 2}, grid.Pos{X: 2, Y: 3})
	assert.Equal(t, ready, ready.Effective())
}

func TestAttackPayload(t *testing.T) {
	a := action.Attack{
		Target:      entity.Handle{Index: 3, Generation: 1},
		TargetPos:   grid.Pos{X: 2, Y: 3},
		Destination: grid.Pos{X: 2, Y: 2},
		Origin:      grid.Pos{X: 2, Y: 0},
	}
	p := action.AttackOn(a)
	assert.True(t, p.IsAttack())
	got, ok := p.AttackPayload()
	assert.True(t, ok)
	assert.Equal(t, a, got)
	assert.Contains(t, p.String(), "attack 3#1")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "wait", action.KindWait.String())
	assert.Equal(t, "cast", action.KindCast.String())
	assert.Contains(t, action.Cast("").String(), "not ready")
}
