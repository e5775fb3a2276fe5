package render

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/cory-johannsen/tactics/internal/game/action"
	"github.com/cory-johannsen/tactics/internal/game/ai"
	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
	"github.com/cory-johannsen/tactics/internal/game/turn"
)

// DefaultSpell is the ability name issued by the cast key.
const DefaultSpell = "fireball"

// Controller holds the player's selection and cursor and turns key presses
// into machine calls. It is only touched on the machine's goroutine.
type Controller struct {
	autopilot *ai.Autopilot
	selected  entity.Handle
	cursor    grid.Pos
	options   []grid.Pos
	message   string
}

// NewController returns a Controller. autopilot may be nil, which disables the
// autopilot key.
func NewController(autopilot *ai.Autopilot) *Controller {
	return &Controller{autopilot: autopilot}
}

// Selected returns the player whose action the keys edit.
func (c *Controller) Selected() entity.Handle { return c.selected }

// Cursor returns the cursor tile.
func (c *Controller) Cursor() grid.Pos { return c.cursor }

// Options returns the move destinations offered to the selected player.
func (c *Controller) Options() []grid.Pos { return c.options }

// Message returns the last feedback line.
func (c *Controller) Message() string { return c.message }

// Sync keeps the selection on a living player and refreshes its move options.
func (c *Controller) Sync(m *turn.Machine) {
	tbl := m.Table()
	if p, err := tbl.Get(c.selected); err != nil || p.Defeated() || !p.IsPlayer() {
		c.selected = entity.Nil
		if living := tbl.Living(entity.Player); len(living) > 0 {
			c.selected = living[0].Handle()
			c.cursor = living[0].Pos()
		}
	}
	c.options = nil
	if c.selected.IsNil() || m.Phase() != turn.PlayerChoosing {
		return
	}
	opts, err := ai.MoveOptions(tbl, m.Grid(), c.selected)
	if err == nil {
		c.options = opts
	}
}

// HandleKey applies one key press. It returns true when the player asked to quit.
//
// Keys: arrows/hjkl move the cursor; tab selects the next player; m moves to
// the cursor; a attacks the enemy under the cursor; c casts; w waits; p fills
// every player's action from the autopilot; enter ends the turn; q quits.
func (c *Controller) HandleKey(m *turn.Machine, ev *tcell.EventKey) bool {
	c.Sync(m)
	switch ev.Key() {
	case tcell.KeyUp:
		c.step(m, grid.Pos{X: 0, Y: -1})
	case tcell.KeyDown:
		c.step(m, grid.Pos{X: 0, Y: 1})
	case tcell.KeyLeft:
		c.step(m, grid.Pos{X: -1, Y: 0})
	case tcell.KeyRight:
		c.step(m, grid.Pos{X: 1, Y: 0})
	case tcell.KeyTab:
		c.nextPlayer(m)
	case tcell.KeyEnter:
		c.endTurn(m)
	case tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			c.step(m, grid.Pos{X: 0, Y: -1})
		case 'j':
			c.step(m, grid.Pos{X: 0, Y: 1})
		case 'h':
			c.step(m, grid.Pos{X: -1, Y: 0})
		case 'l':
			c.step(m, grid.Pos{X: 1, Y: 0})
		case 'm':
			c.move(m)
		case 'a':
			c.attack(m)
		case 'c':
			c.submit(m, action.Cast(DefaultSpell))
		case 'w', '.':
			c.submit(m, action.Wait())
		case 'p':
			c.autopilotAll(m)
		case 'q':
			return true
		}
	}
	c.Sync(m)
	return false
}

func (c *Controller) step(m *turn.Machine, d grid.Pos) {
	next := c.cursor.Add(d)
	if m.Grid().Bounds().Contains(next) {
		c.cursor = next
	}
}

func (c *Controller) nextPlayer(m *turn.Machine) {
	living := m.Table().Living(entity.Player)
	if len(living) == 0 {
		return
	}
	idx := 0
	for i, p := range living {
		if p.Handle() == c.selected {
			idx = (i + 1) % len(living)
		}
	}
	c.selected = living[idx].Handle()
	c.cursor = living[idx].Pos()
}

func (c *Controller) move(m *turn.Machine) {
	self, err := m.Table().Get(c.selected)
	if err != nil {
		return
	}
	for _, p := range c.options {
		if p == c.cursor {
			c.submit(m, action.MoveTo(self.Pos(), p))
			return
		}
	}
	c.message = fmt.Sprintf("%s cannot move to %s", self.Name(), c.cursor)
}

func (c *Controller) attack(m *turn.Machine) {
	for _, e := range m.Table().Living(entity.Enemy) {
		if e.Pos() != c.cursor {
			continue
		}
		a, err := ai.AttackIntent(m.Table(), m.Grid(), c.selected, e.Handle())
		if errors.Is(err, ai.ErrOutOfReach) {
			c.message = fmt.Sprintf("%s is out of reach", e.Name())
			return
		}
		if err != nil {
			c.message = err.Error()
			return
		}
		c.submit(m, a)
		return
	}
	c.message = "no enemy under the cursor"
}

func (c *Controller) submit(m *turn.Machine, a action.Pending) {
	if err := m.SetAction(c.selected, a); err != nil {
		c.message = describe(err)
		return
	}
	c.message = ""
}

func (c *Controller) autopilotAll(m *turn.Machine) {
	if c.autopilot == nil {
		return
	}
	for _, d := range c.autopilot.Plan(m.Table(), m.Grid()) {
		if err := m.SetAction(d.Actor, d.Action); err != nil {
			c.message = describe(err)
			return
		}
	}
	c.message = "autopilot planned every player"
}

func (c *Controller) endTurn(m *turn.Machine) {
	if !m.PlayersReady() {
		c.message = "every player needs a ready action"
		return
	}
	m.EndTurn()
	c.message = ""
}

func describe(err error) string {
	switch {
	case errors.Is(err, turn.ErrRoundOver):
		return "the round is over"
	case errors.Is(err, turn.ErrWrongPhase):
		return "wait for the animation to finish"
	default:
		return err.Error()
	}
}
