package roster

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/tactics/internal/game/action"
	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
)

// ErrNotFound is returned for stale or unknown handles.
var ErrNotFound = errors.New("roster: combatant not found")

type slot struct {
	generation uint32
	c          *Combatant
}

// Table is an arena of combatants iterated in spawn order.
// Slots are never reused; removing a combatant bumps its slot generation so
// outstanding handles go stale.
//
// Not safe for concurrent use; the turn driver owns it on one goroutine.
type Table struct {
	slots []slot
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{}
}

// Spawn adds a combatant built from s and returns its handle.
//
// Precondition: s.MaxHealth > 0.
// Postcondition: the combatant starts at full health with a ready Wait action.
func (t *Table) Spawn(s Spec) entity.Handle {
	h := entity.Handle{Index: uint32(len(t.slots)), Generation: 1}
	var magika *float64
	if s.Magika != nil {
		m := *s.Magika
		magika = &m
	}
	t.slots = append(t.slots, slot{
		generation: h.Generation,
		c: &Combatant{
			handle:    h,
			name:      s.Name,
			faction:   s.Faction,
			role:      s.Role,
			pos:       s.Pos,
			health:    s.MaxHealth,
			maxHealth: s.MaxHealth,
			magika:    magika,
			speed:     s.Speed,
			behavior:  s.Behavior,
			pending:   action.Wait(),
		},
	})
	return h
}

// Get resolves h.
//
// Postcondition: Returns ErrNotFound when h is stale, nil, or out of range.
func (t *Table) Get(h entity.Handle) (*Combatant, error) {
	if int(h.Index) >= len(t.slots) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, h)
	}
	s := t.slots[h.Index]
	if s.c == nil || s.generation != h.Generation {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, h)
	}
	return s.c, nil
}

// Remove deletes the combatant behind h and invalidates every copy of h.
func (t *Table) Remove(h entity.Handle) error {
	if _, err := t.Get(h); err != nil {
		return err
	}
	s := &t.slots[h.Index]
	s.c = nil
	s.generation++
	return nil
}

// Len returns the number of combatants present.
func (t *Table) Len() int {
	n := 0
	for _, s := range t.slots {
		if s.c != nil {
			n++
		}
	}
	return n
}

// All returns every present combatant in spawn order, defeated ones included.
func (t *Table) All() []*Combatant {
	out := make([]*Combatant, 0, len(t.slots))
	for _, s := range t.slots {
		if s.c != nil {
			out = append(out, s.c)
		}
	}
	return out
}

// Faction returns every present combatant of faction f in spawn order.
func (t *Table) Faction(f entity.Faction) []*Combatant {
	var out []*Combatant
	for _, c := range t.All() {
		if c.faction == f {
			out = append(out, c)
		}
	}
	return out
}

// Living returns the non-defeated combatants of faction f in spawn order.
func (t *Table) Living(f entity.Faction) []*Combatant {
	var out []*Combatant
	for _, c := range t.Faction(f) {
		if !c.Defeated() {
			out = append(out, c)
		}
	}
	return out
}

// Positions returns the positions of every living combatant, optionally
// skipping one handle.
func (t *Table) Positions(except entity.Handle) []grid.Pos {
	var out []grid.Pos
	for _, c := range t.All() {
		if c.Defeated() || c.handle == except {
			continue
		}
		out = append(out, c.pos)
	}
	return out
}

// SetAction replaces the pending action of h wholesale.
func (t *Table) SetAction(h entity.Handle, p action.Pending) error {
	c, err := t.Get(h)
	if err != nil {
		return err
	}
	c.pending = p
	return nil
}

// Relocate sets the position of h. Called only by turn resolution.
func (t *Table) Relocate(h entity.Handle, p grid.Pos) error {
	c, err := t.Get(h)
	if err != nil {
		return err
	}
	c.pos = p
	return nil
}

// ApplyDamage reduces the health of h by amount, flooring at zero, and returns
// the new health. Called only by turn resolution.
//
// Precondition: amount >= 0.
// Postcondition: health >= 0.
func (t *Table) ApplyDamage(h entity.Handle, amount float64) (float64, error) {
	c, err := t.Get(h)
	if err != nil {
		return 0, err
	}
	c.health -= amount
	if c.health < 0 {
		c.health = 0
	}
	return c.health, nil
}
