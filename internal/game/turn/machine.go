package turn

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tactics/internal/game/action"
	"github.com/cory-johannsen/tactics/internal/game/ai"
	"github.com/cory-johannsen/tactics/internal/game/entity"
	"github.com/cory-johannsen/tactics/internal/game/grid"
	"github.com/cory-johannsen/tactics/internal/game/roster"
)

var (
	// ErrWrongPhase is returned when players try to change actions outside PlayerChoosing.
	ErrWrongPhase = errors.New("turn: actions can only be chosen during player_choosing")
	// ErrNotPlayer is returned when input targets an AI-controlled combatant.
	ErrNotPlayer = errors.New("turn: combatant is not player-controlled")
	// ErrRoundOver is returned once the round summary exists.
	ErrRoundOver = errors.New("turn: round is over")
)

// EventKind identifies a queued machine event.
type EventKind int

const (
	// EventEndTurn asks to leave PlayerChoosing. Ignored unless every living
	// player has a ready action.
	EventEndTurn EventKind = iota
	// EventAnimationDone reports that the current displayer finished.
	EventAnimationDone
	// EventQuit tears down all turn state.
	EventQuit
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventEndTurn:
		return "end_turn"
	case EventAnimationDone:
		return "animation_done"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Notice is delivered to subscribers after every phase change and commit.
type Notice struct {
	Phase       Phase
	Resolutions []Resolution
	Summary     *Summary
}

// Options configures a Machine.
type Options struct {
	// AnimationDuration is how long each running phase is shown.
	AnimationDuration time.Duration
	// MaxTurns ends the round Neutral after this many completed turns; 0 = unlimited.
	MaxTurns int
	Damage   Damage
}

// Machine is the turn state machine for one round.
//
// Not safe for concurrent use. Driver serialises access on one goroutine.
type Machine struct {
	logger  *zap.Logger
	id      uuid.UUID
	table   *roster.Table
	grid    *grid.Grid
	planner *ai.Planner
	opts    Options

	phase     Phase
	displayer *Displayer
	queue     []EventKind
	history   []CompletedTurn
	summary   *Summary
	last      []Resolution
	listeners []func(Notice)
}

// NewMachine returns a Machine in PlayerChoosing for the combatants in tbl
// standing on g.
//
// Precondition: logger, tbl, g, and planner must not be nil; AnimationDuration >= 0.
func NewMachine(logger *zap.Logger, tbl *roster.Table, g *grid.Grid, planner *ai.Planner, opts Options) *Machine {
	id := uuid.New()
	return &Machine{
		logger:  logger.With(zap.String("round_id", id.String())),
		id:      id,
		table:   tbl,
		grid:    g,
		planner: planner,
		opts:    opts,
		phase:   PlayerChoosing,
	}
}

// ID returns the round identifier.
func (m *Machine) ID() uuid.UUID { return m.id }

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Table returns the combatant table. Callers must treat it as read-only and
// change intents only through SetAction.
func (m *Machine) Table() *roster.Table { return m.table }

// Grid returns the map.
func (m *Machine) Grid() *grid.Grid { return m.grid }

// Displayer returns the in-flight animation, or nil.
func (m *Machine) Displayer() *Displayer { return m.displayer }

// Summary returns the round summary, or nil while the round is in play.
func (m *Machine) Summary() *Summary { return m.summary }

// History returns a copy of the completed-turn records.
func (m *Machine) History() []CompletedTurn {
	cp := make([]CompletedTurn, len(m.history))
	copy(cp, m.history)
	return cp
}

// LastResolutions returns the effects of the most recent commit.
func (m *Machine) LastResolutions() []Resolution { return m.last }

// Subscribe registers fn to receive notices. fn runs on the machine's goroutine.
func (m *Machine) Subscribe(fn func(Notice)) {
	m.listeners = append(m.listeners, fn)
}

// SetAction replaces the pending action of player h.
//
// Postcondition: Returns ErrRoundOver, ErrWrongPhase, roster.ErrNotFound, or
// ErrNotPlayer without changing anything; otherwise the action is stored.
func (m *Machine) SetAction(h entity.Handle, p action.Pending) error {
	if m.summary != nil {
		return ErrRoundOver
	}
	if m.phase != PlayerChoosing {
		return fmt.Errorf("%w: phase is %s", ErrWrongPhase, m.phase)
	}
	c, err := m.table.Get(h)
	if err != nil {
		return err
	}
	if !c.IsPlayer() {
		return fmt.Errorf("%w: %s", ErrNotPlayer, c.Name())
	}
	return m.table.SetAction(h, p)
}

// PlayersReady reports whether every living player has a ready action.
func (m *Machine) PlayersReady() bool {
	for _, p := range m.table.Living(entity.Player) {
		if !p.Action().IsReady() {
			return false
		}
	}
	return true
}

// Post queues an event for the next Process call.
func (m *Machine) Post(k EventKind) {
	m.queue = append(m.queue, k)
}

// EndTurn queues EventEndTurn and processes it.
func (m *Machine) EndTurn() {
	m.Post(EventEndTurn)
	m.Process()
}

// Tick advances the in-flight animation by dt, queues EventAnimationDone when it
// finishes, and processes the queue.
func (m *Machine) Tick(dt time.Duration) {
	if m.displayer != nil {
		m.displayer.Advance(dt)
		if m.displayer.Done() {
			m.Post(EventAnimationDone)
		}
	}
	m.Process()
}

// Process handles queued events in order, including any queued while
// processing, then applies the round-end check.
func (m *Machine) Process() {
	for len(m.queue) > 0 {
		ev := m.queue[0]
		m.queue = m.queue[1:]
		m.transition(ev)
	}
	m.checkRoundEnd()
}

// transition is the only place the phase changes.
func (m *Machine) transition(ev EventKind) {
	if ev == EventQuit {
		m.reset()
		return
	}
	if m.summary != nil {
		m.logger.Debug("round over, event ignored", zap.Stringer("event", ev))
		return
	}

	switch ev {
	case EventEndTurn:
		if m.phase != PlayerChoosing {
			m.logger.Debug("end turn ignored while animating", zap.Stringer("phase", m.phase))
			return
		}
		if !m.PlayersReady() {
			m.logger.Debug("end turn ignored, players not ready")
			return
		}
		m.begin(PlayerRunning)
		m.notify(nil)

	case EventAnimationDone:
		if m.displayer == nil || !m.displayer.Done() {
			return
		}
		finished := m.displayer.Phase()
		m.displayer = nil
		m.last = Resolve(m.table, finished.Faction(), m.opts.Damage, m.logger)

		switch finished {
		case PlayerRunning:
			if m.checkRoundEnd() {
				return
			}
			m.begin(EnemyRunning)
			m.planner.PlanEnemies(m.table, m.grid)
			m.notify(m.last)
		case EnemyRunning:
			m.phase = PlayerChoosing
			m.record()
			if m.checkRoundEnd() {
				return
			}
			if m.opts.MaxTurns > 0 && len(m.history) >= m.opts.MaxTurns {
				m.finish(Neutral)
				return
			}
			m.notify(m.last)
		}
	}
}

// begin starts the animation for a running phase.
// Two displayers at once is a scheduling bug, so it panics.
func (m *Machine) begin(p Phase) {
	if m.displayer != nil {
		m.logger.Error("animation already in flight",
			zap.Stringer("current", m.displayer.Phase()),
			zap.Stringer("requested", p),
		)
		panic(fmt.Sprintf("turn: cannot start %s animation while %s is animating", p, m.displayer.Phase()))
	}
	m.displayer = NewDisplayer(p, m.opts.AnimationDuration)
	m.phase = p
	m.logger.Info("phase started", zap.Stringer("phase", p))
}

func (m *Machine) record() {
	ct := CompletedTurn{Number: len(m.history) + 1}
	for _, p := range m.table.Faction(entity.Player) {
		ct.Players = append(ct.Players, PlayerHealth{Player: p.Handle(), Name: p.Name(), Health: p.Health()})
	}
	m.history = append(m.history, ct)
	m.logger.Info("turn completed", zap.Int("turn", ct.Number))
}

// checkRoundEnd creates the summary when Evaluate reports an outcome.
// It returns true when the round is over.
func (m *Machine) checkRoundEnd() bool {
	if m.summary != nil {
		return true
	}
	o := Evaluate(m.table)
	if o == Undecided {
		return false
	}
	m.finish(o)
	return true
}

func (m *Machine) finish(o Outcome) {
	m.displayer = nil
	m.queue = nil
	m.summary = &Summary{Outcome: o, Turns: len(m.history)}
	m.logger.Info("round ended",
		zap.Stringer("outcome", o),
		zap.Int("turns", m.summary.Turns),
	)
	m.notify(m.last)
}

func (m *Machine) reset() {
	m.phase = PlayerChoosing
	m.displayer = nil
	m.history = nil
	m.summary = nil
	m.last = nil
	for _, c := range m.table.All() {
		_ = m.table.SetAction(c.Handle(), action.Wait())
	}
	m.logger.Info("turn state reset")
}

func (m *Machine) notify(res []Resolution) {
	n := Notice{Phase: m.phase, Resolutions: res, Summary: m.summary}
	for _, fn := range m.listeners {
		fn(n)
	}
}
