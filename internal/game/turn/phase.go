// Package turn drives a round through its phases and commits pending actions
// to combatant position and health.
//
// A round cycles PlayerChoosing -> PlayerRunning -> EnemyRunning ->
// PlayerChoosing. Each running phase shows one animation; when it elapses the
// phase's pending actions are committed. Transitions happen only inside
// Machine.Process, one queued event at a time.
package turn

import (
	"github.com/cory-johannsen/tactics/internal/game/entity"
)

// Phase is the active step of the turn cycle.
type Phase int

const (
	PlayerChoosing Phase = iota
	PlayerRunning
	EnemyRunning
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PlayerChoosing:
		return "player_choosing"
	case PlayerRunning:
		return "player_running"
	case EnemyRunning:
		return "enemy_running"
	default:
		return "unknown"
	}
}

// Faction returns which side's actions the phase commits.
func (p Phase) Faction() entity.Faction {
	if p == EnemyRunning {
		return entity.Enemy
	}
	return entity.Player
}

// Outcome is how a round ended.
type Outcome int

const (
	// Undecided means the round is still in play.
	Undecided Outcome = iota
	Victory
	Defeat
	Neutral
)

// String returns the outcome label shown to players.
func (o Outcome) String() string {
	switch o {
	case Victory:
		return "Victory"
	case Defeat:
		return "Defeat"
	case Neutral:
		return "No Contest"
	default:
		return "Undecided"
	}
}

// Summary is created once when the round ends. Its presence freezes the machine.
type Summary struct {
	Outcome Outcome
	// Turns is the number of completed turn cycles.
	Turns int
}

// PlayerHealth is one player's health in a CompletedTurn snapshot.
type PlayerHealth struct {
	Player entity.Handle
	Name   string
	Health float64
}

// CompletedTurn is appended each time the cycle returns to PlayerChoosing.
// It is never modified afterwards.
type CompletedTurn struct {
	Number  int
	Players []PlayerHealth
}
