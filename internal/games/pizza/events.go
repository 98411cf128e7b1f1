package pizza

import (
	"fmt"
	"time"
)

// EventKind identifies what a collision pass decided.
type EventKind int

const (
	EventDamaged          EventKind = iota // Player lost a life
	EventScored                            // A shot destroyed an enemy
	EventPowerUpCollected                  // Player picked up Salt or Pepper
	EventGameOver                          // Last life lost
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventDamaged:
		return "damaged"
	case EventScored:
		return "scored"
	case EventPowerUpCollected:
		return "powerup"
	case EventGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Event is one outcome of a collision pass.
type Event struct {
	Kind    EventKind
	Points  int         // EventScored
	PowerUp PowerUpKind // EventPowerUpCollected
	At      Point       // Where it happened, used for explosions
}

func (e Event) String() string {
	switch e.Kind {
	case EventScored:
		return fmt.Sprintf("scored(%d)", e.Points)
	case EventPowerUpCollected:
		return fmt.Sprintf("powerup(%s)", e.PowerUp)
	default:
		return e.Kind.String()
	}
}

// never is a timestamp far enough in the past that every cooldown has
// elapsed, without overflowing when subtracted from a session time.
const never = time.Duration(-1 << 62)

// State is the scoring state of one session.
type State struct {
	Life       int
	Score      int
	HighScore  int
	LastDamage time.Duration // Start of the current invulnerability window
}

// NewState returns the state at the start of a run.
func NewState(lives, highScore int) State {
	return State{Life: lives, HighScore: highScore, LastDamage: never}
}

// Apply folds one event into the state.
// Life never drops below zero and score never exceeds the high score.
func (s *State) Apply(ev Event, now time.Duration) {
	switch ev.Kind {
	case EventDamaged:
		if s.Life > 0 {
			s.Life--
		}
		s.LastDamage = now
	case EventScored:
		s.Score += ev.Points
		if s.Score > s.HighScore {
			s.HighScore = s.Score
		}
	}
}
