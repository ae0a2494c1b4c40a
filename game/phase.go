// game/phase.go
package game

import (
	"errors"
)

// Phase is the closed set of session states. Every transition goes
// through transitionLocked, which consults the allowed-transition table,
// so an illegal move is a programming error that surfaces immediately.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseActive
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseActive:
		return "active"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// ErrTransitionNotAllowed is returned when a phase transition is not allowed.
var ErrTransitionNotAllowed = errors.New("phase transition not allowed")

var phaseTransitions = map[Phase][]Phase{
	PhaseWaiting: {PhaseActive, PhaseEnded},
	PhaseActive:  {PhasePaused, PhaseEnded},
	PhasePaused:  {PhaseEnded},
	PhaseEnded:   {},
}

// CanTransition reports whether p may move to next.
func (p Phase) CanTransition(next Phase) bool {
	for _, allowed := range phaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}
