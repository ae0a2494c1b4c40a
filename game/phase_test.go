package game

import (
	"testing"
)

func TestPhase_String(t *testing.T) {
	cases := map[Phase]string{
		PhaseWaiting: "waiting",
		PhaseActive:  "active",
		PhasePaused:  "paused",
		PhaseEnded:   "ended",
		Phase(42):    "unknown",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, expected %q", phase, got, want)
		}
	}
}

func TestPhase_TransitionTable(t *testing.T) {
	allowed := []struct{ from, to Phase }{
		{PhaseWaiting, PhaseActive},
		{PhaseWaiting, PhaseEnded},
		{PhaseActive, PhasePaused},
		{PhaseActive, PhaseEnded},
		{PhasePaused, PhaseEnded},
	}
	for _, tr := range allowed {
		if !tr.from.CanTransition(tr.to) {
			t.Errorf("Expected %s -> %s to be allowed", tr.from, tr.to)
		}
	}

	blocked := []struct{ from, to Phase }{
		{PhaseWaiting, PhasePaused},
		{PhaseActive, PhaseWaiting},
		{PhasePaused, PhaseActive}, // no automatic resume
		{PhasePaused, PhaseWaiting},
		{PhaseEnded, PhaseWaiting},
		{PhaseEnded, PhaseActive},
		{PhaseEnded, PhasePaused},
		{PhaseActive, PhaseActive},
	}
	for _, tr := range blocked {
		if tr.from.CanTransition(tr.to) {
			t.Errorf("Expected %s -> %s to be blocked", tr.from, tr.to)
		}
	}
}
