// game/stats.go
package game

// Stats receives gameplay counters. Implemented by the monitor package;
// sessions created without one get the no-op implementation.
type Stats interface {
	RoundStarted()
	GuessObserved(accepted bool)
	StrokeRelayed()
}

type nopStats struct{}

func (nopStats) RoundStarted()      {}
func (nopStats) GuessObserved(bool) {}
func (nopStats) StrokeRelayed()     {}
