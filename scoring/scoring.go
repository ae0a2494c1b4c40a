// scoring/scoring.go
package scoring

// Tuning constants for guess scoring.
const (
	PointsForGuesser = 100 // base points for a correct guess
	DrawerBonus      = 50  // flat bonus to the drawer per distinct correct guesser
	DecayPerSecond   = 1   // points lost per second taken
	DecayPerRank     = 10  // points lost per guesser ahead of you
	MinScore         = 1   // floor; a correct guess is never worth less
)

// GuessScore computes the points for a correct guess from the seconds
// elapsed since the round's word was dealt and the 1-based order in
// which the guesser got it right. Pure function, clamped at MinScore.
func GuessScore(timeTakenSeconds, guessRank int) int {
	score := PointsForGuesser - timeTakenSeconds*DecayPerSecond - DecayPerRank*(guessRank-1)
	if score < MinScore {
		return MinScore
	}
	return score
}
