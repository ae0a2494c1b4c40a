package scoring

import (
	"testing"
)

func TestGuessScore_FirstInstantGuess(t *testing.T) {
	if got := GuessScore(0, 1); got != 100 {
		t.Errorf("Expected 100 for an instant first guess, got %d", got)
	}
}

func TestGuessScore_TimeDecay(t *testing.T) {
	// The documented example: 5 seconds, first guesser.
	if got := GuessScore(5, 1); got != 95 {
		t.Errorf("Expected 95 for 5s/rank 1, got %d", got)
	}
}

func TestGuessScore_RankDecay(t *testing.T) {
	if got := GuessScore(0, 2); got != 90 {
		t.Errorf("Expected 90 for 0s/rank 2, got %d", got)
	}
	if got := GuessScore(5, 3); got != 75 {
		t.Errorf("Expected 75 for 5s/rank 3, got %d", got)
	}
}

func TestGuessScore_Floor(t *testing.T) {
	cases := []struct{ taken, rank int }{
		{1000, 1},
		{0, 100},
		{60, 12},
	}
	for _, c := range cases {
		if got := GuessScore(c.taken, c.rank); got != MinScore {
			t.Errorf("GuessScore(%d, %d) = %d, expected floor %d", c.taken, c.rank, got, MinScore)
		}
	}
}

func TestGuessScore_StrictlyDecreasingUntilFloor(t *testing.T) {
	for taken := 0; taken < 80; taken++ {
		a := GuessScore(taken, 1)
		b := GuessScore(taken+1, 1)
		if a > MinScore && b >= a {
			t.Fatalf("Score not decreasing in time: score(%d)=%d, score(%d)=%d", taken, a, taken+1, b)
		}
	}
	for rank := 1; rank < 12; rank++ {
		a := GuessScore(0, rank)
		b := GuessScore(0, rank+1)
		if a > MinScore && b >= a {
			t.Fatalf("Score not decreasing in rank: score(%d)=%d, score(%d)=%d", rank, a, rank+1, b)
		}
	}
}

func TestGuessScore_NeverBelowOne(t *testing.T) {
	for taken := 0; taken <= 120; taken += 10 {
		for rank := 1; rank <= 12; rank++ {
			if got := GuessScore(taken, rank); got < 1 {
				t.Fatalf("GuessScore(%d, %d) = %d, below the floor", taken, rank, got)
			}
		}
	}
}
