// game/words.go
package game

import (
	"math/rand"
)

// The fixed word list. Selection is uniform; curation is a non-goal.
var words = []string{
	"apple", "car", "banana", "pizza", "tree",
	"house", "dog", "star", "laptop", "guitar",
}

func pickWord() string {
	return words[rand.Intn(len(words))]
}
