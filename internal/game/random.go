package game

import "math/rand"

// Random supplies uniform values in [0, 1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// NewRandom returns a math/rand source seeded with seed.
func NewRandom(seed int64) Random {
	return rand.New(rand.NewSource(seed))
}
