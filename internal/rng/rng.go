package rng

import (
	"math/rand"
	"time"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seeded returns a deterministic generator for the given seed
// This should only be used by tests and replayable simulations
func Seeded(seed int64) Generator {
	return rand.New(rand.NewSource(seed)) // nolint:gosec
}

// Default returns a time-seeded generator
func Default() Generator {
	return rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
}
