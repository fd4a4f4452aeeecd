package model

import (
	"math/rand/v2"
	"time"
)

// RandomSource yields uniformly distributed values in [0, 1).
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type RandomSource interface {
	Float64() float64
}

// Logger is the diagnostic sink used by the universe. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// NewRandom returns a deterministic PCG source for the provided seed.
func NewRandom(seed int64) RandomSource {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

func timeSeededRandom() RandomSource {
	return NewRandom(time.Now().UnixNano())
}

// coinFlip draws one cell value with probability 0.5 of being alive.
func coinFlip(r RandomSource) bool {
	return r.Float64() < 0.5
}
