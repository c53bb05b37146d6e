package core

import (
	"math/rand"
	"time"
)

// NewRand returns the piece RNG every platform uses, so a seed reproduces the
// same piece sequence on any target. Seed 0 is replaced by the clock; the
// effective seed is returned for journaling.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}
