package trainer

import (
	"encoding/binary"
	"math/rand/v2"

	"golang.org/x/crypto/blake2b"
)

// pcgStream is the fixed PCG increment used for every activity source.
const pcgStream = 0x9e3779b97f4a7c15

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, pcgStream))
}

// SeedFromString maps a free-form seed string to a stable numeric seed.
func SeedFromString(s string) uint64 {
	sum := blake2b.Sum256([]byte(s))
	return binary.LittleEndian.Uint64(sum[:8])
}

// RandomSeed draws a fresh seed from the process-wide source.
func RandomSeed() uint64 {
	return rand.Uint64()
}

// IntIn returns a uniform integer in [lo, hi].
func IntIn(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
