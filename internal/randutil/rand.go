// Package randutil builds the seeded random sources every shuffle and bot
// decision draws from.
package randutil

import (
	"io"
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Two PCG
// streams derived from the same seed always produce the same deals.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns seed, or a time-derived seed when seed is zero. Callers log
// the returned value so a table can be replayed.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// Child derives an independent generator from parent, used to give each
// bot its own stream without sharing state with the dealer.
func Child(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(parent.Uint64(), parent.Uint64()))
}

// Reader adapts rng to an io.Reader for APIs that take a byte source, such
// as uuid generation. Reads never fail.
func Reader(rng *rand.Rand) io.Reader {
	return reader{rng: rng}
}

type reader struct {
	rng *rand.Rand
}

func (r reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint64())
	}
	return len(p), nil
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
