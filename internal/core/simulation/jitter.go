package simulation

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// MinTransitGap and MaxTransitGap bound the simulated time between two
	// consecutive tracking events.
	MinTransitGap = 4 * time.Hour
	MaxTransitGap = 10 * time.Hour
)

// Jitter supplies the time offset between consecutive events.
type Jitter interface {
	Offset() time.Duration
}

// RandomJitter draws offsets uniformly from [min, max) using its own source,
// never the package-level generator.
type RandomJitter struct {
	mu  sync.Mutex
	rng *rand.Rand
	min time.Duration
	max time.Duration
}

// NewRandomJitter returns a jitter over [MinTransitGap, MaxTransitGap) seeded
// with seed. Equal seeds give equal sequences.
func NewRandomJitter(seed uint64) *RandomJitter {
	return NewRandomJitterRange(seed, MinTransitGap, MaxTransitGap)
}

// NewRandomJitterRange is NewRandomJitter with explicit bounds. A max not
// greater than min collapses the range to min.
func NewRandomJitterRange(seed uint64, min, max time.Duration) *RandomJitter {
	if max < min {
		max = min
	}
	return &RandomJitter{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		min: min,
		max: max,
	}
}

func (j *RandomJitter) Offset() time.Duration {
	span := j.max - j.min
	if span <= 0 {
		return j.min
	}
	j.mu.Lock()
	n := j.rng.Int64N(int64(span))
	j.mu.Unlock()
	return j.min + time.Duration(n)
}

// FixedJitter always returns the same offset.
type FixedJitter time.Duration

func (f FixedJitter) Offset() time.Duration {
	return time.Duration(f)
}
