// Package random provides the injectable random source consumed by the
// outcome resolvers. Production code shares one locked source; tests
// inject seeded sources for deterministic outcomes.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the subset of randomness the resolvers draw from.
type Source interface {
	// Intn returns a uniform int in [0, n). Panics if n <= 0.
	Intn(n int) int

	// Int63n returns a uniform int64 in [0, n). Panics if n <= 0.
	Int63n(n int64) int64

	// Float64 returns a uniform float64 in [0.0, 1.0).
	Float64() float64

	// Shuffle pseudo-randomizes the order of n elements.
	Shuffle(n int, swap func(i, j int))
}

// lockedSource wraps math/rand with a mutex; *rand.Rand is not safe for
// concurrent use and one source is shared across all handlers.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a thread-safe source seeded from the current time.
func New() Source {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a thread-safe source with a fixed seed.
func NewSeeded(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

func (s *lockedSource) Int63n(n int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Int63n(n)
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Shuffle(n, swap)
}

// IntRange returns a uniform int in [lo, hi] inclusive.
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Int64Range returns a uniform int64 in [lo, hi] inclusive.
func Int64Range(src Source, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + src.Int63n(hi-lo+1)
}

// Chance draws a Bernoulli trial that succeeds with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}
