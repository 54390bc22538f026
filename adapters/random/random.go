// Package random provides Random implementations for the seeder.
package random

import (
	"math/rand"
	"sync"
	"time"

	"github.com/artpar/pubforge/ports"
)

// Real draws from math/rand seeded with wall-clock time. Seed publication
// values do not need cryptographic strength, only a reasonable spread.
type Real struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewReal creates a time-seeded random source.
func NewReal() *Real {
	return &Real{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Intn returns a uniform int in [0, n).
func (r *Real) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Float64 returns a uniform float in [0, 1).
func (r *Real) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Ensure interface compliance.
var _ ports.Random = (*Real)(nil)

// Fake is a fixed-seed source for deterministic tests.
type Fake struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFake creates a random source with a fixed seed.
func NewFake(seed int64) *Fake {
	return &Fake{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a deterministic int in [0, n).
func (f *Fake) Intn(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rng.Intn(n)
}

// Float64 returns a deterministic float in [0, 1).
func (f *Fake) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rng.Float64()
}

// Ensure interface compliance.
var _ ports.Random = (*Fake)(nil)
