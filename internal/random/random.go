// internal/random/random.go
//
// Uniform integer sources shared by both game engines.
//   - Crypto(): crypto/rand backed, the production default.
//   - Seeded(): deterministic PCG stream for tests and reproducible runs.
//
// Both are safe for concurrent use.

package random

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// Source returns uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

type cryptoSource struct{}

// Crypto returns a Source drawing from crypto/rand.
func Crypto() Source { return cryptoSource{} }

// IntN returns 0 when n <= 0 or when the system RNG fails.
func (cryptoSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}

type seededSource struct {
	mu  sync.Mutex
	rnd *mrand.Rand
}

// Seeded returns a deterministic Source; the same seed yields the same sequence.
func Seeded(seed uint64) Source {
	return &seededSource{rnd: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n)
}

// Pick returns a uniformly chosen element of items, or the zero value if items is empty.
func Pick[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[src.IntN(len(items))]
}
