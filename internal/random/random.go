// Package random provides the injectable random source shared by the flashcard,
// exam and story generators.
package random

import (
	"math/rand"
	"sync"
)

// Source picks uniformly distributed indexes. *rand.Rand satisfies it.
type Source interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

type global struct{}

func (global) Intn(n int) int { return rand.Intn(n) }

// Default returns a source backed by the package-level generator, safe for concurrent use.
func Default() Source { return global{} }

type locked struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *locked) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Intn(n)
}

// Seeded returns a reproducible source safe for concurrent use.
func Seeded(seed int64) Source {
	return &locked{rnd: rand.New(rand.NewSource(seed))}
}

// Sequence replays fixed values modulo n, cycling when exhausted. Useful in tests.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequence creates a Sequence source.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Shuffle permutes n elements with swap, Fisher-Yates style.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, src.Intn(i+1))
	}
}
