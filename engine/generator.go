package engine

import (
	"math/rand/v2"
	"sync"
)

// newGenerator returns the producer value source: uniform integers in
// 1..99, never the conventional zero sentinel. A zero seed uses the
// shared goroutine-safe source; a non-zero seed gets a dedicated PCG
// source behind a mutex, since rand.Rand itself is not safe for
// concurrent use.
func newGenerator(seed uint64) func() int {
	if seed == 0 {
		return func() int {
			return rand.IntN(99) + 1
		}
	}

	var mu sync.Mutex
	r := rand.New(rand.NewPCG(seed, seed))
	return func() int {
		mu.Lock()
		defer mu.Unlock()
		return r.IntN(99) + 1
	}
}
