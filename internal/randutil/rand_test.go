package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.IntN(52), b.IntN(52))
	}
}

func TestNewDiffersBySeed(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 64; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	assert.Less(t, same, 64)
}

func TestWorkerSeed(t *testing.T) {
	assert.Equal(t, int64(7), WorkerSeed(7, 0))

	seen := map[int64]int{}
	for w := 0; w < 16; w++ {
		s := WorkerSeed(7, w)
		if prev, ok := seen[s]; ok {
			t.Fatalf("workers %d and %d share seed %d", prev, w, s)
		}
		seen[s] = w
	}
	assert.Equal(t, WorkerSeed(7, 3), WorkerSeed(7, 3))
}
