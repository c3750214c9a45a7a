package inmemory

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestDedup_FirstClaimWins(t *testing.T) {
	d := NewDedup()
	if !d.TryClaim("airdrops", 42) {
		t.Fatal("first claim must succeed")
	}
	if d.TryClaim("airdrops", 42) {
		t.Fatal("second claim must fail")
	}
	if !d.TryClaim("hackedcrates", 42) {
		t.Fatal("the same id in a different set is a distinct claim")
	}
}

func TestDedup_RejectsZeroValues(t *testing.T) {
	d := NewDedup()
	if d.TryClaim("", 1) {
		t.Fatal("empty set name must not claim")
	}
	if d.TryClaim("airdrops", 0) {
		t.Fatal("zero object id must not claim")
	}
}

func TestDedup_ConcurrentClaimsSingleWinner(t *testing.T) {
	d := NewDedup()
	const callers = 32

	var wins atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if d.TryClaim("hackedcrates", 1001) {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("exactly one caller may win, got %d", wins.Load())
	}
}
