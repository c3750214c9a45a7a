// Package gamble attributes currency deltas to gambling apparatuses. There is
// no "placed a bet" event upstream, so the tracker watches the wagering
// currency quantity while an actor is associated with a recognized apparatus.
package gamble

import (
	"sync"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
	"github.com/Dyls123/RustStatsExporter/internal/domain/stats"
)

type Tracker struct {
	store ports.StatsStore

	mu       sync.Mutex
	machines map[uint64]*stats.GambleMachine
}

func NewTracker(store ports.StatsStore) *Tracker {
	return &Tracker{
		store:    store,
		machines: make(map[uint64]*stats.GambleMachine),
	}
}

// Observe feeds one sample for an actor: the prefab of their current world
// association (empty when none) and their currency quantity. Called from the
// sampler tick.
func (t *Tracker) Observe(id uint64, apparatusPrefab string, currency int64) {
	if id == 0 {
		return
	}
	kind, _ := stats.ApparatusKind(apparatusPrefab)

	t.mu.Lock()
	m, ok := t.machines[id]
	if !ok {
		if kind == "" {
			t.mu.Unlock()
			return
		}
		m = &stats.GambleMachine{}
		t.machines[id] = m
	}
	effects := m.Observe(kind, currency)
	t.mu.Unlock()

	for _, eff := range effects {
		if eff.Spent > 0 {
			t.store.Add(id, "casino."+eff.Kind+".spent", eff.Spent)
		}
		if eff.Profit != 0 {
			t.store.Add(id, "casino."+eff.Kind+".profit", eff.Profit)
		}
	}
}

// Forget drops the actor's context without a final delta; used on disconnect
// where no trustworthy currency reading exists.
func (t *Tracker) Forget(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.machines, id)
}
