// Package sampler runs the periodic position/playtime task. Each tick reads
// every active actor from the world provider, accumulates presence time and
// traveled distance, and feeds the gambling tracker the same sample.
package sampler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
	"github.com/Dyls123/RustStatsExporter/internal/domain/stats"
)

// Distance deltas outside this band are discarded as teleport/respawn
// artifacts. Both bounds are exclusive.
const (
	minStepM = 0.05
	maxStepM = 50.0
)

// GambleObserver receives one apparatus/currency sample per actor per tick.
type GambleObserver interface {
	Observe(id uint64, apparatusPrefab string, currency int64)
}

type Sampler struct {
	World  ports.WorldProvider
	Store  ports.StatsStore
	Gamble GambleObserver
	Period time.Duration
	Logger *log.Logger

	// lastPos is shared with Forget, which runs on the feed goroutine.
	mu      sync.Mutex
	lastPos map[uint64]stats.Vec3
}

func New(world ports.WorldProvider, store ports.StatsStore, gamble GambleObserver, period time.Duration, logger *log.Logger) *Sampler {
	if period <= 0 {
		period = 500 * time.Millisecond
	}
	return &Sampler{
		World:   world,
		Store:   store,
		Gamble:  gamble,
		Period:  period,
		Logger:  logger,
		lastPos: make(map[uint64]stats.Vec3),
	}
}

// Run ticks until the context is canceled. The sampler never blocks on
// network I/O; the world provider is an in-process cache.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step(ctx)
		}
	}
}

// Step performs one sampling pass. Exported so the tick body is testable
// without a running ticker.
func (s *Sampler) Step(ctx context.Context) {
	actors, err := s.World.Actors(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Printf("sampler: actors query failed: %v", err)
		}
		return
	}

	elapsed := s.Period.Seconds()
	for _, a := range actors {
		if a.ID == 0 || !a.Alive {
			continue
		}
		s.Store.Add(a.ID, stats.KeyPlaytime, elapsed)

		s.mu.Lock()
		prev, seen := s.lastPos[a.ID]
		// The stored position always advances, even for rejected samples,
		// so one teleport does not poison the following tick.
		s.lastPos[a.ID] = a.Position
		s.mu.Unlock()

		if seen {
			if d := prev.DistanceTo(a.Position); d > minStepM && d < maxStepM {
				s.Store.Add(a.ID, stats.KeyDistance, d)
			}
		}

		if s.Gamble != nil {
			s.Gamble.Observe(a.ID, a.Apparatus, a.Currency)
		}
	}
}

// Forget drops the actor's position baseline; the next sample after a
// reconnect is baseline-only again.
func (s *Sampler) Forget(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lastPos, id)
}
