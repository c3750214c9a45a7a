// Package runtime caches the host's actor-state sync frames so the sampler
// and gambling tracker can answer pull-side queries without touching the
// network on their tick path.
package runtime

import (
	"context"
	"sync"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
)

type Provider struct {
	mu     sync.RWMutex
	actors map[uint64]ports.ActorStatus
}

func NewProvider() *Provider {
	return &Provider{actors: make(map[uint64]ports.ActorStatus)}
}

// Replace installs a full actor-state frame, dropping actors absent from it.
func (p *Provider) Replace(actors []ports.ActorStatus) {
	next := make(map[uint64]ports.ActorStatus, len(actors))
	for _, a := range actors {
		if a.ID == 0 {
			continue
		}
		next[a.ID] = a
	}
	p.mu.Lock()
	p.actors = next
	p.mu.Unlock()
}

// Remove drops one actor, typically on disconnect.
func (p *Provider) Remove(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.actors, id)
}

func (p *Provider) Actors(_ context.Context) ([]ports.ActorStatus, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]ports.ActorStatus, 0, len(p.actors))
	for _, a := range p.actors {
		out = append(out, a)
	}
	return out, nil
}

var _ ports.WorldProvider = (*Provider)(nil)
