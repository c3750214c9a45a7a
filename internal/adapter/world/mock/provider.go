package mock

import (
	"context"
	"sync"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
)

// Provider is a scriptable world provider for tests.
type Provider struct {
	mu     sync.Mutex
	actors []ports.ActorStatus
	Err    error
}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) SetActors(actors []ports.ActorStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actors = actors
}

func (p *Provider) Actors(_ context.Context) ([]ports.ActorStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	out := make([]ports.ActorStatus, len(p.actors))
	copy(out, p.actors)
	return out, nil
}

var _ ports.WorldProvider = (*Provider)(nil)
