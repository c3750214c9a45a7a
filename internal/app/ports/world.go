package ports

import (
	"context"

	"github.com/Dyls123/RustStatsExporter/internal/domain/stats"
)

// ActorStatus is the pull-side view of one active actor, answered by the
// host environment.
type ActorStatus struct {
	ID       uint64
	Name     string
	Alive    bool
	Position stats.Vec3
	// Currency is the inventory quantity of the wagering currency item.
	Currency int64
	// Apparatus is the prefab of the actor's current world-object
	// association, empty when there is none.
	Apparatus string
}

type WorldProvider interface {
	Actors(ctx context.Context) ([]ActorStatus, error)
}
