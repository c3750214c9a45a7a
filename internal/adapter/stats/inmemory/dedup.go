package inmemory

import (
	"sync"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
)

// Dedup tracks one-time world-object credits. Sets grow for the process
// lifetime; the domain of distinct object ids per run is bounded by world
// capacity, so no eviction exists.
type Dedup struct {
	mu   sync.Mutex
	sets map[string]map[uint64]struct{}
}

func NewDedup() *Dedup {
	return &Dedup{sets: make(map[string]map[uint64]struct{})}
}

func (d *Dedup) TryClaim(set string, objectID uint64) bool {
	if set == "" || objectID == 0 {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	claimed, ok := d.sets[set]
	if !ok {
		claimed = make(map[uint64]struct{})
		d.sets[set] = claimed
	}
	if _, seen := claimed[objectID]; seen {
		return false
	}
	claimed[objectID] = struct{}{}
	return true
}

var _ ports.DedupGuard = (*Dedup)(nil)
