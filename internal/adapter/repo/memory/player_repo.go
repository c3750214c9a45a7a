package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
)

type PlayerRepo struct {
	store *Store
}

func NewPlayerRepo(store *Store) PlayerRepo {
	return PlayerRepo{store: store}
}

func (r PlayerRepo) Upsert(_ context.Context, p ports.PlayerRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.players[p.UserID] = p
	return nil
}

func (r PlayerRepo) Get(_ context.Context, userID uint64) (ports.PlayerRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.players[userID]
	if !ok {
		return ports.PlayerRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r PlayerRepo) Search(_ context.Context, q string, limit int) ([]ports.PlayerRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	needle := strings.ToLower(q)
	out := make([]ports.PlayerRecord, 0)
	for _, rec := range r.store.players {
		if strings.Contains(strings.ToLower(rec.LastName), needle) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastSeen != out[j].LastSeen {
			return out[i].LastSeen > out[j].LastSeen
		}
		return out[i].UserID < out[j].UserID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ ports.PlayerRepository = PlayerRepo{}
