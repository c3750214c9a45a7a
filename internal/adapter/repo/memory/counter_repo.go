package memory

import (
	"context"
	"sort"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
)

type CounterRepo struct {
	store *Store
}

func NewCounterRepo(store *Store) CounterRepo {
	return CounterRepo{store: store}
}

func (r CounterRepo) AddMany(_ context.Context, userID uint64, deltas map[string]float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row := r.store.counterRow(userID)
	for key, delta := range deltas {
		if key == "" {
			continue
		}
		row[key] += delta
	}
	return nil
}

func (r CounterRepo) SetMax(_ context.Context, userID uint64, key string, value float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row := r.store.counterRow(userID)
	if value > row[key] {
		row[key] = value
	}
	return nil
}

func (r CounterRepo) Keys(_ context.Context) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := map[string]struct{}{}
	for _, row := range r.store.counters {
		for key := range row {
			seen[key] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for key := range seen {
		out = append(out, key)
	}
	sort.Strings(out)
	return out, nil
}

func (r CounterRepo) Top(_ context.Context, key string, limit int) ([]ports.LeaderboardRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]ports.LeaderboardRow, 0)
	for userID, row := range r.store.counters {
		value, ok := row[key]
		if !ok {
			continue
		}
		lr := ports.LeaderboardRow{UserID: userID, Value: value}
		if rec, ok := r.store.players[userID]; ok {
			lr.LastName = rec.LastName
		}
		out = append(out, lr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].UserID < out[j].UserID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r CounterRepo) ForPlayer(_ context.Context, userID uint64) (map[string]float64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.counters[userID]
	if !ok {
		return map[string]float64{}, nil
	}
	out := make(map[string]float64, len(row))
	for key, value := range row {
		out[key] = value
	}
	return out, nil
}

var _ ports.CounterRepository = CounterRepo{}
