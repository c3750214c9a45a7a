// Package inmemory holds the process-local counter table and dedup guards.
// The store is the exclusive owner of all actor records; callers only ever
// see deep copies.
package inmemory

import (
	"strings"
	"sync"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
	"github.com/Dyls123/RustStatsExporter/internal/domain/stats"
)

type actorRecord struct {
	name              string
	counters          map[string]float64
	highestRangeKillM float64
}

type Store struct {
	mu      sync.RWMutex
	records map[uint64]*actorRecord
}

func NewStore() *Store {
	return &Store{records: make(map[uint64]*actorRecord)}
}

// getOrCreate must be called with the write lock held.
func (s *Store) getOrCreate(id uint64) *actorRecord {
	rec, ok := s.records[id]
	if !ok {
		rec = &actorRecord{counters: make(map[string]float64)}
		s.records[id] = rec
	}
	return rec
}

func (s *Store) Add(id uint64, key string, amount float64) {
	if id == 0 || key == "" || amount == 0 {
		return
	}
	if amount < 0 && !strings.HasSuffix(key, stats.ProfitSuffix) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(id).counters[key] += amount
}

func (s *Store) SetName(id uint64, name string) {
	if id == 0 || name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(id).name = name
}

func (s *Store) ObserveKillRange(id uint64, meters float64) {
	if id == 0 || meters <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.getOrCreate(id)
	if meters > rec.highestRangeKillM {
		rec.highestRangeKillM = meters
	}
}

func (s *Store) Snapshot() stats.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]stats.PlayerSnapshot, 0, len(s.records))
	for id, rec := range s.records {
		counters := make(map[string]float64, len(rec.counters))
		for k, v := range rec.counters {
			counters[k] = v
		}
		players = append(players, stats.PlayerSnapshot{
			UserID:            id,
			LastName:          rec.name,
			Counters:          counters,
			HighestRangeKillM: rec.highestRangeKillM,
		})
	}
	return stats.Snapshot{Players: players}
}

func (s *Store) ClearCounters(ids []uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if rec, ok := s.records[id]; ok {
			rec.counters = make(map[string]float64)
		}
	}
}

func (s *Store) ResetKillRanges(ids []uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if rec, ok := s.records[id]; ok {
			rec.highestRangeKillM = 0
		}
	}
}

func (s *Store) ActorCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// CounterValue reads one counter; zero when the key or actor is unknown.
// Used by debug logging and tests.
func (s *Store) CounterValue(id uint64, key string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return 0
	}
	return rec.counters[key]
}

var _ ports.StatsStore = (*Store)(nil)
