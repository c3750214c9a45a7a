// Package memory backs the collector repositories with maps. It exists for
// tests and for running the read API against a fixture without postgres.
package memory

import (
	"sync"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
)

type Store struct {
	mu       sync.Mutex
	players  map[uint64]ports.PlayerRecord
	counters map[uint64]map[string]float64
}

func NewStore() *Store {
	return &Store{
		players:  make(map[uint64]ports.PlayerRecord),
		counters: make(map[uint64]map[string]float64),
	}
}

func (s *Store) counterRow(userID uint64) map[string]float64 {
	row, ok := s.counters[userID]
	if !ok {
		row = make(map[string]float64)
		s.counters[userID] = row
	}
	return row
}
