// Package inmemory counts ingest outcomes for the /ops/kpi endpoint.
package inmemory

import "sync"

type Snapshot struct {
	IngestTotal    uint64 `json:"ingest_total"`
	IngestAccepted uint64 `json:"ingest_accepted"`
	IngestRejected uint64 `json:"ingest_rejected"`
	IngestFailed   uint64 `json:"ingest_failed"`
	PlayersMerged  uint64 `json:"players_merged"`
}

type Recorder struct {
	mu       sync.Mutex
	accepted uint64
	rejected uint64
	failed   uint64
	players  uint64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordAccepted(players int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted++
	if players > 0 {
		r.players += uint64(players)
	}
}

// RecordRejected counts uploads refused before the usecase ran: bad API key,
// bad encoding, schema violations.
func (r *Recorder) RecordRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

func (r *Recorder) RecordFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		IngestTotal:    r.accepted + r.rejected + r.failed,
		IngestAccepted: r.accepted,
		IngestRejected: r.rejected,
		IngestFailed:   r.failed,
		PlayersMerged:  r.players,
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
