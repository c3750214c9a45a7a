package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordAccepted(3)
	r.RecordAccepted(2)
	r.RecordRejected()
	r.RecordFailed()

	s := r.Snapshot()
	if s.IngestTotal != 4 {
		t.Fatalf("expected total 4, got %d", s.IngestTotal)
	}
	if s.IngestAccepted != 2 {
		t.Fatalf("expected accepted 2, got %d", s.IngestAccepted)
	}
	if s.IngestRejected != 1 || s.IngestFailed != 1 {
		t.Fatalf("rejected/failed = %d/%d", s.IngestRejected, s.IngestFailed)
	}
	if s.PlayersMerged != 5 {
		t.Fatalf("expected 5 players merged, got %d", s.PlayersMerged)
	}
}
