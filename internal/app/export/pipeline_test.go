package export

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Dyls123/RustStatsExporter/internal/adapter/stats/inmemory"
	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
	"github.com/Dyls123/RustStatsExporter/internal/domain/stats"
)

type fakeSender struct {
	mu       sync.Mutex
	err      error
	payloads [][]byte
	block    chan struct{}
	entered  chan struct{}
}

func (s *fakeSender) Send(ctx context.Context, payload []byte) error {
	if s.entered != nil {
		select {
		case s.entered <- struct{}{}:
		default:
		}
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload)
	return s.err
}

func (s *fakeSender) sendCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

type fakeBackup struct {
	err    error
	writes int
}

func (b *fakeBackup) Write([]byte) error {
	b.writes++
	return b.err
}

var _ ports.SnapshotSender = (*fakeSender)(nil)
var _ ports.BackupWriter = (*fakeBackup)(nil)

func TestFlush_SuccessClearsOnlySnapshottedCounters(t *testing.T) {
	store := inmemory.NewStore()
	store.SetName(1, "alice")
	store.Add(1, "kills.player", 2)

	sender := &fakeSender{}
	backup := &fakeBackup{}
	p := &Pipeline{
		Store:    store,
		Sender:   sender,
		Backup:   backup,
		Interval: 30 * time.Second,
		Now:      func() time.Time { return time.Unix(1700000000, 0) },
	}

	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := store.CounterValue(1, "kills.player"); got != 0 {
		t.Fatalf("exported counters must read zero, got %v", got)
	}
	if backup.writes != 1 {
		t.Fatalf("expected one backup write, got %d", backup.writes)
	}

	var snap stats.Snapshot
	if err := json.Unmarshal(sender.payloads[0], &snap); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if snap.ServerUnixTime != 1700000000 {
		t.Fatalf("server_unix_time = %d", snap.ServerUnixTime)
	}
	if len(snap.Players) != 1 || snap.Players[0].UserID != 1 || snap.Players[0].Counters["kills.player"] != 2 {
		t.Fatalf("unexpected payload: %+v", snap.Players)
	}
}

func TestFlush_FailureKeepsCountersForNextCycle(t *testing.T) {
	store := inmemory.NewStore()
	store.Add(1, "deaths", 3)

	sender := &fakeSender{err: errors.New("http 503")}
	p := &Pipeline{Store: store, Sender: sender, Interval: 30 * time.Second}

	if err := p.Flush(context.Background()); err == nil {
		t.Fatal("expected transmit error")
	}
	if got := store.CounterValue(1, "deaths"); got != 3 {
		t.Fatalf("failed cycle must not clear counters, got %v", got)
	}

	// The next cycle includes the old value plus further accumulation.
	store.Add(1, "deaths", 1)
	sender.err = nil
	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("retry flush: %v", err)
	}
	var snap stats.Snapshot
	if err := json.Unmarshal(sender.payloads[len(sender.payloads)-1], &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Players[0].Counters["deaths"] != 4 {
		t.Fatalf("expected accumulated value 4, got %v", snap.Players[0].Counters)
	}
}

func TestFlush_SkipsWhenEmpty(t *testing.T) {
	sender := &fakeSender{}
	backup := &fakeBackup{}
	p := &Pipeline{Store: inmemory.NewStore(), Sender: sender, Backup: backup}

	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if sender.sendCount() != 0 || backup.writes != 0 {
		t.Fatalf("empty cycle must do no I/O: sends=%d backups=%d", sender.sendCount(), backup.writes)
	}
}

func TestFlush_SkipsWhenAllCountersAlreadyFlushed(t *testing.T) {
	store := inmemory.NewStore()
	store.SetName(1, "alice")
	store.Add(1, "deaths", 1)

	sender := &fakeSender{}
	p := &Pipeline{Store: store, Sender: sender}

	if err := p.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	// The record survives the clear with an empty counter map; the next cycle
	// has nothing to report.
	if err := p.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sender.sendCount() != 1 {
		t.Fatalf("idle cycle must not transmit, sends=%d", sender.sendCount())
	}
}

func TestFlush_BackupFailureDoesNotAbortCycle(t *testing.T) {
	store := inmemory.NewStore()
	store.Add(1, "gather.wood", 5)

	sender := &fakeSender{}
	p := &Pipeline{Store: store, Sender: sender, Backup: &fakeBackup{err: errors.New("disk full")}}

	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("backup failure must not fail the cycle: %v", err)
	}
	if got := store.CounterValue(1, "gather.wood"); got != 0 {
		t.Fatalf("delivery confirmed, counters must clear, got %v", got)
	}
}

func TestFlush_SecondCallWhileInFlightIsRejected(t *testing.T) {
	store := inmemory.NewStore()
	store.Add(1, "deaths", 1)

	block := make(chan struct{})
	sender := &fakeSender{block: block, entered: make(chan struct{}, 1)}
	p := &Pipeline{Store: store, Sender: sender, Interval: 30 * time.Second}

	done := make(chan error, 1)
	go func() { done <- p.Flush(context.Background()) }()

	// Wait until the first flush is parked inside Send.
	select {
	case <-sender.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first flush never reached the sender")
	}

	if err := p.Flush(context.Background()); !errors.Is(err, ErrFlushInFlight) {
		t.Fatalf("expected ErrFlushInFlight, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first flush: %v", err)
	}
}

func TestFlush_CountersAddedAfterSnapshotSurviveClear(t *testing.T) {
	store := inmemory.NewStore()
	store.Add(1, "deaths", 1)

	block := make(chan struct{})
	sender := &fakeSender{block: block, entered: make(chan struct{}, 1)}
	p := &Pipeline{Store: store, Sender: sender, Interval: 30 * time.Second}

	done := make(chan error, 1)
	go func() { done <- p.Flush(context.Background()) }()

	select {
	case <-sender.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("flush never reached the sender")
	}
	// A brand-new actor arrives mid-transmission, after the snapshot.
	store.Add(2, "gather.scrap", 7)

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := store.CounterValue(2, "gather.scrap"); got != 7 {
		t.Fatalf("mid-flight record must survive the clear, got %v", got)
	}
}

func TestFlush_ResetRangeOnFlushIsOptIn(t *testing.T) {
	store := inmemory.NewStore()
	store.Add(1, "kills.player", 1)
	store.ObserveKillRange(1, 200)

	p := &Pipeline{Store: store, Sender: &fakeSender{}}
	if err := p.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := store.Snapshot().Players[0].HighestRangeKillM; got != 200 {
		t.Fatalf("default keeps the range cumulative, got %v", got)
	}

	store.Add(1, "kills.player", 1)
	p.ResetRangeOnFlush = true
	if err := p.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := store.Snapshot().Players[0].HighestRangeKillM; got != 0 {
		t.Fatalf("opt-in reset must clear the range, got %v", got)
	}
}
