// Package export runs the flush cycle: snapshot, serialize, back up,
// transmit, and clear counters only on confirmed delivery.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
	"github.com/Dyls123/RustStatsExporter/internal/domain/stats"
)

// ErrFlushInFlight is returned when a flush is requested while another cycle
// is still running. The caller drops the request; the next scheduled tick is
// the retry.
var ErrFlushInFlight = errors.New("flush already in flight")

const minSendTimeout = 5 * time.Second

type Pipeline struct {
	Store    ports.StatsStore
	Sender   ports.SnapshotSender
	Backup   ports.BackupWriter
	Interval time.Duration
	Logger   *log.Logger
	Now      func() time.Time

	// ResetRangeOnFlush clears highest_range_kill_m with the counters. Off by
	// default; the scalar is cumulative for the record's lifetime.
	ResetRangeOnFlush bool

	inFlight atomic.Bool
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}

// Run flushes on a fixed timer until the context is canceled, then attempts
// one final best-effort flush.
func (p *Pipeline) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), p.sendTimeout())
			defer cancel()
			if err := p.Flush(shutdownCtx); err != nil && !errors.Is(err, ErrFlushInFlight) {
				p.logf("export: final flush failed: %v", err)
			}
			return
		case <-ticker.C:
			if err := p.Flush(ctx); err != nil && !errors.Is(err, ErrFlushInFlight) {
				p.logf("export: flush failed, counters kept for next cycle: %v", err)
			}
		}
	}
}

// Flush executes one cycle. At most one cycle may be in flight; concurrent
// callers get ErrFlushInFlight. A nil return means either confirmed delivery
// or a skipped empty cycle.
func (p *Pipeline) Flush(ctx context.Context) error {
	if !p.inFlight.CompareAndSwap(false, true) {
		return ErrFlushInFlight
	}
	defer p.inFlight.Store(false)

	if p.Store.ActorCount() == 0 {
		return nil
	}

	snap := p.Store.Snapshot()
	if !hasData(snap) {
		// Every actor was already flushed and nothing accrued since.
		return nil
	}
	snap.ServerUnixTime = p.now().Unix()

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("serialize snapshot: %w", err)
	}

	if p.Backup != nil {
		// Best-effort side channel; a failed backup never aborts the cycle.
		if err := p.Backup.Write(payload); err != nil {
			p.logf("export: backup write failed: %v", err)
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, p.sendTimeout())
	defer cancel()
	if err := p.Sender.Send(sendCtx, payload); err != nil {
		return fmt.Errorf("transmit snapshot: %w", err)
	}

	ids := snap.ActorIDs()
	p.Store.ClearCounters(ids)
	if p.ResetRangeOnFlush {
		p.Store.ResetKillRanges(ids)
	}
	return nil
}

func hasData(snap stats.Snapshot) bool {
	for _, pl := range snap.Players {
		if len(pl.Counters) > 0 {
			return true
		}
	}
	return false
}

func (p *Pipeline) sendTimeout() time.Duration {
	timeout := p.Interval - time.Second
	if timeout < minSendTimeout {
		timeout = minSendTimeout
	}
	return timeout
}
