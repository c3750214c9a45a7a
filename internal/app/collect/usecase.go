// Package collect persists exporter snapshots. One snapshot is one upload
// from one game server; every player entry in it merges additively into the
// stored totals inside a single transaction.
package collect

import (
	"context"
	"errors"
	"strconv"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
	"github.com/Dyls123/RustStatsExporter/internal/domain/stats"
)

var ErrEmptySnapshot = errors.New("snapshot has no players")

// KeyHighestRangeKill is the stored counter key for the longest kill. It is
// merged with max semantics instead of addition.
const KeyHighestRangeKill = "highest_range_kill.m"

type UseCase struct {
	TxManager ports.TxManager
	Players   ports.PlayerRepository
	Counters  ports.CounterRepository
}

func (u UseCase) Execute(ctx context.Context, snap stats.Snapshot) error {
	if len(snap.Players) == 0 {
		return ErrEmptySnapshot
	}
	return u.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		for _, p := range snap.Players {
			if p.UserID == 0 {
				continue
			}
			if err := u.mergePlayer(ctx, snap.ServerUnixTime, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (u UseCase) mergePlayer(ctx context.Context, seenAt int64, p stats.PlayerSnapshot) error {
	name := p.LastName
	if name == "" {
		name = strconv.FormatUint(p.UserID, 10)
	}
	if err := u.Players.Upsert(ctx, ports.PlayerRecord{
		UserID:   p.UserID,
		LastName: name,
		LastSeen: seenAt,
	}); err != nil {
		return err
	}
	if len(p.Counters) > 0 {
		if err := u.Counters.AddMany(ctx, p.UserID, p.Counters); err != nil {
			return err
		}
	}
	if p.HighestRangeKillM > 0 {
		if err := u.Counters.SetMax(ctx, p.UserID, KeyHighestRangeKill, p.HighestRangeKillM); err != nil {
			return err
		}
	}
	return nil
}
