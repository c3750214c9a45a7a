// Package query serves the collector's read API: counter key discovery,
// per-key leaderboards, player search and per-player detail.
package query

import (
	"context"
	"errors"
	"strings"

	"github.com/Dyls123/RustStatsExporter/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid query request")

const (
	defaultLimit = 10
	maxLimitCap  = 100
)

type UseCase struct {
	Players  ports.PlayerRepository
	Counters ports.CounterRepository
	// MaxLimit caps the limit query parameter. Zero means the built-in cap.
	MaxLimit int
}

func (u UseCase) Keys(ctx context.Context) ([]string, error) {
	return u.Counters.Keys(ctx)
}

func (u UseCase) Leaderboard(ctx context.Context, key string, limit int) ([]ports.LeaderboardRow, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrInvalidRequest
	}
	return u.Counters.Top(ctx, key, u.clampLimit(limit))
}

func (u UseCase) Search(ctx context.Context, q string, limit int) ([]ports.PlayerRecord, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrInvalidRequest
	}
	return u.Players.Search(ctx, q, u.clampLimit(limit))
}

// Player returns the player record together with all stored counters.
// ports.ErrNotFound passes through for unknown ids.
func (u UseCase) Player(ctx context.Context, userID uint64) (PlayerDetail, error) {
	if userID == 0 {
		return PlayerDetail{}, ErrInvalidRequest
	}
	rec, err := u.Players.Get(ctx, userID)
	if err != nil {
		return PlayerDetail{}, err
	}
	counters, err := u.Counters.ForPlayer(ctx, userID)
	if err != nil {
		return PlayerDetail{}, err
	}
	return PlayerDetail{Player: rec, Counters: counters}, nil
}

func (u UseCase) clampLimit(limit int) int {
	max := u.MaxLimit
	if max <= 0 || max > maxLimitCap {
		max = maxLimitCap
	}
	if limit <= 0 {
		return defaultLimit
	}
	if limit > max {
		return max
	}
	return limit
}
