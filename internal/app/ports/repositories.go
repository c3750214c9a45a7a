package ports

import "context"

type PlayerRecord struct {
	UserID   uint64
	LastName string
	LastSeen int64
}

type LeaderboardRow struct {
	UserID   uint64
	LastName string
	Value    float64
}

type PlayerRepository interface {
	Upsert(ctx context.Context, p PlayerRecord) error
	Get(ctx context.Context, userID uint64) (PlayerRecord, error)
	Search(ctx context.Context, q string, limit int) ([]PlayerRecord, error)
}

type CounterRepository interface {
	// AddMany merges additive counter deltas for one player.
	AddMany(ctx context.Context, userID uint64, deltas map[string]float64) error
	// SetMax stores value only when it exceeds the current stored value.
	SetMax(ctx context.Context, userID uint64, key string, value float64) error
	Keys(ctx context.Context) ([]string, error)
	Top(ctx context.Context, key string, limit int) ([]LeaderboardRow, error)
	ForPlayer(ctx context.Context, userID uint64) (map[string]float64, error)
}
