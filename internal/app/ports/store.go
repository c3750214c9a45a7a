package ports

import "github.com/Dyls123/RustStatsExporter/internal/domain/stats"

// StatsStore is the single in-process counter table. Implementations must
// tolerate concurrent calls from many producers without losing updates, and
// Snapshot must be a consistent point-in-time copy.
type StatsStore interface {
	// Add accumulates amount onto (id, key). Zero amounts, empty keys and a
	// zero identity are dropped. Negative amounts are only honored for the
	// gambling profit counters.
	Add(id uint64, key string, amount float64)

	// SetName records the actor's last known display name. Empty names are
	// ignored; repeated identical names are a no-op.
	SetName(id uint64, name string)

	// ObserveKillRange raises the actor's highest-range-kill scalar when the
	// observed value strictly exceeds the stored one.
	ObserveKillRange(id uint64, meters float64)

	// Snapshot deep-copies every known actor record.
	Snapshot() stats.Snapshot

	// ClearCounters zeroes the counters mapping of exactly the given
	// identities. Records created after the snapshot was taken survive with
	// their own fresh counters; names and kill ranges are never cleared.
	ClearCounters(ids []uint64)

	// ResetKillRanges zeroes the highest-range-kill scalar for the given
	// identities. Only called when the flush pipeline is configured to reset
	// the scalar alongside counters; the default keeps it cumulative.
	ResetKillRanges(ids []uint64)

	ActorCount() int
}

// DedupGuard grants one-time credit for world objects. TryClaim returns true
// on the first claim of (set, objectID) and false forever after, even under
// concurrent racing claims.
type DedupGuard interface {
	TryClaim(set string, objectID uint64) bool
}
