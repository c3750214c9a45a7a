package ports

import "context"

// SnapshotSender transmits one serialized snapshot to the remote collector.
// A nil return means confirmed delivery (2xx); anything else is a failed
// cycle and the caller must not clear counters.
type SnapshotSender interface {
	Send(ctx context.Context, payload []byte) error
}

// BackupWriter persists the serialized snapshot to a local side channel,
// overwriting the previous copy. Best-effort: callers log failures and move
// on.
type BackupWriter interface {
	Write(payload []byte) error
}
