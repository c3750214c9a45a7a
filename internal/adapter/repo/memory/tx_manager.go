package memory

import "context"

// TxManager satisfies the port without transactional semantics. Every store
// operation already holds the store lock, which is enough for tests.
type TxManager struct{}

func NewTxManager(*Store) TxManager {
	return TxManager{}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
