package mocks

import (
	"context"
)

// TxManager runs fn directly on the caller's context and counts the calls.
type TxManager struct {
	Calls int
}

func (m *TxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}
