package memory

import (
	"context"
	"errors"
)

// TransactionManager は Store に対するトランザクション制御を提供します。
// 失敗時は記録した取り消し操作を逆順に適用し、途中の変更を残しません。
type TransactionManager struct {
	store *Store
}

// NewTransactionManager は TransactionManager を生成します。
func NewTransactionManager(store *Store) *TransactionManager {
	return &TransactionManager{store: store}
}

// WithinReadOnly は読み取りロックを保持したまま fn を実行します。
func (m *TransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return m.within(ctx, true, fn)
}

// WithinReadWrite は書き込みロックを保持したまま fn を実行します。
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return m.within(ctx, false, fn)
}

func (m *TransactionManager) within(ctx context.Context, readOnly bool, fn func(context.Context) error) (err error) {
	if fn == nil {
		return errors.New("memory: transaction function is required")
	}

	if st := m.store.stateFrom(ctx); st != nil {
		if !readOnly && st.readOnly {
			return ErrReadOnlyTransaction
		}
		return fn(ctx)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if readOnly {
		m.store.mu.RLock()
		defer m.store.mu.RUnlock()
	} else {
		m.store.mu.Lock()
		defer m.store.mu.Unlock()
	}

	st := &txState{store: m.store, readOnly: readOnly}
	committed := false
	defer func() {
		if !committed {
			st.rollback()
		}
	}()

	if err := fn(context.WithValue(ctx, txContextKey{}, st)); err != nil {
		return err
	}

	committed = true
	return nil
}
