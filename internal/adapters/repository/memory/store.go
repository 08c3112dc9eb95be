package memory

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
)

// ErrReadOnlyTransaction は読み取り専用トランザクション内で書き込もうとした場合のエラーです。
var ErrReadOnlyTransaction = errors.New("memory: write inside read-only transaction")

// Store はプロセス内に保持するオンボーディングデータです。
// 書き込みトランザクションの間はストア全体のロックを保持します。
type Store struct {
	mu            sync.RWMutex
	employees     map[string]*employee.Employee
	employeeOrder []string
	templates     map[string]*workflow.Template
	templateOrder []string
}

// NewStore は空の Store を生成します。
func NewStore() *Store {
	return &Store{
		employees: make(map[string]*employee.Employee),
		templates: make(map[string]*workflow.Template),
	}
}

type txContextKey struct{}

type txState struct {
	store    *Store
	readOnly bool
	undo     []func()
}

func (st *txState) onRollback(fn func()) {
	if st != nil {
		st.undo = append(st.undo, fn)
	}
}

func (st *txState) rollback() {
	for i := len(st.undo) - 1; i >= 0; i-- {
		st.undo[i]()
	}
	st.undo = nil
}

func (s *Store) stateFrom(ctx context.Context) *txState {
	if ctx == nil {
		return nil
	}
	st, ok := ctx.Value(txContextKey{}).(*txState)
	if !ok || st.store != s {
		return nil
	}
	return st
}

// access はトランザクション外の呼び出しであればロックを取得し、解放関数を返します。
func (s *Store) access(ctx context.Context, write bool) (func(), *txState, error) {
	if st := s.stateFrom(ctx); st != nil {
		if write && st.readOnly {
			return nil, nil, ErrReadOnlyTransaction
		}
		return func() {}, st, nil
	}
	if write {
		s.mu.Lock()
		return s.mu.Unlock, nil, nil
	}
	s.mu.RLock()
	return s.mu.RUnlock, nil, nil
}

func paginate(total, offset, limit int) (start, end int, next string) {
	if offset > total {
		return total, total, ""
	}
	end = total
	if limit > 0 && offset+limit < total {
		end = offset + limit
		next = strconv.Itoa(end)
	}
	return offset, end, next
}
