package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
)

const locatorPrefix = "mem://documents/"

// ErrBlobNotFound は所在に対応する書類本体が無い場合のエラーです。employee.ErrDocumentUnavailable として判定できます。
var ErrBlobNotFound = fmt.Errorf("blob: not found: %w", employee.ErrDocumentUnavailable)

type blob struct {
	contentType string
	data        []byte
}

// Store はプロセス内に書類本体を保持します。
type Store struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

// NewStore は Store を生成します。
func NewStore() *Store {
	return &Store{blobs: make(map[string]blob)}
}

// Put は書類本体を保存し、所在を返します。
func (s *Store) Put(ctx context.Context, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	locator := locatorPrefix + uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[locator] = blob{contentType: contentType, data: append([]byte(nil), data...)}
	return locator, nil
}

// Get は所在に対応する書類本体を返します。
func (s *Store) Get(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[locator]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, locator)
	}
	return append([]byte(nil), b.data...), nil
}

// Delete は書類本体を削除します。存在しない所在は無視します。
func (s *Store) Delete(ctx context.Context, locator string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, locator)
	return nil
}

// ContentType は保存時の Content-Type を返します。
func (s *Store) ContentType(locator string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[locator]
	return b.contentType, ok
}
