package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
	"golang.org/x/crypto/bcrypt"
)

// Verifier は資格情報の照合を行う境界です。
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*access.Identity, error)
}

type credential struct {
	identity access.Identity
	hash     []byte
}

// StaticCredentials はメモリ上に固定された資格情報テーブルです。
type StaticCredentials struct {
	byEmail map[string]credential
	dummy   []byte
}

// NewStaticCredentials はアカウント一覧から資格情報テーブルを構築します。
// cost が 0 以下の場合は bcrypt.DefaultCost を使用します。
func NewStaticCredentials(accounts []Account, cost int) (*StaticCredentials, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("onboarding:unknown-account"), cost)
	if err != nil {
		return nil, fmt.Errorf("session: hash placeholder: %w", err)
	}

	table := &StaticCredentials{byEmail: make(map[string]credential, len(accounts)), dummy: dummy}
	for _, acc := range accounts {
		email := normalizeEmail(acc.Email)
		if strings.TrimSpace(acc.ID) == "" || email == "" || acc.Password == "" {
			return nil, fmt.Errorf("account %q: %w", acc.Email, ErrInvalidAccount)
		}
		if !acc.Role.Valid() {
			return nil, fmt.Errorf("account %q: %w", acc.Email, access.ErrInvalidRole)
		}
		if _, exists := table.byEmail[email]; exists {
			return nil, fmt.Errorf("account %q: %w", acc.Email, ErrDuplicateAccount)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("session: hash password for %q: %w", acc.Email, err)
		}

		table.byEmail[email] = credential{
			identity: access.Identity{
				ID:     strings.TrimSpace(acc.ID),
				Name:   strings.TrimSpace(acc.Name),
				Email:  email,
				Role:   acc.Role,
				Avatar: acc.Avatar,
			},
			hash: hash,
		}
	}

	return table, nil
}

// Verify はメールアドレスとパスワードの組が登録済みかを照合します。
func (c *StaticCredentials) Verify(_ context.Context, email, password string) (*access.Identity, error) {
	cred, ok := c.byEmail[normalizeEmail(email)]
	if !ok {
		// 未登録でも比較コストを揃える
		_ = bcrypt.CompareHashAndPassword(c.dummy, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	identity := cred.identity
	return &identity, nil
}

// Len は登録アカウント数を返します。
func (c *StaticCredentials) Len() int {
	return len(c.byEmail)
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
