package session

import (
	"time"

	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
)

// Account は静的な資格情報テーブルの 1 行です。Password は平文で受け取り、テーブル構築時にハッシュ化されます。
type Account struct {
	ID       string
	Name     string
	Email    string
	Role     access.Role
	Avatar   string
	Password string
}

// Session はログインで発行されたセッションです。
type Session struct {
	Token     string
	Identity  access.Identity
	ExpiresAt time.Time
}
