package access

import (
	"errors"
	"strings"
)

// ErrInvalidRole は未知のロール文字列を受け取ったことを表します。
var ErrInvalidRole = errors.New("access: invalid role")

// Role は利用者の権限区分です。管理者と社員の 2 種類のみが存在します。
type Role int

const (
	// RoleAdmin はテンプレート管理と社員管理を行う管理者です。
	RoleAdmin Role = iota + 1
	// RoleEmployee は自分のタスクだけを操作する社員です。
	RoleEmployee
)

// String はロールの外部表現を返します。
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleEmployee:
		return "employee"
	default:
		return ""
	}
}

// Valid はロールが既知の値かどうかを返します。
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

// ParseRole は外部表現からロールを復元します。
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin, nil
	case "employee":
		return RoleEmployee, nil
	default:
		return 0, ErrInvalidRole
	}
}

// Identity は認証済み利用者を表します。
type Identity struct {
	ID     string
	Name   string
	Email  string
	Role   Role
	Avatar string
}
