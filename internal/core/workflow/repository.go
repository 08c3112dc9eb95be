package workflow

import "context"

// Repository はテンプレート永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, template *Template) (*Template, error)
	Update(ctx context.Context, template *Template) (*Template, error)
	FindByID(ctx context.Context, id string) (*Template, error)
	List(ctx context.Context, filter ListTemplatesFilter) ([]*Template, string, error)
}

// ListTemplatesFilter は一覧取得用フィルタです。
type ListTemplatesFilter struct {
	Department string
	ActiveOnly bool
	Limit      int
	Offset     int
}
