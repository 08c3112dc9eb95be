package employee

import "context"

// Repository は社員 (タスク・書類を含む集約) の永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	// FindByIDForUpdate は書き込みトランザクション内で社員を取得し、コミットまで他の書き込みを待たせます。
	FindByIDForUpdate(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context, filter ListEmployeesFilter) ([]*Employee, string, error)
}

// ListEmployeesFilter は一覧取得用フィルタです。
type ListEmployeesFilter struct {
	Department string
	Status     *Status
	Limit      int
	Offset     int
}

// DocumentStore は書類本体の保管先です。Put は所在 (locator) を返します。
// Get は本体が失われている場合 ErrDocumentUnavailable をラップしたエラーを返します。
type DocumentStore interface {
	Put(ctx context.Context, contentType string, data []byte) (string, error)
	Get(ctx context.Context, locator string) ([]byte, error)
	Delete(ctx context.Context, locator string) error
}
