package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
)

// EmployeeRepository は Store を利用した社員永続化の実装です。
type EmployeeRepository struct {
	store *Store
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(store *Store) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

// Create は社員を登録します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	release, st, err := r.store.access(ctx, true)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, exists := r.store.employees[e.ID]; exists {
		return nil, fmt.Errorf("memory: employee %q already exists", e.ID)
	}
	if r.emailTaken(e.Email, e.ID) {
		return nil, employee.ErrEmailAlreadyExists
	}

	n := len(r.store.employeeOrder)
	r.store.employees[e.ID] = e.Clone()
	r.store.employeeOrder = append(r.store.employeeOrder, e.ID)
	st.onRollback(func() {
		delete(r.store.employees, e.ID)
		r.store.employeeOrder = r.store.employeeOrder[:n]
	})
	return e.Clone(), nil
}

// Update は社員を置き換えます。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	release, st, err := r.store.access(ctx, true)
	if err != nil {
		return nil, err
	}
	defer release()

	prev, ok := r.store.employees[e.ID]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	if r.emailTaken(e.Email, e.ID) {
		return nil, employee.ErrEmailAlreadyExists
	}

	r.store.employees[e.ID] = e.Clone()
	st.onRollback(func() {
		r.store.employees[e.ID] = prev
	})
	return e.Clone(), nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	release, _, err := r.store.access(ctx, false)
	if err != nil {
		return nil, err
	}
	defer release()

	emp, ok := r.store.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return emp.Clone(), nil
}

// FindByIDForUpdate は書き込みアクセスとして社員を取得します。
// 読み取り専用トランザクション内では ErrReadOnlyTransaction を返します。
func (r *EmployeeRepository) FindByIDForUpdate(ctx context.Context, id string) (*employee.Employee, error) {
	release, _, err := r.store.access(ctx, true)
	if err != nil {
		return nil, err
	}
	defer release()

	emp, ok := r.store.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return emp.Clone(), nil
}

// FindByEmail はメールアドレスで社員を取得します。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	release, _, err := r.store.access(ctx, false)
	if err != nil {
		return nil, err
	}
	defer release()

	for _, id := range r.store.employeeOrder {
		if emp := r.store.employees[id]; strings.EqualFold(emp.Email, email) {
			return emp.Clone(), nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

// List は登録順に社員を返します。
func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListEmployeesFilter) ([]*employee.Employee, string, error) {
	release, _, err := r.store.access(ctx, false)
	if err != nil {
		return nil, "", err
	}
	defer release()

	var matched []*employee.Employee
	for _, id := range r.store.employeeOrder {
		emp := r.store.employees[id]
		if filter.Department != "" && !strings.EqualFold(emp.Department, filter.Department) {
			continue
		}
		if filter.Status != nil && emp.Status != *filter.Status {
			continue
		}
		matched = append(matched, emp)
	}

	start, end, next := paginate(len(matched), filter.Offset, filter.Limit)
	page := make([]*employee.Employee, 0, end-start)
	for _, emp := range matched[start:end] {
		page = append(page, emp.Clone())
	}
	return page, next, nil
}

func (r *EmployeeRepository) emailTaken(email, exceptID string) bool {
	for id, emp := range r.store.employees {
		if id != exceptID && strings.EqualFold(emp.Email, email) {
			return true
		}
	}
	return false
}
