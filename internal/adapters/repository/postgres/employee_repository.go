package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
	pgdb "github.com/ogurasousui/onboarding-workflow/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"

	employeeEmailConstraint = "employees_email_key"
)

const employeeColumns = `id, name, email, department, position, avatar, start_date, status, progress, created_at, updated_at`

// EmployeeRepository は PostgreSQL を利用した社員集約の永続化実装です。
// タスクと書類は保存のたびに洗い替えます。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は社員とそのタスク・書類を登録します。呼び出し側のトランザクション内で実行してください。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `
        INSERT INTO employees (`+employeeColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `,
		e.ID,
		e.Name,
		e.Email,
		e.Department,
		e.Position,
		e.Avatar,
		dateOnly(e.StartDate),
		string(e.Status),
		e.Progress,
		e.CreatedAt,
		e.UpdatedAt,
	); err != nil {
		return nil, translateEmployeePgError(err)
	}

	if err := insertTasks(ctx, exec, e); err != nil {
		return nil, err
	}
	return e.Clone(), nil
}

// Update は社員を更新し、タスク一覧を置き換えます。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE employees
           SET name = $1,
               email = $2,
               department = $3,
               position = $4,
               avatar = $5,
               start_date = $6,
               status = $7,
               progress = $8,
               updated_at = $9
         WHERE id = $10
    `,
		e.Name,
		e.Email,
		e.Department,
		e.Position,
		e.Avatar,
		dateOnly(e.StartDate),
		string(e.Status),
		e.Progress,
		e.UpdatedAt,
		e.ID,
	)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, employee.ErrEmployeeNotFound
	}

	if _, err := exec.Exec(ctx, `DELETE FROM employee_tasks WHERE employee_id = $1`, e.ID); err != nil {
		return nil, translateEmployeePgError(err)
	}
	if err := insertTasks(ctx, exec, e); err != nil {
		return nil, err
	}
	return e.Clone(), nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return r.findByID(ctx, id, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE id = $1
         LIMIT 1
    `)
}

// FindByIDForUpdate は社員行に行ロックを取得して社員を取得します。
// 同じ社員への並行した読み取り・更新・洗い替えはコミットまで直列化されます。
func (r *EmployeeRepository) FindByIDForUpdate(ctx context.Context, id string) (*employee.Employee, error) {
	return r.findByID(ctx, id, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE id = $1
         FOR UPDATE
    `)
}

func (r *EmployeeRepository) findByID(ctx context.Context, id, query string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, query, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	if err := loadTasks(ctx, exec, []*employee.Employee{found}); err != nil {
		return nil, err
	}
	return found, nil
}

// FindByEmail はメールアドレス (大文字小文字を区別しない) で社員を取得します。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE lower(email) = lower($1)
         LIMIT 1
    `, email)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	if err := loadTasks(ctx, exec, []*employee.Employee{found}); err != nil {
		return nil, err
	}
	return found, nil
}

// List は登録順に社員を取得します。
func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListEmployeesFilter) ([]*employee.Employee, string, error) {
	if filter.Limit <= 0 {
		return nil, "", employee.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", employee.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1

	args := make([]any, 0, 4)
	conditions := make([]string, 0, 2)

	if dept := strings.TrimSpace(filter.Department); dept != "" {
		args = append(args, dept)
		conditions = append(conditions, "lower(department) = lower($"+strconv.Itoa(len(args))+")")
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limitWithBuffer)
	limitPlaceholder := "$" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetPlaceholder := "$" + strconv.Itoa(len(args))

	query := `
        SELECT ` + employeeColumns + `
          FROM employees` + whereClause + `
         ORDER BY seq
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateEmployeePgError(err)
	}

	employees := make([]*employee.Employee, 0, filter.Limit)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			rows.Close()
			return nil, "", translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, "", translateEmployeePgError(err)
	}

	var nextToken string
	if len(employees) == limitWithBuffer {
		employees = employees[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}

	if err := loadTasks(ctx, exec, employees); err != nil {
		return nil, "", err
	}
	return employees, nextToken, nil
}

func insertTasks(ctx context.Context, exec pgdb.Queryer, e *employee.Employee) error {
	for i, task := range e.Tasks {
		if _, err := exec.Exec(ctx, `
            INSERT INTO employee_tasks (id, employee_id, position, title, description, category, priority, due_date, completed, completed_at, assigned_to)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        `,
			task.ID,
			e.ID,
			i,
			task.Title,
			task.Description,
			string(task.Category),
			string(task.Priority),
			dateOnly(task.DueDate),
			task.Completed,
			nullableTimestamp(task.CompletedAt),
			task.AssignedTo,
		); err != nil {
			return fmt.Errorf("insert task %s: %w", task.ID, translateEmployeePgError(err))
		}

		for j, doc := range task.Documents {
			if _, err := exec.Exec(ctx, `
                INSERT INTO task_documents (id, task_id, position, name, content_type, size, uploaded_at, locator)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            `,
				doc.ID,
				task.ID,
				j,
				doc.Name,
				doc.ContentType,
				doc.Size,
				doc.UploadedAt,
				doc.Locator,
			); err != nil {
				return fmt.Errorf("insert document %s: %w", doc.ID, translateEmployeePgError(err))
			}
		}
	}
	return nil
}

// loadTasks は社員ごとのタスクと書類を読み込み、位置順に詰め直します。
func loadTasks(ctx context.Context, exec pgdb.Queryer, employees []*employee.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	ids := make([]string, 0, len(employees))
	byID := make(map[string]*employee.Employee, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
		byID[e.ID] = e
	}

	rows, err := exec.Query(ctx, `
        SELECT id, employee_id, title, description, category, priority, due_date, completed, completed_at, assigned_to
          FROM employee_tasks
         WHERE employee_id = ANY($1)
         ORDER BY employee_id, position
    `, ids)
	if err != nil {
		return translateEmployeePgError(err)
	}

	type taskRef struct {
		owner *employee.Employee
		index int
	}
	tasks := make(map[string]taskRef)
	for rows.Next() {
		var (
			task        employee.Task
			employeeID  string
			category    string
			priority    string
			completedAt sql.NullTime
		)
		if err := rows.Scan(
			&task.ID,
			&employeeID,
			&task.Title,
			&task.Description,
			&category,
			&priority,
			&task.DueDate,
			&task.Completed,
			&completedAt,
			&task.AssignedTo,
		); err != nil {
			rows.Close()
			return translateEmployeePgError(err)
		}
		owner, ok := byID[employeeID]
		if !ok {
			continue
		}
		task.Category = workflow.Category(category)
		task.Priority = workflow.Priority(priority)
		task.DueDate = dateOnly(task.DueDate)
		if completedAt.Valid {
			t := completedAt.Time.UTC()
			task.CompletedAt = &t
		}
		task.Documents = []employee.Document{}
		owner.Tasks = append(owner.Tasks, task)
		tasks[task.ID] = taskRef{owner: owner, index: len(owner.Tasks) - 1}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return translateEmployeePgError(err)
	}

	if len(tasks) == 0 {
		return nil
	}

	docRows, err := exec.Query(ctx, `
        SELECT d.id, d.task_id, d.name, d.content_type, d.size, d.uploaded_at, d.locator
          FROM task_documents d
          JOIN employee_tasks t ON t.id = d.task_id
         WHERE t.employee_id = ANY($1)
         ORDER BY d.task_id, d.position
    `, ids)
	if err != nil {
		return translateEmployeePgError(err)
	}
	defer docRows.Close()

	for docRows.Next() {
		var (
			doc    employee.Document
			taskID string
		)
		if err := docRows.Scan(&doc.ID, &taskID, &doc.Name, &doc.ContentType, &doc.Size, &doc.UploadedAt, &doc.Locator); err != nil {
			return translateEmployeePgError(err)
		}
		ref, ok := tasks[taskID]
		if !ok {
			continue
		}
		doc.UploadedAt = doc.UploadedAt.UTC()
		task := &ref.owner.Tasks[ref.index]
		task.Documents = append(task.Documents, doc)
	}
	return translateEmployeePgError(docRows.Err())
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		emp    employee.Employee
		status string
	)

	if err := row.Scan(
		&emp.ID,
		&emp.Name,
		&emp.Email,
		&emp.Department,
		&emp.Position,
		&emp.Avatar,
		&emp.StartDate,
		&status,
		&emp.Progress,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	emp.Status = employee.Status(status)
	emp.StartDate = dateOnly(emp.StartDate)
	emp.Tasks = []employee.Task{}
	return &emp, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if pgErr.ConstraintName == employeeEmailConstraint {
				return employee.ErrEmailAlreadyExists
			}
			return fmt.Errorf("postgres: duplicate key %s: %w", pgErr.ConstraintName, err)
		case foreignKeyViolationCode:
			return employee.ErrEmployeeNotFound
		case checkViolationCode:
			return fmt.Errorf("postgres: check constraint %s: %w", pgErr.ConstraintName, err)
		}
	}

	return err
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nullableTimestamp(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC()
}
