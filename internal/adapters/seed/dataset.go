package seed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/session"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
)

// Dataset は seed.yaml およびスナップショットファイルの内容です。
type Dataset struct {
	Accounts  []Account  `yaml:"accounts,omitempty"`
	Templates []Template `yaml:"templates"`
	Employees []Employee `yaml:"employees"`
}

// Account はデモ用ログインアカウントです。
type Account struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
	Avatar   string `yaml:"avatar,omitempty"`
	Password string `yaml:"password"`
}

// Template はワークフローテンプレートの YAML 表現です。
type Template struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Department  string      `yaml:"department"`
	Active      *bool       `yaml:"active,omitempty"`
	CreatedAt   time.Time   `yaml:"created_at"`
	UpdatedAt   time.Time   `yaml:"updated_at,omitempty"`
	Tasks       []Blueprint `yaml:"tasks"`
}

// Blueprint はテンプレート内タスクの YAML 表現です。due_offset は日数を表す 10 進数のテキストです。
type Blueprint struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Priority    string `yaml:"priority,omitempty"`
	DueOffset   string `yaml:"due_offset"`
}

// Employee は社員の YAML 表現です。progress と status は保存せず、読み込み時に再計算します。
type Employee struct {
	ID         string    `yaml:"id"`
	Name       string    `yaml:"name"`
	Email      string    `yaml:"email"`
	Department string    `yaml:"department"`
	Position   string    `yaml:"position,omitempty"`
	Avatar     string    `yaml:"avatar,omitempty"`
	StartDate  time.Time `yaml:"start_date"`
	CreatedAt  time.Time `yaml:"created_at,omitempty"`
	UpdatedAt  time.Time `yaml:"updated_at,omitempty"`
	Tasks      []Task    `yaml:"tasks"`
}

// Task は社員タスクの YAML 表現です。
type Task struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	Category    string     `yaml:"category"`
	Priority    string     `yaml:"priority"`
	DueDate     time.Time  `yaml:"due_date"`
	Completed   bool       `yaml:"completed"`
	CompletedAt *time.Time `yaml:"completed_at,omitempty"`
	AssignedTo  string     `yaml:"assigned_to,omitempty"`
	Documents   []Document `yaml:"documents,omitempty"`
}

// Document は添付書類の YAML 表現です。
type Document struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	ContentType string    `yaml:"content_type,omitempty"`
	Size        int64     `yaml:"size"`
	UploadedAt  time.Time `yaml:"uploaded_at"`
	Locator     string    `yaml:"locator,omitempty"`
}

// Load は YAML ファイルからデータセットを読み込みます。
func Load(path string) (*Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("seed: path is required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("seed: decode %s: %w", path, err)
	}
	return &ds, nil
}

// Save はデータセットを YAML ファイルへ書き出します。書き込みは一時ファイルを経由して置き換えます。
func Save(path string, ds *Dataset) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("seed: path is required")
	}

	raw, err := yaml.Marshal(ds)
	if err != nil {
		return fmt.Errorf("seed: encode: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("seed: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.yaml")
	if err != nil {
		return fmt.Errorf("seed: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("seed: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("seed: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("seed: replace %s: %w", path, err)
	}
	return nil
}

// SessionAccounts はアカウント定義をセッションモジュールの形式に変換します。
func (d *Dataset) SessionAccounts() ([]session.Account, error) {
	accounts := make([]session.Account, 0, len(d.Accounts))
	for i, a := range d.Accounts {
		role, err := access.ParseRole(a.Role)
		if err != nil {
			return nil, fmt.Errorf("seed: accounts[%d]: %w", i, err)
		}
		accounts = append(accounts, session.Account{
			ID:       a.ID,
			Name:     a.Name,
			Email:    a.Email,
			Role:     role,
			Avatar:   a.Avatar,
			Password: a.Password,
		})
	}
	return accounts, nil
}

// DomainTemplates はテンプレート定義を検証してドメインの形式に変換します。
func (d *Dataset) DomainTemplates() ([]*workflow.Template, error) {
	out := make([]*workflow.Template, 0, len(d.Templates))
	for i, t := range d.Templates {
		if strings.TrimSpace(t.ID) == "" {
			return nil, fmt.Errorf("seed: templates[%d]: %w", i, workflow.ErrInvalidID)
		}

		blueprints := make([]workflow.TaskBlueprint, 0, len(t.Tasks))
		for j, b := range t.Tasks {
			offset, err := workflow.ParseDayOffset(b.DueOffset)
			if err != nil {
				return nil, fmt.Errorf("seed: templates[%d].tasks[%d]: %w", i, j, err)
			}
			blueprints = append(blueprints, workflow.TaskBlueprint{
				Title:       b.Title,
				Description: b.Description,
				Category:    workflow.Category(b.Category),
				Priority:    workflow.Priority(b.Priority),
				DueOffset:   offset,
			})
		}
		normalized, err := workflow.NormalizeBlueprints(blueprints)
		if err != nil {
			return nil, fmt.Errorf("seed: templates[%d]: %w", i, err)
		}

		active := true
		if t.Active != nil {
			active = *t.Active
		}
		updatedAt := t.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = t.CreatedAt
		}
		out = append(out, &workflow.Template{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Department:  t.Department,
			Active:      active,
			Tasks:       normalized,
			CreatedAt:   t.CreatedAt.UTC(),
			UpdatedAt:   updatedAt.UTC(),
		})
	}
	return out, nil
}

// DomainEmployees は社員定義をドメインの形式に変換します。進捗率と状況はタスクから再計算されます。
func (d *Dataset) DomainEmployees(now time.Time) ([]*employee.Employee, error) {
	out := make([]*employee.Employee, 0, len(d.Employees))
	for i, e := range d.Employees {
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("seed: employees[%d]: %w", i, employee.ErrInvalidID)
		}
		if e.StartDate.IsZero() {
			return nil, fmt.Errorf("seed: employees[%d]: %w", i, employee.ErrInvalidStartDate)
		}

		tasks := make([]employee.Task, 0, len(e.Tasks))
		for j, t := range e.Tasks {
			task, err := domainTask(e.ID, t)
			if err != nil {
				return nil, fmt.Errorf("seed: employees[%d].tasks[%d]: %w", i, j, err)
			}
			tasks = append(tasks, task)
		}

		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		updatedAt := e.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = createdAt
		}

		emp := &employee.Employee{
			ID:         e.ID,
			Name:       e.Name,
			Email:      strings.ToLower(strings.TrimSpace(e.Email)),
			Department: e.Department,
			Position:   e.Position,
			Avatar:     e.Avatar,
			StartDate:  e.StartDate.UTC(),
			Tasks:      tasks,
			CreatedAt:  createdAt.UTC(),
			UpdatedAt:  updatedAt.UTC(),
		}
		emp.Recalculate()
		out = append(out, emp)
	}
	return out, nil
}

func domainTask(employeeID string, t Task) (employee.Task, error) {
	if strings.TrimSpace(t.ID) == "" {
		return employee.Task{}, employee.ErrInvalidTaskID
	}
	category := workflow.Category(t.Category)
	if !category.Valid() {
		return employee.Task{}, workflow.ErrInvalidCategory
	}
	priority := workflow.Priority(t.Priority)
	if priority == "" {
		priority = workflow.PriorityMedium
	}
	if !priority.Valid() {
		return employee.Task{}, workflow.ErrInvalidPriority
	}

	assignee := t.AssignedTo
	if assignee == "" {
		assignee = employeeID
	}

	task := employee.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    category,
		Priority:    priority,
		DueDate:     t.DueDate.UTC(),
		Completed:   t.Completed,
		AssignedTo:  assignee,
		Documents:   make([]employee.Document, 0, len(t.Documents)),
	}
	if t.Completed {
		completedAt := t.DueDate.UTC()
		if t.CompletedAt != nil {
			completedAt = t.CompletedAt.UTC()
		}
		task.CompletedAt = &completedAt
	}
	for _, doc := range t.Documents {
		task.Documents = append(task.Documents, employee.Document{
			ID:          doc.ID,
			Name:        doc.Name,
			ContentType: doc.ContentType,
			Size:        doc.Size,
			UploadedAt:  doc.UploadedAt.UTC(),
			Locator:     doc.Locator,
		})
	}
	return task, nil
}

func fromTemplate(t *workflow.Template) Template {
	active := t.Active
	out := Template{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Department:  t.Department,
		Active:      &active,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Tasks:       make([]Blueprint, 0, len(t.Tasks)),
	}
	for _, b := range t.Tasks {
		out.Tasks = append(out.Tasks, Blueprint{
			Title:       b.Title,
			Description: b.Description,
			Category:    string(b.Category),
			Priority:    string(b.Priority),
			DueOffset:   strconv.Itoa(int(b.DueOffset)),
		})
	}
	return out
}

func fromEmployee(e *employee.Employee) Employee {
	out := Employee{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Avatar:     e.Avatar,
		StartDate:  e.StartDate,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		Tasks:      make([]Task, 0, len(e.Tasks)),
	}
	for _, t := range e.Tasks {
		task := Task{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Category:    string(t.Category),
			Priority:    string(t.Priority),
			DueDate:     t.DueDate,
			Completed:   t.Completed,
			CompletedAt: t.CompletedAt,
			AssignedTo:  t.AssignedTo,
		}
		for _, d := range t.Documents {
			task.Documents = append(task.Documents, Document{
				ID:          d.ID,
				Name:        d.Name,
				ContentType: d.ContentType,
				Size:        d.Size,
				UploadedAt:  d.UploadedAt,
				Locator:     d.Locator,
			})
		}
		out.Tasks = append(out.Tasks, task)
	}
	return out
}
