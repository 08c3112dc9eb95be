package workflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// IDGenerator は新しい識別子を払い出します。払い出した値は再利用されません。
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
)

// UseCase はテンプレートユースケースの公開インターフェースです。
type UseCase interface {
	CreateTemplate(ctx context.Context, in CreateTemplateInput) (*Template, error)
	UpdateTemplate(ctx context.Context, in UpdateTemplateInput) (*Template, error)
	GetTemplate(ctx context.Context, in GetTemplateInput) (*Template, error)
	ListTemplates(ctx context.Context, in ListTemplatesInput) (*ListTemplatesResult, error)
}

// Service はテンプレートに関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
	ids   IDGenerator
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager, ids IDGenerator) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if ids == nil {
		ids = uuidGenerator{}
	}
	return &Service{repo: repo, clock: clock, tx: tx, ids: ids}
}

// CreateTemplateInput はテンプレート作成時の入力です。Active が nil の場合は有効として作成します。
type CreateTemplateInput struct {
	Name        string
	Description string
	Department  string
	Active      *bool
	Tasks       []TaskBlueprint
}

// UpdateTemplateInput はテンプレート更新時の入力です。nil のフィールドは変更しません。
type UpdateTemplateInput struct {
	ID          string
	Name        *string
	Description *string
	Department  *string
	Active      *bool
	Tasks       []TaskBlueprint
	TasksSet    bool
}

// GetTemplateInput はテンプレート取得時の入力です。
type GetTemplateInput struct {
	ID string
}

// ListTemplatesInput は一覧取得時の入力です。
type ListTemplatesInput struct {
	Department string
	ActiveOnly bool
	PageSize   int
	PageToken  string
}

// ListTemplatesResult は一覧取得結果を表します。
type ListTemplatesResult struct {
	Templates     []*Template
	NextPageToken string
}

// CreateTemplate は新しいテンプレートを作成します。
func (s *Service) CreateTemplate(ctx context.Context, in CreateTemplateInput) (*Template, error) {
	name, err := normalizeRequired(in.Name, ErrInvalidName)
	if err != nil {
		return nil, err
	}

	department, err := normalizeRequired(in.Department, ErrInvalidDepartment)
	if err != nil {
		return nil, err
	}

	tasks, err := normalizeBlueprints(in.Tasks)
	if err != nil {
		return nil, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	var created *Template
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		tmpl := &Template{
			ID:          s.ids.NewID(),
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			Department:  department,
			Active:      active,
			Tasks:       tasks,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		result, err := s.repo.Create(txCtx, tmpl)
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateTemplate はテンプレートに差分をマージします。
func (s *Service) UpdateTemplate(ctx context.Context, in UpdateTemplateInput) (*Template, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Template
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, strings.TrimSpace(in.ID))
		if err != nil {
			return err
		}

		if in.Name != nil {
			name, err := normalizeRequired(*in.Name, ErrInvalidName)
			if err != nil {
				return err
			}
			existing.Name = name
		}

		if in.Description != nil {
			existing.Description = strings.TrimSpace(*in.Description)
		}

		if in.Department != nil {
			department, err := normalizeRequired(*in.Department, ErrInvalidDepartment)
			if err != nil {
				return err
			}
			existing.Department = department
		}

		if in.Active != nil {
			existing.Active = *in.Active
		}

		if in.TasksSet {
			tasks, err := normalizeBlueprints(in.Tasks)
			if err != nil {
				return err
			}
			existing.Tasks = tasks
		}

		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// GetTemplate はテンプレートを取得します。
func (s *Service) GetTemplate(ctx context.Context, in GetTemplateInput) (*Template, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Template
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, strings.TrimSpace(in.ID))
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListTemplates はテンプレートの一覧を作成順で取得します。
func (s *Service) ListTemplates(ctx context.Context, in ListTemplatesInput) (*ListTemplatesResult, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	var (
		templates []*Template
		nextToken string
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, token, err := s.repo.List(txCtx, ListTemplatesFilter{
			Department: strings.TrimSpace(in.Department),
			ActiveOnly: in.ActiveOnly,
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			return err
		}
		templates = found
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListTemplatesResult{Templates: templates, NextPageToken: nextToken}, nil
}

// NormalizeBlueprints はタスクのひな形を検証し、既定値を補った複製を返します。
func NormalizeBlueprints(tasks []TaskBlueprint) ([]TaskBlueprint, error) {
	return normalizeBlueprints(tasks)
}

func normalizeBlueprints(tasks []TaskBlueprint) ([]TaskBlueprint, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	out := make([]TaskBlueprint, 0, len(tasks))
	for i, task := range tasks {
		title, err := normalizeRequired(task.Title, ErrInvalidTaskTitle)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d]: %w", i, err)
		}

		description, err := normalizeRequired(task.Description, ErrInvalidDescription)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d]: %w", i, err)
		}

		if !task.Category.Valid() {
			return nil, fmt.Errorf("tasks[%d]: %w", i, ErrInvalidCategory)
		}

		priority := task.Priority
		if priority == "" {
			priority = PriorityMedium
		}
		if !priority.Valid() {
			return nil, fmt.Errorf("tasks[%d]: %w", i, ErrInvalidPriority)
		}

		if !task.DueOffset.Valid() {
			return nil, fmt.Errorf("tasks[%d]: %w", i, ErrInvalidDayOffset)
		}

		out = append(out, TaskBlueprint{
			Title:       title,
			Description: description,
			Category:    task.Category,
			Priority:    priority,
			DueOffset:   task.DueOffset,
		})
	}
	return out, nil
}

func normalizeRequired(raw string, invalid error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", invalid
	}
	return trimmed, nil
}

func normalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return defaultListPageSize, nil
	}
	if pageSize > maxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

func parsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}
