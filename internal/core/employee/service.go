package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// IDGenerator は新しい識別子を払い出します。
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

// TemplateSource は割り当て対象のテンプレートを解決します。
type TemplateSource interface {
	GetTemplate(ctx context.Context, in workflow.GetTemplateInput) (*workflow.Template, error)
}

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
)

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	ListEmployees(ctx context.Context, in ListEmployeesInput) (*ListEmployeesResult, error)
	UpdateTask(ctx context.Context, in UpdateTaskInput) (*Employee, error)
	AssignTemplate(ctx context.Context, in AssignTemplateInput) (*Employee, error)
	AttachDocument(ctx context.Context, in AttachDocumentInput) (*Document, error)
	GetDocument(ctx context.Context, in GetDocumentInput) (*DocumentContent, error)
	GetTaskSummary(ctx context.Context, in GetEmployeeInput) (*TaskSummary, error)
	GetOverview(ctx context.Context) (*Overview, error)
}

// Option は Service の任意設定です。
type Option func(*Service)

// WithIDGenerator は識別子の払い出し方法を差し替えます。
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Service) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithDocumentStore は書類本体の保管先を設定します。
func WithDocumentStore(store DocumentStore) Option {
	return func(s *Service) {
		s.docs = store
	}
}

// WithEventPublisher はドメインイベントの通知先を設定します。
func WithEventPublisher(pub EventPublisher) Option {
	return func(s *Service) {
		if pub != nil {
			s.events = pub
		}
	}
}

// WithLogger はロガーを設定します。
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service は社員・タスク・書類に関するユースケースをまとめます。
type Service struct {
	repo      Repository
	templates TemplateSource
	clock     Clock
	tx        TransactionManager
	ids       IDGenerator
	docs      DocumentStore
	events    EventPublisher
	logger    *slog.Logger
}

// NewService は Service を生成します。
func NewService(repo Repository, templates TemplateSource, clock Clock, tx TransactionManager, opts ...Option) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	s := &Service{
		repo:      repo,
		templates: templates,
		clock:     clock,
		tx:        tx,
		ids:       uuidGenerator{},
		events:    noopPublisher{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateEmployeeInput は社員作成時の入力です。
type CreateEmployeeInput struct {
	Name       string
	Email      string
	Department string
	Position   string
	Avatar     string
	StartDate  time.Time
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	ID string
}

// ListEmployeesInput は一覧取得時の入力です。
type ListEmployeesInput struct {
	Department string
	Status     *Status
	PageSize   int
	PageToken  string
}

// ListEmployeesResult は一覧取得結果を表します。
type ListEmployeesResult struct {
	Employees     []*Employee
	NextPageToken string
}

// TaskPatch はタスクへの差分です。nil のフィールドは変更しません。
type TaskPatch struct {
	Title       *string
	Description *string
	Category    *workflow.Category
	Priority    *workflow.Priority
	DueDate     *time.Time
	Completed   *bool
	CompletedAt *time.Time
	AssignedTo  *string
}

// CompletionOnly は社員本人による更新として許される差分かを検証します。
// 社員が変更できるのは完了フラグだけで、完了日時はサーバー側の時刻で記録されます。
func (p TaskPatch) CompletionOnly() error {
	if p.Title != nil || p.Description != nil || p.Category != nil || p.Priority != nil ||
		p.DueDate != nil || p.CompletedAt != nil || p.AssignedTo != nil {
		return ErrTaskFieldNotAllowed
	}
	return nil
}

// UpdateTaskInput はタスク更新時の入力です。
type UpdateTaskInput struct {
	EmployeeID string
	TaskID     string
	Patch      TaskPatch
}

// AssignTemplateInput はテンプレート割り当て時の入力です。
type AssignTemplateInput struct {
	EmployeeID string
	TemplateID string
}

// AttachDocumentInput は書類添付時の入力です。
// Content が空でなければ書類ストアへ保存し、その所在と実サイズを記録します。
type AttachDocumentInput struct {
	EmployeeID  string
	TaskID      string
	Name        string
	ContentType string
	Size        int64
	Content     []byte
	Locator     string
}

// GetDocumentInput は書類取得時の入力です。
type GetDocumentInput struct {
	EmployeeID string
	TaskID     string
	DocumentID string
}

// DocumentContent は書類のメタデータと本体です。
type DocumentContent struct {
	Document Document
	Content  []byte
}

// CreateEmployee は新しい社員を作成します。進捗 0・タスク無しで開始します。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	name, err := normalizeRequired(in.Name, ErrInvalidName)
	if err != nil {
		return nil, err
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	if in.StartDate.IsZero() {
		return nil, ErrInvalidStartDate
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureEmailNotExists(txCtx, email); err != nil {
			return err
		}

		now := s.clock.Now()
		emp := &Employee{
			ID:         s.ids.NewID(),
			Name:       name,
			Email:      email,
			Department: strings.TrimSpace(in.Department),
			Position:   strings.TrimSpace(in.Position),
			Avatar:     strings.TrimSpace(in.Avatar),
			StartDate:  normalizeDate(in.StartDate),
			Status:     StatusPending,
			Progress:   0,
			Tasks:      []Task{},
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		result, err := s.repo.Create(txCtx, emp)
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Type: EventEmployeeCreated, EmployeeID: created.ID, OccurredAt: created.CreatedAt})
	return created, nil
}

// GetEmployee は社員を取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	id, err := normalizeRequired(in.ID, ErrInvalidID)
	if err != nil {
		return nil, err
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id)
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

// ListEmployees は社員の一覧を登録順で取得します。
func (s *Service) ListEmployees(ctx context.Context, in ListEmployeesInput) (*ListEmployeesResult, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	var statusPtr *Status
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status := *in.Status
		statusPtr = &status
	}

	var (
		employees []*Employee
		nextToken string
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, token, err := s.repo.List(txCtx, ListEmployeesFilter{
			Department: strings.TrimSpace(in.Department),
			Status:     statusPtr,
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			return err
		}
		employees = found
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListEmployeesResult{Employees: employees, NextPageToken: nextToken}, nil
}

// UpdateTask は社員のタスクに差分を適用し、進捗率と状況を再計算します。
// completedAt は completed が真の間だけ保持されます。
func (s *Service) UpdateTask(ctx context.Context, in UpdateTaskInput) (*Employee, error) {
	employeeID, err := normalizeRequired(in.EmployeeID, ErrInvalidID)
	if err != nil {
		return nil, err
	}
	taskID, err := normalizeRequired(in.TaskID, ErrInvalidTaskID)
	if err != nil {
		return nil, err
	}
	if err := validateTaskPatch(in.Patch); err != nil {
		return nil, err
	}

	var (
		updated   *Employee
		completed bool
	)
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByIDForUpdate(txCtx, employeeID)
		if err != nil {
			return err
		}

		idx, ok := existing.TaskIndex(taskID)
		if !ok {
			return ErrTaskNotFound
		}

		now := s.clock.Now()
		before := existing.Tasks[idx]
		after := applyTaskPatch(before.clone(), in.Patch, now)
		existing.Tasks[idx] = after
		existing.Recalculate()
		existing.UpdatedAt = now

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		completed = !before.Completed && after.Completed
		return nil
	}); err != nil {
		return nil, err
	}

	if completed {
		s.publish(ctx, Event{
			Type:       EventTaskCompleted,
			EmployeeID: updated.ID,
			TaskID:     taskID,
			Progress:   updated.Progress,
			OccurredAt: updated.UpdatedAt,
		})
	}
	return updated, nil
}

// AssignTemplate はテンプレートのタスクを社員に展開し、既存のタスク一覧を丸ごと置き換えます。
// 期限日は入社日にテンプレートの日数を加えた日付です。
func (s *Service) AssignTemplate(ctx context.Context, in AssignTemplateInput) (*Employee, error) {
	employeeID, err := normalizeRequired(in.EmployeeID, ErrInvalidID)
	if err != nil {
		return nil, err
	}
	templateID, err := normalizeRequired(in.TemplateID, ErrInvalidTemplateID)
	if err != nil {
		return nil, err
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		tmpl, err := s.templates.GetTemplate(txCtx, workflow.GetTemplateInput{ID: templateID})
		if err != nil {
			return err
		}

		existing, err := s.repo.FindByIDForUpdate(txCtx, employeeID)
		if err != nil {
			return err
		}

		tasks := make([]Task, 0, len(tmpl.Tasks))
		for _, bp := range tmpl.Tasks {
			tasks = append(tasks, Task{
				ID:          s.ids.NewID(),
				Title:       bp.Title,
				Description: bp.Description,
				Category:    bp.Category,
				Priority:    bp.Priority,
				DueDate:     bp.DueOffset.DueDate(existing.StartDate),
				AssignedTo:  existing.ID,
				Documents:   []Document{},
			})
		}

		existing.Tasks = tasks
		existing.Recalculate()
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

	s.publish(ctx, Event{
		Type:       EventTemplateAssigned,
		EmployeeID: updated.ID,
		TemplateID: templateID,
		TaskCount:  len(updated.Tasks),
		Progress:   updated.Progress,
		OccurredAt: updated.UpdatedAt,
	})
	return updated, nil
}

// AttachDocument はタスクに書類を追記します。既存の書類は変更されません。
func (s *Service) AttachDocument(ctx context.Context, in AttachDocumentInput) (*Document, error) {
	employeeID, err := normalizeRequired(in.EmployeeID, ErrInvalidID)
	if err != nil {
		return nil, err
	}
	taskID, err := normalizeRequired(in.TaskID, ErrInvalidTaskID)
	if err != nil {
		return nil, err
	}
	name, err := normalizeRequired(in.Name, ErrInvalidDocument)
	if err != nil {
		return nil, err
	}
	if in.Size < 0 {
		return nil, fmt.Errorf("size: %w", ErrInvalidDocument)
	}
	if len(in.Content) > 0 && s.docs == nil {
		return nil, ErrDocumentStoreMissing
	}

	var (
		attached Document
		stored   string
	)
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByIDForUpdate(txCtx, employeeID)
		if err != nil {
			return err
		}

		idx, ok := existing.TaskIndex(taskID)
		if !ok {
			return ErrTaskNotFound
		}

		doc := Document{
			ID:          s.ids.NewID(),
			Name:        name,
			ContentType: strings.TrimSpace(in.ContentType),
			Size:        in.Size,
			Locator:     strings.TrimSpace(in.Locator),
		}
		if len(in.Content) > 0 {
			locator, err := s.docs.Put(txCtx, doc.ContentType, in.Content)
			if err != nil {
				return fmt.Errorf("employee: store document: %w", err)
			}
			stored = locator
			doc.Locator = locator
			doc.Size = int64(len(in.Content))
		}

		now := s.clock.Now()
		doc.UploadedAt = now
		existing.Tasks[idx].Documents = append(existing.Tasks[idx].Documents, doc)
		existing.UpdatedAt = now

		if _, err := s.repo.Update(txCtx, existing); err != nil {
			return err
		}
		attached = doc
		return nil
	}); err != nil {
		s.discardContent(ctx, stored)
		return nil, err
	}

	s.publish(ctx, Event{
		Type:       EventDocumentAttached,
		EmployeeID: employeeID,
		TaskID:     taskID,
		DocumentID: attached.ID,
		OccurredAt: attached.UploadedAt,
	})
	return &attached, nil
}

// GetDocument は書類のメタデータと本体を取得します。書類ストア未設定の場合は本体を返しません。
func (s *Service) GetDocument(ctx context.Context, in GetDocumentInput) (*DocumentContent, error) {
	employeeID, err := normalizeRequired(in.EmployeeID, ErrInvalidID)
	if err != nil {
		return nil, err
	}
	taskID, err := normalizeRequired(in.TaskID, ErrInvalidTaskID)
	if err != nil {
		return nil, err
	}
	documentID, err := normalizeRequired(in.DocumentID, ErrInvalidDocumentID)
	if err != nil {
		return nil, err
	}

	var doc *Document
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, employeeID)
		if err != nil {
			return err
		}
		idx, ok := existing.TaskIndex(taskID)
		if !ok {
			return ErrTaskNotFound
		}
		for _, d := range existing.Tasks[idx].Documents {
			if d.ID == documentID {
				found := d
				doc = &found
				return nil
			}
		}
		return ErrDocumentNotFound
	}); err != nil {
		return nil, err
	}

	result := &DocumentContent{Document: *doc}
	if doc.Locator != "" && s.docs != nil {
		content, err := s.docs.Get(ctx, doc.Locator)
		if err != nil {
			return nil, fmt.Errorf("employee: load document %s: %w", doc.ID, err)
		}
		result.Content = content
	}
	return result, nil
}

// GetTaskSummary は社員ダッシュボード用のタスク集計を返します。
func (s *Service) GetTaskSummary(ctx context.Context, in GetEmployeeInput) (*TaskSummary, error) {
	emp, err := s.GetEmployee(ctx, in)
	if err != nil {
		return nil, err
	}
	summary := SummarizeTasks(emp, s.clock.Now())
	return &summary, nil
}

// GetOverview は管理者ダッシュボード用の全体集計を返します。
func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	var all []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		offset := 0
		for {
			page, next, err := s.repo.List(txCtx, ListEmployeesFilter{Limit: maxListPageSize, Offset: offset})
			if err != nil {
				return err
			}
			all = append(all, page...)
			if next == "" {
				return nil
			}
			if offset, err = strconv.Atoi(next); err != nil {
				return fmt.Errorf("employee: page token %q: %w", next, err)
			}
		}
	}); err != nil {
		return nil, err
	}

	overview := Summarize(all)
	return &overview, nil
}

func (s *Service) ensureEmailNotExists(ctx context.Context, email string) error {
	emp, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	if emp != nil {
		return ErrEmailAlreadyExists
	}
	return nil
}

// discardContent はコミットされなかった書類本体を書類ストアから取り除きます。
func (s *Service) discardContent(ctx context.Context, locator string) {
	if locator == "" {
		return
	}
	if err := s.docs.Delete(context.WithoutCancel(ctx), locator); err != nil {
		s.logger.WarnContext(ctx, "failed to discard document content",
			"locator", locator,
			"error", err)
	}
}

func (s *Service) publish(ctx context.Context, event Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish domain event",
			"type", string(event.Type),
			"employee_id", event.EmployeeID,
			"error", err)
	}
}

func validateTaskPatch(p TaskPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrInvalidTaskTitle
	}
	if p.Category != nil && !p.Category.Valid() {
		return workflow.ErrInvalidCategory
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return workflow.ErrInvalidPriority
	}
	return nil
}

func applyTaskPatch(task Task, p TaskPatch, now time.Time) Task {
	if p.Title != nil {
		task.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		task.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		task.Category = *p.Category
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
	if p.DueDate != nil {
		task.DueDate = normalizeDate(*p.DueDate)
	}
	if p.AssignedTo != nil {
		task.AssignedTo = strings.TrimSpace(*p.AssignedTo)
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}

	switch {
	case !task.Completed:
		task.CompletedAt = nil
	case p.CompletedAt != nil:
		task.CompletedAt = cloneTime(p.CompletedAt)
	case task.CompletedAt == nil:
		completedAt := now
		task.CompletedAt = &completedAt
	}
	return task
}

func normalizeRequired(raw string, invalid error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", invalid
	}
	return trimmed, nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
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
