package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/onboarding-workflow/internal/adapters/grpc/onboardingv1"
	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const dateLayout = "2006-01-02"

// EmployeeGrpcHandler は EmployeeService の gRPC 実装です。
type EmployeeGrpcHandler struct {
	svc employee.UseCase
	onboardingv1.UnimplementedEmployeeServiceServer
}

// NewEmployeeGrpcHandler は EmployeeGrpcHandler を生成します。
func NewEmployeeGrpcHandler(svc employee.UseCase) *EmployeeGrpcHandler {
	return &EmployeeGrpcHandler{svc: svc}
}

// CreateEmployee は社員を作成します。
func (h *EmployeeGrpcHandler) CreateEmployee(ctx context.Context, req *onboardingv1.CreateEmployeeRequest) (*onboardingv1.CreateEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("start_date: %v", err))
	}

	created, err := h.svc.CreateEmployee(ctx, employee.CreateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		Avatar:     req.Avatar,
		StartDate:  startDate,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &onboardingv1.CreateEmployeeResponse{Employee: toProtoEmployee(created)}, nil
}

// GetEmployee は社員を取得します。社員ロールは自分自身のみ参照できます。
func (h *EmployeeGrpcHandler) GetEmployee(ctx context.Context, req *onboardingv1.GetEmployeeRequest) (*onboardingv1.GetEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if err := requireActOn(ctx, req.ID); err != nil {
		return nil, err
	}

	found, err := h.svc.GetEmployee(ctx, employee.GetEmployeeInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &onboardingv1.GetEmployeeResponse{Employee: toProtoEmployee(found)}, nil
}

// ListEmployees は社員一覧を返します。
func (h *EmployeeGrpcHandler) ListEmployees(ctx context.Context, req *onboardingv1.ListEmployeesRequest) (*onboardingv1.ListEmployeesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	input := employee.ListEmployeesInput{
		Department: req.Department,
		PageSize:   req.PageSize,
		PageToken:  req.PageToken,
	}
	if s := strings.TrimSpace(req.Status); s != "" {
		st := employee.Status(s)
		input.Status = &st
	}

	result, err := h.svc.ListEmployees(ctx, input)
	if err != nil {
		return nil, toStatusError(err)
	}

	resp := &onboardingv1.ListEmployeesResponse{
		Employees:     make([]*onboardingv1.Employee, 0, len(result.Employees)),
		NextPageToken: result.NextPageToken,
	}
	for _, e := range result.Employees {
		resp.Employees = append(resp.Employees, toProtoEmployee(e))
	}
	return resp, nil
}

// UpdateTask はタスクを部分更新します。
func (h *EmployeeGrpcHandler) UpdateTask(ctx context.Context, req *onboardingv1.UpdateTaskRequest) (*onboardingv1.UpdateTaskResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if err := requireActOn(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	patch := employee.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		CompletedAt: req.CompletedAt,
		AssignedTo:  req.AssignedTo,
	}
	if req.Category != nil {
		c := workflow.Category(strings.TrimSpace(*req.Category))
		patch.Category = &c
	}
	if req.Priority != nil {
		p := workflow.Priority(strings.TrimSpace(*req.Priority))
		patch.Priority = &p
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("due_date: %v", err))
		}
		patch.DueDate = &due
	}
	if identity, _ := IdentityFromContext(ctx); identity != nil && identity.Role == access.RoleEmployee {
		if err := patch.CompletionOnly(); err != nil {
			return nil, toStatusError(err)
		}
	}

	updated, err := h.svc.UpdateTask(ctx, employee.UpdateTaskInput{
		EmployeeID: req.EmployeeID,
		TaskID:     req.TaskID,
		Patch:      patch,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &onboardingv1.UpdateTaskResponse{Employee: toProtoEmployee(updated)}, nil
}

// AssignTemplate はテンプレートを社員に割り当てます。
func (h *EmployeeGrpcHandler) AssignTemplate(ctx context.Context, req *onboardingv1.AssignTemplateRequest) (*onboardingv1.AssignTemplateResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	updated, err := h.svc.AssignTemplate(ctx, employee.AssignTemplateInput{
		EmployeeID: req.EmployeeID,
		TemplateID: req.TemplateID,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &onboardingv1.AssignTemplateResponse{Employee: toProtoEmployee(updated)}, nil
}

// AttachDocument はタスクに書類を添付します。
func (h *EmployeeGrpcHandler) AttachDocument(ctx context.Context, req *onboardingv1.AttachDocumentRequest) (*onboardingv1.AttachDocumentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if err := requireActOn(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	doc, err := h.svc.AttachDocument(ctx, employee.AttachDocumentInput{
		EmployeeID:  req.EmployeeID,
		TaskID:      req.TaskID,
		Name:        req.Name,
		ContentType: req.ContentType,
		Size:        req.Size,
		Content:     req.Content,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &onboardingv1.AttachDocumentResponse{Document: toProtoDocument(*doc)}, nil
}

// GetDocument は書類のメタデータと本体を返します。
func (h *EmployeeGrpcHandler) GetDocument(ctx context.Context, req *onboardingv1.GetDocumentRequest) (*onboardingv1.GetDocumentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if err := requireActOn(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	content, err := h.svc.GetDocument(ctx, employee.GetDocumentInput{
		EmployeeID: req.EmployeeID,
		TaskID:     req.TaskID,
		DocumentID: req.DocumentID,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &onboardingv1.GetDocumentResponse{
		Document: toProtoDocument(content.Document),
		Content:  content.Content,
	}, nil
}

// GetTaskSummary は社員ダッシュボードの集計を返します。
func (h *EmployeeGrpcHandler) GetTaskSummary(ctx context.Context, req *onboardingv1.GetTaskSummaryRequest) (*onboardingv1.GetTaskSummaryResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if err := requireActOn(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	summary, err := h.svc.GetTaskSummary(ctx, employee.GetEmployeeInput{ID: req.EmployeeID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &onboardingv1.GetTaskSummaryResponse{Summary: &onboardingv1.TaskSummary{
		EmployeeID: summary.EmployeeID,
		Total:      summary.Total,
		Completed:  summary.Completed,
		Pending:    summary.Pending,
		Overdue:    summary.Overdue,
		Progress:   summary.Progress,
		Status:     string(summary.Status),
	}}, nil
}

// GetOverview は管理者ダッシュボードの集計を返します。
func (h *EmployeeGrpcHandler) GetOverview(ctx context.Context, req *onboardingv1.GetOverviewRequest) (*onboardingv1.GetOverviewResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	overview, err := h.svc.GetOverview(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &onboardingv1.GetOverviewResponse{Overview: &onboardingv1.Overview{
		TotalEmployees:      overview.TotalEmployees,
		ActiveOnboarding:    overview.ActiveOnboarding,
		CompletedOnboarding: overview.CompletedOnboarding,
		PendingTasks:        overview.PendingTasks,
		AverageProgress:     overview.AverageProgress,
	}}, nil
}

func toProtoEmployee(e *employee.Employee) *onboardingv1.Employee {
	if e == nil {
		return nil
	}

	tasks := make([]*onboardingv1.Task, 0, len(e.Tasks))
	for _, task := range e.Tasks {
		tasks = append(tasks, toProtoTask(task))
	}

	return &onboardingv1.Employee{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Avatar:     e.Avatar,
		StartDate:  e.StartDate.Format(dateLayout),
		Status:     string(e.Status),
		Progress:   e.Progress,
		Tasks:      tasks,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toProtoTask(t employee.Task) *onboardingv1.Task {
	docs := make([]*onboardingv1.Document, 0, len(t.Documents))
	for _, d := range t.Documents {
		docs = append(docs, toProtoDocument(d))
	}

	return &onboardingv1.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    string(t.Category),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate.Format(dateLayout),
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		AssignedTo:  t.AssignedTo,
		Documents:   docs,
	}
}

func toProtoDocument(d employee.Document) *onboardingv1.Document {
	return &onboardingv1.Document{
		ID:          d.ID,
		Name:        d.Name,
		ContentType: d.ContentType,
		Size:        d.Size,
		UploadedAt:  d.UploadedAt,
		Locator:     d.Locator,
	}
}

func parseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, errors.New("date is required")
	}
	t, err := time.ParseInLocation(dateLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, errors.New("invalid date format, expected YYYY-MM-DD")
	}
	return t, nil
}
