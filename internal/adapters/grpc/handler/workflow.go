package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ogurasousui/onboarding-workflow/internal/adapters/grpc/onboardingv1"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// WorkflowTemplateGrpcHandler は WorkflowTemplateService の gRPC 実装です。
type WorkflowTemplateGrpcHandler struct {
	svc workflow.UseCase
	onboardingv1.UnimplementedWorkflowTemplateServiceServer
}

// NewWorkflowTemplateGrpcHandler は WorkflowTemplateGrpcHandler を生成します。
func NewWorkflowTemplateGrpcHandler(svc workflow.UseCase) *WorkflowTemplateGrpcHandler {
	return &WorkflowTemplateGrpcHandler{svc: svc}
}

// CreateTemplate はテンプレートを作成します。
func (h *WorkflowTemplateGrpcHandler) CreateTemplate(ctx context.Context, req *onboardingv1.CreateTemplateRequest) (*onboardingv1.CreateTemplateResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	tasks, err := toDomainBlueprints(req.Tasks)
	if err != nil {
		return nil, toStatusError(err)
	}

	created, err := h.svc.CreateTemplate(ctx, workflow.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
		Department:  req.Department,
		Active:      req.Active,
		Tasks:       tasks,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &onboardingv1.CreateTemplateResponse{Template: toProtoTemplate(created)}, nil
}

// UpdateTemplate はテンプレートを部分更新します。
func (h *WorkflowTemplateGrpcHandler) UpdateTemplate(ctx context.Context, req *onboardingv1.UpdateTemplateRequest) (*onboardingv1.UpdateTemplateResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	input := workflow.UpdateTemplateInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Department:  req.Department,
		Active:      req.Active,
	}
	if req.Tasks != nil {
		tasks, err := toDomainBlueprints(req.Tasks)
		if err != nil {
			return nil, toStatusError(err)
		}
		input.Tasks = tasks
		input.TasksSet = true
	}

	updated, err := h.svc.UpdateTemplate(ctx, input)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &onboardingv1.UpdateTemplateResponse{Template: toProtoTemplate(updated)}, nil
}

// GetTemplate はテンプレートを取得します。
func (h *WorkflowTemplateGrpcHandler) GetTemplate(ctx context.Context, req *onboardingv1.GetTemplateRequest) (*onboardingv1.GetTemplateResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.GetTemplate(ctx, workflow.GetTemplateInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &onboardingv1.GetTemplateResponse{Template: toProtoTemplate(found)}, nil
}

// ListTemplates はテンプレート一覧を返します。
func (h *WorkflowTemplateGrpcHandler) ListTemplates(ctx context.Context, req *onboardingv1.ListTemplatesRequest) (*onboardingv1.ListTemplatesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.svc.ListTemplates(ctx, workflow.ListTemplatesInput{
		Department: req.Department,
		ActiveOnly: req.ActiveOnly,
		PageSize:   req.PageSize,
		PageToken:  req.PageToken,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	resp := &onboardingv1.ListTemplatesResponse{
		Templates:     make([]*onboardingv1.Template, 0, len(result.Templates)),
		NextPageToken: result.NextPageToken,
	}
	for _, t := range result.Templates {
		resp.Templates = append(resp.Templates, toProtoTemplate(t))
	}
	return resp, nil
}

// toDomainBlueprints は日数テキストをここで検証し、割り当て時には数値だけを扱います。
func toDomainBlueprints(in []*onboardingv1.TaskBlueprint) ([]workflow.TaskBlueprint, error) {
	out := make([]workflow.TaskBlueprint, 0, len(in))
	for i, bp := range in {
		if bp == nil {
			return nil, fmt.Errorf("tasks[%d]: %w", i, workflow.ErrInvalidTaskTitle)
		}
		offset, err := workflow.ParseDayOffset(bp.DueOffset)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d].due_offset %q: %w", i, bp.DueOffset, err)
		}
		out = append(out, workflow.TaskBlueprint{
			Title:       bp.Title,
			Description: bp.Description,
			Category:    workflow.Category(bp.Category),
			Priority:    workflow.Priority(bp.Priority),
			DueOffset:   offset,
		})
	}
	return out, nil
}

func toProtoTemplate(t *workflow.Template) *onboardingv1.Template {
	if t == nil {
		return nil
	}

	tasks := make([]*onboardingv1.TaskBlueprint, 0, len(t.Tasks))
	for _, bp := range t.Tasks {
		tasks = append(tasks, &onboardingv1.TaskBlueprint{
			Title:       bp.Title,
			Description: bp.Description,
			Category:    string(bp.Category),
			Priority:    string(bp.Priority),
			DueOffset:   strconv.Itoa(int(bp.DueOffset)),
		})
	}

	return &onboardingv1.Template{
		ID:                t.ID,
		Name:              t.Name,
		Description:       t.Description,
		Department:        t.Department,
		Active:            t.Active,
		Tasks:             tasks,
		EstimatedDuration: int(t.EstimatedDuration()),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
