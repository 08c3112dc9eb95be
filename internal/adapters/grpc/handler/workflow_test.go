package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ogurasousui/onboarding-workflow/internal/adapters/grpc/onboardingv1"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type stubWorkflowUseCase struct {
	createInput workflow.CreateTemplateInput
	createOut   *workflow.Template
	createErr   error

	updateInput workflow.UpdateTemplateInput
	updateOut   *workflow.Template
	updateErr   error

	getInput workflow.GetTemplateInput
	getOut   *workflow.Template
	getErr   error

	listInput workflow.ListTemplatesInput
	listOut   *workflow.ListTemplatesResult
	listErr   error

	calls int
}

func (s *stubWorkflowUseCase) CreateTemplate(ctx context.Context, in workflow.CreateTemplateInput) (*workflow.Template, error) {
	s.calls++
	s.createInput = in
	return s.createOut, s.createErr
}

func (s *stubWorkflowUseCase) UpdateTemplate(ctx context.Context, in workflow.UpdateTemplateInput) (*workflow.Template, error) {
	s.calls++
	s.updateInput = in
	return s.updateOut, s.updateErr
}

func (s *stubWorkflowUseCase) GetTemplate(ctx context.Context, in workflow.GetTemplateInput) (*workflow.Template, error) {
	s.calls++
	s.getInput = in
	return s.getOut, s.getErr
}

func (s *stubWorkflowUseCase) ListTemplates(ctx context.Context, in workflow.ListTemplatesInput) (*workflow.ListTemplatesResult, error) {
	s.calls++
	s.listInput = in
	return s.listOut, s.listErr
}

func sampleTemplate() *workflow.Template {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &workflow.Template{
		ID:         "wt1",
		Name:       "Engineering Onboarding",
		Department: "Engineering",
		Active:     true,
		Tasks: []workflow.TaskBlueprint{
			{Title: "Complete Tax Forms", Description: "W-4", Category: workflow.CategoryDocumentation, Priority: workflow.PriorityHigh, DueOffset: 5},
			{Title: "Code Review Training", Description: "Reviews", Category: workflow.CategoryTraining, Priority: workflow.PriorityMedium, DueOffset: 15},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestWorkflowTemplateGrpcHandler_CreateTemplate_ParsesOffsets(t *testing.T) {
	t.Parallel()

	stub := &stubWorkflowUseCase{createOut: sampleTemplate()}
	handler := NewWorkflowTemplateGrpcHandler(stub)

	resp, err := handler.CreateTemplate(adminContext(), &onboardingv1.CreateTemplateRequest{
		Name:       "Engineering Onboarding",
		Department: "Engineering",
		Tasks: []*onboardingv1.TaskBlueprint{
			{Title: "Complete Tax Forms", Description: "W-4", Category: "documentation", Priority: "high", DueOffset: "5"},
			{Title: "Code Review Training", Description: "Reviews", Category: "training", DueOffset: " 15 "},
		},
	})
	if err != nil {
		t.Fatalf("CreateTemplate returned error: %v", err)
	}

	if len(stub.createInput.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(stub.createInput.Tasks))
	}
	if stub.createInput.Tasks[1].DueOffset != 15 {
		t.Fatalf("expected offset 15, got %d", stub.createInput.Tasks[1].DueOffset)
	}
	if resp.Template.EstimatedDuration != 15 {
		t.Fatalf("expected estimated duration 15, got %d", resp.Template.EstimatedDuration)
	}
	if resp.Template.Tasks[0].DueOffset != "5" {
		t.Fatalf("expected offset rendered as text, got %q", resp.Template.Tasks[0].DueOffset)
	}
}

func TestWorkflowTemplateGrpcHandler_CreateTemplate_NonNumericOffset(t *testing.T) {
	t.Parallel()

	stub := &stubWorkflowUseCase{}
	handler := NewWorkflowTemplateGrpcHandler(stub)

	_, err := handler.CreateTemplate(adminContext(), &onboardingv1.CreateTemplateRequest{
		Name:       "Broken",
		Department: "Engineering",
		Tasks: []*onboardingv1.TaskBlueprint{
			{Title: "Task", Description: "Desc", Category: "setup", DueOffset: "five"},
		},
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatalf("use case should not be called")
	}
}

func TestWorkflowTemplateGrpcHandler_UpdateTemplate_TasksPresence(t *testing.T) {
	t.Parallel()

	stub := &stubWorkflowUseCase{updateOut: sampleTemplate()}
	handler := NewWorkflowTemplateGrpcHandler(stub)

	active := false
	if _, err := handler.UpdateTemplate(adminContext(), &onboardingv1.UpdateTemplateRequest{ID: "wt1", Active: &active}); err != nil {
		t.Fatalf("UpdateTemplate returned error: %v", err)
	}
	if stub.updateInput.TasksSet {
		t.Fatalf("tasks must be untouched when omitted")
	}
	if stub.updateInput.Active == nil || *stub.updateInput.Active {
		t.Fatalf("expected active=false patch")
	}

	if _, err := handler.UpdateTemplate(adminContext(), &onboardingv1.UpdateTemplateRequest{ID: "wt1", Tasks: []*onboardingv1.TaskBlueprint{}}); err != nil {
		t.Fatalf("UpdateTemplate returned error: %v", err)
	}
	if !stub.updateInput.TasksSet || len(stub.updateInput.Tasks) != 0 {
		t.Fatalf("expected explicit empty task list to be forwarded")
	}
}

func TestWorkflowTemplateGrpcHandler_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{name: "not found", err: workflow.ErrTemplateNotFound, want: codes.NotFound},
		{name: "no tasks", err: workflow.ErrNoTasks, want: codes.InvalidArgument},
		{name: "exists", err: workflow.ErrTemplateExists, want: codes.AlreadyExists},
		{name: "wrapped", err: errors.Join(errors.New("context"), workflow.ErrInvalidCategory), want: codes.InvalidArgument},
		{name: "unknown", err: errors.New("boom"), want: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewWorkflowTemplateGrpcHandler(&stubWorkflowUseCase{getErr: tt.err})
			_, err := handler.GetTemplate(adminContext(), &onboardingv1.GetTemplateRequest{ID: "wt1"})
			if status.Code(err) != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestWorkflowTemplateGrpcHandler_ListTemplates(t *testing.T) {
	t.Parallel()

	stub := &stubWorkflowUseCase{listOut: &workflow.ListTemplatesResult{Templates: []*workflow.Template{sampleTemplate()}}}
	handler := NewWorkflowTemplateGrpcHandler(stub)

	resp, err := handler.ListTemplates(adminContext(), &onboardingv1.ListTemplatesRequest{Department: "Engineering", ActiveOnly: true})
	if err != nil {
		t.Fatalf("ListTemplates returned error: %v", err)
	}
	if !stub.listInput.ActiveOnly || stub.listInput.Department != "Engineering" {
		t.Fatalf("unexpected list input: %+v", stub.listInput)
	}
	if len(resp.Templates) != 1 || resp.Templates[0].ID != "wt1" {
		t.Fatalf("unexpected response: %+v", resp.Templates)
	}
}
