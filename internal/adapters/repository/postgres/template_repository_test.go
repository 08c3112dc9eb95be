package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestTemplateRepository_Create(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewTemplateRepository(mock)
	now := time.Now().UTC()
	tmpl := &workflow.Template{
		ID:         "wt2",
		Name:       "Marketing Onboarding",
		Department: "Marketing",
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
		Tasks: []workflow.TaskBlueprint{
			{Title: "Form", Description: "Fill", Category: workflow.CategoryDocumentation, Priority: workflow.PriorityHigh, DueOffset: 5},
			{Title: "Tools", Description: "Access", Category: workflow.CategorySetup, Priority: workflow.PriorityMedium, DueOffset: 10},
		},
	}

	mock.ExpectExec("INSERT INTO workflow_templates").
		WithArgs("wt2", "Marketing Onboarding", "", "Marketing", true, now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO workflow_template_tasks").
		WithArgs("wt2", 0, "Form", "Fill", "documentation", "high", 5).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO workflow_template_tasks").
		WithArgs("wt2", 1, "Tools", "Access", "setup", "medium", 10).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if _, err := repo.Create(context.Background(), tmpl); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTemplateRepository_Create_Duplicate(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewTemplateRepository(mock)
	mock.ExpectExec("INSERT INTO workflow_templates").
		WithArgs(anyArgs(7)...).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	if _, err := repo.Create(context.Background(), &workflow.Template{ID: "wt1"}); !errors.Is(err, workflow.ErrTemplateExists) {
		t.Fatalf("expected ErrTemplateExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTemplateRepository_FindByID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewTemplateRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM workflow_templates").WithArgs("wt1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "department", "active", "created_at", "updated_at"}).
			AddRow("wt1", "Engineering Onboarding", "", "Engineering", true, now, now))
	mock.ExpectQuery("FROM workflow_template_tasks").WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"template_id", "title", "description", "category", "priority", "due_offset"}).
			AddRow("wt1", "Form", "Fill", "documentation", "high", 5).
			AddRow("wt1", "Security", "Train", "training", "high", 15))

	found, err := repo.FindByID(context.Background(), "wt1")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if len(found.Tasks) != 2 || found.EstimatedDuration() != 15 {
		t.Fatalf("unexpected template: %+v", found)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTemplateRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewTemplateRepository(mock)
	mock.ExpectQuery("FROM workflow_templates").WithArgs("nope").WillReturnError(pgx.ErrNoRows)

	if _, err := repo.FindByID(context.Background(), "nope"); !errors.Is(err, workflow.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestTemplateRepository_List_ActiveOnly(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewTemplateRepository(mock)
	mock.ExpectQuery(`WHERE active`).WithArgs(11, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "department", "active", "created_at", "updated_at"}))

	templates, next, err := repo.List(context.Background(), workflow.ListTemplatesFilter{ActiveOnly: true, Limit: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(templates) != 0 || next != "" {
		t.Fatalf("expected empty page, got %d templates, next %q", len(templates), next)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
