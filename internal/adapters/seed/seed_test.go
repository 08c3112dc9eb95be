package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ogurasousui/onboarding-workflow/internal/adapters/repository/memory"
	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
)

const seedPath = "../../../assets/seed.yaml"

func newTarget() Target {
	store := memory.NewStore()
	return Target{
		Employees: memory.NewEmployeeRepository(store),
		Templates: memory.NewTemplateRepository(store),
		Tx:        memory.NewTransactionManager(store),
	}
}

func TestLoad_DemoDataset(t *testing.T) {
	t.Parallel()

	ds, err := Load(seedPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	accounts, err := ds.SessionAccounts()
	if err != nil {
		t.Fatalf("SessionAccounts returned error: %v", err)
	}
	if len(accounts) != 3 || accounts[0].Role != access.RoleAdmin || accounts[1].Role != access.RoleEmployee {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}

	templates, err := ds.DomainTemplates()
	if err != nil {
		t.Fatalf("DomainTemplates returned error: %v", err)
	}
	if len(templates) != 2 || templates[0].EstimatedDuration() != 15 || templates[1].EstimatedDuration() != 10 {
		t.Fatalf("unexpected templates: %+v", templates)
	}

	employees, err := ds.DomainEmployees(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("DomainEmployees returned error: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	john, jane := employees[0], employees[1]
	if john.Progress != 50 || john.Status != employee.StatusInProgress {
		t.Fatalf("john = %d/%s, want 50/in-progress", john.Progress, john.Status)
	}
	if jane.Progress != 33 || jane.Status != employee.StatusInProgress {
		t.Fatalf("jane = %d/%s, want 33/in-progress", jane.Progress, jane.Status)
	}
	if got := john.Tasks[0].CompletedAt; got == nil || got.Format("2006-01-02") != "2024-01-16" {
		t.Fatalf("unexpected completedAt %v", got)
	}
	if john.Tasks[2].CompletedAt != nil {
		t.Fatalf("incomplete task must not carry completedAt")
	}
	if john.Tasks[3].AssignedTo != "2" {
		t.Fatalf("expected task assigned to employee, got %q", john.Tasks[3].AssignedTo)
	}
}

func TestDomainTemplates_RejectsNonNumericOffset(t *testing.T) {
	t.Parallel()

	ds := &Dataset{Templates: []Template{{
		ID:         "wt9",
		Name:       "Broken",
		Department: "Ops",
		Tasks:      []Blueprint{{Title: "t", Description: "d", Category: "setup", DueOffset: "five"}},
	}}}
	if _, err := ds.DomainTemplates(); !errors.Is(err, workflow.ErrInvalidDayOffset) {
		t.Fatalf("expected ErrInvalidDayOffset, got %v", err)
	}
}

func TestApplyExportSave(t *testing.T) {
	t.Parallel()

	ds, err := Load(seedPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	target := newTarget()
	ctx := context.Background()
	if err := Apply(ctx, ds, target, time.Now().UTC()); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	exported, err := Export(ctx, target)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if len(exported.Accounts) != 0 {
		t.Fatalf("snapshot must not contain accounts")
	}

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := Save(path, exported); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot returned error: %v", err)
	}
	restored := newTarget()
	if err := Apply(ctx, reloaded, restored, time.Now().UTC()); err != nil {
		t.Fatalf("Apply snapshot returned error: %v", err)
	}

	john, err := restored.Employees.FindByID(ctx, "2")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if john.Progress != 50 || len(john.Tasks) != 4 || john.Tasks[1].DueDate.Format("2006-01-02") != "2024-01-22" {
		t.Fatalf("unexpected restored employee: %+v", john)
	}
	tmpl, err := restored.Templates.FindByID(ctx, "wt2")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if len(tmpl.Tasks) != 3 || !tmpl.Active {
		t.Fatalf("unexpected restored template: %+v", tmpl)
	}
}

func TestExport_KeepsEmployeeTimestamps(t *testing.T) {
	t.Parallel()

	ds, err := Load(seedPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	ctx := context.Background()
	seededAt := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	target := newTarget()
	if err := Apply(ctx, ds, target, seededAt); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	john, err := target.Employees.FindByID(ctx, "2")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	touchedAt := time.Date(2024, 1, 20, 17, 30, 0, 0, time.UTC)
	john.UpdatedAt = touchedAt
	if _, err := target.Employees.Update(ctx, john); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	exported, err := Export(ctx, target)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := Save(path, exported); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot returned error: %v", err)
	}

	restored := newTarget()
	if err := Apply(ctx, reloaded, restored, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Apply snapshot returned error: %v", err)
	}
	got, err := restored.Employees.FindByID(ctx, "2")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if !got.CreatedAt.Equal(seededAt) || !got.UpdatedAt.Equal(touchedAt) {
		t.Fatalf("timestamps = %v / %v, want %v / %v", got.CreatedAt, got.UpdatedAt, seededAt, touchedAt)
	}
}

func TestDomainEmployees_DefaultsTimestamps(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	ds := &Dataset{Employees: []Employee{
		{ID: "10", Name: "New Hire", Email: "new@company.com", Department: "Ops", StartDate: now},
		{ID: "11", Name: "Old Hire", Email: "old@company.com", Department: "Ops", StartDate: now, CreatedAt: created},
	}}

	employees, err := ds.DomainEmployees(now)
	if err != nil {
		t.Fatalf("DomainEmployees returned error: %v", err)
	}
	if !employees[0].CreatedAt.Equal(now) || !employees[0].UpdatedAt.Equal(now) {
		t.Fatalf("expected seed time, got %v / %v", employees[0].CreatedAt, employees[0].UpdatedAt)
	}
	if !employees[1].CreatedAt.Equal(created) || !employees[1].UpdatedAt.Equal(created) {
		t.Fatalf("expected stored creation time, got %v / %v", employees[1].CreatedAt, employees[1].UpdatedAt)
	}
}

func TestApply_RollsBackOnConflict(t *testing.T) {
	t.Parallel()

	ds, err := Load(seedPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	ds.Employees = append(ds.Employees, ds.Employees[0])
	ds.Employees[2].ID = "99"

	target := newTarget()
	ctx := context.Background()
	if err := Apply(ctx, ds, target, time.Now().UTC()); !errors.Is(err, employee.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
	if _, err := target.Templates.FindByID(ctx, "wt1"); !errors.Is(err, workflow.ErrTemplateNotFound) {
		t.Fatalf("expected nothing applied, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
