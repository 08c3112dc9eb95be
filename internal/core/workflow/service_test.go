package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type sequenceIDs struct {
	prefix string
	n      int
}

func (s *sequenceIDs) NewID() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

type fakeTemplateRepo struct {
	templates map[string]*Template
	order     []string
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[string]*Template)}
}

func (r *fakeTemplateRepo) Create(_ context.Context, tmpl *Template) (*Template, error) {
	if _, ok := r.templates[tmpl.ID]; ok {
		return nil, ErrTemplateExists
	}
	r.templates[tmpl.ID] = tmpl.Clone()
	r.order = append(r.order, tmpl.ID)
	return tmpl.Clone(), nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, tmpl *Template) (*Template, error) {
	if _, ok := r.templates[tmpl.ID]; !ok {
		return nil, ErrTemplateNotFound
	}
	r.templates[tmpl.ID] = tmpl.Clone()
	return tmpl.Clone(), nil
}

func (r *fakeTemplateRepo) FindByID(_ context.Context, id string) (*Template, error) {
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, ErrTemplateNotFound
	}
	return tmpl.Clone(), nil
}

func (r *fakeTemplateRepo) List(_ context.Context, filter ListTemplatesFilter) ([]*Template, string, error) {
	var filtered []*Template
	for _, id := range r.order {
		tmpl := r.templates[id]
		if filter.Department != "" && tmpl.Department != filter.Department {
			continue
		}
		if filter.ActiveOnly && !tmpl.Active {
			continue
		}
		filtered = append(filtered, tmpl.Clone())
	}

	if filter.Offset > len(filtered) {
		return []*Template{}, "", nil
	}
	end := filter.Offset + filter.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	next := ""
	if end < len(filtered) {
		next = strconv.Itoa(end)
	}
	return filtered[filter.Offset:end], next, nil
}

func engineeringTasks() []TaskBlueprint {
	return []TaskBlueprint{
		{Title: "Complete Personal Information Form", Description: "Fill out the form.", Category: CategoryDocumentation, Priority: PriorityHigh, DueOffset: 5},
		{Title: "Review Employee Handbook", Description: "Read the handbook.", Category: CategoryCompliance, Priority: PriorityHigh, DueOffset: 7},
		{Title: "Set up Development Environment", Description: "Install tools.", Category: CategorySetup, DueOffset: 10},
		{Title: "Security Training", Description: "Complete training.", Category: CategoryTraining, Priority: PriorityHigh, DueOffset: 15},
	}
}

func TestService_CreateTemplate_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeTemplateRepo()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(repo, &stubClock{now: now}, nil, &sequenceIDs{prefix: "wt"})

	created, err := svc.CreateTemplate(context.Background(), CreateTemplateInput{
		Name:        "  Engineering Onboarding ",
		Description: " Standard onboarding ",
		Department:  " Engineering ",
		Tasks:       engineeringTasks(),
	})
	if err != nil {
		t.Fatalf("CreateTemplate returned error: %v", err)
	}

	if created.ID != "wt-1" {
		t.Fatalf("expected generated id wt-1, got %s", created.ID)
	}
	if created.Name != "Engineering Onboarding" || created.Department != "Engineering" {
		t.Fatalf("expected trimmed fields, got %q %q", created.Name, created.Department)
	}
	if !created.Active {
		t.Fatalf("expected template to be active by default")
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at to use clock")
	}
	if len(created.Tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(created.Tasks))
	}
	if created.Tasks[2].Priority != PriorityMedium {
		t.Fatalf("expected default priority medium, got %s", created.Tasks[2].Priority)
	}
	if created.EstimatedDuration() != 15 {
		t.Fatalf("expected estimated duration 15, got %d", created.EstimatedDuration())
	}
}

func TestService_CreateTemplate_IDsNotReused(t *testing.T) {
	t.Parallel()

	repo := newFakeTemplateRepo()
	svc := NewService(repo, nil, nil, nil)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		created, err := svc.CreateTemplate(context.Background(), CreateTemplateInput{
			Name:       fmt.Sprintf("Template %d", i),
			Department: "HR",
			Tasks:      engineeringTasks()[:1],
		})
		if err != nil {
			t.Fatalf("CreateTemplate returned error: %v", err)
		}
		if seen[created.ID] {
			t.Fatalf("identifier %s reused", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestService_CreateTemplate_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeTemplateRepo(), nil, nil, nil)

	cases := []struct {
		name string
		in   CreateTemplateInput
		want error
	}{
		{name: "missing name", in: CreateTemplateInput{Department: "HR", Tasks: engineeringTasks()}, want: ErrInvalidName},
		{name: "missing department", in: CreateTemplateInput{Name: "x", Tasks: engineeringTasks()}, want: ErrInvalidDepartment},
		{name: "no tasks", in: CreateTemplateInput{Name: "x", Department: "HR"}, want: ErrNoTasks},
		{name: "task without title", in: CreateTemplateInput{Name: "x", Department: "HR", Tasks: []TaskBlueprint{{Description: "d", Category: CategorySetup}}}, want: ErrInvalidTaskTitle},
		{name: "task without description", in: CreateTemplateInput{Name: "x", Department: "HR", Tasks: []TaskBlueprint{{Title: "t", Category: CategorySetup}}}, want: ErrInvalidDescription},
		{name: "bad category", in: CreateTemplateInput{Name: "x", Department: "HR", Tasks: []TaskBlueprint{{Title: "t", Description: "d", Category: "misc"}}}, want: ErrInvalidCategory},
		{name: "bad priority", in: CreateTemplateInput{Name: "x", Department: "HR", Tasks: []TaskBlueprint{{Title: "t", Description: "d", Category: CategorySetup, Priority: "urgent"}}}, want: ErrInvalidPriority},
		{name: "negative offset", in: CreateTemplateInput{Name: "x", Department: "HR", Tasks: []TaskBlueprint{{Title: "t", Description: "d", Category: CategorySetup, DueOffset: -3}}}, want: ErrInvalidDayOffset},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := svc.CreateTemplate(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestService_UpdateTemplate_Merge(t *testing.T) {
	t.Parallel()

	repo := newFakeTemplateRepo()
	clk := &stubClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewService(repo, clk, nil, &sequenceIDs{prefix: "wt"})

	created, err := svc.CreateTemplate(context.Background(), CreateTemplateInput{
		Name:        "Marketing Onboarding",
		Description: "Standard",
		Department:  "Marketing",
		Tasks:       engineeringTasks(),
	})
	if err != nil {
		t.Fatalf("CreateTemplate returned error: %v", err)
	}

	clk.now = clk.now.Add(time.Hour)
	inactive := false
	updated, err := svc.UpdateTemplate(context.Background(), UpdateTemplateInput{ID: created.ID, Active: &inactive})
	if err != nil {
		t.Fatalf("UpdateTemplate returned error: %v", err)
	}

	if updated.Active {
		t.Fatalf("expected template to be deactivated")
	}
	if updated.Name != "Marketing Onboarding" || len(updated.Tasks) != 4 {
		t.Fatalf("unpatched fields must be preserved: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) || !updated.UpdatedAt.Equal(clk.now) {
		t.Fatalf("unexpected timestamps: created=%v updated=%v", updated.CreatedAt, updated.UpdatedAt)
	}

	updated, err = svc.UpdateTemplate(context.Background(), UpdateTemplateInput{
		ID:       created.ID,
		Tasks:    engineeringTasks()[:2],
		TasksSet: true,
	})
	if err != nil {
		t.Fatalf("UpdateTemplate tasks returned error: %v", err)
	}
	if len(updated.Tasks) != 2 {
		t.Fatalf("expected tasks to be replaced, got %d", len(updated.Tasks))
	}

	if _, err := svc.UpdateTemplate(context.Background(), UpdateTemplateInput{ID: created.ID, Tasks: nil, TasksSet: true}); !errors.Is(err, ErrNoTasks) {
		t.Fatalf("expected ErrNoTasks when clearing tasks, got %v", err)
	}
}

func TestService_UpdateTemplate_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeTemplateRepo(), nil, nil, nil)

	name := "x"
	if _, err := svc.UpdateTemplate(context.Background(), UpdateTemplateInput{ID: "missing", Name: &name}); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if _, err := svc.UpdateTemplate(context.Background(), UpdateTemplateInput{ID: " "}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestService_ListTemplates_FilterAndPagination(t *testing.T) {
	t.Parallel()

	repo := newFakeTemplateRepo()
	svc := NewService(repo, nil, nil, &sequenceIDs{prefix: "wt"})

	inactive := false
	seeds := []CreateTemplateInput{
		{Name: "Eng", Department: "Engineering", Tasks: engineeringTasks()},
		{Name: "Eng legacy", Department: "Engineering", Active: &inactive, Tasks: engineeringTasks()},
		{Name: "Mkt", Department: "Marketing", Tasks: engineeringTasks()},
	}
	for _, in := range seeds {
		if _, err := svc.CreateTemplate(context.Background(), in); err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}

	result, err := svc.ListTemplates(context.Background(), ListTemplatesInput{Department: "Engineering", ActiveOnly: true})
	if err != nil {
		t.Fatalf("ListTemplates returned error: %v", err)
	}
	if len(result.Templates) != 1 || result.Templates[0].Name != "Eng" {
		t.Fatalf("unexpected filtered result: %+v", result.Templates)
	}

	page1, err := svc.ListTemplates(context.Background(), ListTemplatesInput{PageSize: 2})
	if err != nil {
		t.Fatalf("ListTemplates page1 returned error: %v", err)
	}
	if len(page1.Templates) != 2 || page1.NextPageToken != "2" {
		t.Fatalf("unexpected first page: %d items, token %q", len(page1.Templates), page1.NextPageToken)
	}

	if _, err := svc.ListTemplates(context.Background(), ListTemplatesInput{PageSize: 500}); !errors.Is(err, ErrInvalidPageSize) {
		t.Fatalf("expected ErrInvalidPageSize, got %v", err)
	}
	if _, err := svc.ListTemplates(context.Background(), ListTemplatesInput{PageToken: "abc"}); !errors.Is(err, ErrInvalidPageToken) {
		t.Fatalf("expected ErrInvalidPageToken, got %v", err)
	}
}
