package gateway

import (
	"strconv"
	"time"

	"github.com/ogurasousui/onboarding-workflow/internal/core/access"
	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
)

const dateLayout = "2006-01-02"

type userView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

type documentView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type taskView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Priority    string         `json:"priority"`
	DueDate     string         `json:"due_date"`
	Completed   bool           `json:"completed"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Overdue     bool           `json:"overdue"`
	AssignedTo  string         `json:"assigned_to"`
	Documents   []documentView `json:"documents"`
}

type employeeView struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Avatar     string     `json:"avatar,omitempty"`
	StartDate  string     `json:"start_date"`
	Status     string     `json:"status"`
	Progress   int        `json:"progress"`
	Tasks      []taskView `json:"tasks"`
}

type blueprintView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	DueOffset   string `json:"due_offset"`
}

type templateView struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Department        string          `json:"department"`
	Active            bool            `json:"active"`
	EstimatedDuration int             `json:"estimated_duration"`
	Tasks             []blueprintView `json:"tasks"`
}

func toUserView(identity *access.Identity) userView {
	if identity == nil {
		return userView{}
	}
	return userView{
		ID:     identity.ID,
		Name:   identity.Name,
		Email:  identity.Email,
		Role:   identity.Role.String(),
		Avatar: identity.Avatar,
	}
}

func toDocumentView(d employee.Document) documentView {
	return documentView{ID: d.ID, Name: d.Name, ContentType: d.ContentType, Size: d.Size, UploadedAt: d.UploadedAt}
}

func toEmployeeView(e *employee.Employee, now time.Time) employeeView {
	tasks := make([]taskView, 0, len(e.Tasks))
	for _, t := range e.Tasks {
		docs := make([]documentView, 0, len(t.Documents))
		for _, d := range t.Documents {
			docs = append(docs, toDocumentView(d))
		}
		tasks = append(tasks, taskView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Category:    string(t.Category),
			Priority:    string(t.Priority),
			DueDate:     t.DueDate.Format(dateLayout),
			Completed:   t.Completed,
			CompletedAt: t.CompletedAt,
			Overdue:     t.IsOverdue(now),
			AssignedTo:  t.AssignedTo,
			Documents:   docs,
		})
	}
	return employeeView{
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
	}
}

func toTemplateView(t *workflow.Template) templateView {
	tasks := make([]blueprintView, 0, len(t.Tasks))
	for _, bp := range t.Tasks {
		tasks = append(tasks, blueprintView{
			Title:       bp.Title,
			Description: bp.Description,
			Category:    string(bp.Category),
			Priority:    string(bp.Priority),
			DueOffset:   strconv.Itoa(int(bp.DueOffset)),
		})
	}
	return templateView{
		ID:                t.ID,
		Name:              t.Name,
		Description:       t.Description,
		Department:        t.Department,
		Active:            t.Active,
		EstimatedDuration: int(t.EstimatedDuration()),
		Tasks:             tasks,
	}
}

type overviewView struct {
	TotalEmployees      int `json:"total_employees"`
	ActiveOnboarding    int `json:"active_onboarding"`
	CompletedOnboarding int `json:"completed_onboarding"`
	PendingTasks        int `json:"pending_tasks"`
	AverageProgress     int `json:"average_progress"`
}

type summaryView struct {
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
	Overdue   int    `json:"overdue"`
	Progress  int    `json:"progress"`
	Status    string `json:"status"`
}

func toOverviewView(o *employee.Overview) overviewView {
	return overviewView{
		TotalEmployees:      o.TotalEmployees,
		ActiveOnboarding:    o.ActiveOnboarding,
		CompletedOnboarding: o.CompletedOnboarding,
		PendingTasks:        o.PendingTasks,
		AverageProgress:     o.AverageProgress,
	}
}

func toSummaryView(s *employee.TaskSummary) summaryView {
	return summaryView{
		Total:     s.Total,
		Completed: s.Completed,
		Pending:   s.Pending,
		Overdue:   s.Overdue,
		Progress:  s.Progress,
		Status:    string(s.Status),
	}
}
