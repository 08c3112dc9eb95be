package employee

import (
	"time"

	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
)

// Status は社員のオンボーディング状況です。進捗率から導出されます。
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Employee は社員エンティティです。タスクは社員に専有されます。
type Employee struct {
	ID         string
	Name       string
	Email      string
	Department string
	Position   string
	Avatar     string
	StartDate  time.Time
	Status     Status
	Progress   int
	Tasks      []Task
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Task は社員に割り当てられたオンボーディング作業です。
type Task struct {
	ID          string
	Title       string
	Description string
	Category    workflow.Category
	Priority    workflow.Priority
	DueDate     time.Time
	Completed   bool
	CompletedAt *time.Time
	AssignedTo  string
	Documents   []Document
}

// Document はタスクに添付された書類です。Locator は書類ストア上の所在を指します。
type Document struct {
	ID          string
	Name        string
	ContentType string
	Size        int64
	UploadedAt  time.Time
	Locator     string
}

// Recalculate はタスク一覧から進捗率と状況を再計算します。
func (e *Employee) Recalculate() {
	e.Progress = ComputeProgress(e.Tasks)
	e.Status = StatusForProgress(e.Progress)
}

// TaskIndex は ID に一致するタスクの位置を返します。
func (e *Employee) TaskIndex(taskID string) (int, bool) {
	for i := range e.Tasks {
		if e.Tasks[i].ID == taskID {
			return i, true
		}
	}
	return -1, false
}

// IsOverdue は未完了かつ期限日が now の日付より前かを返します。
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return t.DueDate.Before(today)
}

// Clone は社員の深いコピーを返します。
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Tasks != nil {
		clone.Tasks = make([]Task, len(e.Tasks))
		for i, task := range e.Tasks {
			clone.Tasks[i] = task.clone()
		}
	}
	return &clone
}

func (t Task) clone() Task {
	c := t
	c.CompletedAt = cloneTime(t.CompletedAt)
	if t.Documents != nil {
		c.Documents = append([]Document(nil), t.Documents...)
	}
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}
