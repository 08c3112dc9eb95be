package employee

import (
	"context"
	"time"
)

// EventType はドメインイベントの種類です。
type EventType string

const (
	EventEmployeeCreated  EventType = "employee.created"
	EventTaskCompleted    EventType = "task.completed"
	EventTemplateAssigned EventType = "template.assigned"
	EventDocumentAttached EventType = "document.attached"
)

// Event は変更確定後に通知されるドメインイベントです。
type Event struct {
	Type       EventType `json:"type"`
	EmployeeID string    `json:"employee_id"`
	TaskID     string    `json:"task_id,omitempty"`
	TemplateID string    `json:"template_id,omitempty"`
	DocumentID string    `json:"document_id,omitempty"`
	TaskCount  int       `json:"task_count,omitempty"`
	Progress   int       `json:"progress"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher はドメインイベントの通知先です。
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error {
	return nil
}

// Publishers は複数の通知先へ順に通知します。
type Publishers []EventPublisher

// Publish は全ての通知先へ通知し、最初のエラーを返します。
func (p Publishers) Publish(ctx context.Context, event Event) error {
	var first error
	for _, pub := range p {
		if pub == nil {
			continue
		}
		if err := pub.Publish(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}
