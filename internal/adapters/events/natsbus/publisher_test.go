package natsbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
)

type recordedMessage struct {
	subject string
	data    []byte
}

type fakeConn struct {
	messages []recordedMessage
	err      error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, recordedMessage{subject: subject, data: data})
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	pub := NewPublisher(conn)
	occurred := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

	err := pub.Publish(context.Background(), employee.Event{
		Type:       employee.EventTaskCompleted,
		EmployeeID: "2",
		TaskID:     "t1",
		Progress:   25,
		OccurredAt: occurred,
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if len(conn.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(conn.messages))
	}
	msg := conn.messages[0]
	if msg.subject != "onboarding.task.completed" {
		t.Fatalf("unexpected subject %q", msg.subject)
	}

	var payload map[string]any
	if err := json.Unmarshal(msg.data, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload["employee_id"] != "2" || payload["task_id"] != "t1" || payload["progress"] != float64(25) {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestPublisher_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection closed")
	pub := NewPublisher(&fakeConn{err: boom})
	if err := pub.Publish(context.Background(), employee.Event{Type: employee.EventEmployeeCreated}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped connection error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewPublisher(&fakeConn{}).Publish(ctx, employee.Event{Type: employee.EventEmployeeCreated}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
