package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
)

// SubjectPrefix はドメインイベントの subject の接頭辞です。
const SubjectPrefix = "onboarding."

// Conn は Publisher が必要とする NATS 接続の操作です。*nats.Conn が満たします。
type Conn interface {
	Publish(subject string, data []byte) error
}

// Connect は NATS へ接続します。切断時は無制限に再接続を試みます。
func Connect(url string, logger *slog.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(url,
		nats.Name("onboarding-workflow"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("natsbus: connect %s: %w", url, err)
	}
	return conn, nil
}

// Publisher はドメインイベントを JSON で NATS に発行します。
type Publisher struct {
	conn Conn
}

// NewPublisher は Publisher を生成します。
func NewPublisher(conn Conn) *Publisher {
	return &Publisher{conn: conn}
}

// Subject はイベント種別に対応する subject を返します。
func Subject(t employee.EventType) string {
	return SubjectPrefix + string(t)
}

// Publish はイベントを発行します。
func (p *Publisher) Publish(ctx context.Context, event employee.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("natsbus: encode %s: %w", event.Type, err)
	}

	if err := p.conn.Publish(Subject(event.Type), data); err != nil {
		return fmt.Errorf("natsbus: publish %s: %w", event.Type, err)
	}
	return nil
}
