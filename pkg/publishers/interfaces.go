package publishers

import (
	"context"

	"github.com/ctp-hq/event-gateway/pkg/event"
)

// Publisher delivers an envelope to one downstream broker (Kafka, SQS, HTTP, etc).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, routingKey string, msg event.Message) error
}

// Logger is the logging surface shared with the event publisher.
type Logger = event.Logger

func ensureLogger(log Logger) Logger {
	if log == nil {
		return event.NopLogger{}
	}
	return log
}
