package journal

import (
	"context"

	"github.com/ctp-hq/event-gateway/pkg/event"
)

// Sender records every envelope its inner sender accepted. A journal write
// failure is logged and never fails the publish: the envelope is already on
// the broker and a retry would duplicate it.
type Sender struct {
	next  event.Sender
	store Store
	log   event.Logger
}

// NewSender decorates next with journaling into store.
func NewSender(next event.Sender, store Store, log event.Logger) *Sender {
	if store == nil {
		store = noopStore{}
	}
	return &Sender{next: next, store: store, log: log}
}

func (s *Sender) Send(ctx context.Context, routingKey string, msg event.Message) error {
	if err := s.next.Send(ctx, routingKey, msg); err != nil {
		return err
	}

	h := msg.Header()
	err := s.store.Record(ctx, Entry{
		TransactionID: h.TransactionID,
		EventType:     string(h.Type),
		RoutingKey:    routingKey,
		PublishedAt:   h.DateTime,
	})
	if err != nil && s.log != nil {
		s.log.WarnObj("journal record failed", "journal_error", map[string]any{
			"transaction_id": h.TransactionID,
			"error":          err.Error(),
		})
	}
	return nil
}
