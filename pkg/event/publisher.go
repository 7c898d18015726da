package event

import (
	"context"
	"errors"
	"fmt"
)

// Sender hands an assembled envelope to a message transport.
type Sender interface {
	Send(ctx context.Context, routingKey string, msg Message) error
}

// EventPublisher converts business payloads into envelopes and publishes them.
// It holds no per-call state and is safe for concurrent use.
type EventPublisher struct {
	catalog *Catalog
	headers *HeaderBuilder
	sender  Sender
	log     Logger
}

// Option customizes an EventPublisher.
type Option func(*EventPublisher)

// WithCatalog replaces the default catalog.
func WithCatalog(c *Catalog) Option {
	return func(p *EventPublisher) {
		if c != nil {
			p.catalog = c
		}
	}
}

// WithHeaderBuilder replaces the wall clock / UUID header builder.
func WithHeaderBuilder(b *HeaderBuilder) Option {
	return func(p *EventPublisher) {
		if b != nil {
			p.headers = b
		}
	}
}

// NewEventPublisher wires a publisher around sender.
func NewEventPublisher(sender Sender, log Logger, opts ...Option) (*EventPublisher, error) {
	if sender == nil {
		return nil, errors.New("event publisher requires a sender")
	}
	p := &EventPublisher{
		catalog: DefaultCatalog(),
		headers: NewHeaderBuilder(nil, nil),
		sender:  sender,
		log:     ensureLogger(log),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SendEvent publishes payload under routingKey and returns the transaction id
// stamped on the envelope. Nothing reaches the sender unless the envelope was
// fully assembled; exactly one Send is issued per successful call.
func (p *EventPublisher) SendEvent(ctx context.Context, routingKey string, payload Payload) (string, error) {
	desc, err := p.catalog.Lookup(payload)
	if err != nil {
		p.log.ErrorObj("event payload not supported", "event_error", map[string]any{
			"payload_type": fmt.Sprintf("%T", payload),
			"routing_key":  routingKey,
			"error":        err.Error(),
		})
		return "", err
	}

	msg, err := p.createMessage(desc, payload)
	if err != nil {
		p.log.ErrorObj("event message construction failed", "event_error", map[string]any{
			"payload_type": fmt.Sprintf("%T", payload),
			"event_type":   desc.Type,
			"routing_key":  routingKey,
			"error":        err.Error(),
		})
		return "", err
	}
	header := msg.Header()

	if err := p.sender.Send(ctx, routingKey, msg); err != nil {
		p.log.ErrorObj("event publish failed", "event_error", map[string]any{
			"payload_type":   fmt.Sprintf("%T", payload),
			"event_type":     header.Type,
			"routing_key":    routingKey,
			"transaction_id": header.TransactionID,
			"error":          err.Error(),
		})
		return "", newError(FaultTransport, err, "publish %s to %q", header.Type, routingKey)
	}

	p.log.DebugObj("event published", "event_meta", map[string]any{
		"event_type":     header.Type,
		"routing_key":    routingKey,
		"transaction_id": header.TransactionID,
	})
	return header.TransactionID, nil
}

// createMessage stamps a fresh header and assembles the typed envelope for desc.
func (p *EventPublisher) createMessage(desc Descriptor, payload Payload) (Message, error) {
	header := p.headers.Build(desc)
	msg, err := desc.Assemble(header, payload)
	if err != nil {
		return nil, newError(FaultMessageConstruction, err, "build %s message", desc.Type)
	}
	if msg == nil || msg.Header().TransactionID == "" {
		return nil, newError(FaultMessageConstruction, nil, "%s message has no transaction id", desc.Type)
	}
	return msg, nil
}
