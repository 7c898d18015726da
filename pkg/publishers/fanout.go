package publishers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ctp-hq/event-gateway/pkg/event"
)

// Fanout dispatches envelopes to all configured publishers.
type Fanout struct {
	publishers []Publisher
}

// NewFanout builds a dispatcher that fans out envelopes across publishers.
func NewFanout(pubs []Publisher) *Fanout {
	cp := make([]Publisher, 0, len(pubs))
	for _, p := range pubs {
		if p == nil {
			continue
		}
		cp = append(cp, p)
	}
	return &Fanout{publishers: cp}
}

// Publish forwards the envelope to every registered publisher.
// It returns the number of publishers that successfully handled it.
func (f *Fanout) Publish(ctx context.Context, routingKey string, msg event.Message) (int, error) {
	if f == nil || len(f.publishers) == 0 {
		return 0, errors.New("no publishers configured")
	}

	var errs []error
	successful := 0
	for _, p := range f.publishers {
		if err := p.Publish(ctx, routingKey, msg); err != nil {
			errs = append(errs, fmt.Errorf("%s publisher[%s]: %w", p.Type(), p.ID(), err))
		} else {
			successful++
		}
	}
	return successful, errors.Join(errs...)
}

// Send implements event.Sender; any failing publisher fails the send.
func (f *Fanout) Send(ctx context.Context, routingKey string, msg event.Message) error {
	_, err := f.Publish(ctx, routingKey, msg)
	return err
}

// Size returns the number of active publishers.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.publishers)
}

// Close releases broker connections held by the publishers.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	return closeAll(f.publishers)
}
