package publishers

import (
	"encoding/json"
	"fmt"

	"github.com/ctp-hq/event-gateway/pkg/event"
)

// Attribute names carried alongside the envelope body on every sink.
const (
	AttrRoutingKey    = "routing_key"
	AttrEventType     = "event_type"
	AttrTransactionID = "event_id"
)

// wireMessage is an envelope serialized for a sink.
type wireMessage struct {
	body       []byte
	attributes map[string]string
	header     event.Header
}

// encode marshals msg to its JSON wire form and derives the routing attributes.
func encode(routingKey string, msg event.Message) (wireMessage, error) {
	if msg == nil {
		return wireMessage{}, fmt.Errorf("nil message")
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return wireMessage{}, fmt.Errorf("marshal envelope: %w", err)
	}
	h := msg.Header()
	return wireMessage{
		body:   body,
		header: h,
		attributes: map[string]string{
			AttrRoutingKey:    routingKey,
			AttrEventType:     string(h.Type),
			AttrTransactionID: h.TransactionID,
		},
	}, nil
}
