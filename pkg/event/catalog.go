package event

import (
	"errors"
	"fmt"
	"strings"
)

// EventType is the event-kind label stamped on the envelope header.
type EventType string

// Source names the system that raised the event.
type Source string

// Channel names the respondent channel the event came through.
type Channel string

const (
	SurveyLaunched          EventType = "SURVEY_LAUNCHED"
	RespondentAuthenticated EventType = "RESPONDENT_AUTHENTICATED"
	FulfilmentRequested     EventType = "FULFILMENT_REQUESTED"
	RefusalReceived         EventType = "REFUSAL_RECEIVED"
	AddressNotValid         EventType = "ADDRESS_NOT_VALID"

	SourceRespondentHome   Source = "RESPONDENT_HOME"
	SourceContactCentreAPI Source = "CONTACT_CENTRE_API"

	ChannelRH Channel = "RH"
	ChannelCC Channel = "CC"
)

// Descriptor binds one business payload variant to its labels and envelope constructor.
type Descriptor struct {
	Type    EventType
	Source  Source
	Channel Channel

	assemble func(Header, Payload) (Message, error)
	nilPtr   func(Payload) bool
}

// NewDescriptor declares a catalog entry whose adapter accepts variant B and
// produces envelope payload P.
func NewDescriptor[B Payload, P any](typ EventType, source Source, channel Channel, adapt func(B) P) Descriptor {
	return Descriptor{
		Type:    typ,
		Source:  source,
		Channel: channel,
		assemble: func(h Header, p Payload) (Message, error) {
			b, err := variant[B](p)
			if err != nil {
				return nil, err
			}
			return NewEnvelope(h, adapt(b)), nil
		},
		nilPtr: func(p Payload) bool {
			ptr, ok := any(p).(*B)
			return ok && ptr == nil
		},
	}
}

// variant unwraps p as B, accepting a non-nil *B as well.
func variant[B Payload](p Payload) (B, error) {
	var zero B
	if v, ok := any(p).(B); ok {
		return v, nil
	}
	if ptr, ok := any(p).(*B); ok {
		if ptr == nil {
			return zero, fmt.Errorf("nil %T payload", ptr)
		}
		return *ptr, nil
	}
	return zero, fmt.Errorf("adapter for %T received %T", zero, p)
}

// Assemble builds the envelope for payload under header h. The header type
// must be the descriptor's own.
func (d Descriptor) Assemble(h Header, p Payload) (Message, error) {
	if d.assemble == nil {
		return nil, fmt.Errorf("descriptor %s has no envelope constructor", d.Type)
	}
	if h.Type != d.Type {
		return nil, fmt.Errorf("header type %s does not match descriptor %s", h.Type, d.Type)
	}
	return d.assemble(h, p)
}

// Catalog is an immutable table of descriptors keyed by event type.
type Catalog struct {
	ordered []Descriptor
	idx     map[EventType]Descriptor
}

// NewCatalog validates descriptors and freezes them into a catalog. Duplicate
// event types are rejected so every payload maps to exactly one descriptor.
func NewCatalog(descriptors ...Descriptor) (*Catalog, error) {
	if len(descriptors) == 0 {
		return nil, errors.New("catalog requires at least one descriptor")
	}

	c := &Catalog{
		ordered: make([]Descriptor, 0, len(descriptors)),
		idx:     make(map[EventType]Descriptor, len(descriptors)),
	}
	for i, d := range descriptors {
		if strings.TrimSpace(string(d.Type)) == "" {
			return nil, fmt.Errorf("descriptors[%d]: event type is required", i)
		}
		if d.Source == "" || d.Channel == "" {
			return nil, fmt.Errorf("descriptor %s: source and channel are required", d.Type)
		}
		if d.assemble == nil {
			return nil, fmt.Errorf("descriptor %s: built without NewDescriptor", d.Type)
		}
		if _, exists := c.idx[d.Type]; exists {
			return nil, fmt.Errorf("duplicate descriptor for event type %s", d.Type)
		}
		c.ordered = append(c.ordered, d)
		c.idx[d.Type] = d
	}
	return c, nil
}

var defaultCatalog = mustCatalog(
	NewDescriptor(SurveyLaunched, SourceRespondentHome, ChannelRH, adaptSurveyLaunched),
	NewDescriptor(RespondentAuthenticated, SourceRespondentHome, ChannelRH, adaptRespondentAuthenticated),
	NewDescriptor(FulfilmentRequested, SourceContactCentreAPI, ChannelCC, adaptFulfilment),
	NewDescriptor(RefusalReceived, SourceContactCentreAPI, ChannelCC, adaptRefusal),
	NewDescriptor(AddressNotValid, SourceContactCentreAPI, ChannelCC, adaptAddressNotValid),
)

func mustCatalog(descriptors ...Descriptor) *Catalog {
	c, err := NewCatalog(descriptors...)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalog returns the process-wide catalog of supported events.
func DefaultCatalog() *Catalog { return defaultCatalog }

// Lookup returns the descriptor for payload or an UnsupportedPayload error.
func (c *Catalog) Lookup(p Payload) (Descriptor, error) {
	if p == nil {
		return Descriptor{}, newError(FaultUnsupportedPayload, nil, "nil payload not supported")
	}
	if c != nil {
		for _, d := range c.ordered {
			if d.nilPtr(p) {
				return Descriptor{}, newError(FaultUnsupportedPayload, nil, "nil %T payload not supported", p)
			}
		}
	}
	typ, ok := eventTypeOf(p)
	if !ok {
		return Descriptor{}, newError(FaultUnsupportedPayload, nil, "%T has no readable event type", p)
	}
	d, ok := c.Descriptor(typ)
	if !ok {
		return Descriptor{}, newError(FaultUnsupportedPayload, nil, "%T not supported", p)
	}
	return d, nil
}

// eventTypeOf reads the discriminant, reporting false when the payload is a
// nil pointer to a type the catalog does not know.
func eventTypeOf(p Payload) (typ EventType, ok bool) {
	defer func() {
		if recover() != nil {
			typ, ok = "", false
		}
	}()
	return p.EventType(), true
}

// Descriptor returns the entry registered for typ.
func (c *Catalog) Descriptor(typ EventType) (Descriptor, bool) {
	if c == nil {
		return Descriptor{}, false
	}
	d, ok := c.idx[typ]
	return d, ok
}

// Descriptors returns the entries in registration order.
func (c *Catalog) Descriptors() []Descriptor {
	if c == nil {
		return nil
	}
	out := make([]Descriptor, len(c.ordered))
	copy(out, c.ordered)
	return out
}
