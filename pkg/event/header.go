package event

import (
	"time"

	"github.com/google/uuid"
)

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a globally unique transaction identifier.
type IDGenerator func() string

// HeaderBuilder stamps envelope headers from a catalog descriptor.
type HeaderBuilder struct {
	now   Clock
	newID IDGenerator
}

// NewHeaderBuilder returns a builder; nil services fall back to the wall clock and random UUIDs.
func NewHeaderBuilder(now Clock, newID IDGenerator) *HeaderBuilder {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &HeaderBuilder{now: now, newID: newID}
}

// Build returns a header carrying the descriptor's labels, a UTC millisecond
// timestamp and a fresh transaction id.
func (b *HeaderBuilder) Build(d Descriptor) Header {
	return Header{
		Type:          d.Type,
		Source:        d.Source,
		Channel:       d.Channel,
		DateTime:      b.now().UTC().Truncate(time.Millisecond),
		TransactionID: b.newID(),
	}
}
