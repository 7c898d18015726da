package event

import "time"

// Header is the provenance block stamped on every envelope.
type Header struct {
	Type          EventType `json:"type"`
	Source        Source    `json:"source"`
	Channel       Channel   `json:"channel"`
	DateTime      time.Time `json:"dateTime"`
	TransactionID string    `json:"transactionId"`
}

// Message is a fully assembled envelope ready for a transport.
type Message interface {
	Header() Header
}

// Envelope is the wire document: {"event": header, "payload": adapted payload}.
type Envelope[P any] struct {
	Event   Header `json:"event"`
	Payload P      `json:"payload"`
}

// Header returns the envelope header.
func (e *Envelope[P]) Header() Header { return e.Event }

// NewEnvelope assembles a typed envelope from its header and payload.
func NewEnvelope[P any](header Header, payload P) *Envelope[P] {
	return &Envelope[P]{Event: header, Payload: payload}
}

type (
	SurveyLaunchedEvent          = Envelope[SurveyLaunchedPayload]
	RespondentAuthenticatedEvent = Envelope[RespondentAuthenticatedPayload]
	FulfilmentRequestedEvent     = Envelope[FulfilmentPayload]
	RespondentRefusalEvent       = Envelope[RespondentRefusalPayload]
	AddressNotValidEvent         = Envelope[AddressNotValidPayload]
)

// SurveyLaunchedPayload wraps a survey launch for downstream consumers.
type SurveyLaunchedPayload struct {
	Response SurveyLaunchedResponse `json:"surveyLaunchedResponse"`
}

type RespondentAuthenticatedPayload struct {
	Response RespondentAuthenticatedResponse `json:"response"`
}

type FulfilmentPayload struct {
	FulfilmentRequest FulfilmentRequest `json:"fulfilmentRequest"`
}

type RespondentRefusalPayload struct {
	Refusal RespondentRefusalDetails `json:"refusal"`
}

type AddressNotValidPayload struct {
	InvalidAddress InvalidAddressDetails `json:"invalidAddress"`
}
