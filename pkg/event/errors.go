package event

import "fmt"

// Fault classifies why a publish request failed.
type Fault string

const (
	FaultUnsupportedPayload  Fault = "UNSUPPORTED_PAYLOAD"
	FaultMessageConstruction Fault = "MESSAGE_CONSTRUCTION"
	FaultTransport           Fault = "TRANSPORT"
)

// Sentinels for errors.Is checks against the fault kind.
var (
	ErrUnsupportedPayload  = &Error{Fault: FaultUnsupportedPayload}
	ErrMessageConstruction = &Error{Fault: FaultMessageConstruction}
	ErrTransport           = &Error{Fault: FaultTransport}
)

// Error carries a fault kind, a message and an optional cause.
type Error struct {
	Fault   Fault
	Message string
	Err     error
}

func newError(fault Fault, cause error, format string, args ...any) *Error {
	return &Error{Fault: fault, Message: fmt.Sprintf(format, args...), Err: cause}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Fault)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Fault, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Fault, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same fault.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Fault == e.Fault
}
