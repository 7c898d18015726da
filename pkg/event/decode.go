package event

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseEventType resolves a label such as "survey_launched" against the catalog.
func (c *Catalog) ParseEventType(raw string) (EventType, error) {
	typ := EventType(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := c.Descriptor(typ); !ok {
		return "", newError(FaultUnsupportedPayload, nil, "unknown event type %q", raw)
	}
	return typ, nil
}

// DecodePayload decodes a JSON business payload document for typ.
func DecodePayload(typ EventType, data []byte) (Payload, error) {
	switch typ {
	case SurveyLaunched:
		return decodeAs[SurveyLaunchedResponse](typ, data)
	case RespondentAuthenticated:
		return decodeAs[RespondentAuthenticatedResponse](typ, data)
	case FulfilmentRequested:
		return decodeAs[FulfilmentRequest](typ, data)
	case RefusalReceived:
		return decodeAs[RespondentRefusalDetails](typ, data)
	case AddressNotValid:
		return decodeAs[InvalidAddressDetails](typ, data)
	default:
		return nil, newError(FaultUnsupportedPayload, nil, "no payload decoder for %q", typ)
	}
}

func decodeAs[B Payload](typ EventType, data []byte) (Payload, error) {
	var p B
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", typ, err)
	}
	return p, nil
}
