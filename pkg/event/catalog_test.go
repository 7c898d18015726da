package event

import (
	"errors"
	"testing"
)

func TestDefaultCatalogDescriptors(t *testing.T) {
	want := []struct {
		typ     EventType
		source  Source
		channel Channel
	}{
		{SurveyLaunched, "RESPONDENT_HOME", "RH"},
		{RespondentAuthenticated, "RESPONDENT_HOME", "RH"},
		{FulfilmentRequested, "CONTACT_CENTRE_API", "CC"},
		{RefusalReceived, "CONTACT_CENTRE_API", "CC"},
		{AddressNotValid, "CONTACT_CENTRE_API", "CC"},
	}

	got := DefaultCatalog().Descriptors()
	if len(got) != len(want) {
		t.Fatalf("expected %d descriptors, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Type != w.typ || got[i].Source != w.source || got[i].Channel != w.channel {
			t.Fatalf("descriptor[%d] = %+v, want %+v", i, got[i], w)
		}
	}
}

func TestCatalogLookupIsExclusive(t *testing.T) {
	payloads := []Payload{
		SurveyLaunchedResponse{},
		RespondentAuthenticatedResponse{},
		FulfilmentRequest{},
		RespondentRefusalDetails{},
		InvalidAddressDetails{},
	}
	seen := make(map[EventType]bool)
	for _, p := range payloads {
		d, err := DefaultCatalog().Lookup(p)
		if err != nil {
			t.Fatalf("Lookup(%T): %v", p, err)
		}
		if seen[d.Type] {
			t.Fatalf("%T resolved to already used descriptor %s", p, d.Type)
		}
		seen[d.Type] = true
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog(
		NewDescriptor(RefusalReceived, SourceContactCentreAPI, ChannelCC, adaptRefusal),
		NewDescriptor(RefusalReceived, SourceContactCentreAPI, ChannelCC, adaptRefusal),
	)
	if err == nil {
		t.Fatalf("expected duplicate descriptor error")
	}
}

func TestNewCatalogRejectsIncompleteDescriptors(t *testing.T) {
	cases := map[string]Descriptor{
		"missing type":    NewDescriptor("", SourceRespondentHome, ChannelRH, adaptSurveyLaunched),
		"missing source":  NewDescriptor(SurveyLaunched, "", ChannelRH, adaptSurveyLaunched),
		"no constructor":  {Type: SurveyLaunched, Source: SourceRespondentHome, Channel: ChannelRH},
		"missing channel": NewDescriptor(SurveyLaunched, SourceRespondentHome, "", adaptSurveyLaunched),
	}
	for name, d := range cases {
		if _, err := NewCatalog(d); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := NewCatalog(); err == nil {
		t.Fatalf("expected error for empty catalog")
	}
}

func TestDescriptorAssembleRejectsMismatchedHeader(t *testing.T) {
	d, _ := DefaultCatalog().Descriptor(AddressNotValid)
	_, err := d.Assemble(Header{Type: RefusalReceived, TransactionID: "x"}, InvalidAddressDetails{})
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestParseEventType(t *testing.T) {
	typ, err := DefaultCatalog().ParseEventType(" refusal_received ")
	if err != nil || typ != RefusalReceived {
		t.Fatalf("ParseEventType = %s, %v", typ, err)
	}
	if _, err := DefaultCatalog().ParseEventType("CASE_CREATED"); !errors.Is(err, ErrUnsupportedPayload) {
		t.Fatalf("expected ErrUnsupportedPayload, got %v", err)
	}
}

func TestDecodePayload(t *testing.T) {
	p, err := DecodePayload(AddressNotValid, []byte(`{"reason":"DERELICT","collectionCase":{"id":"c1"}}`))
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	details, ok := p.(InvalidAddressDetails)
	if !ok || details.Reason != "DERELICT" || details.CollectionCase.ID != "c1" {
		t.Fatalf("decoded %#v", p)
	}
	if _, err := DecodePayload(SurveyLaunched, []byte(`{`)); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := DecodePayload("NOPE", []byte(`{}`)); !errors.Is(err, ErrUnsupportedPayload) {
		t.Fatalf("expected ErrUnsupportedPayload, got %v", err)
	}
}
