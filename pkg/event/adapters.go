package event

// Adapters reshape a business payload into its envelope payload. Nested
// pointers are copied so a published envelope never shares memory with the caller.

func adaptSurveyLaunched(p SurveyLaunchedResponse) SurveyLaunchedPayload {
	return SurveyLaunchedPayload{Response: p}
}

func adaptRespondentAuthenticated(p RespondentAuthenticatedResponse) RespondentAuthenticatedPayload {
	return RespondentAuthenticatedPayload{Response: p}
}

func adaptFulfilment(p FulfilmentRequest) FulfilmentPayload {
	p.Address = cloneAddress(p.Address)
	p.Contact = cloneContact(p.Contact)
	return FulfilmentPayload{FulfilmentRequest: p}
}

func adaptRefusal(p RespondentRefusalDetails) RespondentRefusalPayload {
	p.CollectionCase = cloneCase(p.CollectionCase)
	p.Contact = cloneContact(p.Contact)
	p.Address = cloneAddress(p.Address)
	return RespondentRefusalPayload{Refusal: p}
}

func adaptAddressNotValid(p InvalidAddressDetails) AddressNotValidPayload {
	p.CollectionCase = cloneCase(p.CollectionCase)
	return AddressNotValidPayload{InvalidAddress: p}
}

func cloneCase(c *CollectionCase) *CollectionCase {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func cloneContact(c *Contact) *Contact {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func cloneAddress(a *AddressCompact) *AddressCompact {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}
