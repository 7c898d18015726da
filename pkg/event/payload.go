package event

// Payload is a business event trigger handed to the publisher by upstream code.
// EventType is the discriminant the catalog dispatches on.
type Payload interface {
	EventType() EventType
}

// CollectionCase identifies the case a respondent event relates to.
type CollectionCase struct {
	ID string `json:"id"`
}

// Contact holds the respondent's contact details.
type Contact struct {
	Title    string `json:"title,omitempty"`
	Forename string `json:"forename,omitempty"`
	Surname  string `json:"surname,omitempty"`
	TelNo    string `json:"telNo,omitempty"`
}

// AddressCompact is the short address form carried on contact centre events.
type AddressCompact struct {
	AddressLine1 string `json:"addressLine1,omitempty"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	AddressLine3 string `json:"addressLine3,omitempty"`
	TownName     string `json:"townName,omitempty"`
	Postcode     string `json:"postcode,omitempty"`
	Region       string `json:"region,omitempty"`
	UPRN         string `json:"uprn,omitempty"`
}

// SurveyLaunchedResponse is raised when a respondent launches the online questionnaire.
type SurveyLaunchedResponse struct {
	ResponseID      string `json:"responseId"`
	QuestionnaireID string `json:"questionnaireId,omitempty"`
	CaseID          string `json:"caseId,omitempty"`
	AgentID         string `json:"agentId,omitempty"`
}

func (SurveyLaunchedResponse) EventType() EventType { return SurveyLaunched }

// RespondentAuthenticatedResponse is raised when a respondent enters a valid access code.
type RespondentAuthenticatedResponse struct {
	QuestionnaireID string `json:"questionnaireId"`
	CaseID          string `json:"caseId,omitempty"`
}

func (RespondentAuthenticatedResponse) EventType() EventType { return RespondentAuthenticated }

// FulfilmentRequest asks for material (paper form, access code by SMS) to be sent.
type FulfilmentRequest struct {
	FulfilmentCode   string          `json:"fulfilmentCode"`
	CaseID           string          `json:"caseId"`
	IndividualCaseID string          `json:"individualCaseId,omitempty"`
	Address          *AddressCompact `json:"address,omitempty"`
	Contact          *Contact        `json:"contact,omitempty"`
}

func (FulfilmentRequest) EventType() EventType { return FulfilmentRequested }

// RespondentRefusalDetails records a refusal taken by a contact centre agent.
type RespondentRefusalDetails struct {
	Type           string          `json:"type"`
	Report         string          `json:"report,omitempty"`
	AgentID        string          `json:"agentId,omitempty"`
	CollectionCase *CollectionCase `json:"collectionCase,omitempty"`
	Contact        *Contact        `json:"contact,omitempty"`
	Address        *AddressCompact `json:"address,omitempty"`
}

func (RespondentRefusalDetails) EventType() EventType { return RefusalReceived }

// InvalidAddressDetails reports that a case address does not exist or is not residential.
type InvalidAddressDetails struct {
	Reason         string          `json:"reason"`
	CollectionCase *CollectionCase `json:"collectionCase,omitempty"`
}

func (InvalidAddressDetails) EventType() EventType { return AddressNotValid }
