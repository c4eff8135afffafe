package model

import (
	"strings"
	"time"
)

// ConsentStatus is the decision recorded for a contact method
type ConsentStatus string

const (
	// ConsentStatusAccepted means customer agreed to be contacted
	ConsentStatusAccepted ConsentStatus = "ACCEPTED"
	// ConsentStatusDeclined means customer refused to be contacted
	ConsentStatusDeclined ConsentStatus = "DECLINED"
)

// ConsentStatusType tells whether the decision was given explicitly by the
// customer or implied by an existing business relationship
type ConsentStatusType string

const (
	ConsentStatusTypeExplicit ConsentStatusType = "EXPLICIT"
	ConsentStatusTypeImplicit ConsentStatusType = "IMPLICIT"
)

// ContactMethod is a marketing communication channel
type ContactMethod string

const (
	ContactMethodSms                 ContactMethod = "SMS"
	ContactMethodEmail               ContactMethod = "EMAIL"
	ContactMethodPhone               ContactMethod = "PHONE"
	ContactMethodPost                ContactMethod = "POST"
	ContactMethodAutomatedVoiceCalls ContactMethod = "AUTOMATED_VOICE_CALLS"
)

// ParseConsentStatus normalizes case-insensitive input to a canonical status
func ParseConsentStatus(s string) (ConsentStatus, bool) {
	switch ConsentStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case ConsentStatusAccepted:
		return ConsentStatusAccepted, true
	case ConsentStatusDeclined:
		return ConsentStatusDeclined, true
	}
	return "", false
}

// ParseConsentStatusType normalizes case-insensitive input to a canonical status type
func ParseConsentStatusType(s string) (ConsentStatusType, bool) {
	switch ConsentStatusType(strings.ToUpper(strings.TrimSpace(s))) {
	case ConsentStatusTypeExplicit:
		return ConsentStatusTypeExplicit, true
	case ConsentStatusTypeImplicit:
		return ConsentStatusTypeImplicit, true
	}
	return "", false
}

// Customer is customer model entity as exposed by the upstream service
type Customer struct {
	CustomerID    string   `json:"customerId"`
	IsValid       bool     `json:"isValid"`
	CustomerName  string   `json:"customerName"`
	BusinessUnits []string `json:"businessUnits"`
}

// Consent is a single contact-method consent within a business unit
type Consent struct {
	ID            string            `json:"id,omitempty"`
	ContactMethod string            `json:"contactMethod"`
	Status        ConsentStatus     `json:"status"`
	StatusType    ConsentStatusType `json:"statusType"`
	LastUpdated   time.Time         `json:"lastUpdated"`
}

// BusinessUnitConsents groups consents belonging to one business unit
type BusinessUnitConsents struct {
	BusinessUnit string    `json:"businessUnit"`
	Consents     []Consent `json:"consents"`
}

// ConsentRecord is the full per-customer consent document
type ConsentRecord struct {
	CustomerID    string                 `json:"customerId"`
	BusinessUnits []BusinessUnitConsents `json:"businessUnits"`
}

// TotalConsents counts consents across all business units in declaration order
func (r *ConsentRecord) TotalConsents() int {
	var total int
	for i := range r.BusinessUnits {
		total += len(r.BusinessUnits[i].Consents)
	}
	return total
}
