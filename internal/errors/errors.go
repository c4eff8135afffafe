package errors

import (
	"net/http"
)

// Code identifies an error condition in the uniform response envelope
type Code string

const (
	CodeInvalidDateOfBirth     Code = "INVALID_DATE_OF_BIRTH"
	CodeInvalidIDLength        Code = "INVALID_ID_LENGTH"
	CodeInvalidIDFormat        Code = "INVALID_ID_FORMAT"
	CodeInvalidConsentData     Code = "INVALID_CONSENT_DATA"
	CodeCustomerNotFound       Code = "CUSTOMER_NOT_FOUND"
	CodeConsentsNotFound       Code = "CONSENTS_NOT_FOUND"
	CodeConsentNotFound        Code = "CONSENT_NOT_FOUND"
	CodeInvalidResponseFormat  Code = "INVALID_RESPONSE_FORMAT"
	CodeInvalidJSONResponse    Code = "INVALID_JSON_RESPONSE"
	CodeNetworkError           Code = "NETWORK_ERROR"
	CodeAPIConnectionError     Code = "API_CONNECTION_ERROR"
	CodeDatabaseError          Code = "DATABASE_ERROR"
	CodeDatabaseNotInitialized Code = "DATABASE_NOT_INITIALIZED"
	CodeServerError            Code = "SERVER_ERROR"
)

// APIError is an error which maps one-to-one onto the response envelope
type APIError struct {
	Code       Code
	Status     int
	Message    string
	Source     string
	CustomerID string
	ConsentID  string
	Details    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError builds new APIError
func NewAPIError(code Code, status int, msg string) *APIError {
	return &APIError{
		Code:    code,
		Status:  status,
		Message: msg,
	}
}

// WithSource tags error with the datasource it originates from
func (e *APIError) WithSource(source string) *APIError {
	e.Source = source
	return e
}

// WithCustomerID attaches customer identifier to the envelope
func (e *APIError) WithCustomerID(id string) *APIError {
	e.CustomerID = id
	return e
}

// WithConsentID attaches consent identifier to the envelope
func (e *APIError) WithConsentID(id string) *APIError {
	e.ConsentID = id
	return e
}

// WithDetails attaches diagnostic text, rendered in development mode only
func (e *APIError) WithDetails(details string) *APIError {
	e.Details = details
	return e
}

// Envelope is the uniform error response body
type Envelope struct {
	Success bool        `json:"success"`
	Source  string      `json:"source,omitempty"`
	Error   EnvelopeErr `json:"error"`
}

// EnvelopeErr is the error section of the envelope
type EnvelopeErr struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	CustomerID string `json:"customerId,omitempty"`
	ConsentID  string `json:"consentId,omitempty"`
	Details    string `json:"details,omitempty"`
}

// Envelope renders the error as a response body, details are included
// only when requested by the caller (development mode)
func (e *APIError) Envelope(withDetails bool) Envelope {
	env := Envelope{
		Source: e.Source,
		Error: EnvelopeErr{
			Code:       e.Code,
			Message:    e.Message,
			CustomerID: e.CustomerID,
			ConsentID:  e.ConsentID,
		},
	}
	if withDetails {
		env.Error.Details = e.Details
	}
	return env
}

// ServerError builds generic internal error
func ServerError() *APIError {
	return NewAPIError(CodeServerError, http.StatusInternalServerError, "Internal server error")
}
