package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConsentStatus(t *testing.T) {
	tests := []struct {
		input string
		want  ConsentStatus
		ok    bool
	}{
		{input: "ACCEPTED", want: ConsentStatusAccepted, ok: true},
		{input: "accepted", want: ConsentStatusAccepted, ok: true},
		{input: "Declined", want: ConsentStatusDeclined, ok: true},
		{input: " declined ", want: ConsentStatusDeclined, ok: true},
		{input: "Maybe", ok: false},
		{input: "", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseConsentStatus(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseConsentStatusType(t *testing.T) {
	tests := []struct {
		input string
		want  ConsentStatusType
		ok    bool
	}{
		{input: "Explicit", want: ConsentStatusTypeExplicit, ok: true},
		{input: "imPLIcit", want: ConsentStatusTypeImplicit, ok: true},
		{input: "forced", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseConsentStatusType(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTotalConsents(t *testing.T) {
	record := ConsentRecord{
		BusinessUnits: []BusinessUnitConsents{
			{BusinessUnit: "Personal Loans", Consents: make([]Consent, 3)},
			{BusinessUnit: "Insurance", Consents: make([]Consent, 2)},
		},
	}
	assert.Equal(t, 5, record.TotalConsents())

	empty := ConsentRecord{}
	assert.Equal(t, 0, empty.TotalConsents())
}
