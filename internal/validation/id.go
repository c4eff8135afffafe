package validation

import (
	"net/http"
	"strconv"
	"time"

	"github.com/chleo-smith/consent-gateway/internal/errors"
)

const (
	nationalIDLength = 13
	dobDigits        = 6
	centuryPivot     = 50
	maxAgeYears      = 120
)

// ValidateNationalID applies the full boundary check for ID-bearing routes:
// length, digits-only, then embedded date of birth. The current time is
// injected so the date checks stay deterministic under test.
func ValidateNationalID(id string, now time.Time) *errors.APIError {
	if len(id) != nationalIDLength {
		return errors.NewAPIError(errors.CodeInvalidIDLength, http.StatusBadRequest, "Customer ID must be exactly 13 digits").
			WithCustomerID(id)
	}

	for _, r := range id {
		if r < '0' || r > '9' {
			return errors.NewAPIError(errors.CodeInvalidIDFormat, http.StatusBadRequest, "Customer ID must contain digits only").
				WithCustomerID(id)
		}
	}

	if !IsValidDateOfBirth(id, now) {
		return errors.NewAPIError(errors.CodeInvalidDateOfBirth, http.StatusBadRequest, "Invalid birth day entered").
			WithCustomerID(id)
	}
	return nil
}

// IsValidDateOfBirth checks that the first six characters of a national ID
// encode a plausible YYMMDD birth date. Two-digit years below 50 resolve to
// the 2000s, the rest to the 1900s.
func IsValidDateOfBirth(id string, now time.Time) bool {
	if len(id) < dobDigits {
		return false
	}

	year, err := strconv.Atoi(id[0:2])
	if err != nil {
		return false
	}
	month, err := strconv.Atoi(id[2:4])
	if err != nil {
		return false
	}
	day, err := strconv.Atoi(id[4:6])
	if err != nil {
		return false
	}

	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > 31 {
		return false
	}

	fullYear := 2000 + year
	if year >= centuryPivot {
		fullYear = 1900 + year
	}

	// time.Date normalizes overflowing values (Apr 31 becomes May 1),
	// so a round-trip mismatch means the calendar date does not exist
	birthDate := time.Date(fullYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if birthDate.Year() != fullYear || birthDate.Month() != time.Month(month) || birthDate.Day() != day {
		return false
	}

	if birthDate.After(now) {
		return false
	}

	if fullYear < now.Year()-maxAgeYears {
		return false
	}
	return true
}
