package customer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTaxpayerIDFormat = errors.New("invalid taxpayer id: must contain exactly 11 digits")

	ErrInvalidTaxpayerIDPattern = errors.New("invalid taxpayer id: repeated digit sequence")

	ErrInvalidTaxpayerIDCheckDigit = errors.New("invalid taxpayer id: check digits do not match")

	ErrInvalidEmailFormat = errors.New("invalid email address")

	ErrDuplicateTaxpayerID = errors.New("taxpayer id already registered")

	ErrDuplicateEmail = errors.New("email already registered")

	ErrWeakCredential = errors.New("password too short: minimum 8 characters")

	ErrNotFoundOrInactive = errors.New("customer not found or inactive")

	ErrNotFound = errors.New("customer not found")

	ErrInvalidFields = errors.New("invalid fields")

	ErrInvalidFieldValue = errors.New("invalid field value")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InvalidFieldsError lists update keys outside the allowed set.
type InvalidFieldsError struct {
	Fields []string
}

func (e *InvalidFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidFields.Error(), strings.Join(e.Fields, ", "))
}

func (e *InvalidFieldsError) Is(target error) bool {
	return target == ErrInvalidFields
}

// IsValidationError reports whether err is one of the value object construction failures.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTaxpayerIDFormat) ||
		errors.Is(err, ErrInvalidTaxpayerIDPattern) ||
		errors.Is(err, ErrInvalidTaxpayerIDCheckDigit) ||
		errors.Is(err, ErrInvalidEmailFormat)
}
