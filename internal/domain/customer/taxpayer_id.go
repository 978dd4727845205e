package customer

import (
	"strings"
)

const taxpayerIDLength = 11

// TaxpayerID is a Brazilian CPF, always held as its 11 digits.
type TaxpayerID struct {
	value string
}

// NewTaxpayerID strips every non-digit character from raw and validates
// length, repeated-digit sequences and both check digits.
func NewTaxpayerID(raw string) (TaxpayerID, error) {
	digits := DigitsOnly(raw)

	if len(digits) != taxpayerIDLength {
		return TaxpayerID{}, ErrInvalidTaxpayerIDFormat
	}
	if digits == strings.Repeat(digits[:1], taxpayerIDLength) {
		return TaxpayerID{}, ErrInvalidTaxpayerIDPattern
	}
	if digits[9:] != checkDigit(digits[:9])+checkDigit(digits[:10]) {
		return TaxpayerID{}, ErrInvalidTaxpayerIDCheckDigit
	}

	return TaxpayerID{value: digits}, nil
}

// DigitsOnly drops everything that is not an ASCII digit.
func DigitsOnly(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// checkDigit weights each digit by len(seq)+1-i, counted from the left.
// The second digit is computed over the original first ten digits.
func checkDigit(seq string) string {
	sum := 0
	for i, r := range seq {
		sum += int(r-'0') * (len(seq) + 1 - i)
	}
	rest := sum % 11
	if rest < 2 {
		return "0"
	}
	return string(rune('0' + 11 - rest))
}

func (t TaxpayerID) Value() string { return t.value }

func (t TaxpayerID) Formatted() string {
	if t.IsZero() {
		return ""
	}
	v := t.value
	return v[:3] + "." + v[3:6] + "." + v[6:9] + "-" + v[9:]
}

func (t TaxpayerID) String() string { return t.Formatted() }

func (t TaxpayerID) IsZero() bool { return t.value == "" }

func (t TaxpayerID) Equals(other TaxpayerID) bool {
	return t.value == other.value
}
