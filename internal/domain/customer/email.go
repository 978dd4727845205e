package customer

import "regexp"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email is a loosely validated address. Case is preserved.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, ErrInvalidEmailFormat
	}
	return Email{value: raw}, nil
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }

func (e Email) Equals(other Email) bool {
	return e.value == other.value
}
