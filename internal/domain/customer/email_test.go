package customer_test

import (
	"customer-api/internal/domain/customer"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEmail(t *testing.T) {
	valid := []string{"ana@mail.com", "Ana.Silva+news@sub.example.com.br"}
	for _, raw := range valid {
		t.Run("Valid "+raw, func(t *testing.T) {
			email, err := customer.NewEmail(raw)
			assert.NoError(t, err)
			assert.Equal(t, raw, email.Value())
		})
	}

	invalid := []string{"", "ana", "ana@", "@test.com", "ana@mail", "ana maria@mail.com", "ana@@mail.com"}
	for _, raw := range invalid {
		t.Run("Invalid "+raw, func(t *testing.T) {
			email, err := customer.NewEmail(raw)
			assert.ErrorIs(t, err, customer.ErrInvalidEmailFormat)
			assert.True(t, email.IsZero())
		})
	}
}

func TestEmail_PreservesCase(t *testing.T) {
	upper, _ := customer.NewEmail("Ana@Mail.com")
	lower, _ := customer.NewEmail("ana@mail.com")

	assert.Equal(t, "Ana@Mail.com", upper.String())
	assert.False(t, upper.Equals(lower))
}
