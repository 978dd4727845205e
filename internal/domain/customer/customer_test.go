package customer_test

import (
	"customer-api/internal/domain/customer"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCustomer(t *testing.T, name, taxpayerID, email string) *customer.Customer {
	t.Helper()
	id, err := customer.NewTaxpayerID(taxpayerID)
	require.NoError(t, err)
	addr, err := customer.NewEmail(email)
	require.NoError(t, err)
	return customer.NewCustomer(name, id, addr)
}

func TestNewCustomer(t *testing.T) {
	cust := mustCustomer(t, "Ana Silva", "123.456.789-09", "ana@mail.com")

	assert.NotNil(t, cust, "NewCustomer should return a non-nil customer")
	assert.Equal(t, "Ana Silva", cust.Name)
	assert.Equal(t, "12345678909", cust.TaxpayerID.Value())
	assert.Equal(t, "ana@mail.com", cust.Email.Value())
	assert.True(t, cust.Active, "New customer should be active")
	assert.Empty(t, cust.PasswordHash)
	assert.Equal(t, int64(0), cust.CustomerID, "CustomerID should be initialized to 0")
	assert.False(t, cust.IsPersisted())
	assert.True(t, cust.CreateDate.IsZero(), "CreateDate is assigned by storage")
}

func TestCustomer_ActivateDeactivate(t *testing.T) {
	cust := mustCustomer(t, "Ana Silva", "123.456.789-09", "ana@mail.com")

	cust.Deactivate()
	assert.False(t, cust.Active)

	cust.Deactivate()
	assert.False(t, cust.Active, "Deactivate should be idempotent")

	cust.Activate()
	assert.True(t, cust.Active)
}

func TestCustomer_JSONHidesSecrets(t *testing.T) {
	cust := mustCustomer(t, "Ana Silva", "123.456.789-09", "ana@mail.com")
	cust.PasswordHash = "$2a$12$secret"

	raw, err := json.Marshal(cust)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "PasswordHash")
}

func TestNewClaims(t *testing.T) {
	cust := mustCustomer(t, "Ana Silva", "123.456.789-09", "ana@mail.com")
	cust.CustomerID = 7

	claims := customer.NewClaims(cust)

	assert.Equal(t, int64(7), claims[customer.ClaimID])
	assert.Equal(t, customer.RoleCustomer, claims[customer.ClaimRole])

	taxpayerID, ok := claims.String(customer.ClaimTaxpayerID)
	assert.True(t, ok)
	assert.Equal(t, "12345678909", taxpayerID)

	id, ok := claims.String(customer.ClaimID)
	assert.True(t, ok)
	assert.Equal(t, "7", id)

	_, ok = claims.String("missing")
	assert.False(t, ok)

	claims[customer.ClaimEmail] = ""
	_, ok = claims.String(customer.ClaimEmail)
	assert.False(t, ok)
}

func TestInvalidFieldsError(t *testing.T) {
	err := &customer.InvalidFieldsError{Fields: []string{"bar", "foo"}}

	assert.ErrorIs(t, err, customer.ErrInvalidFields)
	assert.EqualError(t, err, "invalid fields: bar, foo")
	assert.False(t, customer.IsValidationError(err))
}
