package dto

import (
	"customer-api/internal/domain/customer"
	"customer-api/internal/pkg/apperrors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validRequest    = "Valid request"
	validTaxpayerID = "12345678909"
)

func TestCreateCustomerRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		request   CreateCustomerRequest
		wantField string
	}{
		{validRequest, CreateCustomerRequest{Name: "Ana", TaxpayerID: validTaxpayerID, Email: "ana@mail.com"}, ""},
		{"Name too short", CreateCustomerRequest{Name: " A ", TaxpayerID: validTaxpayerID, Email: "ana@mail.com"}, "name"},
		{"Name too long", CreateCustomerRequest{Name: strings.Repeat("a", 151), TaxpayerID: validTaxpayerID, Email: "ana@mail.com"}, "name"},
		{"Name at upper bound", CreateCustomerRequest{Name: strings.Repeat("a", 150), TaxpayerID: validTaxpayerID, Email: "ana@mail.com"}, ""},
		{"Missing taxpayer id", CreateCustomerRequest{Name: "Ana", Email: "ana@mail.com"}, "taxpayerId"},
		{"Missing email", CreateCustomerRequest{Name: "Ana", TaxpayerID: validTaxpayerID}, "email"},
		{"Formatted taxpayer id", CreateCustomerRequest{Name: "Ana", TaxpayerID: "123.456.789-09", Email: "ana@mail.com"}, ""},
		{"Taxpayer id with noise", CreateCustomerRequest{Name: "Ana", TaxpayerID: "abc123.456.789-09xyz", Email: "ana@mail.com"}, "taxpayerId"},
		{"Taxpayer id with spaces inside", CreateCustomerRequest{Name: "Ana", TaxpayerID: "123 456 789 09", Email: "ana@mail.com"}, "taxpayerId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, tt.wantField, apperrors.FieldOf(err))
		})
	}
}

func TestUpdateCustomerRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		request   UpdateCustomerRequest
		wantField string
	}{
		{validRequest, UpdateCustomerRequest{"name": "Ana Lima", "active": false}, ""},
		{"Only active", UpdateCustomerRequest{"active": true}, ""},
		{"Empty name", UpdateCustomerRequest{"name": ""}, "name"},
		{"Name too long", UpdateCustomerRequest{"name": strings.Repeat("a", 151)}, "name"},
		{"Name at upper bound", UpdateCustomerRequest{"name": strings.Repeat("a", 150)}, ""},
		{"Name not a string", UpdateCustomerRequest{"name": 7.0}, "name"},
		{"Punctuated taxpayer id", UpdateCustomerRequest{"taxpayerId": "529.982.247-25"}, ""},
		{"Taxpayer id with noise", UpdateCustomerRequest{"taxpayerId": "abc123.456.789-09xyz"}, "taxpayerId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, tt.wantField, apperrors.FieldOf(err))
		})
	}

	t.Run("Empty body", func(t *testing.T) {
		assert.ErrorIs(t, UpdateCustomerRequest{}.Validate(), apperrors.ErrInvalidArgument)
	})

	t.Run("Trims name", func(t *testing.T) {
		req := UpdateCustomerRequest{"name": "  Ana Lima "}

		require.NoError(t, req.Validate())
		assert.Equal(t, "Ana Lima", req["name"])
	})

	t.Run("Leaves other value types to the service", func(t *testing.T) {
		assert.NoError(t, UpdateCustomerRequest{"taxpayerId": 123}.Validate())
	})
}

func TestCreateCustomerRequestToDomain(t *testing.T) {
	t.Run(validRequest, func(t *testing.T) {
		req := CreateCustomerRequest{Name: "  Ana  ", TaxpayerID: "123.456.789-09", Email: "ana@mail.com"}

		cust, err := req.ToDomain()

		require.NoError(t, err)
		assert.Equal(t, "Ana", cust.Name)
		assert.Equal(t, validTaxpayerID, cust.TaxpayerID.Value())
		assert.True(t, cust.Active)
		assert.False(t, cust.IsPersisted())
	})

	t.Run("Invalid taxpayer id", func(t *testing.T) {
		req := CreateCustomerRequest{Name: "Ana", TaxpayerID: "12345678900", Email: "ana@mail.com"}

		_, err := req.ToDomain()

		assert.ErrorIs(t, err, customer.ErrInvalidTaxpayerIDCheckDigit)
	})

	t.Run("Invalid email", func(t *testing.T) {
		req := CreateCustomerRequest{Name: "Ana", TaxpayerID: validTaxpayerID, Email: "ana.mail.com"}

		_, err := req.ToDomain()

		assert.ErrorIs(t, err, customer.ErrInvalidEmailFormat)
	})
}

func TestNewCustomerResponse(t *testing.T) {
	t.Run("Nil customer", func(t *testing.T) {
		assert.Equal(t, CustomerResponse{}, NewCustomerResponse(nil))
	})

	t.Run("Formats taxpayer id", func(t *testing.T) {
		tid, _ := customer.NewTaxpayerID(validTaxpayerID)
		email, _ := customer.NewEmail("ana@mail.com")
		cust := customer.NewCustomer("Ana", tid, email)
		cust.CustomerID = 9
		cust.PasswordHash = "hash"

		resp := NewCustomerResponse(cust)

		assert.Equal(t, int64(9), resp.ID)
		assert.Equal(t, "123.456.789-09", resp.TaxpayerID)
		assert.Equal(t, "ana@mail.com", resp.Email)
		assert.True(t, resp.Active)
	})
}

func TestNewCustomerListResponse(t *testing.T) {
	tid, _ := customer.NewTaxpayerID(validTaxpayerID)
	email, _ := customer.NewEmail("ana@mail.com")
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cust := &customer.Customer{CustomerID: 1, Name: "Ana", TaxpayerID: tid, Email: email, CreateDate: created, UpdatedAt: created}

	resp := NewCustomerListResponse([]*customer.Customer{cust, nil})

	require.Len(t, resp, 1)
	assert.Equal(t, created, resp[0].CreateDate)
	assert.Equal(t, "123.456.789-09", resp[0].TaxpayerID)
	assert.NotNil(t, NewCustomerListResponse(nil))
}

func TestAuthRequestsValidate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Identifier: "ana@mail.com", Password: "secret123"}).Validate())
	assert.Equal(t, "identifier", apperrors.FieldOf((&LoginRequest{Password: "x"}).Validate()))
	assert.Equal(t, "password", apperrors.FieldOf((&LoginRequest{Identifier: "ana@mail.com"}).Validate()))

	assert.NoError(t, (&VerifyTokenRequest{Token: "a.b.c"}).Validate())
	assert.ErrorIs(t, (&VerifyTokenRequest{Token: "  "}).Validate(), apperrors.ErrValidation)
}
