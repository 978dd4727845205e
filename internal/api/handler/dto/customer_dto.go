package dto

import (
	"customer-api/internal/domain/customer"
	"customer-api/internal/pkg/apperrors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minNameLength = 2
	maxNameLength = 150
)

// taxpayerIDPattern accepts 11 digits with the optional ###.###.###-## punctuation.
var taxpayerIDPattern = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)

func validateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < minNameLength || n > maxNameLength {
		return apperrors.NewValidationError(customer.FieldName, "name must be between 2 and 150 characters")
	}
	return nil
}

func validateTaxpayerIDShape(taxpayerID string) error {
	if !taxpayerIDPattern.MatchString(strings.TrimSpace(taxpayerID)) {
		return apperrors.NewValidationError(customer.FieldTaxpayerID, "taxpayerId must have the form ###.###.###-## or 11 digits")
	}
	return nil
}

type CreateCustomerRequest struct {
	Name       string `json:"name"`
	TaxpayerID string `json:"taxpayerId"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (r *CreateCustomerRequest) Validate() error {
	if err := validateName(r.Name); err != nil {
		return err
	}
	if strings.TrimSpace(r.TaxpayerID) == "" {
		return apperrors.NewValidationError(customer.FieldTaxpayerID, "taxpayerId is required")
	}
	if err := validateTaxpayerIDShape(r.TaxpayerID); err != nil {
		return err
	}
	if strings.TrimSpace(r.Email) == "" {
		return apperrors.NewValidationError(customer.FieldEmail, "email is required")
	}
	return nil
}

// UpdateCustomerRequest is a partial update body. Unknown keys and value types
// other than the ones checked here are left to the update service.
type UpdateCustomerRequest map[string]any

// Validate rejects an empty body, a name outside 2..150 characters and a
// malformed taxpayerId. A valid name is stored trimmed.
func (r UpdateCustomerRequest) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("%w: no fields to update", apperrors.ErrInvalidArgument)
	}
	if raw, ok := r[customer.FieldName]; ok {
		name, isString := raw.(string)
		if !isString {
			return apperrors.NewValidationError(customer.FieldName, "name must be a string")
		}
		if err := validateName(name); err != nil {
			return err
		}
		r[customer.FieldName] = strings.TrimSpace(name)
	}
	if raw, ok := r[customer.FieldTaxpayerID]; ok {
		if taxpayerID, isString := raw.(string); isString {
			if err := validateTaxpayerIDShape(taxpayerID); err != nil {
				return err
			}
		}
	}
	return nil
}

// ToDomain builds a transient customer; value object failures are returned unchanged.
func (r *CreateCustomerRequest) ToDomain() (*customer.Customer, error) {
	taxpayerID, err := customer.NewTaxpayerID(r.TaxpayerID)
	if err != nil {
		return nil, err
	}
	email, err := customer.NewEmail(r.Email)
	if err != nil {
		return nil, err
	}
	return customer.NewCustomer(strings.TrimSpace(r.Name), taxpayerID, email), nil
}

type CustomerResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	TaxpayerID string `json:"taxpayerId"`
	Email      string `json:"email"`
	Active     bool   `json:"active"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:         cust.CustomerID,
		Name:       cust.Name,
		TaxpayerID: cust.TaxpayerID.Formatted(),
		Email:      cust.Email.Value(),
		Active:     cust.Active,
	}
}

type CustomerListResponse struct {
	CustomerResponse
	CreateDate time.Time `json:"createDate"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerListResponse {
	resp := make([]CustomerListResponse, 0, len(customers))
	for _, c := range customers {
		if c == nil {
			continue
		}
		resp = append(resp, CustomerListResponse{
			CustomerResponse: NewCustomerResponse(c),
			CreateDate:       c.CreateDate,
			UpdatedAt:        c.UpdatedAt,
		})
	}
	return resp
}

type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
