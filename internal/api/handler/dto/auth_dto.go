package dto

import (
	"customer-api/internal/domain/customer"
	"customer-api/internal/pkg/apperrors"
	"strings"
)

type LoginRequest struct {
	// Identifier is either the registered email or the taxpayer id.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" {
		return apperrors.NewValidationError("identifier", "identifier is required")
	}
	if r.Password == "" {
		return apperrors.NewValidationError("password", "password is required")
	}
	return nil
}

type LoginResponse struct {
	JWT string `json:"jwt"`
}

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

func (r *VerifyTokenRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return apperrors.NewValidationError("token", "token is required")
	}
	return nil
}

type VerifyTokenResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	TaxpayerID string `json:"taxpayerId"`
	Email      string `json:"email"`
}

func NewVerifyTokenResponse(cust *customer.Customer) VerifyTokenResponse {
	return VerifyTokenResponse{
		ID:         cust.CustomerID,
		Name:       cust.Name,
		TaxpayerID: cust.TaxpayerID.Formatted(),
		Email:      cust.Email.Value(),
	}
}
