package handler

import (
	"customer-api/internal/api/handler/dto"
	"customer-api/internal/domain/customer"
	"customer-api/internal/infrastructure/token"
	"customer-api/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError maps ErrNotFoundOrInactive to 400 alongside bad credentials,
// while a plain ErrNotFound is a 404.
func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""

	switch {
	case errors.Is(err, token.ErrMissingClaim):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, token.ErrTokenExpired),
		errors.Is(err, token.ErrTokenMalformed),
		errors.Is(err, token.ErrTokenInvalidSignature),
		errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, customer.ErrNotFound), errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case customer.IsValidationError(err):
		status, message, field = http.StatusBadRequest, err.Error(), validationField(err)
	case errors.Is(err, customer.ErrDuplicateTaxpayerID):
		status, message, field = http.StatusBadRequest, err.Error(), customer.FieldTaxpayerID
	case errors.Is(err, customer.ErrDuplicateEmail):
		status, message, field = http.StatusBadRequest, err.Error(), customer.FieldEmail
	case errors.Is(err, customer.ErrWeakCredential):
		status, message, field = http.StatusBadRequest, err.Error(), "password"
	case errors.Is(err, customer.ErrInvalidFields),
		errors.Is(err, customer.ErrInvalidFieldValue),
		errors.Is(err, customer.ErrInvalidCredentials),
		errors.Is(err, customer.ErrNotFoundOrInactive),
		errors.Is(err, apperrors.ErrInvalidArgument):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrValidation):
		status, message, field = http.StatusBadRequest, err.Error(), apperrors.FieldOf(err)
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func validationField(err error) string {
	if errors.Is(err, customer.ErrInvalidEmailFormat) {
		return customer.FieldEmail
	}
	return customer.FieldTaxpayerID
}
