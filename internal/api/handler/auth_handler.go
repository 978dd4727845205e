package handler

import (
	"customer-api/internal/api/handler/dto"
	mw "customer-api/internal/api/middleware"
	"customer-api/internal/domain/customer"
	"customer-api/internal/infrastructure/monitoring"
	"customer-api/internal/infrastructure/token"
	"customer-api/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

type AuthHandler struct {
	identifier  customer.CustomerIdentifier
	getter      customer.CustomerGetter
	verifier    token.Verifier
	revocations token.RevocationList
	logger      *slog.Logger
}

func NewAuthHandler(identifier customer.CustomerIdentifier, getter customer.CustomerGetter, verifier token.Verifier, revocations token.RevocationList, l *slog.Logger) *AuthHandler {
	if identifier == nil || getter == nil || verifier == nil || revocations == nil {
		panic("AuthHandler dependencies cannot be nil")
	}
	return &AuthHandler{
		identifier:  identifier,
		getter:      getter,
		verifier:    verifier,
		revocations: revocations,
		logger:      l.With("component", "AuthHandler"),
	}
}

// Login exchanges credentials for a signed token.
//
// @Summary Log in
// @Description The identifier is either the registered email or the taxpayer id.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse "Signed JWT"
// @Failure 400 {object} dto.ErrorResponse "Invalid credentials, unknown or inactive customer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode login body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}

	signed, err := h.identifier.Execute(ctx, req.Identifier, req.Password)
	monitoring.Business.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.LoginResponse{JWT: signed})
}

// VerifyToken checks a token and returns the customer it was issued to.
//
// @Summary Verify a token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.VerifyTokenRequest true "Token to verify"
// @Success 200 {object} dto.VerifyTokenResponse "Token owner"
// @Failure 400 {object} dto.ErrorResponse "Missing token or claim"
// @Failure 401 {object} dto.ErrorResponse "Expired, invalid or revoked token"
// @Failure 404 {object} dto.ErrorResponse "Customer absent or inactive"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/verify [post]
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.VerifyTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}

	claims, err := h.verifyAndCheckRevoked(r, req.Token)
	if err != nil {
		respondError(w, err)
		return
	}

	taxpayerID, err := token.RequireClaim(claims, customer.ClaimTaxpayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "Token lacks taxpayer id claim")
		respondError(w, err)
		return
	}

	cust, err := h.getter.ExecuteByTaxpayerID(ctx, taxpayerID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !cust.Active {
		h.logger.WarnContext(ctx, "Token belongs to an inactive customer", slog.Int64("customerID", cust.CustomerID))
		respondError(w, customer.ErrNotFound)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewVerifyTokenResponse(cust))
}

// Logout revokes the bearer token until it would have expired.
//
// @Summary Log out
// @Tags Authentication
// @Success 204 "Token revoked"
// @Failure 401 {object} dto.ErrorResponse "Missing, invalid or already revoked token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/logout [post]
// @Security BearerAuth
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenString, err := mw.BearerToken(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err))
		return
	}

	claims, err := h.verifyAndCheckRevoked(r, tokenString)
	if err != nil {
		respondError(w, err)
		return
	}

	tokenID, err := token.RequireClaim(claims, token.ClaimTokenID)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.revocations.Revoke(ctx, tokenID, token.ExpiresAt(claims)); err != nil {
		h.logger.ErrorContext(ctx, "Failed to revoke token", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "Token revoked", slog.String("jti", tokenID))
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) verifyAndCheckRevoked(r *http.Request, tokenString string) (customer.Claims, error) {
	claims, err := h.verifier.Verify(tokenString)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Token verification failed", slog.Any("error", err))
		return nil, err
	}

	tokenID, ok := claims.String(token.ClaimTokenID)
	if !ok {
		return claims, nil
	}
	revoked, err := h.revocations.IsRevoked(r.Context(), tokenID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to check token revocation", slog.Any("error", err))
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("%w: token has been revoked", apperrors.ErrUnauthorized)
	}
	return claims, nil
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return monitoring.OutcomeSuccess
	case errors.Is(err, customer.ErrInvalidCredentials),
		errors.Is(err, customer.ErrNotFoundOrInactive),
		customer.IsValidationError(err):
		return monitoring.OutcomeRejected
	default:
		return monitoring.OutcomeError
	}
}
