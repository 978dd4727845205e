package middleware

import (
	"context"
	"customer-api/internal/config"
	"customer-api/internal/domain/customer"
	"customer-api/internal/infrastructure/token"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

type claimsKey struct{}

var ErrMissingBearer = errors.New("missing or malformed bearer token")

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingBearer
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", ErrMissingBearer
	}
	return strings.TrimSpace(parts[1]), nil
}

func ClaimsFromContext(ctx context.Context) (customer.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(customer.Claims)
	return claims, ok
}

func WithClaims(ctx context.Context, claims customer.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func AuthMiddleware(cfg config.AuthConfig, verifier token.Verifier, revocations token.RevocationList, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	logger = logger.With("component", "AuthMiddleware")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := BearerToken(r)
			if err != nil {
				logger.WarnContext(ctx, "Missing or invalid Authorization header")
				unauthorized(w)
				return
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				logger.WarnContext(ctx, "Invalid token", slog.Any("error", err))
				unauthorized(w)
				return
			}

			tokenID, err := token.RequireClaim(claims, token.ClaimTokenID)
			if err != nil {
				logger.WarnContext(ctx, "Token has no id", slog.Any("error", err))
				unauthorized(w)
				return
			}

			revoked, err := revocations.IsRevoked(ctx, tokenID)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to check token revocation", slog.Any("error", err))
				http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
				return
			}
			if revoked {
				logger.WarnContext(ctx, "Rejected revoked token", slog.String("jti", tokenID))
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"message":"Unauthorized"}}`))
}
