package token

import (
	"customer-api/internal/domain/customer"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultTTL = 30 * time.Minute

	ClaimTokenID   = "jti"
	ClaimExpiresAt = "exp"
	ClaimIssuedAt  = "iat"
	ClaimIssuer    = "iss"
)

var (
	ErrTokenExpired = errors.New("token has expired")

	ErrTokenMalformed = errors.New("token is malformed")

	ErrTokenInvalidSignature = errors.New("token signature is invalid")

	ErrMissingClaim = errors.New("token is missing a required claim")
)

// Verifier is the read side of the token service.
type Verifier interface {
	Verify(tokenString string) (customer.Claims, error)
}

// JWTService signs HS256 tokens and verifies them against the same secret and issuer.
type JWTService struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

var (
	_ customer.TokenIssuer = (*JWTService)(nil)
	_ Verifier             = (*JWTService)(nil)
)

func NewJWTService(signingKey, issuer string, ttl time.Duration) (*JWTService, error) {
	if signingKey == "" {
		return nil, errors.New("jwt signing key cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

func (s *JWTService) Issue(claims customer.Claims) (string, error) {
	now := s.now()
	mapClaims := jwt.MapClaims{}
	for key, value := range claims {
		mapClaims[key] = value
	}
	mapClaims[ClaimExpiresAt] = jwt.NewNumericDate(now.Add(s.ttl))
	mapClaims[ClaimIssuedAt] = jwt.NewNumericDate(now)
	mapClaims[ClaimIssuer] = s.issuer
	mapClaims[ClaimTokenID] = uuid.NewString()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and issuer. Claim presence is left to RequireClaim.
func (s *JWTService) Verify(tokenString string) (customer.Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMalformed
	}

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, fmt.Errorf("%w: %w", ErrTokenInvalidSignature, err)
		}
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalidSignature
	}
	return customer.Claims(mapClaims), nil
}

// RequireClaim returns the named claim as a string or ErrMissingClaim.
func RequireClaim(claims customer.Claims, key string) (string, error) {
	value, ok := claims.String(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingClaim, key)
	}
	return value, nil
}

// ExpiresAt reads the exp claim; the zero time means it is absent.
func ExpiresAt(claims customer.Claims) time.Time {
	switch v := claims[ClaimExpiresAt].(type) {
	case float64:
		return time.Unix(int64(v), 0)
	case *jwt.NumericDate:
		return v.Time
	}
	return time.Time{}
}
