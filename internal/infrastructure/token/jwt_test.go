package token

import (
	"customer-api/internal/domain/customer"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, secret string) *JWTService {
	t.Helper()
	svc, err := NewJWTService(secret, "customer-api", time.Minute)
	require.NoError(t, err)
	return svc
}

func sampleClaims() customer.Claims {
	return customer.Claims{
		customer.ClaimID:         int64(7),
		customer.ClaimTaxpayerID: "12345678909",
		customer.ClaimEmail:      "ana@mail.com",
		customer.ClaimName:       "Ana Silva",
		customer.ClaimRole:       customer.RoleCustomer,
	}
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestService(t, "secret")

	signed, err := svc.Issue(sampleClaims())
	require.NoError(t, err)
	assert.NotEmpty(t, signed)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)

	taxpayerID, err := RequireClaim(claims, customer.ClaimTaxpayerID)
	require.NoError(t, err)
	assert.Equal(t, "12345678909", taxpayerID)

	id, err := RequireClaim(claims, customer.ClaimID)
	require.NoError(t, err)
	assert.Equal(t, "7", id)

	jti, err := RequireClaim(claims, ClaimTokenID)
	require.NoError(t, err)
	assert.Len(t, jti, 36)

	assert.Equal(t, "customer-api", claims[ClaimIssuer])
	assert.WithinDuration(t, time.Now().Add(time.Minute), ExpiresAt(claims), 5*time.Second)
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := newTestService(t, "secret")

	first, err := svc.Issue(sampleClaims())
	require.NoError(t, err)
	second, err := svc.Issue(sampleClaims())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWTService_VerifyFailures(t *testing.T) {
	svc := newTestService(t, "secret")

	t.Run("Expired", func(t *testing.T) {
		past := newTestService(t, "secret")
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		signed, err := past.Issue(sampleClaims())
		require.NoError(t, err)

		_, err = svc.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := svc.Verify("garbage")
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := svc.Verify("")
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		signed, err := newTestService(t, "other-secret").Issue(sampleClaims())
		require.NoError(t, err)

		_, err = svc.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenInvalidSignature)
	})

	t.Run("Wrong Issuer", func(t *testing.T) {
		other, err := NewJWTService("secret", "someone-else", time.Minute)
		require.NoError(t, err)
		signed, err := other.Issue(sampleClaims())
		require.NoError(t, err)

		_, err = svc.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenInvalidSignature)
	})
}

func TestRequireClaim_Missing(t *testing.T) {
	claims := sampleClaims()
	delete(claims, customer.ClaimTaxpayerID)

	_, err := RequireClaim(claims, customer.ClaimTaxpayerID)

	assert.ErrorIs(t, err, ErrMissingClaim)
	assert.Contains(t, err.Error(), "taxpayerId")
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService("", "customer-api", time.Minute)
	assert.Error(t, err)

	svc, err := NewJWTService("secret", "customer-api", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, svc.ttl)
}
