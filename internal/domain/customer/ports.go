package customer

import "fmt"

// CredentialHasher is a slow, salted, one-way hash.
type CredentialHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

type TokenIssuer interface {
	Issue(claims Claims) (string, error)
}

const (
	ClaimID         = "id"
	ClaimTaxpayerID = "taxpayerId"
	ClaimEmail      = "email"
	ClaimName       = "name"
	ClaimRole       = "role"

	RoleCustomer = "customer"
)

type Claims map[string]any

func NewClaims(c *Customer) Claims {
	return Claims{
		ClaimID:         c.CustomerID,
		ClaimTaxpayerID: c.TaxpayerID.Value(),
		ClaimEmail:      c.Email.Value(),
		ClaimName:       c.Name,
		ClaimRole:       RoleCustomer,
	}
}

// String returns the claim as a string; ok is false when it is absent or empty.
func (c Claims) String(key string) (string, bool) {
	raw, exists := c[key]
	if !exists || raw == nil {
		return "", false
	}
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	default:
		s = fmt.Sprint(v)
	}
	return s, s != ""
}
