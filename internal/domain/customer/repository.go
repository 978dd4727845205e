package customer

import (
	"context"
)

// CustomerRepository is the storage contract the lifecycle services depend on.
// Lookups report absence with ErrNotFound. Implementations must enforce taxpayer id
// and email uniqueness themselves and report violations as ErrDuplicateTaxpayerID
// or ErrDuplicateEmail.
type CustomerRepository interface {
	// Create assigns CustomerID, CreateDate and UpdatedAt.
	Create(ctx context.Context, customer *Customer) (*Customer, error)

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	// FindByTaxpayerID expects the digits-only form.
	FindByTaxpayerID(ctx context.Context, taxpayerID string) (*Customer, error)

	FindByEmail(ctx context.Context, email string) (*Customer, error)

	ListAll(ctx context.Context) ([]*Customer, error)

	// Update fails with ErrNotFound when no row matches CustomerID.
	Update(ctx context.Context, customer *Customer) (*Customer, error)

	// Delete is a no-op for unknown IDs.
	Delete(ctx context.Context, customerID int64) error
}
