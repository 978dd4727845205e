package memory

import (
	"context"
	"customer-api/internal/domain/customer"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomer(t *testing.T, taxpayerID, email string) *customer.Customer {
	t.Helper()
	tid, err := customer.NewTaxpayerID(taxpayerID)
	require.NoError(t, err)
	addr, err := customer.NewEmail(email)
	require.NoError(t, err)
	return customer.NewCustomer("Ana Silva", tid, addr)
}

func TestCustomerRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	created, err := repo.Create(ctx, newCustomer(t, "123.456.789-09", "ana@mail.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.CustomerID)
	assert.False(t, created.CreateDate.IsZero())

	byTaxpayer, err := repo.FindByTaxpayerID(ctx, "12345678909")
	require.NoError(t, err)
	assert.Equal(t, created.CustomerID, byTaxpayer.CustomerID)

	byEmail, err := repo.FindByEmail(ctx, "ana@mail.com")
	require.NoError(t, err)
	assert.Equal(t, created.CustomerID, byEmail.CustomerID)

	_, err = repo.FindByEmail(ctx, "ANA@mail.com")
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestCustomerRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()
	created, err := repo.Create(ctx, newCustomer(t, "123.456.789-09", "ana@mail.com"))
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.CustomerID)
	require.NoError(t, err)
	found.Name = "Mutated"

	again, err := repo.FindByID(ctx, created.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", again.Name)
}

func TestCustomerRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()
	_, err := repo.Create(ctx, newCustomer(t, "123.456.789-09", "ana@mail.com"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newCustomer(t, "123.456.789-09", "other@mail.com"))
	assert.ErrorIs(t, err, customer.ErrDuplicateTaxpayerID)

	_, err = repo.Create(ctx, newCustomer(t, "529.982.247-25", "ana@mail.com"))
	assert.ErrorIs(t, err, customer.ErrDuplicateEmail)

	second, err := repo.Create(ctx, newCustomer(t, "529.982.247-25", "bia@mail.com"))
	require.NoError(t, err)

	second.Email, _ = customer.NewEmail("ana@mail.com")
	_, err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
}

func TestCustomerRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()
	created, err := repo.Create(ctx, newCustomer(t, "123.456.789-09", "ana@mail.com"))
	require.NoError(t, err)

	created.Deactivate()
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.False(t, updated.Active)

	found, err := repo.FindByID(ctx, created.CustomerID)
	require.NoError(t, err)
	assert.False(t, found.Active)

	ghost := newCustomer(t, "529.982.247-25", "bia@mail.com")
	ghost.CustomerID = 999
	_, err = repo.Update(ctx, ghost)
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestCustomerRepository_DeleteThenFind(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()
	created, err := repo.Create(ctx, newCustomer(t, "123.456.789-09", "ana@mail.com"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.CustomerID))

	_, err = repo.FindByID(ctx, created.CustomerID)
	assert.ErrorIs(t, err, customer.ErrNotFound)

	assert.NoError(t, repo.Delete(ctx, 12345), "deleting an unknown id is a no-op")
}

func TestCustomerRepository_ListAllOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	empty, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, _ = repo.Create(ctx, newCustomer(t, "123.456.789-09", "ana@mail.com"))
	_, _ = repo.Create(ctx, newCustomer(t, "529.982.247-25", "bia@mail.com"))
	_, _ = repo.Create(ctx, newCustomer(t, "111.444.777-35", "caio@mail.com"))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, c := range all {
		assert.Equal(t, int64(i+1), c.CustomerID)
	}
}
