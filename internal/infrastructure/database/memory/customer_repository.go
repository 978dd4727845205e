// Package memory keeps customers in process memory. Useful for local runs and tests.
package memory

import (
	"context"
	"customer-api/internal/domain/customer"
	"sort"
	"sync"
	"time"
)

type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[int64]customer.Customer
	nextID    int64
	now       func() time.Time
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[int64]customer.Customer),
		nextID:    1,
		now:       time.Now,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(cust, 0); err != nil {
		return nil, err
	}

	now := r.now()
	cust.CustomerID = r.nextID
	cust.CreateDate = now
	cust.UpdatedAt = now
	r.nextID++

	r.customers[cust.CustomerID] = *cust
	return cust, nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.customers[cust.CustomerID]
	if !exists {
		return nil, customer.ErrNotFound
	}
	if err := r.checkUnique(cust, cust.CustomerID); err != nil {
		return nil, err
	}

	cust.CreateDate = stored.CreateDate
	cust.UpdatedAt = r.now()
	r.customers[cust.CustomerID] = *cust
	return cust, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.customers[customerID]
	if !exists {
		return nil, customer.ErrNotFound
	}
	return &stored, nil
}

func (r *CustomerRepository) FindByTaxpayerID(ctx context.Context, taxpayerID string) (*customer.Customer, error) {
	return r.findFirst(func(c customer.Customer) bool {
		return c.TaxpayerID.Value() == taxpayerID
	})
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return r.findFirst(func(c customer.Customer) bool {
		return c.Email.Value() == email
	})
}

func (r *CustomerRepository) ListAll(ctx context.Context) ([]*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]*customer.Customer, 0, len(r.customers))
	for _, stored := range r.customers {
		c := stored
		customers = append(customers, &c)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CustomerID < customers[j].CustomerID
	})
	return customers, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.customers, customerID)
	return nil
}

func (r *CustomerRepository) findFirst(match func(customer.Customer) bool) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, stored := range r.customers {
		if match(stored) {
			c := stored
			return &c, nil
		}
	}
	return nil, customer.ErrNotFound
}

// checkUnique must be called with the write lock held. selfID is skipped.
func (r *CustomerRepository) checkUnique(cust *customer.Customer, selfID int64) error {
	for id, stored := range r.customers {
		if id == selfID {
			continue
		}
		if stored.TaxpayerID.Equals(cust.TaxpayerID) {
			return customer.ErrDuplicateTaxpayerID
		}
		if stored.Email.Equals(cust.Email) {
			return customer.ErrDuplicateEmail
		}
	}
	return nil
}
