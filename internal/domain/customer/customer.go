package customer

import "time"

type Customer struct {
	CustomerID   int64      `json:"customerId"`
	Name         string     `json:"name"`
	TaxpayerID   TaxpayerID `json:"-"`
	Email        Email      `json:"-"`
	PasswordHash string     `json:"-"`
	Active       bool       `json:"active"`
	CreateDate   time.Time  `json:"createDate"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// NewCustomer builds a transient customer. ID and timestamps are left for storage to assign.
func NewCustomer(name string, taxpayerID TaxpayerID, email Email) *Customer {
	return &Customer{
		Name:       name,
		TaxpayerID: taxpayerID,
		Email:      email,
		Active:     true,
	}
}

func (c *Customer) IsPersisted() bool {
	return c.CustomerID != 0
}

func (c *Customer) Activate() {
	c.Active = true
}

func (c *Customer) Deactivate() {
	c.Active = false
}
