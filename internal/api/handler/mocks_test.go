package handler_test

import (
	"context"
	"customer-api/internal/domain/customer"
	"customer-api/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockCustomerCreator struct {
	mock.Mock
}

func (_m *MockCustomerCreator) Execute(ctx context.Context, c *customer.Customer, plainPassword string) (*customer.Customer, error) {
	ret := _m.Called(ctx, c, plainPassword)

	var r0 *customer.Customer
	if rf, ok := ret.Get(0).(func(context.Context, *customer.Customer, string) *customer.Customer); ok {
		r0 = rf(ctx, c, plainPassword)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*customer.Customer)
		}
	}

	return r0, ret.Error(1)
}

type MockCustomerIdentifier struct {
	mock.Mock
}

func (_m *MockCustomerIdentifier) Execute(ctx context.Context, identifier, plainPassword string) (string, error) {
	ret := _m.Called(ctx, identifier, plainPassword)
	return ret.String(0), ret.Error(1)
}

type MockCustomerUpdater struct {
	mock.Mock
}

func (_m *MockCustomerUpdater) Execute(ctx context.Context, taxpayerID string, updates map[string]any) (*customer.Customer, error) {
	ret := _m.Called(ctx, taxpayerID, updates)

	var r0 *customer.Customer
	if rf, ok := ret.Get(0).(func(context.Context, string, map[string]any) *customer.Customer); ok {
		r0 = rf(ctx, taxpayerID, updates)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*customer.Customer)
		}
	}

	return r0, ret.Error(1)
}

type MockCustomerLister struct {
	mock.Mock
}

func (_m *MockCustomerLister) Execute(ctx context.Context) ([]*customer.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}

	return r0, ret.Error(1)
}

type MockCustomerGetter struct {
	mock.Mock
}

func (_m *MockCustomerGetter) Execute(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerGetter) ExecuteByTaxpayerID(ctx context.Context, taxpayerID string) (*customer.Customer, error) {
	ret := _m.Called(ctx, taxpayerID)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}

	return r0, ret.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, e event.CustomerCreatedEvent) error {
	return _m.Called(ctx, e).Error(0)
}

func (_m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, e event.CustomerUpdatedEvent) error {
	return _m.Called(ctx, e).Error(0)
}

var (
	_ customer.CustomerCreator    = (*MockCustomerCreator)(nil)
	_ customer.CustomerIdentifier = (*MockCustomerIdentifier)(nil)
	_ customer.CustomerUpdater    = (*MockCustomerUpdater)(nil)
	_ customer.CustomerLister     = (*MockCustomerLister)(nil)
	_ customer.CustomerGetter     = (*MockCustomerGetter)(nil)
	_ event.EventPublisher        = (*MockEventPublisher)(nil)
)
