package customer

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

const (
	minPasswordLength = 8

	customerNotFound = "Customer not found by repository"
)

type CustomerCreator interface {
	Execute(ctx context.Context, customer *Customer, plainPassword string) (*Customer, error)
}

type CustomerIdentifier interface {
	Execute(ctx context.Context, identifier, plainPassword string) (string, error)
}

type CustomerUpdater interface {
	Execute(ctx context.Context, taxpayerID string, updates map[string]any) (*Customer, error)
}

type CustomerLister interface {
	Execute(ctx context.Context) ([]*Customer, error)
}

type CustomerGetter interface {
	Execute(ctx context.Context, customerID int64) (*Customer, error)
	ExecuteByTaxpayerID(ctx context.Context, taxpayerID string) (*Customer, error)
}

var (
	_ CustomerCreator    = (*CreateCustomerService)(nil)
	_ CustomerIdentifier = (*IdentifyCustomerService)(nil)
	_ CustomerUpdater    = (*UpdateCustomerService)(nil)
	_ CustomerLister     = (*ListCustomersService)(nil)
	_ CustomerGetter     = (*GetCustomerService)(nil)
)

func serviceLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided, using default stderr handler", slog.String("component", component))
	}
	return logger.With(slog.String("component", component))
}

// findOptional turns a repository ErrNotFound into a nil customer.
func findOptional(c *Customer, err error) (*Customer, error) {
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
