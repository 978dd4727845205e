package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

type ListCustomersService struct {
	repo   CustomerRepository
	logger *slog.Logger
}

func NewListCustomersService(repo CustomerRepository, logger *slog.Logger) *ListCustomersService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	return &ListCustomersService{
		repo:   repo,
		logger: serviceLogger(logger, "ListCustomersService"),
	}
}

func (s *ListCustomersService) Execute(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list all customers")

	customers, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

type GetCustomerService struct {
	repo   CustomerRepository
	logger *slog.Logger
}

func NewGetCustomerService(repo CustomerRepository, logger *slog.Logger) *GetCustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	return &GetCustomerService{
		repo:   repo,
		logger: serviceLogger(logger, "GetCustomerService"),
	}
}

func (s *GetCustomerService) Execute(ctx context.Context, customerID int64) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to get customer by ID")

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return nil, ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Successfully retrieved customer")
	return cust, nil
}

// ExecuteByTaxpayerID accepts the taxpayer id with or without punctuation.
func (s *GetCustomerService) ExecuteByTaxpayerID(ctx context.Context, taxpayerID string) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to get customer by taxpayer id")

	cust, err := s.repo.FindByTaxpayerID(ctx, DigitsOnly(taxpayerID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound)
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer by taxpayer id", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer by taxpayer id: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customer", slog.Int64("customerID", cust.CustomerID))
	return cust, nil
}
