package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

type CreateCustomerService struct {
	repo   CustomerRepository
	hasher CredentialHasher
	logger *slog.Logger
}

func NewCreateCustomerService(repo CustomerRepository, hasher CredentialHasher, logger *slog.Logger) *CreateCustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if hasher == nil {
		panic("credential hasher cannot be nil")
	}
	return &CreateCustomerService{
		repo:   repo,
		hasher: hasher,
		logger: serviceLogger(logger, "CreateCustomerService"),
	}
}

// Execute registers a transient customer. Duplicate taxpayer id is reported before
// duplicate email, which is reported before a weak password.
func (s *CreateCustomerService) Execute(ctx context.Context, customer *Customer, plainPassword string) (*Customer, error) {
	if customer == nil {
		return nil, errors.New("customer cannot be nil")
	}
	logCtx := s.logger.With(slog.String("taxpayerID", customer.TaxpayerID.Value()))
	logCtx.InfoContext(ctx, "Attempting to create new customer")

	existing, err := findOptional(s.repo.FindByTaxpayerID(ctx, customer.TaxpayerID.Value()))
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error checking taxpayer id", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check taxpayer id: %w", err)
	}
	if existing != nil {
		logCtx.WarnContext(ctx, "Taxpayer id already registered")
		return nil, ErrDuplicateTaxpayerID
	}

	existing, err = findOptional(s.repo.FindByEmail(ctx, customer.Email.Value()))
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error checking email", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		logCtx.WarnContext(ctx, "Email already registered")
		return nil, ErrDuplicateEmail
	}

	if len(plainPassword) < minPasswordLength {
		logCtx.WarnContext(ctx, "Password does not meet minimum length")
		return nil, ErrWeakCredential
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	customer.PasswordHash = hash

	normalized, err := NewTaxpayerID(DigitsOnly(customer.TaxpayerID.Value()))
	if err != nil {
		logCtx.WarnContext(ctx, "Taxpayer id failed re-normalization", slog.Any("error", err))
		return nil, err
	}
	customer.TaxpayerID = normalized

	logCtx.InfoContext(ctx, "Calling repository Create")
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, ErrDuplicateTaxpayerID) || errors.Is(err, ErrDuplicateEmail) {
			logCtx.WarnContext(ctx, "Storage rejected duplicate customer", slog.Any("error", err))
			return nil, err
		}
		logCtx.ErrorContext(ctx, "Repository failed to create customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	logCtx.InfoContext(ctx, "Successfully created new customer", slog.Int64("customerID", created.CustomerID))
	return created, nil
}
