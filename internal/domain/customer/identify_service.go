package customer

import (
	"context"
	"fmt"
	"log/slog"
)

type IdentifyCustomerService struct {
	repo   CustomerRepository
	hasher CredentialHasher
	issuer TokenIssuer
	logger *slog.Logger
}

func NewIdentifyCustomerService(repo CustomerRepository, hasher CredentialHasher, issuer TokenIssuer, logger *slog.Logger) *IdentifyCustomerService {
	if repo == nil || hasher == nil || issuer == nil {
		panic("IdentifyCustomerService dependencies cannot be nil")
	}
	return &IdentifyCustomerService{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
		logger: serviceLogger(logger, "IdentifyCustomerService"),
	}
}

// Execute authenticates by email or taxpayer id and returns a signed token.
// Absent and inactive customers fail alike with ErrNotFoundOrInactive. After an
// email miss the identifier is always parsed as a taxpayer id, so "52998224725@x.y"
// still reaches the customer owning 52998224725. The parse error is returned as is
// unless the identifier is email shaped, in which case it is an unknown email.
func (s *IdentifyCustomerService) Execute(ctx context.Context, identifier, plainPassword string) (string, error) {
	s.logger.InfoContext(ctx, "Attempting to identify customer")

	cust, err := findOptional(s.repo.FindByEmail(ctx, identifier))
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error finding customer by email", slog.Any("error", err))
		return "", fmt.Errorf("failed to identify customer: %w", err)
	}

	if cust == nil {
		taxpayerID, err := NewTaxpayerID(identifier)
		if err != nil {
			if emailPattern.MatchString(identifier) {
				s.logger.WarnContext(ctx, "No customer registered with this email")
				return "", ErrNotFoundOrInactive
			}
			s.logger.WarnContext(ctx, "Identifier is neither a known email nor a valid taxpayer id", slog.Any("error", err))
			return "", err
		}
		cust, err = findOptional(s.repo.FindByTaxpayerID(ctx, taxpayerID.Value()))
		if err != nil {
			s.logger.ErrorContext(ctx, "Repository error finding customer by taxpayer id", slog.Any("error", err))
			return "", fmt.Errorf("failed to identify customer: %w", err)
		}
	}

	if cust == nil || !cust.Active {
		s.logger.WarnContext(ctx, "Customer not found or inactive")
		return "", ErrNotFoundOrInactive
	}
	logCtx := s.logger.With(slog.Int64("customerID", cust.CustomerID))

	if !s.hasher.Verify(plainPassword, cust.PasswordHash) {
		logCtx.WarnContext(ctx, "Password verification failed")
		return "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(NewClaims(cust))
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	logCtx.InfoContext(ctx, "Customer identified successfully")
	return token, nil
}
