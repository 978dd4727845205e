package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

const (
	FieldTaxpayerID = "taxpayerId"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldActive     = "active"
)

var allowedUpdateFields = map[string]struct{}{
	FieldTaxpayerID: {},
	FieldName:       {},
	FieldEmail:      {},
	FieldActive:     {},
}

type UpdateCustomerService struct {
	repo   CustomerRepository
	logger *slog.Logger
}

func NewUpdateCustomerService(repo CustomerRepository, logger *slog.Logger) *UpdateCustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	return &UpdateCustomerService{
		repo:   repo,
		logger: serviceLogger(logger, "UpdateCustomerService"),
	}
}

// Execute applies a partial update to the customer owning taxpayerID.
// Deactivation and reactivation are updates of the active field only.
func (s *UpdateCustomerService) Execute(ctx context.Context, taxpayerID string, updates map[string]any) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to update customer")

	if err := validateUpdateFields(updates); err != nil {
		s.logger.WarnContext(ctx, "Update contains unknown fields", slog.Any("error", err))
		return nil, err
	}

	cust, err := findOptional(s.repo.FindByTaxpayerID(ctx, DigitsOnly(taxpayerID)))
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find customer to update: %w", err)
	}
	if cust == nil {
		s.logger.WarnContext(ctx, customerNotFound)
		return nil, ErrNotFound
	}
	logCtx := s.logger.With(slog.Int64("customerID", cust.CustomerID))

	if raw, ok := updates[FieldTaxpayerID]; ok {
		if err := s.applyTaxpayerID(ctx, cust, raw); err != nil {
			logCtx.WarnContext(ctx, "Taxpayer id update rejected", slog.Any("error", err))
			return nil, err
		}
	}

	if raw, ok := updates[FieldEmail]; ok {
		if err := s.applyEmail(ctx, cust, raw); err != nil {
			logCtx.WarnContext(ctx, "Email update rejected", slog.Any("error", err))
			return nil, err
		}
	}

	if raw, ok := updates[FieldName]; ok {
		name, isString := raw.(string)
		if !isString {
			return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidFieldValue, FieldName)
		}
		cust.Name = name
	}

	if raw, ok := updates[FieldActive]; ok {
		active, isBool := raw.(bool)
		if !isBool {
			return nil, fmt.Errorf("%w: %s must be a boolean", ErrInvalidFieldValue, FieldActive)
		}
		if active {
			cust.Activate()
		} else {
			cust.Deactivate()
		}
	}

	logCtx.InfoContext(ctx, "Calling repository Update")
	updated, err := s.repo.Update(ctx, cust)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			logCtx.ErrorContext(ctx, "Customer disappeared before update completed")
			return nil, ErrNotFound
		case errors.Is(err, ErrDuplicateTaxpayerID), errors.Is(err, ErrDuplicateEmail):
			logCtx.WarnContext(ctx, "Storage rejected duplicate value", slog.Any("error", err))
			return nil, err
		}
		logCtx.ErrorContext(ctx, "Repository failed to update customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update customer %d: %w", cust.CustomerID, err)
	}

	logCtx.InfoContext(ctx, "Successfully updated customer")
	return updated, nil
}

func (s *UpdateCustomerService) applyTaxpayerID(ctx context.Context, cust *Customer, raw any) error {
	value, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%w: %s must be a string", ErrInvalidFieldValue, FieldTaxpayerID)
	}
	newID, err := NewTaxpayerID(value)
	if err != nil {
		return err
	}
	owner, err := findOptional(s.repo.FindByTaxpayerID(ctx, newID.Value()))
	if err != nil {
		return fmt.Errorf("failed to check taxpayer id: %w", err)
	}
	if owner != nil && owner.CustomerID != cust.CustomerID {
		return ErrDuplicateTaxpayerID
	}
	cust.TaxpayerID = newID
	return nil
}

func (s *UpdateCustomerService) applyEmail(ctx context.Context, cust *Customer, raw any) error {
	value, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%w: %s must be a string", ErrInvalidFieldValue, FieldEmail)
	}
	newEmail, err := NewEmail(value)
	if err != nil {
		return err
	}
	owner, err := findOptional(s.repo.FindByEmail(ctx, newEmail.Value()))
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if owner != nil && owner.CustomerID != cust.CustomerID {
		return ErrDuplicateEmail
	}
	cust.Email = newEmail
	return nil
}

func validateUpdateFields(updates map[string]any) error {
	var extra []string
	for key := range updates {
		if _, ok := allowedUpdateFields[key]; !ok {
			extra = append(extra, key)
		}
	}
	if len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return &InvalidFieldsError{Fields: extra}
}
