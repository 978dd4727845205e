package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"customer-api/internal/domain/customer"
	"customer-api/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const customerColumns = `id, name, taxpayer_id, email, password_hash, active, created_at, updated_at`

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {

		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

type customerRow struct {
	id           int64
	name         string
	taxpayerID   string
	email        string
	passwordHash string
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

func scanCustomer(row rowScanner) (*customer.Customer, error) {
	var r customerRow
	if err := row.Scan(
		&r.id,
		&r.name,
		&r.taxpayerID,
		&r.email,
		&r.passwordHash,
		&r.active,
		&r.createdAt,
		&r.updatedAt,
	); err != nil {
		return nil, err
	}
	return r.toDomain()
}

// toDomain rebuilds the value objects; a stored value that no longer validates is a data error.
func (r customerRow) toDomain() (*customer.Customer, error) {
	taxpayerID, err := customer.NewTaxpayerID(r.taxpayerID)
	if err != nil {
		return nil, fmt.Errorf("%w: stored taxpayer id for customer %d: %w", apperrors.ErrDatabase, r.id, err)
	}
	email, err := customer.NewEmail(r.email)
	if err != nil {
		return nil, fmt.Errorf("%w: stored email for customer %d: %w", apperrors.ErrDatabase, r.id, err)
	}
	return &customer.Customer{
		CustomerID:   r.id,
		Name:         r.name,
		TaxpayerID:   taxpayerID,
		Email:        email,
		PasswordHash: r.passwordHash,
		Active:       r.active,
		CreateDate:   r.createdAt,
		UpdatedAt:    r.updatedAt,
	}, nil
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) (*customer.Customer, error) {
	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new customer")

	query := `
        INSERT INTO customers (name, taxpayer_id, email, password_hash, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		cust.Name,
		cust.TaxpayerID.Value(),
		cust.Email.Value(),
		cust.PasswordHash,
		cust.Active,
	).Scan(
		&cust.CustomerID,
		&cust.CreateDate,
		&cust.UpdatedAt,
	)

	if err != nil {

		translatedErr := translateDBError(err, r.logger)
		if isDuplicate(translatedErr) {
			r.logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation", slog.Any("error", translatedErr))
			return nil, translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.CustomerID))
	return cust, nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) (*customer.Customer, error) {
	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.Int64("customerID", cust.CustomerID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	query := `
        UPDATE customers
        SET name = $1,
            taxpayer_id = $2,
            email = $3,
            password_hash = $4,
            active = $5,
            updated_at = NOW()
        WHERE id = $6
        RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		cust.Name,
		cust.TaxpayerID.Value(),
		cust.Email.Value(),
		cust.PasswordHash,
		cust.Active,
		cust.CustomerID,
	).Scan(&cust.UpdatedAt)

	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		switch {
		case errors.Is(translatedErr, customer.ErrNotFound):
			logCtx.WarnContext(ctx, "Update matched zero rows, customer not found")
			return nil, customer.ErrNotFound
		case isDuplicate(translatedErr):
			logCtx.WarnContext(ctx, "Failed to update customer due to unique constraint violation", slog.Any("error", translatedErr))
			return nil, translatedErr
		}
		logCtx.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	logCtx.InfoContext(ctx, "Customer updated successfully")
	return cust, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find customer by ID", slog.Int64("customerID", customerID))

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	return r.findOne(ctx, "ID", query, customerID)
}

func (r *CustomerRepository) FindByTaxpayerID(ctx context.Context, taxpayerID string) (*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find customer by taxpayer ID")

	query := `SELECT ` + customerColumns + ` FROM customers WHERE taxpayer_id = $1`

	return r.findOne(ctx, "taxpayer ID", query, taxpayerID)
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find customer by email")

	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`

	return r.findOne(ctx, "email", query, email)
}

func (r *CustomerRepository) findOne(ctx context.Context, by, query string, arg any) (*customer.Customer, error) {
	cust, err := scanCustomer(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.InfoContext(ctx, "Customer not found", slog.String("by", by))
			return nil, customer.ErrNotFound
		}
		if errors.Is(err, apperrors.ErrDatabase) {
			r.logger.ErrorContext(ctx, "Stored customer row is invalid", slog.Any("error", err))
			return nil, err
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer", slog.String("by", by), slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by %s: %w", apperrors.ErrDatabase, by, err)
	}

	r.logger.InfoContext(ctx, "Customer found successfully", slog.Int64("customerID", cust.CustomerID))
	return cust, nil
}

func (r *CustomerRepository) ListAll(ctx context.Context) ([]*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to list all customers")

	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {

		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			if errors.Is(err, apperrors.ErrDatabase) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished listing customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	logCtx := r.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to delete customer")

	query := `DELETE FROM customers WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, customerID)
	if err != nil {

		logCtx.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logCtx.InfoContext(ctx, "Delete affected zero rows, nothing to remove")
		return nil
	}

	logCtx.InfoContext(ctx, "Customer deleted successfully")
	return nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, customer.ErrDuplicateTaxpayerID) ||
		errors.Is(err, customer.ErrDuplicateEmail) ||
		errors.Is(err, apperrors.ErrAlreadyExists)
}
