package postgres

import (
	"customer-api/internal/domain/customer"
	"customer-api/internal/pkg/apperrors"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

const pgxmockExpectationsNotMetMsg = "there were unfulfilled expectations"

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestTranslateDBError(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{"No Rows", pgx.ErrNoRows, customer.ErrNotFound},
		{"Taxpayer ID Constraint", &pgconn.PgError{Code: "23505", ConstraintName: "customers_taxpayer_id_key"}, customer.ErrDuplicateTaxpayerID},
		{"Email Constraint", &pgconn.PgError{Code: "23505", ConstraintName: "customers_email_key"}, customer.ErrDuplicateEmail},
		{"Other Constraint", &pgconn.PgError{Code: "23505", ConstraintName: "customers_pkey"}, apperrors.ErrAlreadyExists},
		{"Other PG Error", &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}, apperrors.ErrDatabase},
		{"Generic", errors.New("broken pipe"), apperrors.ErrDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateDBError(tt.input, logger), tt.expected)
		})
	}

	assert.NoError(t, translateDBError(nil, logger))
}
