package postgres

import (
	"context"
	"customer-api/internal/pkg/apperrors"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
        id            BIGSERIAL PRIMARY KEY,
        name          VARCHAR(150) NOT NULL,
        taxpayer_id   CHAR(11)     NOT NULL,
        email         VARCHAR(255) NOT NULL,
        password_hash TEXT         NOT NULL,
        active        BOOLEAN      NOT NULL DEFAULT TRUE,
        created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
        updated_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
        CONSTRAINT customers_taxpayer_id_key UNIQUE (taxpayer_id),
        CONSTRAINT customers_email_key UNIQUE (email)
    )`,
	`CREATE INDEX IF NOT EXISTS customers_active_idx ON customers (active)`,
}

// EnsureSchema creates the customers table and its unique constraints when missing.
func EnsureSchema(ctx context.Context, db DBPool, logger *slog.Logger) (err error) {
	logger = logger.With("component", "EnsureSchema")
	logger.InfoContext(ctx, "Ensuring database schema")

	tx, err := db.Begin(ctx)
	if err != nil {
		return apperrors.WrapDatabaseError(err, "failed to begin schema transaction")
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.ErrorContext(ctx, "Failed to rollback schema transaction", slog.Any("error", rbErr))
		}
	}()

	for _, stmt := range schemaStatements {
		if _, err = tx.Exec(ctx, stmt); err != nil {
			logger.ErrorContext(ctx, "Failed to apply schema statement", slog.Any("error", err))
			return apperrors.WrapDatabaseError(err, "failed to apply schema")
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return apperrors.WrapDatabaseError(err, "failed to commit schema transaction")
	}

	logger.InfoContext(ctx, "Database schema is up to date")
	return nil
}
