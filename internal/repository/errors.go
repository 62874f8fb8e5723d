package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/storefront/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mapError attaches a domain error kind to a driver error, keeping the original in the chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return kindError{kind: domain.ErrNotFound, err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return kindError{kind: domain.ErrConflict, err: err}
		case pgForeignKeyViolation, pgCheckViolation:
			return kindError{kind: domain.ErrValidation, err: err}
		}
		return err
	}

	if isTransient(err) {
		return kindError{kind: domain.ErrTransient, err: err}
	}

	return err
}

// kindError reads as the driver error and matches both it and kind with errors.Is.
type kindError struct {
	kind error
	err  error
}

func (e kindError) Error() string {
	return e.err.Error()
}

func (e kindError) Unwrap() []error {
	return []error{e.kind, e.err}
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, mapError(err))
}
