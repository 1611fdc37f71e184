package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes translated by this package.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// MapError translates database errors to domain errors.
// It maps sql.ErrNoRows to notFoundErr and PostgreSQL unique violation (23505)
// to duplicateErr. Other errors are returned unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	if code, _ := Violation(err); code == pgUniqueViolation {
		return duplicateErr
	}

	return err
}

// Violation returns the SQLSTATE code and constraint name of a PostgreSQL
// error, or empty strings for any other error.
func Violation(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// MapConstraint translates a unique or check violation on a named
// constraint to the matching domain error. Errors on unlisted constraints
// are returned unchanged.
func MapConstraint(err error, constraints map[string]error) error {
	code, name := Violation(err)
	if code != pgUniqueViolation && code != pgCheckViolation {
		return err
	}
	if mapped, ok := constraints[name]; ok {
		return mapped
	}
	return err
}
