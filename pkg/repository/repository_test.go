package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	other := errors.New("some other error")
	fk := &pgconn.PgError{Code: "23503"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), errNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"other pg error passes through", fk, fk},
		{"other error passes through", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)
			if got != tt.want {
				t.Errorf("MapError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestMapConstraint(t *testing.T) {
	errGender := errors.New("invalid gender")
	constraints := map[string]error{
		"profiles_username_key": errDuplicate,
		"profiles_gender_check": errGender,
	}
	unlisted := &pgconn.PgError{Code: "23514", ConstraintName: "other_check"}
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "profiles_gender_check"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique on listed constraint", &pgconn.PgError{Code: "23505", ConstraintName: "profiles_username_key"}, errDuplicate},
		{"check on listed constraint", fmt.Errorf("upsert: %w", &pgconn.PgError{Code: "23514", ConstraintName: "profiles_gender_check"}), errGender},
		{"unlisted constraint passes through", unlisted, unlisted},
		{"other code passes through", fk, fk},
		{"non pg error passes through", sql.ErrNoRows, sql.ErrNoRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.MapConstraint(tt.err, constraints); got != tt.want {
				t.Errorf("MapConstraint(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
