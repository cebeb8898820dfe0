package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapError(nil, "bundle", uuid.New()); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	err := MapError(pgx.ErrNoRows, "bundle", uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMapError_ContextErrorsPassThrough(t *testing.T) {
	t.Parallel()

	err := MapError(context.DeadlineExceeded, "slot", uuid.New())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded to pass through, got %v", err)
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatal("context error must not be mapped to a domain error")
	}

	err = MapError(context.Canceled, "slot", uuid.New())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected Canceled to pass through, got %v", err)
	}
}

func TestMapError_UniqueViolation_Generic(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "bundles_pkey"}
	err := MapError(pgErr, "bundle", uuid.New())
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestMapError_UniqueViolation_ActiveSession(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: ConstraintActiveSessionPerSlot}
	err := MapError(pgErr, "session", uuid.New())
	if !errors.Is(err, domain.ErrSessionAlreadyActive) {
		t.Fatalf("expected ErrSessionAlreadyActive, got %v", err)
	}
}

func TestMapError_UniqueViolation_DuplicateAction(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: ConstraintActionPerUnit}
	err := MapError(pgErr, "action", uuid.New())
	if !errors.Is(err, domain.ErrDuplicateAction) {
		t.Fatalf("expected ErrDuplicateAction, got %v", err)
	}
}

func TestMapError_ForeignKeyViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23503"}
	err := MapError(pgErr, "unit", uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMapError_CheckViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23514"}
	err := MapError(pgErr, "slot", uuid.New())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestMapError_UnknownErrorWrapped(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := MapError(cause, "bundle", uuid.New())
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}
