package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

func TestWriteDomainError_StatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get slot: %w", domain.ErrNotFound), http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"already exists", domain.ErrAlreadyExists, http.StatusConflict},
		{"session already active", domain.ErrSessionAlreadyActive, http.StatusConflict},
		{"session not active", domain.ErrSessionNotActive, http.StatusConflict},
		{"duplicate action", domain.ErrDuplicateAction, http.StatusConflict},
		{"capacity exceeded", domain.ErrCapacityExceeded, http.StatusConflict},
		{"range exhausted", domain.ErrRangeExhausted, http.StatusConflict},
		{"validation", domain.NewValidationError("name", "required"), http.StatusUnprocessableEntity},
		{"suspended", domain.ErrCompartmentSuspended, http.StatusLocked},
		{"unavailable", domain.ErrCompartmentUnavailable, http.StatusLocked},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			writeDomainError(rec, slog.Default(), context.Background(), tc.err)

			if rec.Code != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestWriteDomainError_ValidationFields(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeDomainError(rec, slog.Default(), context.Background(), domain.NewValidationErrors([]domain.FieldError{
		{Field: "name", Message: "required"},
		{Field: "units", Message: "at least one required"},
	}))

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(resp.Fields))
	}
	if resp.Fields[0].Field != "name" {
		t.Errorf("expected first field 'name', got %q", resp.Fields[0].Field)
	}
}

func TestWriteDomainError_InternalHidesDetail(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeDomainError(rec, slog.Default(), context.Background(), errors.New("pg: connection refused at 10.0.0.3"))

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error != "internal server error" {
		t.Errorf("expected opaque message, got %q", resp.Error)
	}
}
