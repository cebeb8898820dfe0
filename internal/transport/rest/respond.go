package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with the detail kept out of the response body.
func writeDomainError(w http.ResponseWriter, log *slog.Logger, ctx context.Context, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		fields := make([]fieldError, len(vErr.Errors))
		for i, fe := range vErr.Errors {
			fields[i] = fieldError{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrSessionAlreadyActive),
		errors.Is(err, domain.ErrSessionNotActive),
		errors.Is(err, domain.ErrDuplicateAction),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrRangeExhausted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrCompartmentSuspended),
		errors.Is(err, domain.ErrCompartmentUnavailable):
		writeError(w, http.StatusLocked, err.Error())
	default:
		log.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads the request body into dst. Unknown fields are rejected.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("body", "malformed JSON request body")
	}
	return nil
}
