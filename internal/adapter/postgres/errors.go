package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// Constraint names carrying domain meaning. Unique violations on these are
// mapped to their specific sentinels instead of the generic ErrAlreadyExists.
const (
	ConstraintActiveSessionPerSlot = "inspection_sessions_slot_active_uniq"
	ConstraintActionPerUnit        = "inspection_actions_session_unit_uniq"
	ConstraintLabelPerSlot         = "bundles_slot_label_live_uniq"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass through.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			switch pgErr.ConstraintName {
			case ConstraintActiveSessionPerSlot:
				return fmt.Errorf("%s %s: %w", entity, id, domain.ErrSessionAlreadyActive)
			case ConstraintActionPerUnit:
				return fmt.Errorf("%s %s: %w", entity, id, domain.ErrDuplicateAction)
			default:
				return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
			}
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, id, err)
}
