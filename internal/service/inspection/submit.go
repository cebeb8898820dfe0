package inspection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

// SubmitSession finalizes an in-progress session: disposal actions are
// applied to the live inventory, the summary is frozen, the linked schedule
// is completed, and the compartment is unlocked. All of it commits together
// or not at all.
func (s *Service) SubmitSession(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !identity.Inspector() {
		return nil, domain.ErrForbidden
	}

	var submitted *domain.InspectionSession

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Lock the session row first: log edits, submit and cancel all
		// take this lock, so the status check below cannot go stale.
		session, err := s.sessions.GetByIDForUpdate(txCtx, sessionID)
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		if session.Status != domain.SessionStatusInProgress {
			return domain.ErrSessionNotActive
		}

		// Serialize against concurrent inventory mutations on this slot.
		if _, err := s.slots.GetByIDForUpdate(txCtx, session.SlotID); err != nil {
			return fmt.Errorf("lock slot: %w", err)
		}

		actions, err := s.sessions.ListActions(txCtx, session.ID)
		if err != nil {
			return fmt.Errorf("list actions: %w", err)
		}
		records, err := s.penalties.ListBySession(txCtx, session.ID)
		if err != nil {
			return fmt.Errorf("list penalties: %w", err)
		}
		actions = attachPenalties(actions, records)

		endedAt := time.Now().UTC()

		if err := s.applyDisposals(txCtx, actions, endedAt); err != nil {
			return err
		}

		summary := domain.Summarize(actions)
		submitted, err = s.sessions.Submit(txCtx, session.ID, endedAt, summary)
		if err != nil {
			return fmt.Errorf("submit session: %w", err)
		}
		submitted.Actions = actions

		if session.ScheduleID != nil {
			if _, err := s.schedules.SetStatus(txCtx, *session.ScheduleID, domain.ScheduleStatusCompleted, &session.ID); err != nil {
				return fmt.Errorf("complete schedule: %w", err)
			}
		}

		if err := s.slots.SetLocked(txCtx, session.SlotID, false); err != nil {
			return fmt.Errorf("unlock slot: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntitySession,
		EntityID:   &submitted.ID,
		Action:     domain.AuditActionUpdate,
		Changes: map[string]any{
			"status":         string(submitted.Status),
			"total_actions":  submitted.Summary.TotalActions,
			"penalty_points": submitted.Summary.PenaltyPoints,
		},
	})

	s.log.InfoContext(ctx, "session submitted",
		slog.String("session_id", submitted.ID.String()),
		slog.Int("total_actions", submitted.Summary.TotalActions),
		slog.Int("penalty_points", submitted.Summary.PenaltyPoints),
	)

	return submitted, nil
}

// applyDisposals soft-deletes the units targeted by disposal actions and
// cascades empty bundles. A unit the owner already removed mid-session is
// tolerated; the disposal is then a no-op.
func (s *Service) applyDisposals(ctx context.Context, actions []domain.InspectionAction, removedAt time.Time) error {
	for _, a := range actions {
		if a.Kind != domain.TargetRegistered || !a.Type.Disposal() {
			continue
		}

		err := s.inventory.RemoveUnit(ctx, *a.UnitID, removedAt)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return fmt.Errorf("remove unit %s: %w", a.UnitID, err)
		}

		live, err := s.inventory.CountLiveUnits(ctx, *a.BundleID)
		if err != nil {
			return fmt.Errorf("count live units: %w", err)
		}
		if live == 0 {
			if err := s.inventory.RemoveBundle(ctx, *a.BundleID, removedAt); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("remove bundle %s: %w", a.BundleID, err)
			}
		}
	}
	return nil
}

// CancelSession abandons an in-progress session without applying any of its
// actions: nothing is removed from the shelf, no summary is frozen, and the
// penalties issued during the session are deleted from the ledger.
// Canceling a session that already reached a terminal status is a no-op
// that returns the session as it stands.
func (s *Service) CancelSession(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !identity.Inspector() {
		return nil, domain.ErrForbidden
	}

	var (
		result   *domain.InspectionSession
		canceled bool
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		session, err := s.sessions.GetByIDForUpdate(txCtx, sessionID)
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		if session.Status != domain.SessionStatusInProgress {
			result = session
			return nil
		}

		result, err = s.sessions.Cancel(txCtx, sessionID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("cancel session: %w", err)
		}
		if err := s.penalties.DeleteBySession(txCtx, sessionID); err != nil {
			return fmt.Errorf("delete penalties: %w", err)
		}
		if err := s.slots.SetLocked(txCtx, session.SlotID, false); err != nil {
			return fmt.Errorf("unlock slot: %w", err)
		}
		canceled = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !canceled {
		return result, nil
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntitySession,
		EntityID:   &sessionID,
		Action:     domain.AuditActionUpdate,
		Changes:    map[string]any{"status": string(domain.SessionStatusCanceled)},
	})

	s.log.InfoContext(ctx, "session canceled",
		slog.String("session_id", sessionID.String()),
	)

	return result, nil
}
