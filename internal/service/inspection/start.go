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

// StartResult is what StartSession hands back: the session, plus whether it
// was resumed rather than freshly created.
type StartResult struct {
	Session *domain.InspectionSession
	Resumed bool
}

// StartSession opens an inspection over a compartment, snapshotting its live
// items and locking it against inventory mutations. If a session is already
// in progress for the compartment, that session is returned with Resumed set
// instead of an error.
func (s *Service) StartSession(ctx context.Context, input StartSessionInput) (*StartResult, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !identity.Inspector() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Fast path: resume an in-progress session without taking the slot lock.
	existing, err := s.sessions.GetActiveBySlot(ctx, input.SlotID)
	if err == nil {
		return s.resume(ctx, existing)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check active session: %w", err)
	}

	var session *domain.InspectionSession

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		slot, err := s.slots.GetByIDForUpdate(txCtx, input.SlotID)
		if err != nil {
			return fmt.Errorf("get slot: %w", err)
		}
		switch slot.Status {
		case domain.SlotStatusSuspended:
			return domain.ErrCompartmentSuspended
		case domain.SlotStatusRetired:
			return domain.ErrCompartmentUnavailable
		}

		if input.ScheduleID != nil {
			sched, err := s.schedules.GetByID(txCtx, *input.ScheduleID)
			if err != nil {
				return fmt.Errorf("get schedule: %w", err)
			}
			if sched.SlotID != input.SlotID {
				return domain.NewValidationError("schedule_id", "schedule targets a different compartment")
			}
			if sched.Status != domain.ScheduleStatusScheduled {
				return domain.NewValidationError("schedule_id", "schedule is not open")
			}
		}

		session, err = s.sessions.Create(txCtx, &domain.InspectionSession{
			ID:         uuid.New(),
			SlotID:     input.SlotID,
			ScheduleID: input.ScheduleID,
			Status:     domain.SessionStatusInProgress,
			StartedBy:  identity.UserID,
			StartedAt:  time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		// Snapshot the live inventory. The snapshot never changes after this
		// point regardless of what happens to the shelf.
		items, err := s.inventory.ListItemsBySlot(txCtx, input.SlotID)
		if err != nil {
			return fmt.Errorf("list slot items: %w", err)
		}
		session.Items = make([]domain.SessionItem, len(items))
		for i, item := range items {
			session.Items[i] = domain.SessionItem{
				SessionID:   session.ID,
				UnitID:      item.UnitID,
				BundleID:    item.BundleID,
				OwnerID:     item.OwnerID,
				LabelNumber: item.LabelNumber,
				SeqNo:       item.SeqNo,
				UnitName:    item.UnitName,
				ExpiryDate:  item.ExpiryDate,
				DisplayCode: item.DisplayCode,
			}
		}
		if err := s.sessions.InsertItems(txCtx, session.Items); err != nil {
			return fmt.Errorf("insert snapshot items: %w", err)
		}

		if err := s.slots.SetLocked(txCtx, input.SlotID, true); err != nil {
			return fmt.Errorf("lock slot: %w", err)
		}

		return nil
	})
	if err != nil {
		// Race: another inspector created the session between the fast-path
		// check and our insert. Resume theirs.
		if errors.Is(err, domain.ErrSessionAlreadyActive) {
			existing, getErr := s.sessions.GetActiveBySlot(ctx, input.SlotID)
			if getErr != nil {
				return nil, fmt.Errorf("get active after race: %w", getErr)
			}
			return s.resume(ctx, existing)
		}
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntitySession,
		EntityID:   &session.ID,
		Action:     domain.AuditActionCreate,
		Changes: map[string]any{
			"slot_id": session.SlotID.String(),
			"items":   len(session.Items),
		},
	})

	s.log.InfoContext(ctx, "session started",
		slog.String("session_id", session.ID.String()),
		slog.String("slot_id", session.SlotID.String()),
		slog.Int("items", len(session.Items)),
	)

	return &StartResult{Session: session}, nil
}

// resume loads a full view of an in-progress session and marks the result.
func (s *Service) resume(ctx context.Context, session *domain.InspectionSession) (*StartResult, error) {
	loaded, err := s.loadSession(ctx, session)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "resuming in-progress session",
		slog.String("session_id", loaded.ID.String()),
		slog.String("slot_id", loaded.SlotID.String()),
	)

	return &StartResult{Session: loaded, Resumed: true}, nil
}

// loadSession attaches the snapshot, action log and penalties to a session.
func (s *Service) loadSession(ctx context.Context, session *domain.InspectionSession) (*domain.InspectionSession, error) {
	items, err := s.sessions.ListItems(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("list session items: %w", err)
	}
	session.Items = items

	actions, err := s.sessions.ListActions(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("list session actions: %w", err)
	}

	records, err := s.penalties.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("list session penalties: %w", err)
	}
	session.Actions = attachPenalties(actions, records)

	return session, nil
}
