package inspection

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

// RecordActions appends a batch of dispositions to a session's action log
// and issues the penalties they imply. The batch is atomic: a duplicate or
// invalid action rejects the whole call.
func (s *Service) RecordActions(ctx context.Context, input RecordActionsInput) ([]domain.InspectionAction, error) {
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

	now := time.Now().UTC()
	recorded := make([]domain.InspectionAction, 0, len(input.Actions))

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Lock the session row so a concurrent submit or cancel cannot
		// slip in between the status check and the inserts.
		session, err := s.sessions.GetByIDForUpdate(txCtx, input.SessionID)
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		if session.Status != domain.SessionStatusInProgress {
			return domain.ErrSessionNotActive
		}

		items, err := s.sessions.ListItems(txCtx, session.ID)
		if err != nil {
			return fmt.Errorf("list session items: %w", err)
		}
		snapshot := make(map[uuid.UUID]domain.SessionItem, len(items))
		for _, item := range items {
			snapshot[item.UnitID] = item
		}

		for _, in := range input.Actions {
			action := domain.InspectionAction{
				SessionID:  session.ID,
				Kind:       domain.TargetUnregistered,
				Type:       in.Type,
				Note:       in.Note,
				RecordedBy: identity.UserID,
				RecordedAt: now,
			}

			var owner *uuid.UUID
			if in.UnitID != nil {
				// Registered target: the unit must be in the snapshot. Units
				// added to the shelf after the session started are invisible.
				item, ok := snapshot[*in.UnitID]
				if !ok {
					return fmt.Errorf("unit %s not in session snapshot: %w", in.UnitID, domain.ErrNotFound)
				}
				action.Kind = domain.TargetRegistered
				action.UnitID = &item.UnitID
				action.BundleID = &item.BundleID
				owner = &item.OwnerID
			}

			if err := action.Validate(); err != nil {
				return err
			}

			inserted, err := s.sessions.InsertAction(txCtx, &action)
			if err != nil {
				return fmt.Errorf("insert action: %w", err)
			}

			if points := s.policy.PointsFor(inserted.Type); inserted.Type != domain.ActionTypePass {
				record, err := s.penalties.Insert(txCtx, &domain.PenaltyRecord{
					ID:        uuid.New(),
					UserID:    owner,
					SessionID: session.ID,
					ActionID:  inserted.ID,
					Points:    points,
					Reason:    string(inserted.Type),
					IssuedAt:  now,
					ExpiresAt: s.penaltyExpiry(now),
				})
				if err != nil {
					return fmt.Errorf("insert penalty: %w", err)
				}
				inserted.Penalties = []domain.PenaltyRecord{*record}
			}

			recorded = append(recorded, *inserted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "actions recorded",
		slog.String("session_id", input.SessionID.String()),
		slog.Int("count", len(recorded)),
	)

	return recorded, nil
}

// RevertAction removes a recorded action and the penalties issued for it.
// Only in-progress sessions can be edited; a submitted log is immutable.
func (s *Service) RevertAction(ctx context.Context, input RevertActionInput) error {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !identity.Inspector() {
		return domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		session, err := s.sessions.GetByIDForUpdate(txCtx, input.SessionID)
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		if session.Status != domain.SessionStatusInProgress {
			return domain.ErrSessionNotActive
		}

		if err := s.penalties.DeleteByAction(txCtx, session.ID, input.ActionID); err != nil {
			return fmt.Errorf("delete penalties: %w", err)
		}
		if err := s.sessions.DeleteAction(txCtx, session.ID, input.ActionID); err != nil {
			return fmt.Errorf("delete action: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "action reverted",
		slog.String("session_id", input.SessionID.String()),
		slog.Int64("action_id", input.ActionID),
	)

	return nil
}

// penaltyExpiry computes the expiry timestamp for a penalty issued now, or
// nil if the configured window is zero.
func (s *Service) penaltyExpiry(issuedAt time.Time) *time.Time {
	if s.expiryDays <= 0 {
		return nil
	}
	expires := issuedAt.AddDate(0, 0, s.expiryDays)
	return &expires
}
