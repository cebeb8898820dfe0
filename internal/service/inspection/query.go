package inspection

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetSession returns one session with its snapshot, action log and penalties.
func (s *Service) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error) {
	if _, ok := ctxutil.IdentityFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return s.loadSession(ctx, session)
}

// ActiveSession returns the in-progress session for a compartment with its
// snapshot, action log and penalties. Returns domain.ErrNotFound when no
// inspection is underway.
func (s *Service) ActiveSession(ctx context.Context, slotID uuid.UUID) (*domain.InspectionSession, error) {
	if _, ok := ctxutil.IdentityFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.GetActiveBySlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("active session: %w", err)
	}

	return s.loadSession(ctx, session)
}

// ListSessions returns a compartment's session history, newest first, with
// the total count for pagination. Sessions come back without their snapshots
// and logs; GetSession loads the full view.
func (s *Service) ListSessions(ctx context.Context, slotID uuid.UUID, limit, offset int) ([]*domain.InspectionSession, int, error) {
	if _, ok := ctxutil.IdentityFromCtx(ctx); !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	sessions, total, err := s.sessions.ListBySlot(ctx, slotID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}

	return sessions, total, nil
}

// MyPenalties returns the caller's penalty history. When activeOnly is set,
// expired penalties are excluded.
func (s *Service) MyPenalties(ctx context.Context, activeOnly bool) ([]domain.PenaltyRecord, int, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	records, err := s.penalties.ListByUser(ctx, identity.UserID, activeOnly)
	if err != nil {
		return nil, 0, fmt.Errorf("list penalties: %w", err)
	}

	points, err := s.penalties.ActivePointsByUser(ctx, identity.UserID)
	if err != nil {
		return nil, 0, fmt.Errorf("active points: %w", err)
	}

	return records, points, nil
}

// UserPenalties returns another user's penalty history. Inspector only.
func (s *Service) UserPenalties(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]domain.PenaltyRecord, int, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}
	if !identity.Inspector() {
		return nil, 0, domain.ErrForbidden
	}

	records, err := s.penalties.ListByUser(ctx, userID, activeOnly)
	if err != nil {
		return nil, 0, fmt.Errorf("list penalties: %w", err)
	}

	points, err := s.penalties.ActivePointsByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("active points: %w", err)
	}

	return records, points, nil
}
