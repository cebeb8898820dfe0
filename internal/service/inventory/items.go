package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

// ListSlotItems returns every live item in a compartment with freshness and
// D-day labels computed against the current date.
func (s *Service) ListSlotItems(ctx context.Context, slotID uuid.UUID) ([]domain.Item, error) {
	if _, ok := ctxutil.IdentityFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if slotID == uuid.Nil {
		return nil, domain.NewValidationError("slot_id", "required")
	}

	// Listing works regardless of slot status: a suspended compartment's
	// contents stay visible even while mutations are rejected.
	if _, err := s.slots.GetByID(ctx, slotID); err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}

	items, err := s.bundles.ListItemsBySlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return s.decorateItems(items, time.Now().UTC()), nil
}

// ListMyItems returns the caller's live items across all compartments.
func (s *Service) ListMyItems(ctx context.Context) ([]domain.Item, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.bundles.ListItemsByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return s.decorateItems(items, time.Now().UTC()), nil
}
