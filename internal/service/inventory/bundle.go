package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

// UpdateBundle renames a bundle or edits its memo. Owner only: the memo is
// private, and a rename by anyone else would surprise the owner mid-shelf.
func (s *Service) UpdateBundle(ctx context.Context, input UpdateBundleInput) (*domain.Bundle, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Bundle

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		bundle, err := s.bundles.GetBundleByID(txCtx, input.BundleID)
		if err != nil {
			return fmt.Errorf("get bundle: %w", err)
		}
		if bundle.OwnerID != identity.UserID {
			return domain.ErrForbidden
		}

		slot, err := s.slots.GetByIDForUpdate(txCtx, bundle.SlotID)
		if err != nil {
			return fmt.Errorf("get slot: %w", err)
		}
		if err := checkSlotUsable(slot); err != nil {
			return err
		}

		bundle.Name = input.Name
		bundle.Memo = input.Memo

		updated, err = s.bundles.UpdateBundle(txCtx, bundle)
		if err != nil {
			return fmt.Errorf("update bundle: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntityBundle,
		EntityID:   &updated.ID,
		Action:     domain.AuditActionUpdate,
		Changes:    map[string]any{"name": updated.Name},
	})

	return updated, nil
}

// GetBundle returns a bundle with its live units. The memo is blanked for
// everyone but the owner.
func (s *Service) GetBundle(ctx context.Context, bundleID uuid.UUID) (*domain.Bundle, []*domain.Unit, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, nil, domain.ErrUnauthorized
	}
	if bundleID == uuid.Nil {
		return nil, nil, domain.NewValidationError("bundle_id", "required")
	}

	bundle, err := s.bundles.GetBundleByID(ctx, bundleID)
	if err != nil {
		return nil, nil, fmt.Errorf("get bundle: %w", err)
	}

	if bundle.OwnerID != identity.UserID {
		bundle.Memo = nil
	}

	units, err := s.bundles.ListUnitsByBundle(ctx, bundleID)
	if err != nil {
		return nil, nil, fmt.Errorf("list units: %w", err)
	}

	return bundle, units, nil
}
