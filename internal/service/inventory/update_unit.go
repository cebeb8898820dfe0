package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

// UpdateUnit edits a unit's descriptive fields. Only the bundle owner or an
// inspector may edit; the compartment must be usable.
func (s *Service) UpdateUnit(ctx context.Context, input UpdateUnitInput) (*domain.Unit, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Unit

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		unit, err := s.bundles.GetUnitByID(txCtx, input.UnitID)
		if err != nil {
			return fmt.Errorf("get unit: %w", err)
		}

		bundle, err := s.bundles.GetBundleByID(txCtx, unit.BundleID)
		if err != nil {
			return fmt.Errorf("get bundle: %w", err)
		}
		if bundle.OwnerID != identity.UserID && !identity.Inspector() {
			return domain.ErrForbidden
		}

		slot, err := s.slots.GetByIDForUpdate(txCtx, bundle.SlotID)
		if err != nil {
			return fmt.Errorf("get slot: %w", err)
		}
		if err := checkSlotUsable(slot); err != nil {
			return err
		}

		unit.Name = input.Name
		unit.ExpiryDate = input.ExpiryDate
		unit.Quantity = input.Quantity
		unit.UnitCode = input.UnitCode

		updated, err = s.bundles.UpdateUnit(txCtx, unit)
		if err != nil {
			return fmt.Errorf("update unit: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntityUnit,
		EntityID:   &updated.ID,
		Action:     domain.AuditActionUpdate,
		Changes: map[string]any{
			"name":        updated.Name,
			"expiry_date": updated.ExpiryDate.Format("2006-01-02"),
		},
	})

	return updated, nil
}

// RemoveUnit soft-deletes a unit. When the bundle's last live unit goes, the
// bundle goes with it and its label number is released.
func (s *Service) RemoveUnit(ctx context.Context, unitID uuid.UUID) error {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if unitID == uuid.Nil {
		return domain.NewValidationError("unit_id", "required")
	}

	var bundleRemoved bool
	var bundleID uuid.UUID

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		unit, err := s.bundles.GetUnitByID(txCtx, unitID)
		if err != nil {
			return fmt.Errorf("get unit: %w", err)
		}

		bundle, err := s.bundles.GetBundleByID(txCtx, unit.BundleID)
		if err != nil {
			return fmt.Errorf("get bundle: %w", err)
		}
		if bundle.OwnerID != identity.UserID && !identity.Inspector() {
			return domain.ErrForbidden
		}
		bundleID = bundle.ID

		slot, err := s.slots.GetByIDForUpdate(txCtx, bundle.SlotID)
		if err != nil {
			return fmt.Errorf("get slot: %w", err)
		}
		if err := checkSlotUsable(slot); err != nil {
			return err
		}

		now := removedNow()
		if err := s.bundles.RemoveUnit(txCtx, unitID, now); err != nil {
			return fmt.Errorf("remove unit: %w", err)
		}

		remaining, err := s.bundles.CountLiveUnits(txCtx, bundle.ID)
		if err != nil {
			return fmt.Errorf("count units: %w", err)
		}
		if remaining == 0 {
			if err := s.bundles.RemoveBundle(txCtx, bundle.ID, now); err != nil {
				return fmt.Errorf("remove bundle: %w", err)
			}
			bundleRemoved = true
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntityUnit,
		EntityID:   &unitID,
		Action:     domain.AuditActionDelete,
		Changes: map[string]any{
			"bundle_id":      bundleID.String(),
			"bundle_removed": bundleRemoved,
		},
	})

	s.log.InfoContext(ctx, "unit removed",
		slog.String("unit_id", unitID.String()),
		slog.Bool("bundle_removed", bundleRemoved),
	)

	return nil
}
