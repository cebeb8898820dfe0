package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

// CreateBundle registers a new bundle with its initial units. The label
// number is allocated inside the transaction while the compartment row lock
// is held, so two concurrent registrations in the same compartment cannot
// race for a number or overshoot capacity.
func (s *Service) CreateBundle(ctx context.Context, input CreateBundleInput) (*domain.Bundle, []*domain.Unit, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		bundle *domain.Bundle
		units  []*domain.Unit
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		slot, err := s.slots.GetByIDForUpdate(txCtx, input.SlotID)
		if err != nil {
			return fmt.Errorf("get slot: %w", err)
		}
		if err := checkSlotUsable(slot); err != nil {
			return err
		}

		if slot.Capacity != nil {
			count, err := s.bundles.CountLiveBySlot(txCtx, input.SlotID)
			if err != nil {
				return fmt.Errorf("count bundles: %w", err)
			}
			if count >= *slot.Capacity {
				return fmt.Errorf("slot %s at capacity %d: %w", slot.ID, *slot.Capacity, domain.ErrCapacityExceeded)
			}
		}

		used, err := s.bundles.UsedLabelNumbers(txCtx, input.SlotID)
		if err != nil {
			return fmt.Errorf("used label numbers: %w", err)
		}
		label, err := allocateLabel(slot, used)
		if err != nil {
			return err
		}

		bundle, err = s.bundles.CreateBundle(txCtx, &domain.Bundle{
			ID:          uuid.New(),
			SlotID:      input.SlotID,
			LabelNumber: label,
			Name:        input.Name,
			Memo:        input.Memo,
			OwnerID:     identity.UserID,
		})
		if err != nil {
			return fmt.Errorf("create bundle: %w", err)
		}

		units = make([]*domain.Unit, 0, len(input.Units))
		for i, ui := range input.Units {
			unit, err := s.bundles.CreateUnit(txCtx, &domain.Unit{
				ID:         uuid.New(),
				BundleID:   bundle.ID,
				SeqNo:      i + 1,
				Name:       ui.Name,
				ExpiryDate: ui.ExpiryDate,
				Quantity:   ui.Quantity,
				UnitCode:   ui.UnitCode,
			})
			if err != nil {
				return fmt.Errorf("create unit: %w", err)
			}
			units = append(units, unit)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntityBundle,
		EntityID:   &bundle.ID,
		Action:     domain.AuditActionCreate,
		Changes: map[string]any{
			"slot_id":      bundle.SlotID.String(),
			"label_number": bundle.LabelNumber,
			"units":        len(units),
		},
	})

	s.log.InfoContext(ctx, "bundle registered",
		slog.String("bundle_id", bundle.ID.String()),
		slog.String("slot_id", bundle.SlotID.String()),
		slog.Int("label_number", bundle.LabelNumber),
		slog.Int("units", len(units)),
	)

	return bundle, units, nil
}

// AddUnit appends a unit to an existing bundle, assigning the next sequence
// number. Sequence numbers of removed units stay retired.
func (s *Service) AddUnit(ctx context.Context, input AddUnitInput) (*domain.Unit, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var unit *domain.Unit

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		bundle, err := s.bundles.GetBundleByID(txCtx, input.BundleID)
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

		maxSeq, err := s.bundles.MaxSeqNo(txCtx, input.BundleID)
		if err != nil {
			return fmt.Errorf("max seq_no: %w", err)
		}

		unit, err = s.bundles.CreateUnit(txCtx, &domain.Unit{
			ID:         uuid.New(),
			BundleID:   input.BundleID,
			SeqNo:      maxSeq + 1,
			Name:       input.Name,
			ExpiryDate: input.ExpiryDate,
			Quantity:   input.Quantity,
			UnitCode:   input.UnitCode,
		})
		if err != nil {
			return fmt.Errorf("create unit: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntityUnit,
		EntityID:   &unit.ID,
		Action:     domain.AuditActionCreate,
		Changes: map[string]any{
			"bundle_id": unit.BundleID.String(),
			"seq_no":    unit.SeqNo,
		},
	})

	return unit, nil
}

// removedNow returns the timestamp soft deletes should carry.
func removedNow() time.Time {
	return time.Now().UTC()
}
