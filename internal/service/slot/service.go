// Package slot implements administrative provisioning of refrigerator
// compartments: creating slots, adjusting their label ranges and capacity,
// and changing their lifecycle status.
package slot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

type slotRepo interface {
	GetByID(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error)
	List(ctx context.Context) ([]*domain.Slot, error)
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	SetStatus(ctx context.Context, slotID uuid.UUID, status domain.SlotStatus) (*domain.Slot, error)
	Update(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
}

type auditLogger interface {
	Record(ctx context.Context, record domain.AuditRecord) error
}

// Service implements slot administration.
type Service struct {
	slots slotRepo
	audit auditLogger
	log   *slog.Logger
}

// NewService creates a new Slot service.
func NewService(log *slog.Logger, slots slotRepo, audit auditLogger) *Service {
	return &Service{
		slots: slots,
		audit: audit,
		log:   log.With("service", "slot"),
	}
}

// List returns every compartment, ordered by floor and index.
func (s *Service) List(ctx context.Context) ([]*domain.Slot, error) {
	if _, ok := ctxutil.IdentityFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	slots, err := s.slots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	return slots, nil
}

// Get returns one compartment.
func (s *Service) Get(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error) {
	if _, ok := ctxutil.IdentityFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}

	return slot, nil
}

// Create provisions a new compartment. Admin only.
func (s *Service) Create(ctx context.Context, input CreateSlotInput) (*domain.Slot, error) {
	identity, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.slots.Create(ctx, &domain.Slot{
		ID:              uuid.New(),
		FloorNo:         input.FloorNo,
		SlotIndex:       input.SlotIndex,
		SlotLetter:      input.SlotLetter,
		LabelRangeStart: input.LabelRangeStart,
		LabelRangeEnd:   input.LabelRangeEnd,
		Capacity:        input.Capacity,
		Status:          domain.SlotStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntitySlot,
		EntityID:   &created.ID,
		Action:     domain.AuditActionCreate,
		Changes: map[string]any{
			"code":  created.Code(),
			"range": fmt.Sprintf("[%d,%d]", created.LabelRangeStart, created.LabelRangeEnd),
		},
	})

	s.log.InfoContext(ctx, "slot created",
		slog.String("slot_id", created.ID.String()),
		slog.String("code", created.Code()),
	)

	return created, nil
}

// SetStatus moves a compartment through its lifecycle. Admin only. A retired
// compartment stays retired.
func (s *Service) SetStatus(ctx context.Context, slotID uuid.UUID, status domain.SlotStatus) (*domain.Slot, error) {
	identity, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}

	existing, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if existing.Status == domain.SlotStatusRetired {
		return nil, domain.NewValidationError("status", "slot is retired")
	}

	updated, err := s.slots.SetStatus(ctx, slotID, status)
	if err != nil {
		return nil, fmt.Errorf("set slot status: %w", err)
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntitySlot,
		EntityID:   &slotID,
		Action:     domain.AuditActionUpdate,
		Changes:    map[string]any{"status": string(status)},
	})

	s.log.InfoContext(ctx, "slot status changed",
		slog.String("slot_id", slotID.String()),
		slog.String("status", string(status)),
	)

	return updated, nil
}

// Update adjusts a compartment's label range and capacity. Admin only.
// Shrinking the range below labels already in use is allowed; existing
// bundles keep their labels and the allocator simply never reissues the
// out-of-range ones.
func (s *Service) Update(ctx context.Context, input UpdateSlotInput) (*domain.Slot, error) {
	identity, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.slots.Update(ctx, &domain.Slot{
		ID:              input.SlotID,
		LabelRangeStart: input.LabelRangeStart,
		LabelRangeEnd:   input.LabelRangeEnd,
		Capacity:        input.Capacity,
	})
	if err != nil {
		return nil, fmt.Errorf("update slot: %w", err)
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntitySlot,
		EntityID:   &input.SlotID,
		Action:     domain.AuditActionUpdate,
		Changes: map[string]any{
			"range": fmt.Sprintf("[%d,%d]", updated.LabelRangeStart, updated.LabelRangeEnd),
		},
	})

	return updated, nil
}

// requireAdmin extracts the identity and checks the ADMIN role.
func requireAdmin(ctx context.Context) (ctxutil.Identity, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return ctxutil.Identity{}, domain.ErrUnauthorized
	}
	if !identity.HasRole(domain.RoleAdmin) {
		return ctxutil.Identity{}, domain.ErrForbidden
	}
	return identity, nil
}

// recordAudit writes an audit record; failures are logged and swallowed.
func (s *Service) recordAudit(ctx context.Context, record domain.AuditRecord) {
	if err := s.audit.Record(ctx, record); err != nil {
		s.log.WarnContext(ctx, "audit record failed",
			slog.String("entity_type", record.EntityType.String()),
			slog.String("error", err.Error()),
		)
	}
}
