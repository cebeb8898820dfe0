// Package inventory implements the refrigerator inventory business logic:
// registering bundles, allocating label numbers, maintaining units, and
// serving the item read model.
package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type slotRepo interface {
	GetByID(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error)
	GetByIDForUpdate(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error)
}

type bundleRepo interface {
	CreateBundle(ctx context.Context, bundle *domain.Bundle) (*domain.Bundle, error)
	GetBundleByID(ctx context.Context, bundleID uuid.UUID) (*domain.Bundle, error)
	UpdateBundle(ctx context.Context, bundle *domain.Bundle) (*domain.Bundle, error)
	RemoveBundle(ctx context.Context, bundleID uuid.UUID, removedAt time.Time) error
	UsedLabelNumbers(ctx context.Context, slotID uuid.UUID) ([]int, error)
	CountLiveBySlot(ctx context.Context, slotID uuid.UUID) (int, error)
	CreateUnit(ctx context.Context, unit *domain.Unit) (*domain.Unit, error)
	GetUnitByID(ctx context.Context, unitID uuid.UUID) (*domain.Unit, error)
	UpdateUnit(ctx context.Context, unit *domain.Unit) (*domain.Unit, error)
	RemoveUnit(ctx context.Context, unitID uuid.UUID, removedAt time.Time) error
	MaxSeqNo(ctx context.Context, bundleID uuid.UUID) (int, error)
	CountLiveUnits(ctx context.Context, bundleID uuid.UUID) (int, error)
	ListUnitsByBundle(ctx context.Context, bundleID uuid.UUID) ([]*domain.Unit, error)
	ListItemsBySlot(ctx context.Context, slotID uuid.UUID) ([]domain.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Item, error)
}

type auditLogger interface {
	Record(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the inventory business logic.
type Service struct {
	slots      slotRepo
	bundles    bundleRepo
	audit      auditLogger
	tx         txManager
	log        *slog.Logger
	warnWindow int // days before expiry an item counts as EXPIRING
}

// NewService creates a new Inventory service.
func NewService(
	log *slog.Logger,
	slots slotRepo,
	bundles bundleRepo,
	audit auditLogger,
	tx txManager,
	warnWindowDays int,
) *Service {
	return &Service{
		slots:      slots,
		bundles:    bundles,
		audit:      audit,
		tx:         tx,
		log:        log.With("service", "inventory"),
		warnWindow: warnWindowDays,
	}
}

// checkSlotUsable maps the slot's state to the error a mutation should get.
func checkSlotUsable(slot *domain.Slot) error {
	switch slot.Status {
	case domain.SlotStatusSuspended:
		return domain.ErrCompartmentSuspended
	case domain.SlotStatusReported, domain.SlotStatusRetired:
		return domain.ErrCompartmentUnavailable
	}
	if slot.Locked {
		return domain.ErrCompartmentUnavailable
	}
	return nil
}

// decorateItems fills the freshness fields the repo leaves empty.
func (s *Service) decorateItems(items []domain.Item, now time.Time) []domain.Item {
	for i := range items {
		items[i].Freshness = domain.ComputeFreshness(items[i].ExpiryDate, now, s.warnWindow)
		items[i].DDay = domain.DDayLabel(items[i].ExpiryDate, now)
	}
	return items
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
