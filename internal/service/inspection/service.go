// Package inspection implements the inspection session engine: starting a
// session over a compartment snapshot, recording dispositions, issuing
// penalties, and finalizing the session atomically.
package inspection

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
	GetByIDForUpdate(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error)
	SetLocked(ctx context.Context, slotID uuid.UUID, locked bool) error
}

type sessionRepo interface {
	Create(ctx context.Context, session *domain.InspectionSession) (*domain.InspectionSession, error)
	GetByID(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error)
	GetByIDForUpdate(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error)
	GetActiveBySlot(ctx context.Context, slotID uuid.UUID) (*domain.InspectionSession, error)
	Submit(ctx context.Context, sessionID uuid.UUID, endedAt time.Time, summary domain.SessionSummary) (*domain.InspectionSession, error)
	Cancel(ctx context.Context, sessionID uuid.UUID, endedAt time.Time) (*domain.InspectionSession, error)
	ListBySlot(ctx context.Context, slotID uuid.UUID, limit, offset int) ([]*domain.InspectionSession, int, error)
	InsertItems(ctx context.Context, items []domain.SessionItem) error
	ListItems(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionItem, error)
	InsertAction(ctx context.Context, action *domain.InspectionAction) (*domain.InspectionAction, error)
	DeleteAction(ctx context.Context, sessionID uuid.UUID, actionID int64) error
	ListActions(ctx context.Context, sessionID uuid.UUID) ([]domain.InspectionAction, error)
}

type inventoryRepo interface {
	ListItemsBySlot(ctx context.Context, slotID uuid.UUID) ([]domain.Item, error)
	RemoveUnit(ctx context.Context, unitID uuid.UUID, removedAt time.Time) error
	RemoveBundle(ctx context.Context, bundleID uuid.UUID, removedAt time.Time) error
	CountLiveUnits(ctx context.Context, bundleID uuid.UUID) (int, error)
}

type scheduleRepo interface {
	GetByID(ctx context.Context, scheduleID uuid.UUID) (*domain.InspectionSchedule, error)
	SetStatus(ctx context.Context, scheduleID uuid.UUID, status domain.ScheduleStatus, sessionID *uuid.UUID) (*domain.InspectionSchedule, error)
}

type penaltyLedger interface {
	Insert(ctx context.Context, record *domain.PenaltyRecord) (*domain.PenaltyRecord, error)
	DeleteByAction(ctx context.Context, sessionID uuid.UUID, actionID int64) error
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.PenaltyRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]domain.PenaltyRecord, error)
	ActivePointsByUser(ctx context.Context, userID uuid.UUID) (int, error)
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

// Service implements the inspection business logic.
type Service struct {
	slots      slotRepo
	sessions   sessionRepo
	inventory  inventoryRepo
	schedules  scheduleRepo
	penalties  penaltyLedger
	policy     domain.PenaltyPolicy
	audit      auditLogger
	tx         txManager
	log        *slog.Logger
	expiryDays int // penalty validity window; 0 means penalties never expire
}

// NewService creates a new Inspection service.
func NewService(
	log *slog.Logger,
	slots slotRepo,
	sessions sessionRepo,
	inventory inventoryRepo,
	schedules scheduleRepo,
	penalties penaltyLedger,
	policy domain.PenaltyPolicy,
	audit auditLogger,
	tx txManager,
	penaltyExpiryDays int,
) *Service {
	return &Service{
		slots:      slots,
		sessions:   sessions,
		inventory:  inventory,
		schedules:  schedules,
		penalties:  penalties,
		policy:     policy,
		audit:      audit,
		tx:         tx,
		log:        log.With("service", "inspection"),
		expiryDays: penaltyExpiryDays,
	}
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

// attachPenalties groups ledger records onto their actions by action ID.
func attachPenalties(actions []domain.InspectionAction, records []domain.PenaltyRecord) []domain.InspectionAction {
	byAction := make(map[int64][]domain.PenaltyRecord, len(records))
	for _, r := range records {
		byAction[r.ActionID] = append(byAction[r.ActionID], r)
	}
	for i := range actions {
		actions[i].Penalties = byAction[actions[i].ID]
	}
	return actions
}
